package queries

import (
	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/domain/category"
	"reservation-engine/internal/domain/pricing"
	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/domain/user"

	"github.com/google/uuid"
)

func toCategoryView(c *category.Category) CategoryView {
	rates, occ := c.Rates(), c.Occupancy()
	return CategoryView{
		ID:               c.ID(),
		Name:             c.Name(),
		NightlyRateCents: rates.Nightly.Cents(),
		ExtraAdultCents:  rates.ExtraAdult.Cents(),
		ExtraChildCents:  rates.ExtraChild.Cents(),
		IncludedAdults:   occ.IncludedAdults,
		IncludedChildren: occ.IncludedChildren,
		MaxAdults:        occ.MaxAdults,
		MaxChildren:      occ.MaxChildren,
	}
}

func toUnitViews(units []*unit.Unit) []UnitView {
	out := make([]UnitView, 0, len(units))
	for _, u := range units {
		out = append(out, UnitView{
			ID:         u.ID(),
			CategoryID: u.CategoryID(),
			Code:       u.Code(),
			Floor:      u.Floor(),
			Status:     u.Status().String(),
		})
	}
	return out
}

func toQuoteView(categoryID uuid.UUID, b pricing.Breakdown) QuoteView {
	return QuoteView{
		CategoryID:       categoryID,
		Nights:           b.Nights,
		NightlyRate:      b.NightlyRate.Cents(),
		Base:             b.Base.Cents(),
		ExtraAdults:      b.ExtraAdults,
		ExtraAdultAmount: b.ExtraAdultAmount.Cents(),
		ExtraChildren:    b.ExtraChildren,
		ExtraChildAmount: b.ExtraChildAmount.Cents(),
		Subtotal:         b.Subtotal.Cents(),
		CouponCode:       b.CouponCode,
		DiscountAmount:   b.DiscountAmount.Cents(),
		TaxRatePercent:   b.TaxRatePercent,
		TaxAmount:        b.TaxAmount.Cents(),
		TotalAmount:      b.TotalAmount.Cents(),
	}
}

// ToBookingView is shared with the command handlers, which answer with the
// same representation.
func ToBookingView(b *booking.Booking, unitCode string) BookingView {
	s := b.Snapshot()
	guests := make([]GuestView, 0, len(s.Guests))
	for _, g := range s.Guests {
		guests = append(guests, GuestView{Name: g.Name, Email: g.Email, Phone: g.Phone, IsPrimary: g.IsPrimary})
	}
	return BookingView{
		ID:             s.ID,
		Number:         s.Number,
		Channel:        string(s.Channel),
		Status:         s.Status.String(),
		CategoryID:     s.CategoryID,
		UnitID:         s.UnitID,
		UnitCode:       unitCode,
		GuestID:        s.GuestID,
		CheckIn:        s.Stay.Start(),
		CheckOut:       s.Stay.End(),
		Nights:         s.Stay.Nights(),
		Adults:         s.Adults,
		Children:       s.Children,
		Price:          toQuoteView(s.CategoryID, s.Price),
		Overridden:     s.Price.Overridden,
		OverrideReason: s.Price.OverrideReason,
		SourceID:       s.SourceID,
		AgentID:        s.AgentID,
		CouponID:       s.CouponID,
		Commission:     s.Commission.Cents(),
		Guests:         guests,
		Notes:          s.Notes,
		CancelReason:   s.CancelReason,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		ConfirmedAt:    s.ConfirmedAt,
		CheckedInAt:    s.CheckedInAt,
		CheckedOutAt:   s.CheckedOutAt,
		CancelledAt:    s.CancelledAt,
	}
}

func ToBlockView(b *unit.Block) BlockView {
	return BlockView{
		ID:        b.ID(),
		UnitID:    b.UnitID(),
		StartDate: b.StartDate(),
		EndDate:   b.EndDate(),
		Reason:    b.Reason(),
		Notes:     b.Notes(),
		CreatedBy: b.CreatedBy(),
		CreatedAt: b.CreatedAt(),
	}
}

func toUserView(u *user.User) UserView {
	return UserView{
		ID:       u.ID(),
		Email:    u.Email().Value(),
		Name:     u.Name(),
		Role:     u.Role().String(),
		IsActive: u.IsActive(),
	}
}
