package response

import (
	"time"

	"reservation-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

// PriceResponse is an itemized price in cents.
type PriceResponse struct {
	Nights           int     `json:"nights"`
	NightlyRate      int64   `json:"nightly_rate"`
	Base             int64   `json:"base"`
	ExtraAdults      int     `json:"extra_adults"`
	ExtraAdultAmount int64   `json:"extra_adult_amount"`
	ExtraChildren    int     `json:"extra_children"`
	ExtraChildAmount int64   `json:"extra_child_amount"`
	Subtotal         int64   `json:"subtotal"`
	CouponCode       string  `json:"coupon_code,omitempty"`
	DiscountAmount   int64   `json:"discount_amount"`
	TaxRatePercent   float64 `json:"tax_rate_percent"`
	TaxAmount        int64   `json:"tax_amount"`
	TotalAmount      int64   `json:"total_amount"`
}

type QuoteResponse struct {
	CategoryID     uuid.UUID `json:"category_id"`
	AvailableCount int       `json:"available_count"`
	PriceResponse
}

type GuestResponse struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

type BookingResponse struct {
	ID             uuid.UUID       `json:"id"`
	Number         string          `json:"booking_number"`
	Channel        string          `json:"channel"`
	Status         string          `json:"status"`
	CategoryID     uuid.UUID       `json:"category_id"`
	UnitID         uuid.UUID       `json:"unit_id"`
	UnitCode       string          `json:"unit_code,omitempty"`
	GuestID        uuid.UUID       `json:"guest_id"`
	CheckIn        string          `json:"check_in"`
	CheckOut       string          `json:"check_out"`
	Nights         int             `json:"nights"`
	Adults         int             `json:"adults"`
	Children       int             `json:"children"`
	Price          PriceResponse   `json:"price"`
	Overridden     bool            `json:"is_price_overridden"`
	OverrideReason string          `json:"override_reason,omitempty"`
	SourceID       *uuid.UUID      `json:"source_id,omitempty"`
	CouponID       *uuid.UUID      `json:"coupon_id,omitempty"`
	Commission     int64           `json:"commission"`
	Guests         []GuestResponse `json:"guests"`
	Notes          string          `json:"notes,omitempty"`
	CancelReason   string          `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	ConfirmedAt    *time.Time      `json:"confirmed_at,omitempty"`
	CheckedInAt    *time.Time      `json:"checked_in_at,omitempty"`
	CheckedOutAt   *time.Time      `json:"checked_out_at,omitempty"`
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	out := BookingResponse{Guests: []GuestResponse{}}
	if err := copyView(&out, v); err != nil {
		return nil, err
	}
	return &out, nil
}

func FromQuoteView(v *queries.QuoteView) (*QuoteResponse, error) {
	var out QuoteResponse
	if err := copyView(&out.PriceResponse, v); err != nil {
		return nil, err
	}
	out.CategoryID = v.CategoryID
	out.AvailableCount = v.AvailableCount
	return &out, nil
}
