package queries

import (
	"time"

	"github.com/google/uuid"
)

type CategoryView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	ExtraAdultCents  int64     `json:"extra_adult_cents"`
	ExtraChildCents  int64     `json:"extra_child_cents"`
	IncludedAdults   int       `json:"included_adults"`
	IncludedChildren int       `json:"included_children"`
	MaxAdults        int       `json:"max_adults"`
	MaxChildren      int       `json:"max_children"`
}

type UnitView struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Code       string    `json:"code"`
	Floor      int       `json:"floor"`
	Status     string    `json:"status"`
}

type AvailabilityView struct {
	Category       CategoryView `json:"category"`
	CheckIn        time.Time    `json:"check_in"`
	CheckOut       time.Time    `json:"check_out"`
	Nights         int          `json:"nights"`
	Available      bool         `json:"available"`
	AvailableCount int          `json:"available_count"`
	Units          []UnitView   `json:"units"`
}

type CategoryAvailabilityView struct {
	Category       CategoryView `json:"category"`
	AvailableCount int          `json:"available_count"`
}

// QuoteView is an itemized price; amounts are in cents.
type QuoteView struct {
	CategoryID       uuid.UUID `json:"category_id"`
	Nights           int       `json:"nights"`
	NightlyRate      int64     `json:"nightly_rate"`
	Base             int64     `json:"base"`
	ExtraAdults      int       `json:"extra_adults"`
	ExtraAdultAmount int64     `json:"extra_adult_amount"`
	ExtraChildren    int       `json:"extra_children"`
	ExtraChildAmount int64     `json:"extra_child_amount"`
	Subtotal         int64     `json:"subtotal"`
	CouponCode       string    `json:"coupon_code,omitempty"`
	DiscountAmount   int64     `json:"discount_amount"`
	TaxRatePercent   float64   `json:"tax_rate_percent"`
	TaxAmount        int64     `json:"tax_amount"`
	TotalAmount      int64     `json:"total_amount"`
	AvailableCount   int       `json:"available_count"`
}

type GuestView struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

type BookingView struct {
	ID             uuid.UUID   `json:"id"`
	Number         string      `json:"booking_number"`
	Channel        string      `json:"channel"`
	Status         string      `json:"status"`
	CategoryID     uuid.UUID   `json:"category_id"`
	UnitID         uuid.UUID   `json:"unit_id"`
	UnitCode       string      `json:"unit_code"`
	GuestID        uuid.UUID   `json:"guest_id"`
	CheckIn        time.Time   `json:"check_in"`
	CheckOut       time.Time   `json:"check_out"`
	Nights         int         `json:"nights"`
	Adults         int         `json:"adults"`
	Children       int         `json:"children"`
	Price          QuoteView   `json:"price"`
	Overridden     bool        `json:"is_price_overridden"`
	OverrideReason string      `json:"override_reason,omitempty"`
	SourceID       *uuid.UUID  `json:"source_id,omitempty"`
	AgentID        *uuid.UUID  `json:"agent_id,omitempty"`
	CouponID       *uuid.UUID  `json:"coupon_id,omitempty"`
	Commission     int64       `json:"commission"`
	Guests         []GuestView `json:"guests"`
	Notes          string      `json:"notes,omitempty"`
	CancelReason   string      `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	ConfirmedAt    *time.Time  `json:"confirmed_at,omitempty"`
	CheckedInAt    *time.Time  `json:"checked_in_at,omitempty"`
	CheckedOutAt   *time.Time  `json:"checked_out_at,omitempty"`
	CancelledAt    *time.Time  `json:"cancelled_at,omitempty"`
}

// BlockView reports the inclusive day span the block was created with.
type BlockView struct {
	ID        uuid.UUID `json:"id"`
	UnitID    uuid.UUID `json:"unit_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason"`
	Notes     string    `json:"notes,omitempty"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type UserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
