package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponNotYetValid = errors.New("coupon is not yet valid")
	ErrCouponExhausted   = errors.New("coupon usage limit reached")
)

type Coupon struct {
	id         uuid.UUID
	code       Code
	discount   Discount
	validFrom  *time.Time
	validTo    *time.Time
	usageLimit *int
	timesUsed  int
}

func NewCoupon(
	id uuid.UUID,
	code string,
	discount Discount,
	validFrom, validTo *time.Time,
	usageLimit *int,
	timesUsed int,
) (*Coupon, error) {
	couponCode, err := NewCouponCode(code)
	if err != nil {
		return nil, err
	}

	return &Coupon{
		id:         id,
		code:       couponCode,
		discount:   discount,
		validFrom:  validFrom,
		validTo:    validTo,
		usageLimit: usageLimit,
		timesUsed:  timesUsed,
	}, nil
}

func (c *Coupon) IsValidAt(t time.Time) bool {
	if c.validFrom != nil && t.Before(*c.validFrom) {
		return false
	}
	if c.validTo != nil && t.After(*c.validTo) {
		return false
	}
	return true
}

func (c *Coupon) IsExhausted() bool {
	return c.usageLimit != nil && c.timesUsed >= *c.usageLimit
}

func (c *Coupon) ValidateUsage(t time.Time) error {
	if !c.IsValidAt(t) {
		if c.validFrom != nil && t.Before(*c.validFrom) {
			return ErrCouponNotYetValid
		}
		return ErrCouponExpired
	}
	if c.IsExhausted() {
		return ErrCouponExhausted
	}
	return nil
}

func (c *Coupon) ID() uuid.UUID         { return c.id }
func (c *Coupon) Code() Code            { return c.code }
func (c *Coupon) Discount() Discount    { return c.discount }
func (c *Coupon) ValidFrom() *time.Time { return c.validFrom }
func (c *Coupon) ValidTo() *time.Time   { return c.validTo }
func (c *Coupon) UsageLimit() *int      { return c.usageLimit }
func (c *Coupon) TimesUsed() int        { return c.timesUsed }
