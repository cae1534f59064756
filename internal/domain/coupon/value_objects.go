package coupon

import (
	"errors"
	"regexp"
	"strings"

	"reservation-engine/internal/domain/money"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrAmbiguousDiscount      = errors.New("discount must be either a fixed amount or a percentage")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCouponCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type Discount struct {
	amountOff  *money.Money
	percentOff *float64
}

func NewFixedDiscount(amountOff money.Money) (Discount, error) {
	if amountOff.IsNegative() {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{amountOff: &amountOff}, nil
}

func NewPercentageDiscount(percentOff float64) (Discount, error) {
	if percentOff < 0 || percentOff > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	return Discount{percentOff: &percentOff}, nil
}

func NewDiscount(amountOff *money.Money, percentOff *float64) (Discount, error) {
	if (amountOff == nil) == (percentOff == nil) {
		return Discount{}, ErrAmbiguousDiscount
	}
	if amountOff != nil {
		return NewFixedDiscount(*amountOff)
	}
	return NewPercentageDiscount(*percentOff)
}

func (d Discount) IsPercentage() bool { return d.percentOff != nil }
func (d Discount) IsFixed() bool      { return d.amountOff != nil }

func (d Discount) AmountOff() money.Money {
	if d.amountOff != nil {
		return *d.amountOff
	}
	return 0
}

func (d Discount) PercentOff() float64 {
	if d.percentOff != nil {
		return *d.percentOff
	}
	return 0
}

// AmountFor returns the discount for the given subtotal, never more than the subtotal.
func (d Discount) AmountFor(subtotal money.Money) money.Money {
	if subtotal <= 0 {
		return 0
	}
	var amount money.Money
	if d.IsPercentage() {
		amount = subtotal.ApplyBasisPoints(money.PercentToBasisPoints(d.PercentOff()))
	} else {
		amount = d.AmountOff()
	}
	return money.Min(amount, subtotal)
}
