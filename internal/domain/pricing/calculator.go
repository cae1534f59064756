package pricing

import (
	"errors"
	"strings"

	"reservation-engine/internal/domain/category"
	"reservation-engine/internal/domain/coupon"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/money"
)

var (
	ErrInvalidConfig          = errors.New("invalid pricing configuration")
	ErrNoNights               = errors.New("stay must be at least one night")
	ErrInvalidGuestCount      = errors.New("at least one adult is required and counts cannot be negative")
	ErrOverrideReasonRequired = errors.New("price override requires a reason")
	ErrOverrideBelowFloor     = errors.New("override total is below the allowed floor of the calculated price")
)

type Config struct {
	TaxRatePercent     float64
	OverrideFloorRatio float64
}

// Calculator computes itemized stay prices. It holds no state beyond its
// configuration, so equal inputs always yield equal breakdowns.
type Calculator struct {
	taxBps   int64
	floorBps int64
}

func NewCalculator(cfg Config) (*Calculator, error) {
	if cfg.TaxRatePercent < 0 || cfg.TaxRatePercent > 100 {
		return nil, ErrInvalidConfig
	}
	if cfg.OverrideFloorRatio < 0 || cfg.OverrideFloorRatio > 1 {
		return nil, ErrInvalidConfig
	}
	return &Calculator{
		taxBps:   money.PercentToBasisPoints(cfg.TaxRatePercent),
		floorBps: money.RatioToBasisPoints(cfg.OverrideFloorRatio),
	}, nil
}

type Request struct {
	Category *category.Category
	Rules    []Rule
	Stay     daterange.DateRange
	Adults   int
	Children int
	Coupon   *coupon.Coupon
}

func (c *Calculator) Calculate(req Request) (Breakdown, error) {
	nights := req.Stay.Nights()
	if nights < 1 {
		return Breakdown{}, ErrNoNights
	}
	if req.Adults < 1 || req.Children < 0 {
		return Breakdown{}, ErrInvalidGuestCount
	}
	if !req.Category.Fits(req.Adults, req.Children) {
		return Breakdown{}, category.ErrOccupancyExceeded
	}

	rates := req.Category.Rates()
	occupancy := req.Category.Occupancy()
	nightly := ResolveNightlyRate(req.Category, req.Rules, req.Stay.Start())

	extraAdults := max(0, req.Adults-occupancy.IncludedAdults)
	extraChildren := max(0, req.Children-occupancy.IncludedChildren)

	b := Breakdown{
		Nights:           nights,
		NightlyRate:      nightly,
		Base:             nightly.Times(nights),
		ExtraAdults:      extraAdults,
		ExtraAdultAmount: rates.ExtraAdult.Times(extraAdults * nights),
		ExtraChildren:    extraChildren,
		ExtraChildAmount: rates.ExtraChild.Times(extraChildren * nights),
		TaxRatePercent:   float64(c.taxBps) / 100,
	}
	b.Subtotal = b.Base.Add(b.ExtraAdultAmount).Add(b.ExtraChildAmount)

	if req.Coupon != nil {
		b.DiscountAmount = req.Coupon.Discount().AmountFor(b.Subtotal)
		b.CouponCode = req.Coupon.Code().String()
	}

	b.Taxable = b.Subtotal.Sub(b.DiscountAmount)
	b.TaxAmount = b.Taxable.ApplyBasisPoints(c.taxBps)
	b.TotalAmount = b.Taxable.Add(b.TaxAmount)
	return b, nil
}

// ValidateOverride accepts any override at or above the configured fraction of the calculated total.
func (c *Calculator) ValidateOverride(calculated, override money.Money) bool {
	if override.IsNegative() {
		return false
	}
	return override.AtLeastFraction(calculated, c.floorBps)
}

// ApplyOverride replaces the total with a staff-entered amount. The itemized
// components stay as calculated so the invoice still explains the original price.
func (c *Calculator) ApplyOverride(b Breakdown, override money.Money, reason string) (Breakdown, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Breakdown{}, ErrOverrideReasonRequired
	}
	if !c.ValidateOverride(b.TotalAmount, override) {
		return Breakdown{}, ErrOverrideBelowFloor
	}
	b.CalculatedTotal = b.TotalAmount
	b.TotalAmount = override
	b.Overridden = true
	b.OverrideReason = reason
	return b, nil
}

// Commission is the booking-source share of the total.
func Commission(total money.Money, percent float64) money.Money {
	if percent <= 0 {
		return 0
	}
	return total.ApplyBasisPoints(money.PercentToBasisPoints(percent))
}
