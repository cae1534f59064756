package shared

import (
	"context"
	"strings"
	"time"

	"reservation-engine/internal/domain/category"
	"reservation-engine/internal/domain/coupon"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/pricing"
	"reservation-engine/internal/pkg/errs"
)

type QuoteRequest struct {
	Category   *category.Category
	Stay       daterange.DateRange
	Adults     int
	Children   int
	CouponCode string
}

// Quoter prices a stay against the rules and coupons visible in a transaction.
type Quoter struct {
	calc *pricing.Calculator
}

func NewQuoter(calc *pricing.Calculator) *Quoter {
	return &Quoter{calc: calc}
}

func (q *Quoter) Calculator() *pricing.Calculator {
	return q.calc
}

// Quote returns the breakdown and the coupon it used, if any.
func (q *Quoter) Quote(ctx context.Context, tx Tx, req QuoteRequest, now time.Time) (pricing.Breakdown, *coupon.Coupon, error) {
	cpn, err := q.resolveCoupon(ctx, tx, req.CouponCode, now)
	if err != nil {
		return pricing.Breakdown{}, nil, err
	}

	rules, err := tx.PricingRules().ListByCategory(ctx, req.Category.ID())
	if err != nil {
		return pricing.Breakdown{}, nil, RepoErr(err, nil)
	}

	breakdown, err := q.calc.Calculate(pricing.Request{
		Category: req.Category,
		Rules:    rules,
		Stay:     req.Stay,
		Adults:   req.Adults,
		Children: req.Children,
		Coupon:   cpn,
	})
	if err != nil {
		return pricing.Breakdown{}, nil, Classify(err)
	}
	return breakdown, cpn, nil
}

func (q *Quoter) resolveCoupon(ctx context.Context, tx Tx, raw string, now time.Time) (*coupon.Coupon, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	code, err := coupon.NewCouponCode(raw)
	if err != nil {
		return nil, errs.Wrap(ErrInvalidCoupon, err.Error())
	}
	cpn, err := tx.Coupons().FindByCode(ctx, code)
	if err != nil {
		return nil, RepoErr(err, ErrInvalidCoupon)
	}
	if err := cpn.ValidateUsage(now); err != nil {
		return nil, errs.Wrap(ErrInvalidCoupon, err.Error())
	}
	return cpn, nil
}
