//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"reservation-engine/internal/domain/coupon"
	"reservation-engine/internal/domain/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDiscount_AmountFor(t *testing.T) {
	testCases := []struct {
		name       string
		amountOff  *money.Money
		percentOff *float64
		subtotal   money.Money
		expect     money.Money
	}{
		{name: "fixed below subtotal", amountOff: ptr(money.Money(5000)), subtotal: 20000, expect: 5000},
		{name: "fixed capped at subtotal", amountOff: ptr(money.Money(50000)), subtotal: 20000, expect: 20000},
		{name: "percentage", percentOff: ptr(15.0), subtotal: 20000, expect: 3000},
		{name: "full percentage equals subtotal", percentOff: ptr(100.0), subtotal: 20000, expect: 20000},
		{name: "zero subtotal", amountOff: ptr(money.Money(100)), subtotal: 0, expect: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := coupon.NewDiscount(tc.amountOff, tc.percentOff)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, d.AmountFor(tc.subtotal))
		})
	}

	t.Run("both kinds rejected", func(t *testing.T) {
		_, err := coupon.NewDiscount(ptr(money.Money(1)), ptr(1.0))
		require.ErrorIs(t, err, coupon.ErrAmbiguousDiscount)
	})

	t.Run("percentage out of range rejected", func(t *testing.T) {
		_, err := coupon.NewPercentageDiscount(120)
		require.ErrorIs(t, err, coupon.ErrInvalidDiscountPercent)
	})
}

func TestCoupon_ValidateUsage(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	discount, err := coupon.NewPercentageDiscount(10)
	require.NoError(t, err)

	testCases := []struct {
		name      string
		validFrom *time.Time
		validTo   *time.Time
		limit     *int
		used      int
		errIs     error
	}{
		{name: "open-ended coupon", errIs: nil},
		{name: "inside validity window", validFrom: ptr(now.AddDate(0, 0, -1)), validTo: ptr(now.AddDate(0, 0, 1))},
		{name: "expired", validTo: ptr(now.AddDate(0, 0, -1)), errIs: coupon.ErrCouponExpired},
		{name: "not yet valid", validFrom: ptr(now.AddDate(0, 0, 1)), errIs: coupon.ErrCouponNotYetValid},
		{name: "usage remaining", limit: ptr(3), used: 2},
		{name: "usage exhausted", limit: ptr(3), used: 3, errIs: coupon.ErrCouponExhausted},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := coupon.NewCoupon(uuid.New(), "spring25", discount, tc.validFrom, tc.validTo, tc.limit, tc.used)
			require.NoError(t, err)
			assert.Equal(t, coupon.Code("SPRING25"), c.Code())

			err = c.ValidateUsage(now)
			if tc.errIs == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.errIs)
			}
		})
	}

	t.Run("invalid code", func(t *testing.T) {
		_, err := coupon.NewCoupon(uuid.New(), "x!", discount, nil, nil, nil, 0)
		require.ErrorIs(t, err, coupon.ErrInvalidCouponCode)
	})
}
