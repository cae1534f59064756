//go:build unit

package money_test

import (
	"testing"

	"reservation-engine/internal/domain/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyBasisPoints(t *testing.T) {
	testCases := []struct {
		name   string
		amount money.Money
		bps    int64
		expect money.Money
	}{
		{name: "zero rate", amount: 200000, bps: 0, expect: 0},
		{name: "ten percent", amount: 200000, bps: 1000, expect: 20000},
		{name: "rounds half up", amount: 5, bps: 1000, expect: 1},
		{name: "rounds down below half", amount: 4, bps: 1000, expect: 0},
		{name: "fractional percent", amount: 10000, bps: 1250, expect: 1250},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.amount.ApplyBasisPoints(tc.bps))
		})
	}
}

func TestAtLeastFraction(t *testing.T) {
	floor := money.RatioToBasisPoints(0.8)
	assert.True(t, money.Money(8000).AtLeastFraction(10000, floor))
	assert.True(t, money.Money(9000).AtLeastFraction(10000, floor))
	assert.False(t, money.Money(7999).AtLeastFraction(10000, floor))
}

func TestNew(t *testing.T) {
	m, err := money.New(1999)
	require.NoError(t, err)
	assert.Equal(t, "19.99", m.String())

	_, err = money.New(-1)
	require.ErrorIs(t, err, money.ErrNegativeAmount)
}
