package money

import (
	"errors"
	"fmt"
	"math"
)

var ErrNegativeAmount = errors.New("amount cannot be negative")

// Money is an amount in minor currency units.
type Money int64

const basisPoints = 10000

func New(cents int64) (Money, error) {
	if cents < 0 {
		return 0, ErrNegativeAmount
	}
	return Money(cents), nil
}

func (m Money) Cents() int64 { return int64(m) }

func (m Money) Add(other Money) Money { return m + other }

func (m Money) Sub(other Money) Money { return m - other }

func (m Money) Times(n int) Money { return m * Money(n) }

func (m Money) IsNegative() bool { return m < 0 }

// Min returns the smaller of the two amounts.
func Min(a, b Money) Money {
	if a < b {
		return a
	}
	return b
}

// ApplyBasisPoints returns m * bps / 10000 rounded half away from zero.
func (m Money) ApplyBasisPoints(bps int64) Money {
	product := int64(m) * bps
	if product >= 0 {
		return Money((product + basisPoints/2) / basisPoints)
	}
	return Money((product - basisPoints/2) / basisPoints)
}

// AtLeastFraction reports whether m >= ref * bps / 10000 without rounding.
func (m Money) AtLeastFraction(ref Money, bps int64) bool {
	return int64(m)*basisPoints >= int64(ref)*bps
}

// PercentToBasisPoints converts 12.5 into 1250.
func PercentToBasisPoints(percent float64) int64 {
	return int64(math.Round(percent * 100))
}

// RatioToBasisPoints converts 0.8 into 8000.
func RatioToBasisPoints(ratio float64) int64 {
	return int64(math.Round(ratio * basisPoints))
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
