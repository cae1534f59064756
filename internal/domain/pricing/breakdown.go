package pricing

import "reservation-engine/internal/domain/money"

// Breakdown is the itemized invoice for a stay. Without an override
// TotalAmount == Base + ExtraAdultAmount + ExtraChildAmount + TaxAmount - DiscountAmount.
type Breakdown struct {
	Nights           int
	NightlyRate      money.Money
	Base             money.Money
	ExtraAdults      int
	ExtraAdultAmount money.Money
	ExtraChildren    int
	ExtraChildAmount money.Money
	Subtotal         money.Money
	CouponCode       string
	DiscountAmount   money.Money
	Taxable          money.Money
	TaxRatePercent   float64
	TaxAmount        money.Money
	TotalAmount      money.Money

	Overridden      bool
	OverrideReason  string
	CalculatedTotal money.Money
}

func (b Breakdown) ComponentTotal() money.Money {
	return b.Base.Add(b.ExtraAdultAmount).Add(b.ExtraChildAmount).Add(b.TaxAmount).Sub(b.DiscountAmount)
}
