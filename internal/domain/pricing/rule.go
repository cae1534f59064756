package pricing

import (
	"time"

	"reservation-engine/internal/domain/category"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/money"

	"github.com/google/uuid"
)

// Rule overrides a category's nightly rate for a season.
type Rule struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Period      daterange.DateRange
	NightlyRate money.Money
	Priority    int
}

// ResolveNightlyRate picks the rule covering checkIn with the highest priority,
// ties going to the most recently started season. Without a match the
// category base rate applies.
func ResolveNightlyRate(cat *category.Category, rules []Rule, checkIn time.Time) money.Money {
	var best *Rule
	for i := range rules {
		r := &rules[i]
		if r.CategoryID != cat.ID() || !r.Period.Contains(checkIn) {
			continue
		}
		if best == nil ||
			r.Priority > best.Priority ||
			(r.Priority == best.Priority && r.Period.Start().After(best.Period.Start())) {
			best = r
		}
	}
	if best == nil {
		return cat.Rates().Nightly
	}
	return best.NightlyRate
}
