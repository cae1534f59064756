package repository

import (
	"context"
	"log/slog"
	"time"

	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/money"
	"reservation-engine/internal/domain/pricing"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PricingRuleRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewPricingRuleRepository(dbtx db.DBTX, logger *slog.Logger) *PricingRuleRepository {
	return &PricingRuleRepository{db: dbtx, logger: logger}
}

func (r *PricingRuleRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]pricing.Rule, error) {
	rows, err := r.db.Query(ctx, `SELECT id, category_id, start_date, end_date, nightly_cents, priority
		FROM pricing_rules WHERE category_id = $1 ORDER BY priority DESC, start_date DESC`, categoryID)
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to list pricing rules", err)
	}
	rules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (pricing.Rule, error) {
		var (
			rule       pricing.Rule
			start, end time.Time
			nightly    int64
		)
		if err := row.Scan(&rule.ID, &rule.CategoryID, &start, &end, &nightly, &rule.Priority); err != nil {
			return pricing.Rule{}, err
		}
		period, err := daterange.New(start, end)
		if err != nil {
			return pricing.Rule{}, err
		}
		rule.Period = period
		rule.NightlyRate = money.Money(nightly)
		return rule, nil
	})
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to scan pricing rules", err)
	}
	return rules, nil
}
