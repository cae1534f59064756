package repository

import (
	"context"
	"log/slog"

	"reservation-engine/internal/domain/category"
	"reservation-engine/internal/domain/money"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const categoryColumns = `id, name, nightly_cents, extra_adult_cents, extra_child_cents,
	included_adults, included_children, max_adults, max_children`

type CategoryRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCategoryRepository(dbtx db.DBTX, logger *slog.Logger) *CategoryRepository {
	return &CategoryRepository{db: dbtx, logger: logger}
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	row := r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to find category", err)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to list categories", err)
	}
	defer rows.Close()

	var out []*category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, infra.MapPgError(r.logger, "failed to scan category", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.MapPgError(r.logger, "failed to iterate categories", err)
	}
	return out, nil
}

func scanCategory(row pgx.Row) (*category.Category, error) {
	var (
		id                              uuid.UUID
		name                            string
		nightly, extraAdult, extraChild int64
		inclAdults, inclChildren        int
		maxAdults, maxChildren          int
	)
	if err := row.Scan(&id, &name, &nightly, &extraAdult, &extraChild,
		&inclAdults, &inclChildren, &maxAdults, &maxChildren); err != nil {
		return nil, err
	}
	return category.NewCategory(id, name,
		category.Rates{
			Nightly:    money.Money(nightly),
			ExtraAdult: money.Money(extraAdult),
			ExtraChild: money.Money(extraChild),
		},
		category.Occupancy{
			IncludedAdults:   inclAdults,
			IncludedChildren: inclChildren,
			MaxAdults:        maxAdults,
			MaxChildren:      maxChildren,
		},
	)
}
