package repository

import (
	"context"
	"log/slog"

	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const unitColumns = `id, category_id, code, floor, enabled, status`

type UnitRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewUnitRepository(dbtx db.DBTX, logger *slog.Logger) *UnitRepository {
	return &UnitRepository{db: dbtx, logger: logger}
}

func (r *UnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*unit.Unit, error) {
	row := r.db.QueryRow(ctx, `SELECT `+unitColumns+` FROM units WHERE id = $1`, id)
	u, err := scanUnit(row)
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to find unit", err)
	}
	return u, nil
}

// LockByID takes a row lock that serializes every booking and block
// decision on the unit until the transaction ends.
func (r *UnitRepository) LockByID(ctx context.Context, id uuid.UUID) (*unit.Unit, error) {
	row := r.db.QueryRow(ctx, `SELECT `+unitColumns+` FROM units WHERE id = $1 FOR UPDATE`, id)
	u, err := scanUnit(row)
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to lock unit", err)
	}
	return u, nil
}

func (r *UnitRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*unit.Unit, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+unitColumns+` FROM units WHERE category_id = $1 ORDER BY code COLLATE "C", id`, categoryID)
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to list units", err)
	}
	defer rows.Close()

	var out []*unit.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, infra.MapPgError(r.logger, "failed to scan unit", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.MapPgError(r.logger, "failed to iterate units", err)
	}
	return out, nil
}

func (r *UnitRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status unit.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE units SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return infra.MapPgError(r.logger, "failed to update unit status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "unit not found", nil)
	}
	return nil
}

func scanUnit(row pgx.Row) (*unit.Unit, error) {
	var (
		id, categoryID uuid.UUID
		code, status   string
		floor          int
		enabled        bool
	)
	if err := row.Scan(&id, &categoryID, &code, &floor, &enabled, &status); err != nil {
		return nil, err
	}
	return unit.NewUnit(id, categoryID, code, floor, enabled, unit.Status(status))
}
