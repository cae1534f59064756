package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const blockColumns = `id, unit_id, start_date, end_date, reason, notes, created_by, created_at`

// BlockRepository stores blocks with an inclusive end_date column; the
// domain works on the equivalent half-open range.
type BlockRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBlockRepository(dbtx db.DBTX, logger *slog.Logger) *BlockRepository {
	return &BlockRepository{db: dbtx, logger: logger}
}

func (r *BlockRepository) Create(ctx context.Context, b *unit.Block) error {
	_, err := r.db.Exec(ctx, `INSERT INTO unit_blocks (`+blockColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID(), b.UnitID(), b.StartDate(), b.EndDate(), b.Reason(), b.Notes(), b.CreatedBy(), b.CreatedAt())
	if err != nil {
		return infra.MapPgError(r.logger, "failed to insert unit block", err)
	}
	return nil
}

func (r *BlockRepository) FindByID(ctx context.Context, id uuid.UUID) (*unit.Block, error) {
	row := r.db.QueryRow(ctx, `SELECT `+blockColumns+` FROM unit_blocks WHERE id = $1`, id)
	b, err := scanBlock(row)
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to find unit block", err)
	}
	return b, nil
}

func (r *BlockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM unit_blocks WHERE id = $1`, id)
	if err != nil {
		return infra.MapPgError(r.logger, "failed to delete unit block", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "unit block not found", nil)
	}
	return nil
}

func (r *BlockRepository) Occupancies(ctx context.Context, unitIDs []uuid.UUID, period daterange.DateRange) ([]availability.Occupancy, error) {
	if len(unitIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+blockColumns+` FROM unit_blocks
		WHERE unit_id = ANY($1) AND start_date < $3 AND $2 <= end_date`,
		unitIDs, period.Start(), period.End())
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to query block occupancies", err)
	}
	blocks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*unit.Block, error) {
		return scanBlock(row)
	})
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to scan block occupancies", err)
	}

	out := make([]availability.Occupancy, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, availability.Occupancy{UnitID: b.UnitID(), Period: b.Period()})
	}
	return out, nil
}

func (r *BlockRepository) CoversDay(ctx context.Context, unitID uuid.UUID, day time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM unit_blocks WHERE unit_id = $1 AND start_date <= $2 AND $2 <= end_date)`,
		unitID, daterange.Day(day)).Scan(&exists)
	if err != nil {
		return false, infra.MapPgError(r.logger, "failed to check unit block", err)
	}
	return exists, nil
}

func (r *BlockRepository) List(ctx context.Context, filter shared.BlockFilter) ([]*unit.Block, error) {
	var (
		conds []string
		args  []any
	)
	if filter.UnitID != nil {
		args = append(args, *filter.UnitID)
		conds = append(conds, fmt.Sprintf("unit_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, daterange.Day(*filter.From))
		conds = append(conds, fmt.Sprintf("end_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, daterange.Day(*filter.To))
		conds = append(conds, fmt.Sprintf("start_date <= $%d", len(args)))
	}

	query := `SELECT ` + blockColumns + ` FROM unit_blocks`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY start_date, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to list unit blocks", err)
	}
	blocks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*unit.Block, error) {
		return scanBlock(row)
	})
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to scan unit blocks", err)
	}
	return blocks, nil
}

func scanBlock(row pgx.Row) (*unit.Block, error) {
	var (
		id, unitID, createdBy uuid.UUID
		start, end, createdAt time.Time
		reason, notes         string
	)
	if err := row.Scan(&id, &unitID, &start, &end, &reason, &notes, &createdBy, &createdAt); err != nil {
		return nil, err
	}
	period, err := daterange.FromInclusive(start, end)
	if err != nil {
		return nil, err
	}
	return unit.ReconstructBlock(id, unitID, period, reason, notes, createdBy, createdAt), nil
}
