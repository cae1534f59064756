package repository

import (
	"context"
	"log/slog"

	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"

	"github.com/google/uuid"
)

type BookingSourceRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingSourceRepository(dbtx db.DBTX, logger *slog.Logger) *BookingSourceRepository {
	return &BookingSourceRepository{db: dbtx, logger: logger}
}

func (r *BookingSourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Source, error) {
	var src booking.Source
	err := r.db.QueryRow(ctx, `SELECT id, name, commission_percent FROM booking_sources WHERE id = $1`, id).
		Scan(&src.ID, &src.Name, &src.CommissionPercent)
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to find booking source", err)
	}
	return &src, nil
}
