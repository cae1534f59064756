package repository

import (
	"context"
	"log/slog"
	"time"

	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"
)

type BookingNumberRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingNumberRepository(dbtx db.DBTX, logger *slog.Logger) *BookingNumberRepository {
	return &BookingNumberRepository{db: dbtx, logger: logger}
}

// Next bumps the counter row of day. The upsert holds the row lock until
// commit, so two transactions never see the same sequence.
func (r *BookingNumberRepository) Next(ctx context.Context, day time.Time) (int, error) {
	var seq int
	err := r.db.QueryRow(ctx, `INSERT INTO booking_number_counters (day, last_seq) VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET last_seq = booking_number_counters.last_seq + 1
		RETURNING last_seq`, daterange.Day(day)).Scan(&seq)
	if err != nil {
		return 0, infra.MapPgError(r.logger, "failed to allocate booking number", err)
	}
	return seq, nil
}
