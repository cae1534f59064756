package collaborator

import (
	"context"
	"log/slog"

	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"
	"reservation-engine/internal/usecase/shared"
)

type PostgresLedger struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewPostgresLedger(dbtx db.DBTX, logger *slog.Logger) *PostgresLedger {
	return &PostgresLedger{db: dbtx, logger: logger}
}

func (l *PostgresLedger) RecordIncome(ctx context.Context, e shared.IncomeEntry) error {
	_, err := l.db.Exec(ctx, `INSERT INTO income_entries
			(booking_id, booking_number, amount_cents, category, description, at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.BookingID, e.BookingNumber, e.Amount.Cents(), e.Category, e.Description, e.At)
	if err != nil {
		return infra.MapPgError(l.logger, "failed to insert income entry", err)
	}
	return nil
}

type LogLedger struct {
	logger *slog.Logger
}

func NewLogLedger(logger *slog.Logger) *LogLedger {
	return &LogLedger{logger: logger}
}

func (l *LogLedger) RecordIncome(ctx context.Context, e shared.IncomeEntry) error {
	l.logger.InfoContext(ctx, "income recorded",
		"booking_id", e.BookingID.String(),
		"booking_number", e.BookingNumber,
		"amount", e.Amount.String(),
		"category", e.Category,
		"description", e.Description,
		"at", e.At)
	return nil
}
