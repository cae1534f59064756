package shared

import (
	"context"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/category"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/unit"

	"github.com/google/uuid"
)

// AvailabilitySource feeds the availability checker from one transaction,
// merging active bookings and blocks into a single occupancy list.
func AvailabilitySource(tx Tx) availability.Source {
	return txSource{tx: tx}
}

type txSource struct {
	tx Tx
}

func (s txSource) CategoryByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return s.tx.Categories().FindByID(ctx, id)
}

func (s txSource) Categories(ctx context.Context) ([]*category.Category, error) {
	return s.tx.Categories().List(ctx)
}

func (s txSource) UnitsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*unit.Unit, error) {
	return s.tx.Units().ListByCategory(ctx, categoryID)
}

func (s txSource) Occupancies(ctx context.Context, unitIDs []uuid.UUID, stay daterange.DateRange) ([]availability.Occupancy, error) {
	booked, err := s.tx.Bookings().Occupancies(ctx, unitIDs, stay)
	if err != nil {
		return nil, err
	}
	blocked, err := s.tx.Blocks().Occupancies(ctx, unitIDs, stay)
	if err != nil {
		return nil, err
	}
	return append(booked, blocked...), nil
}
