package queries

import (
	"context"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidParty = errs.Mark(errs.New("at least one adult is required and counts cannot be negative"), errs.ErrValidation)

type AvailabilityQueries interface {
	Check(ctx context.Context, categoryID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityView, error)
	Search(ctx context.Context, checkIn, checkOut time.Time, adults, children int) ([]CategoryAvailabilityView, error)
}

type availabilityQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewAvailabilityQueries(uow shared.UnitOfWork) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow}
}

func (q *availabilityQueriesImpl) Check(ctx context.Context, categoryID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityView, error) {
	stay, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return nil, shared.Classify(err)
	}

	var view *AvailabilityView
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		cat, err := tx.Categories().FindByID(ctx, categoryID)
		if err != nil {
			return shared.RepoErr(err, shared.ErrCategoryNotFound)
		}
		units, err := availability.NewChecker(shared.AvailabilitySource(tx)).ListAvailableUnits(ctx, categoryID, stay)
		if err != nil {
			return shared.RepoErr(err, shared.ErrCategoryNotFound)
		}
		view = &AvailabilityView{
			Category:       toCategoryView(cat),
			CheckIn:        stay.Start(),
			CheckOut:       stay.End(),
			Nights:         stay.Nights(),
			Available:      len(units) > 0,
			AvailableCount: len(units),
			Units:          toUnitViews(units),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *availabilityQueriesImpl) Search(ctx context.Context, checkIn, checkOut time.Time, adults, children int) ([]CategoryAvailabilityView, error) {
	stay, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return nil, shared.Classify(err)
	}
	if adults < 1 || children < 0 {
		return nil, ErrInvalidParty
	}

	var views []CategoryAvailabilityView
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := availability.NewChecker(shared.AvailabilitySource(tx)).SearchCategories(ctx, stay, adults, children)
		if err != nil {
			return shared.RepoErr(err, nil)
		}
		views = make([]CategoryAvailabilityView, 0, len(found))
		for _, f := range found {
			views = append(views, CategoryAvailabilityView{
				Category:       toCategoryView(f.Category),
				AvailableCount: f.AvailableCount,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
