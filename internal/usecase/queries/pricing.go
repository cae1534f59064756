package queries

import (
	"context"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/pkg/clock"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type QuoteInput struct {
	CategoryID uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Adults     int
	Children   int
	CouponCode string
}

type PricingQueries interface {
	Quote(ctx context.Context, in QuoteInput) (*QuoteView, error)
}

type pricingQueriesImpl struct {
	uow    shared.UnitOfWork
	quoter *shared.Quoter
	clock  clock.Clock
}

func NewPricingQueries(uow shared.UnitOfWork, quoter *shared.Quoter, clk clock.Clock) PricingQueries {
	return &pricingQueriesImpl{uow: uow, quoter: quoter, clock: clk}
}

// Quote prices a stay the way a booking would be priced right now. It does
// not reserve anything; AvailableCount only informs the caller.
func (q *pricingQueriesImpl) Quote(ctx context.Context, in QuoteInput) (*QuoteView, error) {
	stay, err := daterange.New(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, shared.Classify(err)
	}
	if in.Adults < 1 || in.Children < 0 {
		return nil, ErrInvalidParty
	}

	var view QuoteView
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		cat, err := tx.Categories().FindByID(ctx, in.CategoryID)
		if err != nil {
			return shared.RepoErr(err, shared.ErrCategoryNotFound)
		}
		breakdown, _, err := q.quoter.Quote(ctx, tx, shared.QuoteRequest{
			Category:   cat,
			Stay:       stay,
			Adults:     in.Adults,
			Children:   in.Children,
			CouponCode: in.CouponCode,
		}, q.clock.Now())
		if err != nil {
			return err
		}
		count, err := availability.NewChecker(shared.AvailabilitySource(tx)).AvailableUnitCount(ctx, cat.ID(), stay)
		if err != nil {
			return shared.RepoErr(err, nil)
		}
		view = toQuoteView(cat.ID(), breakdown)
		view.AvailableCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}
