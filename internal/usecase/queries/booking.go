package queries

import (
	"context"

	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingQueries interface {
	GetBooking(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error)
}

type bookingQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewBookingQueries(uow shared.UnitOfWork) BookingQueries {
	return &bookingQueriesImpl{uow: uow}
}

// GetBooking is visible to staff and to the guest who owns the booking.
// Other callers get not found so booking ids cannot be probed.
func (q *bookingQueriesImpl) GetBooking(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error) {
	if actor.IsAnonymous() {
		return nil, shared.ErrInsufficientRole
	}

	var view BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			return shared.RepoErr(err, shared.ErrBookingNotFound)
		}
		if !actor.Role.AtLeast(user.RoleStaff) && b.GuestID() != actor.ID {
			return shared.ErrBookingNotFound
		}
		u, err := tx.Units().FindByID(ctx, b.UnitID())
		if err != nil {
			return shared.RepoErr(err, shared.ErrUnitNotFound)
		}
		view = ToBookingView(b, u.Code())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}
