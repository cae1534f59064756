package shared

import (
	"context"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/domain/category"
	"reservation-engine/internal/domain/coupon"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/pricing"
	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/domain/user"

	"github.com/google/uuid"
)

//go:generate mockgen -source=uow.go -destination=../../mock/shared/uow_mock.go -package=sharedmock

type UnitOfWork interface {
	// Within: Serializable write transaction, retried on serialization failure
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Consistent snapshot for multi-table reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to one transaction.
type Tx interface {
	Categories() CategoryRepository
	Units() UnitRepository
	Bookings() BookingRepository
	Blocks() BlockRepository
	Coupons() CouponRepository
	Users() UserRepository
	PricingRules() PricingRuleRepository
	BookingNumbers() BookingNumberRepository
	BookingSources() BookingSourceRepository
}

type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
	List(ctx context.Context) ([]*category.Category, error)
}

type UnitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*unit.Unit, error)
	// LockByID reads the unit and holds a row lock until the transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*unit.Unit, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*unit.Unit, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status unit.Status) error
}

type BookingRepository interface {
	// Create persists the booking and its guests. An overlapping active booking
	// on the same unit fails with a CONFLICT repository error.
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// UpdateStatus writes status, transition timestamps and cancel reason.
	UpdateStatus(ctx context.Context, b *booking.Booking) error
	// Occupancies returns active bookings of the units overlapping period.
	Occupancies(ctx context.Context, unitIDs []uuid.UUID, period daterange.DateRange) ([]availability.Occupancy, error)
	HasCheckedIn(ctx context.Context, unitID uuid.UUID) (bool, error)
}

type BlockFilter struct {
	UnitID *uuid.UUID
	From   *time.Time
	To     *time.Time
}

type BlockRepository interface {
	// Create fails with a CONFLICT repository error when another block of the unit overlaps.
	Create(ctx context.Context, b *unit.Block) error
	FindByID(ctx context.Context, id uuid.UUID) (*unit.Block, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Occupancies(ctx context.Context, unitIDs []uuid.UUID, period daterange.DateRange) ([]availability.Occupancy, error)
	CoversDay(ctx context.Context, unitID uuid.UUID, day time.Time) (bool, error)
	List(ctx context.Context, filter BlockFilter) ([]*unit.Block, error)
}

type CouponRepository interface {
	FindByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
}

type PricingRuleRepository interface {
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]pricing.Rule, error)
}

type BookingNumberRepository interface {
	// Next atomically increments and returns the sequence of day.
	Next(ctx context.Context, day time.Time) (int, error)
}

type BookingSourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Source, error)
}
