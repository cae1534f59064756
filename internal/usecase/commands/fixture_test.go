//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/domain/category"
	"reservation-engine/internal/domain/coupon"
	"reservation-engine/internal/domain/money"
	"reservation-engine/internal/domain/pricing"
	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/infra/memory"
	sharedmock "reservation-engine/internal/mock/shared"
	"reservation-engine/internal/pkg/clock"
	"reservation-engine/internal/usecase/commands"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixtureNow = time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memory.Store
	clock    *clock.MockClock
	audit    *sharedmock.MockAuditSink
	ledger   *sharedmock.MockLedger
	bookings commands.BookingCommands
	blocks   commands.UnitBlockCommands
	category *category.Category
	units    []*unit.Unit
	staff    shared.Actor
	manager  shared.Actor
}

func newFixture(t *testing.T, unitCount int) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		store:   memory.NewStore(logger),
		clock:   clock.NewMockClock(fixtureNow),
		audit:   sharedmock.NewMockAuditSink(ctrl),
		ledger:  sharedmock.NewMockLedger(ctrl),
		staff:   shared.Actor{ID: uuid.New(), Role: user.RoleStaff},
		manager: shared.Actor{ID: uuid.New(), Role: user.RoleManager},
	}

	cat, err := category.NewCategory(uuid.New(), "Standard Double",
		category.Rates{Nightly: 100000, ExtraAdult: 20000, ExtraChild: 10000},
		category.Occupancy{IncludedAdults: 2, IncludedChildren: 1, MaxAdults: 3, MaxChildren: 2},
	)
	require.NoError(t, err)
	f.category = cat
	f.store.AddCategory(cat)

	for i := 0; i < unitCount; i++ {
		u, err := unit.NewUnit(uuid.New(), cat.ID(), "10"+string(rune('1'+i)), 1, true, unit.StatusAvailable)
		require.NoError(t, err)
		f.units = append(f.units, u)
		f.store.AddUnit(u)
	}

	calc, err := pricing.NewCalculator(pricing.Config{TaxRatePercent: 10, OverrideFloorRatio: 0.5})
	require.NoError(t, err)
	settings := commands.Settings{MaxCreateAttempts: 3, Location: time.UTC}

	f.bookings = commands.NewBookingCommands(
		memory.NewUnitOfWork(f.store),
		shared.NewQuoter(calc),
		unit.FirstCandidate{},
		f.audit,
		f.ledger,
		f.clock,
		settings,
		logger,
	)
	f.blocks = commands.NewUnitBlockCommands(memory.NewUnitOfWork(f.store), f.audit, f.clock, settings, logger)
	return f
}

func (f *fixture) allowAudit() {
	f.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (f *fixture) allowLedger() {
	f.ledger.EXPECT().RecordIncome(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (f *fixture) addCoupon(t *testing.T, code string, amountOff money.Money, limit int) {
	t.Helper()
	d, err := coupon.NewFixedDiscount(amountOff)
	require.NoError(t, err)
	c, err := coupon.NewCoupon(uuid.New(), code, d, nil, nil, &limit, 0)
	require.NoError(t, err)
	f.store.AddCoupon(c)
}

func (f *fixture) unitStatus(t *testing.T, id uuid.UUID) unit.Status {
	t.Helper()
	var status unit.Status
	err := memory.NewUnitOfWork(f.store).WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Units().FindByID(ctx, id)
		if err != nil {
			return err
		}
		status = u.Status()
		return nil
	})
	require.NoError(t, err)
	return status
}

func (f *fixture) storedBooking(t *testing.T, id uuid.UUID) *booking.Booking {
	t.Helper()
	for _, b := range f.store.Bookings() {
		if b.ID() == id {
			return b
		}
	}
	t.Fatalf("booking %s not stored", id)
	return nil
}

func (f *fixture) onlineInput(checkIn, checkOut string) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		CategoryID: f.category.ID(),
		CheckIn:    date(checkIn),
		CheckOut:   date(checkOut),
		Adults:     2,
		Guest:      commands.GuestInput{Name: "Mina Park", Email: "mina@example.com", Phone: "+82 10 5555 0101"},
	}
}

func date(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}
