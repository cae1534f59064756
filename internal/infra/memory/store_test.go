//go:build unit

package memory_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/domain/category"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/pricing"
	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/memory"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storeNow = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

type storeFixture struct {
	store *memory.Store
	uow   shared.UnitOfWork
	unit  *unit.Unit
}

func newStoreFixture(t *testing.T) storeFixture {
	t.Helper()
	store := memory.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))

	cat, err := category.NewCategory(uuid.New(), "Twin",
		category.Rates{Nightly: 80000},
		category.Occupancy{IncludedAdults: 2, MaxAdults: 2},
	)
	require.NoError(t, err)
	store.AddCategory(cat)

	u, err := unit.NewUnit(uuid.New(), cat.ID(), "201", 2, true, unit.StatusAvailable)
	require.NoError(t, err)
	store.AddUnit(u)

	return storeFixture{store: store, uow: memory.NewUnitOfWork(store), unit: u}
}

func (f storeFixture) newBooking(t *testing.T, number, checkIn, checkOut string) *booking.Booking {
	t.Helper()
	stay, err := daterange.Parse(checkIn, checkOut)
	require.NoError(t, err)
	b, _, err := booking.New(booking.NewParams{
		Number:     number,
		Channel:    booking.ChannelOnline,
		CategoryID: f.unit.CategoryID(),
		UnitID:     f.unit.ID(),
		GuestID:    uuid.New(),
		Stay:       stay,
		Adults:     1,
		Price:      pricing.Breakdown{Nights: stay.Nights(), TotalAmount: 80000},
	}, storeNow)
	require.NoError(t, err)
	return b
}

func (f storeFixture) create(b *booking.Booking) error {
	return f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, b)
	})
}

func TestStore_WithinRollsBackOnError(t *testing.T) {
	f := newStoreFixture(t)
	boom := errors.New("boom")

	err := f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().Create(ctx, f.newBooking(t, "BK-20250201-0001", "2025-02-10", "2025-02-12")); err != nil {
			return err
		}
		if err := tx.Units().UpdateStatus(ctx, f.unit.ID(), unit.StatusMaintenance); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Empty(t, f.store.Bookings())
	err = f.uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Units().FindByID(ctx, f.unit.ID())
		require.NoError(t, err)
		assert.Equal(t, unit.StatusAvailable, u.Status())
		return nil
	})
	require.NoError(t, err)
}

func TestStore_BookingOverlap(t *testing.T) {
	type testCase struct {
		name     string
		number   string
		checkIn  string
		checkOut string
		kind     infra.RepositoryErrorKind
	}

	runCases := func(t *testing.T, cases []testCase) {
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newStoreFixture(t)
				require.NoError(t, f.create(f.newBooking(t, "BK-20250201-0001", "2025-02-10", "2025-02-12")))

				err := f.create(f.newBooking(t, tc.number, tc.checkIn, tc.checkOut))
				if tc.kind == "" {
					require.NoError(t, err)
					return
				}
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.kind), "got %v", err)
			})
		}
	}

	runCases(t, []testCase{
		{name: "same stay", number: "BK-20250201-0002", checkIn: "2025-02-10", checkOut: "2025-02-12", kind: infra.KindConflict},
		{name: "partial overlap", number: "BK-20250201-0002", checkIn: "2025-02-11", checkOut: "2025-02-14", kind: infra.KindConflict},
		{name: "arrives on check-out day", number: "BK-20250201-0002", checkIn: "2025-02-12", checkOut: "2025-02-13"},
		{name: "leaves on check-in day", number: "BK-20250201-0002", checkIn: "2025-02-08", checkOut: "2025-02-10"},
		{name: "duplicate number", number: "BK-20250201-0001", checkIn: "2025-03-01", checkOut: "2025-03-02", kind: infra.KindDuplicateKey},
	})
}

func TestStore_CancelledBookingFreesUnit(t *testing.T) {
	f := newStoreFixture(t)
	first := f.newBooking(t, "BK-20250201-0001", "2025-02-10", "2025-02-12")
	require.NoError(t, f.create(first))

	_, err := first.Apply(booking.EventCancel, storeNow, "changed plans")
	require.NoError(t, err)
	err = f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().UpdateStatus(ctx, first)
	})
	require.NoError(t, err)

	require.NoError(t, f.create(f.newBooking(t, "BK-20250201-0002", "2025-02-10", "2025-02-12")))

	err = f.uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		stay, _ := daterange.Parse("2025-02-01", "2025-03-01")
		occ, err := tx.Bookings().Occupancies(ctx, []uuid.UUID{f.unit.ID()}, stay)
		require.NoError(t, err)
		assert.Len(t, occ, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_ReadOnlyRejectsWrites(t *testing.T) {
	f := newStoreFixture(t)
	err := f.uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, f.newBooking(t, "BK-20250201-0001", "2025-02-10", "2025-02-12"))
	})
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	assert.Empty(t, f.store.Bookings())
}

func TestStore_BookingNumbersPerDay(t *testing.T) {
	f := newStoreFixture(t)
	day := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	var got []int
	for _, d := range []time.Time{day, day, day.AddDate(0, 0, 1), day} {
		err := f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			seq, err := tx.BookingNumbers().Next(ctx, d)
			got = append(got, seq)
			return err
		})
		require.NoError(t, err)
	}
	assert.Equal(t, []int{1, 2, 1, 3}, got)

	// A rolled-back allocation is not consumed.
	_ = f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, _ = tx.BookingNumbers().Next(ctx, day)
		return errors.New("abort")
	})
	err := f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		seq, err := tx.BookingNumbers().Next(ctx, day)
		assert.Equal(t, 4, seq)
		return err
	})
	require.NoError(t, err)
}

func TestStore_Blocks(t *testing.T) {
	f := newStoreFixture(t)
	staff := uuid.New()
	ctx := context.Background()

	first, err := unit.NewBlock(f.unit.ID(), date("2025-02-10"), date("2025-02-12"), "painting", "", staff, storeNow)
	require.NoError(t, err)
	overlapping, err := unit.NewBlock(f.unit.ID(), date("2025-02-12"), date("2025-02-14"), "repairs", "", staff, storeNow)
	require.NoError(t, err)
	after, err := unit.NewBlock(f.unit.ID(), date("2025-02-13"), date("2025-02-14"), "repairs", "", staff, storeNow)
	require.NoError(t, err)

	require.NoError(t, f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Blocks().Create(ctx, first)
	}))
	err = f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Blocks().Create(ctx, overlapping)
	})
	assert.True(t, infra.IsKind(err, infra.KindConflict), "got %v", err)
	require.NoError(t, f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Blocks().Create(ctx, after)
	}))

	err = f.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		covers, err := tx.Blocks().CoversDay(ctx, f.unit.ID(), date("2025-02-12"))
		require.NoError(t, err)
		assert.True(t, covers, "last day is inclusive")

		from := date("2025-02-13")
		listed, err := tx.Blocks().List(ctx, shared.BlockFilter{From: &from})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, after.ID(), listed[0].ID())
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Blocks().Delete(ctx, first.ID())
	}))
	err = f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Blocks().Delete(ctx, first.ID())
	})
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func date(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}
