//go:build unit

package booking_test

import (
	"testing"
	"time"

	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/pricing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)

func newBooking(t *testing.T, channel booking.Channel) *booking.Booking {
	t.Helper()
	stay, err := daterange.New(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	b, _, err := booking.New(booking.NewParams{
		Number:     "BK-20250105-0001",
		Channel:    channel,
		CategoryID: uuid.New(),
		UnitID:     uuid.New(),
		GuestID:    uuid.New(),
		Stay:       stay,
		Adults:     2,
		Price:      pricing.Breakdown{Nights: 2, Base: 200000, TotalAmount: 200000},
	}, now)
	require.NoError(t, err)
	return b
}

func TestNew(t *testing.T) {
	t.Run("online booking starts pending payment", func(t *testing.T) {
		b := newBooking(t, booking.ChannelOnline)
		assert.Equal(t, booking.StatusPendingPayment, b.Status())
		assert.Nil(t, b.ConfirmedAt())
	})

	t.Run("manual booking starts confirmed", func(t *testing.T) {
		b := newBooking(t, booking.ChannelManual)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		require.NotNil(t, b.ConfirmedAt())
		assert.Equal(t, now, *b.ConfirmedAt())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, _, err := booking.New(booking.NewParams{Channel: booking.ChannelOnline}, now)
		require.ErrorIs(t, err, booking.ErrNumberRequired)

		_, _, err = booking.New(booking.NewParams{Number: "BK-20250105-0001"}, now)
		require.ErrorIs(t, err, pricing.ErrNoNights)
	})
}

func TestApply(t *testing.T) {
	allEvents := []booking.Event{booking.EventConfirm, booking.EventCheckIn, booking.EventCheckOut, booking.EventCancel}

	legal := map[booking.Status]map[booking.Event]booking.Status{
		booking.StatusPendingPayment: {booking.EventConfirm: booking.StatusConfirmed, booking.EventCancel: booking.StatusCancelled},
		booking.StatusConfirmed:      {booking.EventCheckIn: booking.StatusCheckedIn, booking.EventCancel: booking.StatusCancelled},
		booking.StatusCheckedIn:      {booking.EventCheckOut: booking.StatusCheckedOut},
		booking.StatusCheckedOut:     {},
		booking.StatusCancelled:      {},
	}

	for from, allowed := range legal {
		for _, event := range allEvents {
			name := string(from) + " + " + string(event)
			t.Run(name, func(t *testing.T) {
				b := inStatus(t, from)
				before := b.Snapshot()

				change, err := b.Apply(event, now.Add(time.Hour), "guest request")

				want, ok := allowed[event]
				if !ok {
					require.Error(t, err)
					if diff := cmp.Diff(before, b.Snapshot(), cmp.AllowUnexported(daterange.DateRange{})); diff != "" {
						t.Errorf("booking changed on illegal transition (-before +after):\n%s", diff)
					}
					return
				}
				require.NoError(t, err)
				assert.Equal(t, from, change.From)
				assert.Equal(t, want, b.Status())
			})
		}
	}

	t.Run("cancel of checked-in booking is rejected", func(t *testing.T) {
		b := inStatus(t, booking.StatusCheckedIn)
		_, err := b.Apply(booking.EventCancel, now, "changed mind")
		require.ErrorIs(t, err, booking.ErrInvalidTransition)
	})

	t.Run("terminal status reports terminal error", func(t *testing.T) {
		b := inStatus(t, booking.StatusCancelled)
		_, err := b.Apply(booking.EventConfirm, now, "")
		require.ErrorIs(t, err, booking.ErrTerminalStatus)
	})

	t.Run("cancel records reason and timestamp", func(t *testing.T) {
		b := newBooking(t, booking.ChannelOnline)
		at := now.Add(2 * time.Hour)
		_, err := b.Apply(booking.EventCancel, at, "  no longer travelling ")
		require.NoError(t, err)
		assert.Equal(t, "no longer travelling", b.CancelReason())
		require.NotNil(t, b.CancelledAt())
		assert.Equal(t, at, *b.CancelledAt())
	})
}

func TestFirstConfirmation(t *testing.T) {
	b := newBooking(t, booking.ChannelOnline)

	change, err := b.Apply(booking.EventConfirm, now, "")
	require.NoError(t, err)
	assert.True(t, change.FirstConfirmation)

	change, err = b.Override(booking.StatusPendingPayment, now, "payment reversed")
	require.NoError(t, err)
	assert.False(t, change.FirstConfirmation)

	change, err = b.Apply(booking.EventConfirm, now.Add(time.Hour), "")
	require.NoError(t, err)
	assert.False(t, change.FirstConfirmation, "re-entering CONFIRMED must not count as first confirmation")
	assert.Equal(t, now, *b.ConfirmedAt())
}

func TestOverride(t *testing.T) {
	testCases := []struct {
		name   string
		from   booking.Status
		to     booking.Status
		reason string
		errIs  error
	}{
		{name: "pending to checked in", from: booking.StatusPendingPayment, to: booking.StatusCheckedIn, reason: "walk-in correction"},
		{name: "checked in back to confirmed", from: booking.StatusCheckedIn, to: booking.StatusConfirmed, reason: "checked in wrong guest"},
		{name: "from terminal", from: booking.StatusCheckedOut, to: booking.StatusCheckedIn, reason: "oops", errIs: booking.ErrTerminalStatus},
		{name: "same status", from: booking.StatusConfirmed, to: booking.StatusConfirmed, reason: "noop", errIs: booking.ErrSameStatus},
		{name: "unknown status", from: booking.StatusConfirmed, to: booking.Status("LOST"), reason: "x", errIs: booking.ErrInvalidStatus},
		{name: "missing reason", from: booking.StatusConfirmed, to: booking.StatusCancelled, errIs: booking.ErrStatusReasonRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := inStatus(t, tc.from)
			_, err := b.Override(tc.to, now, tc.reason)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.from, b.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, b.Status())
		})
	}
}

func TestNumber(t *testing.T) {
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	n, err := booking.FormatNumber(day, 7)
	require.NoError(t, err)
	assert.Equal(t, "BK-20250110-0007", n)

	n, err = booking.FormatNumber(day, 9999)
	require.NoError(t, err)
	assert.Equal(t, "BK-20250110-9999", n)

	_, err = booking.FormatNumber(day, 0)
	require.ErrorIs(t, err, booking.ErrSequenceOutOfRange)
	_, err = booking.FormatNumber(day, 10000)
	require.ErrorIs(t, err, booking.ErrSequenceOutOfRange)
}

// inStatus walks a fresh booking through legal events to reach the status.
func inStatus(t *testing.T, s booking.Status) *booking.Booking {
	t.Helper()
	b := newBooking(t, booking.ChannelOnline)
	path := map[booking.Status][]booking.Event{
		booking.StatusPendingPayment: nil,
		booking.StatusConfirmed:      {booking.EventConfirm},
		booking.StatusCheckedIn:      {booking.EventConfirm, booking.EventCheckIn},
		booking.StatusCheckedOut:     {booking.EventConfirm, booking.EventCheckIn, booking.EventCheckOut},
		booking.StatusCancelled:      {booking.EventCancel},
	}
	for _, e := range path[s] {
		_, err := b.Apply(e, now, "")
		require.NoError(t, err)
	}
	require.Equal(t, s, b.Status())
	return b
}
