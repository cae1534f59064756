//go:build unit

package commands_test

import (
	"context"
	"testing"

	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/commands"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBlock(t *testing.T) {
	type testCase struct {
		name       string
		start      string
		end        string
		reason     string
		wantStatus unit.Status
		class      error
	}

	runCases := func(t *testing.T, cases []testCase) {
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newFixture(t, 1)
				f.allowAudit()

				b, err := f.blocks.Block(context.Background(), f.staff, commands.BlockUnitInput{
					UnitID: f.units[0].ID(),
					Start:  date(tc.start),
					End:    date(tc.end),
					Reason: tc.reason,
				})
				if tc.class != nil {
					require.Error(t, err)
					assert.True(t, errs.Is(err, tc.class), "got %v", err)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, date(tc.start), b.StartDate())
				assert.Equal(t, date(tc.end), b.EndDate())
				assert.Equal(t, f.staff.ID, b.CreatedBy())
				assert.Equal(t, tc.wantStatus, f.unitStatus(t, f.units[0].ID()))
			})
		}
	}

	runCases(t, []testCase{
		{name: "future block keeps the unit available", start: "2025-01-10", end: "2025-01-15", reason: "painting", wantStatus: unit.StatusAvailable},
		{name: "block covering today marks the unit", start: "2025-01-04", end: "2025-01-06", reason: "leak", wantStatus: unit.StatusBlocked},
		{name: "block starting today", start: "2025-01-05", end: "2025-01-06", reason: "inspection", wantStatus: unit.StatusBlocked},
		{name: "block that ended yesterday", start: "2025-01-01", end: "2025-01-04", reason: "inspection", wantStatus: unit.StatusAvailable},
		{name: "end on the start day", start: "2025-01-10", end: "2025-01-10", reason: "painting", class: errs.ErrValidation},
		{name: "end before start", start: "2025-01-10", end: "2025-01-09", reason: "painting", class: errs.ErrValidation},
		{name: "missing reason", start: "2025-01-10", end: "2025-01-12", reason: " ", class: errs.ErrValidation},
	})
}

func TestBlock_Conflicts(t *testing.T) {
	f := newFixture(t, 1)
	f.allowAudit()
	ctx := context.Background()

	_, err := f.bookings.CreateOnline(ctx, shared.Anonymous(), f.onlineInput("2025-01-10", "2025-01-12"))
	require.NoError(t, err)

	_, err = f.blocks.Block(ctx, f.staff, commands.BlockUnitInput{
		UnitID: f.units[0].ID(), Start: date("2025-01-11"), End: date("2025-01-12"), Reason: "repairs",
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, shared.ErrUnitUnavailable))

	// The check-out day of a booking may be blocked.
	_, err = f.blocks.Block(ctx, f.staff, commands.BlockUnitInput{
		UnitID: f.units[0].ID(), Start: date("2025-01-12"), End: date("2025-01-13"), Reason: "repairs",
	})
	require.NoError(t, err)

	_, err = f.blocks.Block(ctx, f.staff, commands.BlockUnitInput{
		UnitID: f.units[0].ID(), Start: date("2025-01-13"), End: date("2025-01-20"), Reason: "owner stay",
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrConflict))

	_, err = f.blocks.Block(ctx, f.staff, commands.BlockUnitInput{
		UnitID: uuid.New(), Start: date("2025-01-13"), End: date("2025-01-20"), Reason: "owner stay",
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, shared.ErrUnitNotFound))
}

func TestBlock_RequiresStaff(t *testing.T) {
	f := newFixture(t, 1)
	guest := shared.Actor{ID: uuid.New(), Role: user.RoleGuest}

	_, err := f.blocks.Block(context.Background(), guest, commands.BlockUnitInput{
		UnitID: f.units[0].ID(), Start: date("2025-01-10"), End: date("2025-01-12"), Reason: "painting",
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrForbidden))

	err = f.blocks.Unblock(context.Background(), guest, uuid.New())
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrForbidden))
}

func TestUnblock(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	var actions []string
	f.audit.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e shared.AuditEntry) error {
			actions = append(actions, e.Action)
			return nil
		}).
		AnyTimes()

	block, err := f.blocks.Block(ctx, f.staff, commands.BlockUnitInput{
		UnitID: f.units[0].ID(), Start: date("2025-01-05"), End: date("2025-01-08"), Reason: "flooding",
	})
	require.NoError(t, err)
	assert.Equal(t, unit.StatusBlocked, f.unitStatus(t, f.units[0].ID()))

	_, err = f.bookings.CreateOnline(ctx, shared.Anonymous(), f.onlineInput("2025-01-06", "2025-01-07"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, shared.ErrSoldOut))

	require.NoError(t, f.blocks.Unblock(ctx, f.staff, block.ID()))
	assert.Equal(t, unit.StatusAvailable, f.unitStatus(t, f.units[0].ID()))

	_, err = f.bookings.CreateOnline(ctx, shared.Anonymous(), f.onlineInput("2025-01-06", "2025-01-07"))
	require.NoError(t, err)

	err = f.blocks.Unblock(ctx, f.staff, block.ID())
	require.Error(t, err)
	assert.True(t, errs.Is(err, shared.ErrBlockNotFound))

	assert.Equal(t, []string{"unit_block.create", "unit_block.delete", "booking.create"}, actions)
}

func TestUnblock_KeepsOccupiedUnitOccupied(t *testing.T) {
	f := newFixture(t, 1)
	f.allowAudit()
	f.allowLedger()
	ctx := context.Background()

	b, err := f.bookings.CreateManual(ctx, f.staff, f.onlineInput("2025-01-05", "2025-01-07"))
	require.NoError(t, err)
	_, err = f.bookings.CheckIn(ctx, f.staff, b.ID())
	require.NoError(t, err)

	block, err := f.blocks.Block(ctx, f.staff, commands.BlockUnitInput{
		UnitID: f.units[0].ID(), Start: date("2025-01-20"), End: date("2025-01-22"), Reason: "deep clean",
	})
	require.NoError(t, err)
	assert.Equal(t, unit.StatusOccupied, f.unitStatus(t, f.units[0].ID()))

	require.NoError(t, f.blocks.Unblock(ctx, f.staff, block.ID()))
	assert.Equal(t, unit.StatusOccupied, f.unitStatus(t, f.units[0].ID()))
}

func TestUnblock_KeepsMaintenanceStatus(t *testing.T) {
	f := newFixture(t, 0)
	f.allowAudit()
	ctx := context.Background()

	u, err := unit.NewUnit(uuid.New(), f.category.ID(), "201", 2, true, unit.StatusMaintenance)
	require.NoError(t, err)
	f.store.AddUnit(u)

	block, err := f.blocks.Block(ctx, f.staff, commands.BlockUnitInput{
		UnitID: u.ID(), Start: date("2025-01-04"), End: date("2025-01-08"), Reason: "owner stay",
	})
	require.NoError(t, err)
	assert.Equal(t, unit.StatusMaintenance, f.unitStatus(t, u.ID()))

	require.NoError(t, f.blocks.Unblock(ctx, f.staff, block.ID()))
	assert.Equal(t, unit.StatusMaintenance, f.unitStatus(t, u.ID()))
}
