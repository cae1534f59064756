package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/domain/coupon"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

const incomeCategoryRoomBooking = "room_booking"

type txEffect func(ctx context.Context, tx shared.Tx, b *booking.Booking, change booking.Change, now time.Time) error

type commitEffect struct {
	name string
	run  func(ctx context.Context, actor shared.Actor, before *booking.Snapshot, b *booking.Booking, change booking.Change) error
}

// transitionEffects run for every change into a status: inTx effects share the
// booking's transaction, afterCommit effects are best effort.
type transitionEffects struct {
	inTx        []txEffect
	afterCommit []commitEffect
}

func (c *bookingCommandsImpl) transitionEffects() map[booking.Status]transitionEffects {
	audit := commitEffect{name: "audit", run: c.recordAudit}
	income := commitEffect{name: "ledger", run: c.recordIncome}

	return map[booking.Status]transitionEffects{
		booking.StatusPendingPayment: {
			inTx:        []txEffect{c.syncUnitStatus},
			afterCommit: []commitEffect{audit},
		},
		booking.StatusConfirmed: {
			inTx:        []txEffect{c.incrementCouponUsage, c.syncUnitStatus},
			afterCommit: []commitEffect{income, audit},
		},
		booking.StatusCheckedIn: {
			inTx:        []txEffect{c.syncUnitStatus},
			afterCommit: []commitEffect{audit},
		},
		booking.StatusCheckedOut: {
			inTx:        []txEffect{c.syncUnitStatus},
			afterCommit: []commitEffect{audit},
		},
		booking.StatusCancelled: {
			inTx:        []txEffect{c.syncUnitStatus},
			afterCommit: []commitEffect{audit},
		},
	}
}

func (c *bookingCommandsImpl) runInTx(ctx context.Context, tx shared.Tx, b *booking.Booking, change booking.Change, now time.Time) error {
	for _, effect := range c.effects[change.To].inTx {
		if err := effect(ctx, tx, b, change, now); err != nil {
			return err
		}
	}
	return nil
}

// afterCommit never fails the transition; errors are logged.
func (c *bookingCommandsImpl) afterCommit(ctx context.Context, actor shared.Actor, before *booking.Snapshot, b *booking.Booking, change booking.Change) {
	for _, effect := range c.effects[change.To].afterCommit {
		if err := effect.run(ctx, actor, before, b, change); err != nil {
			c.logger.Error("post-commit effect failed",
				"effect", effect.name,
				"booking_id", b.ID(),
				"booking_number", b.Number(),
				"status", change.To,
				"error", err.Error())
		}
	}
}

func (c *bookingCommandsImpl) incrementCouponUsage(ctx context.Context, tx shared.Tx, b *booking.Booking, change booking.Change, _ time.Time) error {
	if !change.FirstConfirmation || b.CouponID() == nil {
		return nil
	}
	err := tx.Coupons().IncrementUsage(ctx, *b.CouponID())
	if errors.Is(err, coupon.ErrCouponExhausted) {
		return shared.ErrCouponLimitReached
	}
	return shared.RepoErr(err, shared.ErrInvalidCoupon)
}

func (c *bookingCommandsImpl) syncUnitStatus(ctx context.Context, tx shared.Tx, b *booking.Booking, _ booking.Change, now time.Time) error {
	_, err := c.units.Sync(ctx, tx, b.UnitID(), c.today(now))
	return err
}

func (c *bookingCommandsImpl) today(now time.Time) time.Time {
	return daterange.Day(now.In(c.settings.Location))
}

func (c *bookingCommandsImpl) recordIncome(ctx context.Context, _ shared.Actor, _ *booking.Snapshot, b *booking.Booking, change booking.Change) error {
	if !change.FirstConfirmation {
		return nil
	}
	at := b.UpdatedAt()
	if b.ConfirmedAt() != nil {
		at = *b.ConfirmedAt()
	}
	return c.ledger.RecordIncome(ctx, shared.IncomeEntry{
		Amount:        b.Price().TotalAmount,
		Category:      incomeCategoryRoomBooking,
		Description:   fmt.Sprintf("Booking %s, %d night(s)", b.Number(), b.Stay().Nights()),
		BookingID:     b.ID(),
		BookingNumber: b.Number(),
		At:            at,
	})
}

func (c *bookingCommandsImpl) recordAudit(ctx context.Context, actor shared.Actor, before *booking.Snapshot, b *booking.Booking, change booking.Change) error {
	entry := shared.AuditEntry{
		Action:     "booking." + string(change.Event),
		EntityType: "booking",
		EntityID:   b.ID(),
		ActorID:    actor.IDPtr(),
		After:      bookingAuditState(b.Snapshot()),
		At:         b.UpdatedAt(),
	}
	if before != nil {
		entry.Before = bookingAuditState(*before)
	}
	return c.audit.Record(ctx, entry)
}

func bookingAuditState(s booking.Snapshot) map[string]any {
	state := map[string]any{
		"status":         string(s.Status),
		"booking_number": s.Number,
		"unit_id":        s.UnitID.String(),
		"stay":           s.Stay.String(),
		"total_amount":   s.Price.TotalAmount.Cents(),
	}
	if s.Price.Overridden {
		state["override_reason"] = s.Price.OverrideReason
	}
	if s.CancelReason != "" {
		state["cancel_reason"] = s.CancelReason
	}
	return state
}

type syncResult struct {
	Previous unit.Status
	Current  unit.Status
	Occupied bool
}

// unitStatusSync re-derives a unit's cached status from its bookings and
// blocks. MAINTENANCE is set by staff and only yields to a checked-in guest,
// so blocking and unblocking a unit under maintenance leaves it there.
type unitStatusSync struct {
	logger *slog.Logger
}

func (s *unitStatusSync) Sync(ctx context.Context, tx shared.Tx, unitID uuid.UUID, today time.Time) (syncResult, error) {
	u, err := tx.Units().LockByID(ctx, unitID)
	if err != nil {
		return syncResult{}, shared.RepoErr(err, shared.ErrUnitNotFound)
	}
	occupied, err := tx.Bookings().HasCheckedIn(ctx, unitID)
	if err != nil {
		return syncResult{}, shared.RepoErr(err, nil)
	}
	blocked, err := tx.Blocks().CoversDay(ctx, unitID, today)
	if err != nil {
		return syncResult{}, shared.RepoErr(err, nil)
	}

	result := syncResult{Previous: u.Status(), Occupied: occupied}
	next := unit.ResolveStatus(occupied, blocked)
	if u.Status() == unit.StatusMaintenance && next != unit.StatusOccupied {
		result.Current = u.Status()
		return result, nil
	}

	changed, err := u.SetStatus(next)
	if err != nil {
		return syncResult{}, err
	}
	if changed {
		if err := tx.Units().UpdateStatus(ctx, unitID, next); err != nil {
			return syncResult{}, shared.RepoErr(err, shared.ErrUnitNotFound)
		}
		s.logger.Debug("unit status updated", "unit_id", unitID, "from", result.Previous, "to", next)
	}
	result.Current = next
	return result, nil
}
