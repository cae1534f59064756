package commands

import (
	"context"
	"log/slog"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/pkg/clock"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// BlockUnitInput takes an inclusive [Start, End] span of days.
type BlockUnitInput struct {
	UnitID uuid.UUID
	Start  time.Time
	End    time.Time
	Reason string
	Notes  string
}

type UnitBlockCommands interface {
	Block(ctx context.Context, actor shared.Actor, in BlockUnitInput) (*unit.Block, error)
	Unblock(ctx context.Context, actor shared.Actor, blockID uuid.UUID) error
}

type unitBlockCommandsImpl struct {
	uow      shared.UnitOfWork
	units    *unitStatusSync
	audit    shared.AuditSink
	clock    clock.Clock
	location *time.Location
	logger   *slog.Logger
}

func NewUnitBlockCommands(uow shared.UnitOfWork, audit shared.AuditSink, clk clock.Clock, settings Settings, logger *slog.Logger) UnitBlockCommands {
	loc := settings.Location
	if loc == nil {
		loc = time.UTC
	}
	return &unitBlockCommandsImpl{
		uow:      uow,
		units:    &unitStatusSync{logger: logger},
		audit:    audit,
		clock:    clk,
		location: loc,
		logger:   logger,
	}
}

func (c *unitBlockCommandsImpl) Block(ctx context.Context, actor shared.Actor, in BlockUnitInput) (*unit.Block, error) {
	if err := actor.Require(user.RoleStaff); err != nil {
		return nil, err
	}
	now := c.clock.Now()
	block, err := unit.NewBlock(in.UnitID, in.Start, in.End, in.Reason, in.Notes, actor.ID, now)
	if err != nil {
		return nil, shared.Classify(err)
	}

	var synced syncResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Units().LockByID(ctx, in.UnitID)
		if err != nil {
			return shared.RepoErr(err, shared.ErrUnitNotFound)
		}

		free, err := availability.NewChecker(shared.AvailabilitySource(tx)).UnitIsFree(ctx, u.ID(), block.Period())
		if err != nil {
			return shared.RepoErr(err, nil)
		}
		if !free {
			return shared.ErrUnitUnavailable
		}

		if err := tx.Blocks().Create(ctx, block); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Wrap(shared.ErrUnitUnavailable, "create block")
			}
			return shared.RepoErr(err, nil)
		}

		// A block that starts after today cannot change today's status.
		today := c.today(now)
		if !block.StartsOnOrBefore(today) {
			synced = syncResult{Previous: u.Status(), Current: u.Status()}
			return nil
		}
		synced, err = c.units.Sync(ctx, tx, u.ID(), today)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("unit blocked",
		"block_id", block.ID(),
		"unit_id", block.UnitID(),
		"start", block.StartDate().Format(time.DateOnly),
		"end", block.EndDate().Format(time.DateOnly),
		"unit_status", synced.Current)
	c.recordAudit(ctx, actor, "unit_block.create", block, nil, blockAuditState(block))
	return block, nil
}

// Unblock deletes the block and re-derives the unit status. A unit that a
// guest occupies must already read OCCUPIED; anything else is drift.
func (c *unitBlockCommandsImpl) Unblock(ctx context.Context, actor shared.Actor, blockID uuid.UUID) error {
	if err := actor.Require(user.RoleStaff); err != nil {
		return err
	}
	now := c.clock.Now()

	var (
		removed *unit.Block
		synced  syncResult
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		block, err := tx.Blocks().FindByID(ctx, blockID)
		if err != nil {
			return shared.RepoErr(err, shared.ErrBlockNotFound)
		}
		if _, err := tx.Units().LockByID(ctx, block.UnitID()); err != nil {
			return shared.RepoErr(err, shared.ErrUnitNotFound)
		}
		if err := tx.Blocks().Delete(ctx, blockID); err != nil {
			return shared.RepoErr(err, shared.ErrBlockNotFound)
		}

		synced, err = c.units.Sync(ctx, tx, block.UnitID(), c.today(now))
		if err != nil {
			return err
		}
		removed = block
		return nil
	})
	if err != nil {
		return err
	}

	if synced.Occupied && synced.Previous != unit.StatusOccupied {
		c.logger.Error("unit status drift: occupied unit was not marked occupied",
			"unit_id", removed.UnitID(),
			"block_id", removed.ID(),
			"previous_status", synced.Previous)
	}
	c.logger.Info("unit unblocked", "block_id", removed.ID(), "unit_id", removed.UnitID(), "unit_status", synced.Current)
	c.recordAudit(ctx, actor, "unit_block.delete", removed, blockAuditState(removed), nil)
	return nil
}

func (c *unitBlockCommandsImpl) today(now time.Time) time.Time {
	return daterange.Day(now.In(c.location))
}

func (c *unitBlockCommandsImpl) recordAudit(ctx context.Context, actor shared.Actor, action string, b *unit.Block, before, after map[string]any) {
	err := c.audit.Record(ctx, shared.AuditEntry{
		Action:     action,
		EntityType: "unit_block",
		EntityID:   b.ID(),
		ActorID:    actor.IDPtr(),
		Before:     before,
		After:      after,
		At:         c.clock.Now(),
	})
	if err != nil {
		c.logger.Error("post-commit effect failed", "effect", "audit", "block_id", b.ID(), "error", err.Error())
	}
}

func blockAuditState(b *unit.Block) map[string]any {
	return map[string]any{
		"unit_id":    b.UnitID().String(),
		"start_date": b.StartDate().Format(time.DateOnly),
		"end_date":   b.EndDate().Format(time.DateOnly),
		"reason":     b.Reason(),
	}
}
