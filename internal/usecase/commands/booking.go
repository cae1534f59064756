package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/money"
	"reservation-engine/internal/domain/pricing"
	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/pkg/clock"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/pkg/password"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type GuestInput struct {
	Name  string
	Email string
	Phone string
}

type CreateBookingInput struct {
	CategoryID uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Adults     int
	Children   int
	CouponCode string
	Guest      GuestInput
	Companions []booking.Guest
	Notes      string

	// Manual bookings only
	SourceID       *uuid.UUID
	OverrideTotal  *money.Money
	OverrideReason string
}

type BookingCommands interface {
	CreateOnline(ctx context.Context, actor shared.Actor, in CreateBookingInput) (*booking.Booking, error)
	CreateManual(ctx context.Context, actor shared.Actor, in CreateBookingInput) (*booking.Booking, error)
	Confirm(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*booking.Booking, error)
	CheckIn(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*booking.Booking, error)
	CheckOut(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*booking.Booking, error)
	Cancel(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, reason string) (*booking.Booking, error)
	SetStatus(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, status booking.Status, reason string) (*booking.Booking, error)
}

type Settings struct {
	MaxCreateAttempts int
	Location          *time.Location
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	quoter   *shared.Quoter
	selector unit.Selector
	units    *unitStatusSync
	audit    shared.AuditSink
	ledger   shared.Ledger
	clock    clock.Clock
	settings Settings
	logger   *slog.Logger
	effects  map[booking.Status]transitionEffects
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	quoter *shared.Quoter,
	selector unit.Selector,
	audit shared.AuditSink,
	ledger shared.Ledger,
	clk clock.Clock,
	settings Settings,
	logger *slog.Logger,
) BookingCommands {
	if settings.MaxCreateAttempts < 1 {
		settings.MaxCreateAttempts = 1
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	c := &bookingCommandsImpl{
		uow:      uow,
		quoter:   quoter,
		selector: selector,
		units:    &unitStatusSync{logger: logger},
		audit:    audit,
		ledger:   ledger,
		clock:    clk,
		settings: settings,
		logger:   logger,
	}
	c.effects = c.transitionEffects()
	return c
}

func (c *bookingCommandsImpl) CreateOnline(ctx context.Context, actor shared.Actor, in CreateBookingInput) (*booking.Booking, error) {
	if in.OverrideTotal != nil {
		return nil, shared.ErrOverrideNotAllowed
	}
	if strings.TrimSpace(in.Guest.Email) == "" {
		return nil, shared.ErrGuestEmailRequired
	}
	return c.create(ctx, actor, booking.ChannelOnline, in)
}

func (c *bookingCommandsImpl) CreateManual(ctx context.Context, actor shared.Actor, in CreateBookingInput) (*booking.Booking, error) {
	if err := actor.Require(user.RoleStaff); err != nil {
		return nil, err
	}
	return c.create(ctx, actor, booking.ChannelManual, in)
}

// create re-runs the whole attempt when a concurrent writer took the unit or
// the booking number, so every retry sees a fresh candidate list.
func (c *bookingCommandsImpl) create(ctx context.Context, actor shared.Actor, channel booking.Channel, in CreateBookingInput) (*booking.Booking, error) {
	stay, err := daterange.New(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, shared.Classify(err)
	}
	if in.Adults < 1 || in.Children < 0 {
		return nil, shared.Classify(booking.ErrNoAdults)
	}

	for attempt := 1; ; attempt++ {
		created, change, err := c.createOnce(ctx, actor, channel, stay, in)
		if err == nil {
			c.afterCommit(ctx, actor, nil, created, change)
			return created, nil
		}
		if !shared.RaceLost(err) {
			return nil, err
		}
		if attempt >= c.settings.MaxCreateAttempts {
			c.logger.Error("booking creation lost every race",
				"attempts", attempt,
				"category_id", in.CategoryID,
				"stay", stay.String(),
				"error", err.Error())
			return nil, errs.Wrap(errs.ErrConcurrencyConflict, "create booking")
		}
		c.logger.Warn("retrying booking creation after concurrent write",
			"attempt", attempt,
			"category_id", in.CategoryID,
			"error", err.Error())
	}
}

func (c *bookingCommandsImpl) createOnce(
	ctx context.Context,
	actor shared.Actor,
	channel booking.Channel,
	stay daterange.DateRange,
	in CreateBookingInput,
) (*booking.Booking, booking.Change, error) {
	var (
		created *booking.Booking
		change  booking.Change
	)
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cat, err := tx.Categories().FindByID(ctx, in.CategoryID)
		if err != nil {
			return shared.RepoErr(err, shared.ErrCategoryNotFound)
		}

		checker := availability.NewChecker(shared.AvailabilitySource(tx))
		candidates, err := checker.ListAvailableUnits(ctx, cat.ID(), stay)
		if err != nil {
			return shared.RepoErr(err, shared.ErrCategoryNotFound)
		}
		if len(candidates) == 0 {
			return shared.ErrSoldOut
		}

		price, cpn, err := c.quoter.Quote(ctx, tx, shared.QuoteRequest{
			Category:   cat,
			Stay:       stay,
			Adults:     in.Adults,
			Children:   in.Children,
			CouponCode: in.CouponCode,
		}, now)
		if err != nil {
			return err
		}
		if channel == booking.ChannelManual && in.OverrideTotal != nil {
			price, err = c.quoter.Calculator().ApplyOverride(price, *in.OverrideTotal, in.OverrideReason)
			if err != nil {
				return shared.Classify(err)
			}
		}

		selected, err := c.selector.SelectUnit(candidates)
		if err != nil {
			return shared.ErrSoldOut
		}
		if err := c.lockFreeUnit(ctx, tx, checker, selected.ID(), stay); err != nil {
			return err
		}

		guest, err := c.resolveGuest(ctx, tx, in.Guest, channel == booking.ChannelOnline, now)
		if err != nil {
			return err
		}

		number, err := c.nextNumber(ctx, tx, now)
		if err != nil {
			return err
		}

		sourceID, commission, err := c.resolveCommission(ctx, tx, in.SourceID, price.TotalAmount)
		if err != nil {
			return err
		}

		var couponID *uuid.UUID
		if cpn != nil {
			id := cpn.ID()
			couponID = &id
		}

		var agentID *uuid.UUID
		if channel == booking.ChannelManual {
			agentID = actor.IDPtr()
		}

		guests := append([]booking.Guest{{
			Name:      guest.Name(),
			Email:     guest.Email().Value(),
			Phone:     guest.Phone(),
			IsPrimary: true,
		}}, companions(in.Companions)...)

		created, change, err = booking.New(booking.NewParams{
			Number:     number,
			Channel:    channel,
			CategoryID: cat.ID(),
			UnitID:     selected.ID(),
			GuestID:    guest.ID(),
			Stay:       stay,
			Adults:     in.Adults,
			Children:   in.Children,
			Price:      price,
			SourceID:   sourceID,
			AgentID:    agentID,
			CouponID:   couponID,
			Commission: commission,
			Guests:     guests,
			Notes:      in.Notes,
		}, now)
		if err != nil {
			return shared.Classify(err)
		}

		if err := tx.Bookings().Create(ctx, created); err != nil {
			return shared.RepoErr(err, nil)
		}
		return c.runInTx(ctx, tx, created, change, now)
	})
	if err != nil {
		return nil, booking.Change{}, err
	}
	return created, change, nil
}

// lockFreeUnit takes the unit row lock and re-checks it under the lock.
func (c *bookingCommandsImpl) lockFreeUnit(ctx context.Context, tx shared.Tx, checker *availability.Checker, unitID uuid.UUID, stay daterange.DateRange) error {
	locked, err := tx.Units().LockByID(ctx, unitID)
	if err != nil {
		return shared.RepoErr(err, shared.ErrUnitNotFound)
	}
	if !locked.Enabled() {
		return shared.ErrUnitUnavailable
	}
	free, err := checker.UnitIsFree(ctx, unitID, stay)
	if err != nil {
		return shared.RepoErr(err, nil)
	}
	if !free {
		return shared.ErrUnitUnavailable
	}
	return nil
}

func (c *bookingCommandsImpl) resolveGuest(ctx context.Context, tx shared.Tx, in GuestInput, requireEmail bool, now time.Time) (*user.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, shared.ErrGuestNameRequired
	}

	var email user.Email
	if strings.TrimSpace(in.Email) != "" {
		var err error
		email, err = user.NewEmail(in.Email)
		if err != nil {
			return nil, shared.Classify(err)
		}
	} else if requireEmail {
		return nil, shared.ErrGuestEmailRequired
	}

	if !email.IsZero() {
		existing, err := tx.Users().FindByEmail(ctx, email)
		if err == nil {
			return existing, nil
		}
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, shared.RepoErr(err, nil)
		}
	}

	hash, err := password.PlaceholderHash()
	if err != nil {
		return nil, errs.Wrap(err, "guest placeholder credential")
	}
	guest, err := user.NewGuestAccount(email, in.Name, in.Phone, hash, now)
	if err != nil {
		return nil, shared.Classify(err)
	}
	if err := tx.Users().Create(ctx, guest); err != nil {
		return nil, shared.RepoErr(err, nil)
	}
	return guest, nil
}

func (c *bookingCommandsImpl) nextNumber(ctx context.Context, tx shared.Tx, now time.Time) (string, error) {
	day := daterange.Day(now.In(c.settings.Location))
	seq, err := tx.BookingNumbers().Next(ctx, day)
	if err != nil {
		return "", shared.RepoErr(err, nil)
	}
	number, err := booking.FormatNumber(day, seq)
	if err != nil {
		return "", errs.Wrap(shared.ErrDailyNumberExceeded, err.Error())
	}
	return number, nil
}

func (c *bookingCommandsImpl) resolveCommission(ctx context.Context, tx shared.Tx, sourceID *uuid.UUID, total money.Money) (*uuid.UUID, money.Money, error) {
	if sourceID == nil {
		return nil, 0, nil
	}
	src, err := tx.BookingSources().FindByID(ctx, *sourceID)
	if err != nil {
		return nil, 0, shared.RepoErr(err, shared.ErrSourceNotFound)
	}
	id := src.ID
	return &id, pricing.Commission(total, src.CommissionPercent), nil
}

func companions(in []booking.Guest) []booking.Guest {
	out := make([]booking.Guest, 0, len(in))
	for _, g := range in {
		g.Name = strings.TrimSpace(g.Name)
		if g.Name == "" {
			continue
		}
		g.IsPrimary = false
		out = append(out, g)
	}
	return out
}

// ================================================================================
// Transitions
// ================================================================================

func (c *bookingCommandsImpl) Confirm(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	if err := actor.Require(user.RoleStaff); err != nil {
		return nil, err
	}
	return c.apply(ctx, actor, bookingID, booking.EventConfirm, "", nil)
}

func (c *bookingCommandsImpl) CheckIn(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	if err := actor.Require(user.RoleStaff); err != nil {
		return nil, err
	}
	return c.apply(ctx, actor, bookingID, booking.EventCheckIn, "", nil)
}

func (c *bookingCommandsImpl) CheckOut(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	if err := actor.Require(user.RoleStaff); err != nil {
		return nil, err
	}
	return c.apply(ctx, actor, bookingID, booking.EventCheckOut, "", nil)
}

// Cancel is open to staff for any booking and to the guest who owns it.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, reason string) (*booking.Booking, error) {
	if actor.IsAnonymous() {
		return nil, shared.ErrInsufficientRole
	}
	return c.apply(ctx, actor, bookingID, booking.EventCancel, reason, func(b *booking.Booking) error {
		if actor.Role.AtLeast(user.RoleStaff) || b.GuestID() == actor.ID {
			return nil
		}
		return shared.ErrNotBookingOwner
	})
}

func (c *bookingCommandsImpl) SetStatus(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, status booking.Status, reason string) (*booking.Booking, error) {
	if err := actor.Require(user.RoleManager); err != nil {
		return nil, err
	}
	return c.transition(ctx, actor, bookingID, func(b *booking.Booking, now time.Time) (booking.Change, error) {
		return b.Override(status, now, reason)
	})
}

func (c *bookingCommandsImpl) apply(
	ctx context.Context,
	actor shared.Actor,
	bookingID uuid.UUID,
	event booking.Event,
	reason string,
	authorize func(b *booking.Booking) error,
) (*booking.Booking, error) {
	return c.transition(ctx, actor, bookingID, func(b *booking.Booking, now time.Time) (booking.Change, error) {
		if authorize != nil {
			if err := authorize(b); err != nil {
				return booking.Change{}, err
			}
		}
		return b.Apply(event, now, reason)
	})
}

func (c *bookingCommandsImpl) transition(
	ctx context.Context,
	actor shared.Actor,
	bookingID uuid.UUID,
	mutate func(b *booking.Booking, now time.Time) (booking.Change, error),
) (*booking.Booking, error) {
	var (
		updated *booking.Booking
		before  booking.Snapshot
		change  booking.Change
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()
		b, err := tx.Bookings().LockByID(ctx, bookingID)
		if err != nil {
			return shared.RepoErr(err, shared.ErrBookingNotFound)
		}
		before = b.Snapshot()

		change, err = mutate(b, now)
		if err != nil {
			return shared.Classify(err)
		}
		if err := tx.Bookings().UpdateStatus(ctx, b); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Wrap(shared.ErrUnitUnavailable, "reactivate booking")
			}
			return shared.RepoErr(err, shared.ErrBookingNotFound)
		}
		if err := c.runInTx(ctx, tx, b, change, now); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.afterCommit(ctx, actor, &before, updated, change)
	return updated, nil
}
