package booking

import (
	"errors"
	"strings"
	"time"

	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/money"
	"reservation-engine/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition    = errors.New("booking is not in the required status for this transition")
	ErrTerminalStatus       = errors.New("booking is already in a terminal status")
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrSameStatus           = errors.New("booking already has this status")
	ErrStatusReasonRequired = errors.New("status override requires a reason")
	ErrNegativeTotal        = errors.New("booking total cannot be negative")
	ErrNumberRequired       = errors.New("booking number is required")
	ErrNoAdults             = errors.New("a booking needs at least one adult")
)

// Guest is a person staying under a booking; the first one is the primary guest.
type Guest struct {
	Name      string
	Email     string
	Phone     string
	IsPrimary bool
}

// Change describes the outcome of a status transition.
type Change struct {
	Event             Event
	From              Status
	To                Status
	FirstConfirmation bool
}

// Snapshot carries every stored field of a booking.
type Snapshot struct {
	ID           uuid.UUID
	Number       string
	Channel      Channel
	CategoryID   uuid.UUID
	UnitID       uuid.UUID
	GuestID      uuid.UUID
	Stay         daterange.DateRange
	Adults       int
	Children     int
	Price        pricing.Breakdown
	Status       Status
	SourceID     *uuid.UUID
	AgentID      *uuid.UUID
	CouponID     *uuid.UUID
	Commission   money.Money
	Guests       []Guest
	Notes        string
	CancelReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ConfirmedAt  *time.Time
	CheckedInAt  *time.Time
	CheckedOutAt *time.Time
	CancelledAt  *time.Time
}

// Booking is the central reservation entity. Stay and unit are fixed at
// creation; afterwards only the status and its timestamps move.
type Booking struct {
	s Snapshot
}

type NewParams struct {
	Number     string
	Channel    Channel
	CategoryID uuid.UUID
	UnitID     uuid.UUID
	GuestID    uuid.UUID
	Stay       daterange.DateRange
	Adults     int
	Children   int
	Price      pricing.Breakdown
	SourceID   *uuid.UUID
	AgentID    *uuid.UUID
	CouponID   *uuid.UUID
	Commission money.Money
	Guests     []Guest
	Notes      string
}

func New(p NewParams, now time.Time) (*Booking, Change, error) {
	if strings.TrimSpace(p.Number) == "" {
		return nil, Change{}, ErrNumberRequired
	}
	if p.Stay.Nights() < 1 {
		return nil, Change{}, pricing.ErrNoNights
	}
	if p.Adults < 1 || p.Children < 0 {
		return nil, Change{}, ErrNoAdults
	}
	if p.Price.TotalAmount.IsNegative() {
		return nil, Change{}, ErrNegativeTotal
	}

	status := p.Channel.InitialStatus()
	b := &Booking{s: Snapshot{
		ID:         uuid.New(),
		Number:     p.Number,
		Channel:    p.Channel,
		CategoryID: p.CategoryID,
		UnitID:     p.UnitID,
		GuestID:    p.GuestID,
		Stay:       p.Stay,
		Adults:     p.Adults,
		Children:   p.Children,
		Price:      p.Price,
		Status:     status,
		SourceID:   p.SourceID,
		AgentID:    p.AgentID,
		CouponID:   p.CouponID,
		Commission: p.Commission,
		Guests:     append([]Guest(nil), p.Guests...),
		Notes:      strings.TrimSpace(p.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}}

	change := Change{Event: EventCreate, To: status}
	if status == StatusConfirmed {
		b.s.ConfirmedAt = &now
		change.FirstConfirmation = true
	}
	return b, change, nil
}

func Reconstruct(s Snapshot) *Booking {
	s.Guests = append([]Guest(nil), s.Guests...)
	return &Booking{s: s}
}

// Apply runs a table-driven event. An illegal source status leaves the booking untouched.
func (b *Booking) Apply(e Event, at time.Time, reason string) (Change, error) {
	if !CanApply(e, b.s.Status) {
		if b.s.Status.IsTerminal() {
			return Change{}, ErrTerminalStatus
		}
		return Change{}, ErrInvalidTransition
	}
	to, _ := Target(e)
	change := b.moveTo(e, to, at)
	if e == EventCancel {
		b.s.CancelReason = strings.TrimSpace(reason)
	}
	return change, nil
}

// Override forces any status from a non-terminal one; used for corrections.
func (b *Booking) Override(to Status, at time.Time, reason string) (Change, error) {
	if !to.IsValid() {
		return Change{}, ErrInvalidStatus
	}
	if b.s.Status.IsTerminal() {
		return Change{}, ErrTerminalStatus
	}
	if to == b.s.Status {
		return Change{}, ErrSameStatus
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Change{}, ErrStatusReasonRequired
	}
	change := b.moveTo(EventOverride, to, at)
	if to == StatusCancelled {
		b.s.CancelReason = reason
	}
	return change, nil
}

func (b *Booking) moveTo(e Event, to Status, at time.Time) Change {
	change := Change{Event: e, From: b.s.Status, To: to}
	switch to {
	case StatusConfirmed:
		if b.s.ConfirmedAt == nil {
			b.s.ConfirmedAt = &at
			change.FirstConfirmation = true
		}
	case StatusCheckedIn:
		b.s.CheckedInAt = &at
	case StatusCheckedOut:
		b.s.CheckedOutAt = &at
	case StatusCancelled:
		b.s.CancelledAt = &at
	}
	b.s.Status = to
	b.s.UpdatedAt = at
	return change
}

func (b *Booking) Snapshot() Snapshot {
	s := b.s
	s.Guests = append([]Guest(nil), b.s.Guests...)
	return s
}

func (b *Booking) ID() uuid.UUID             { return b.s.ID }
func (b *Booking) Number() string            { return b.s.Number }
func (b *Booking) Channel() Channel          { return b.s.Channel }
func (b *Booking) CategoryID() uuid.UUID     { return b.s.CategoryID }
func (b *Booking) UnitID() uuid.UUID         { return b.s.UnitID }
func (b *Booking) GuestID() uuid.UUID        { return b.s.GuestID }
func (b *Booking) Stay() daterange.DateRange { return b.s.Stay }
func (b *Booking) Adults() int               { return b.s.Adults }
func (b *Booking) Children() int             { return b.s.Children }
func (b *Booking) Price() pricing.Breakdown  { return b.s.Price }
func (b *Booking) Status() Status            { return b.s.Status }
func (b *Booking) SourceID() *uuid.UUID      { return b.s.SourceID }
func (b *Booking) AgentID() *uuid.UUID       { return b.s.AgentID }
func (b *Booking) CouponID() *uuid.UUID      { return b.s.CouponID }
func (b *Booking) Commission() money.Money   { return b.s.Commission }
func (b *Booking) Guests() []Guest           { return append([]Guest(nil), b.s.Guests...) }
func (b *Booking) Notes() string             { return b.s.Notes }
func (b *Booking) CancelReason() string      { return b.s.CancelReason }
func (b *Booking) CreatedAt() time.Time      { return b.s.CreatedAt }
func (b *Booking) UpdatedAt() time.Time      { return b.s.UpdatedAt }
func (b *Booking) ConfirmedAt() *time.Time   { return b.s.ConfirmedAt }
func (b *Booking) CheckedInAt() *time.Time   { return b.s.CheckedInAt }
func (b *Booking) CheckedOutAt() *time.Time  { return b.s.CheckedOutAt }
func (b *Booking) CancelledAt() *time.Time   { return b.s.CancelledAt }
