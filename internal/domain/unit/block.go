package unit

import (
	"errors"
	"strings"
	"time"

	"reservation-engine/internal/domain/daterange"

	"github.com/google/uuid"
)

var ErrBlockReasonRequired = errors.New("block reason is required")

// Block reserves a unit for maintenance or owner use.
// Callers supply an inclusive [start, end] span; it is held as half-open internally.
type Block struct {
	id        uuid.UUID
	unitID    uuid.UUID
	period    daterange.DateRange
	reason    string
	notes     string
	createdBy uuid.UUID
	createdAt time.Time
}

func NewBlock(unitID uuid.UUID, start, end time.Time, reason, notes string, createdBy uuid.UUID, now time.Time) (*Block, error) {
	period, err := daterange.FromInclusive(start, end)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrBlockReasonRequired
	}
	return &Block{
		id:        uuid.New(),
		unitID:    unitID,
		period:    period,
		reason:    reason,
		notes:     strings.TrimSpace(notes),
		createdBy: createdBy,
		createdAt: now,
	}, nil
}

// ReconstructBlock rebuilds a stored block from its half-open period.
func ReconstructBlock(id, unitID uuid.UUID, period daterange.DateRange, reason, notes string, createdBy uuid.UUID, createdAt time.Time) *Block {
	return &Block{
		id:        id,
		unitID:    unitID,
		period:    period,
		reason:    reason,
		notes:     notes,
		createdBy: createdBy,
		createdAt: createdAt,
	}
}

func (b *Block) CoversDay(day time.Time) bool {
	return b.period.Contains(day)
}

// StartsOnOrBefore reports whether the block has begun by the given day.
func (b *Block) StartsOnOrBefore(day time.Time) bool {
	return !b.period.Start().After(daterange.Day(day))
}

func (b *Block) ID() uuid.UUID               { return b.id }
func (b *Block) UnitID() uuid.UUID           { return b.unitID }
func (b *Block) Period() daterange.DateRange { return b.period }
func (b *Block) StartDate() time.Time        { return b.period.Start() }
func (b *Block) EndDate() time.Time          { return b.period.LastDay() }
func (b *Block) Reason() string              { return b.reason }
func (b *Block) Notes() string               { return b.notes }
func (b *Block) CreatedBy() uuid.UUID        { return b.createdBy }
func (b *Block) CreatedAt() time.Time        { return b.createdAt }
