package category

import (
	"errors"
	"strings"

	"reservation-engine/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrEmptyName         = errors.New("category name is required")
	ErrNegativeRate      = errors.New("category rates cannot be negative")
	ErrInvalidOccupancy  = errors.New("invalid category occupancy")
	ErrOccupancyExceeded = errors.New("requested occupancy exceeds category capacity")
)

type Rates struct {
	Nightly    money.Money
	ExtraAdult money.Money
	ExtraChild money.Money
}

// Occupancy describes who is covered by the nightly rate and who may stay at all.
// IncludedChildren is the free-children allowance before the child surcharge applies.
type Occupancy struct {
	IncludedAdults   int
	IncludedChildren int
	MaxAdults        int
	MaxChildren      int
}

// Category is a sellable class of units sharing pricing and occupancy rules.
type Category struct {
	id        uuid.UUID
	name      string
	rates     Rates
	occupancy Occupancy
}

func NewCategory(id uuid.UUID, name string, rates Rates, occupancy Occupancy) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if rates.Nightly.IsNegative() || rates.ExtraAdult.IsNegative() || rates.ExtraChild.IsNegative() {
		return nil, ErrNegativeRate
	}
	if occupancy.MaxAdults < 1 || occupancy.MaxChildren < 0 ||
		occupancy.IncludedAdults < 0 || occupancy.IncludedChildren < 0 ||
		occupancy.IncludedAdults > occupancy.MaxAdults {
		return nil, ErrInvalidOccupancy
	}
	return &Category{id: id, name: name, rates: rates, occupancy: occupancy}, nil
}

// Fits reports whether the party can be accommodated by this category.
func (c *Category) Fits(adults, children int) bool {
	return adults <= c.occupancy.MaxAdults && children <= c.occupancy.MaxChildren
}

func (c *Category) ID() uuid.UUID        { return c.id }
func (c *Category) Name() string         { return c.name }
func (c *Category) Rates() Rates         { return c.rates }
func (c *Category) Occupancy() Occupancy { return c.occupancy }
