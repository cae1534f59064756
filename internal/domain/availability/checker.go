package availability

import (
	"context"
	"sort"

	"reservation-engine/internal/domain/category"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/unit"

	"github.com/google/uuid"
)

// Occupancy is an interval held on a unit by an active booking or a block.
type Occupancy struct {
	UnitID uuid.UUID
	Period daterange.DateRange
}

// Source reads the interval truth the checker decides on.
type Source interface {
	CategoryByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
	Categories(ctx context.Context) ([]*category.Category, error)
	UnitsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*unit.Unit, error)
	// Occupancies returns active bookings and blocks of the units touching stay.
	Occupancies(ctx context.Context, unitIDs []uuid.UUID, stay daterange.DateRange) ([]Occupancy, error)
}

type CategoryAvailability struct {
	Category       *category.Category
	AvailableCount int
}

type Checker struct {
	src Source
}

func NewChecker(src Source) *Checker {
	return &Checker{src: src}
}

func (c *Checker) IsCategoryAvailable(ctx context.Context, categoryID uuid.UUID, stay daterange.DateRange) (bool, error) {
	units, err := c.ListAvailableUnits(ctx, categoryID, stay)
	if err != nil {
		return false, err
	}
	return len(units) > 0, nil
}

// ListAvailableUnits returns enabled units with nothing overlapping stay,
// ordered by unit code then id so repeated calls agree.
func (c *Checker) ListAvailableUnits(ctx context.Context, categoryID uuid.UUID, stay daterange.DateRange) ([]*unit.Unit, error) {
	if _, err := c.src.CategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}
	units, err := c.src.UnitsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return c.freeUnits(ctx, units, stay)
}

func (c *Checker) AvailableUnitCount(ctx context.Context, categoryID uuid.UUID, stay daterange.DateRange) (int, error) {
	units, err := c.ListAvailableUnits(ctx, categoryID, stay)
	if err != nil {
		return 0, err
	}
	return len(units), nil
}

// SearchCategories lists categories that fit the party and have at least one free unit.
func (c *Checker) SearchCategories(ctx context.Context, stay daterange.DateRange, adults, children int) ([]CategoryAvailability, error) {
	categories, err := c.src.Categories(ctx)
	if err != nil {
		return nil, err
	}

	var result []CategoryAvailability
	for _, cat := range categories {
		if !cat.Fits(adults, children) {
			continue
		}
		units, err := c.src.UnitsByCategory(ctx, cat.ID())
		if err != nil {
			return nil, err
		}
		free, err := c.freeUnits(ctx, units, stay)
		if err != nil {
			return nil, err
		}
		if len(free) == 0 {
			continue
		}
		result = append(result, CategoryAvailability{Category: cat, AvailableCount: len(free)})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Category.Name() < result[j].Category.Name()
	})
	return result, nil
}

// UnitIsFree reports whether nothing held on the unit overlaps stay.
func (c *Checker) UnitIsFree(ctx context.Context, unitID uuid.UUID, stay daterange.DateRange) (bool, error) {
	held, err := c.src.Occupancies(ctx, []uuid.UUID{unitID}, stay)
	if err != nil {
		return false, err
	}
	return !anyOverlap(held, unitID, stay), nil
}

func (c *Checker) freeUnits(ctx context.Context, units []*unit.Unit, stay daterange.DateRange) ([]*unit.Unit, error) {
	enabled := make([]*unit.Unit, 0, len(units))
	ids := make([]uuid.UUID, 0, len(units))
	for _, u := range units {
		if !u.Enabled() {
			continue
		}
		enabled = append(enabled, u)
		ids = append(ids, u.ID())
	}
	if len(enabled) == 0 {
		return nil, nil
	}

	held, err := c.src.Occupancies(ctx, ids, stay)
	if err != nil {
		return nil, err
	}

	free := make([]*unit.Unit, 0, len(enabled))
	for _, u := range enabled {
		if !anyOverlap(held, u.ID(), stay) {
			free = append(free, u)
		}
	}
	SortUnits(free)
	return free, nil
}

func anyOverlap(held []Occupancy, unitID uuid.UUID, stay daterange.DateRange) bool {
	for _, o := range held {
		if o.UnitID == unitID && o.Period.Overlaps(stay) {
			return true
		}
	}
	return false
}

// SortUnits orders units by code, then id.
func SortUnits(units []*unit.Unit) {
	sort.SliceStable(units, func(i, j int) bool {
		if units[i].Code() != units[j].Code() {
			return units[i].Code() < units[j].Code()
		}
		return units[i].ID().String() < units[j].ID().String()
	})
}
