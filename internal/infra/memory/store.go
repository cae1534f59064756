// Package memory is an in-process store that enforces the same overlap and
// uniqueness rules as the PostgreSQL schema.
package memory

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/domain/category"
	"reservation-engine/internal/domain/coupon"
	"reservation-engine/internal/domain/pricing"
	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type unitRow struct {
	id         uuid.UUID
	categoryID uuid.UUID
	code       string
	floor      int
	enabled    bool
	status     unit.Status
}

type couponRow struct {
	coupon    *coupon.Coupon
	timesUsed int
}

// dataset is copied at the start of every write transaction and swapped in on commit.
type dataset struct {
	categories map[uuid.UUID]*category.Category
	units      map[uuid.UUID]unitRow
	bookings   map[uuid.UUID]booking.Snapshot
	blocks     map[uuid.UUID]*unit.Block
	coupons    map[uuid.UUID]couponRow
	users      map[uuid.UUID]*user.User
	rules      []pricing.Rule
	sources    map[uuid.UUID]booking.Source
	counters   map[string]int
}

func newDataset() *dataset {
	return &dataset{
		categories: map[uuid.UUID]*category.Category{},
		units:      map[uuid.UUID]unitRow{},
		bookings:   map[uuid.UUID]booking.Snapshot{},
		blocks:     map[uuid.UUID]*unit.Block{},
		coupons:    map[uuid.UUID]couponRow{},
		users:      map[uuid.UUID]*user.User{},
		sources:    map[uuid.UUID]booking.Source{},
		counters:   map[string]int{},
	}
}

func (d *dataset) clone() *dataset {
	bookings := make(map[uuid.UUID]booking.Snapshot, len(d.bookings))
	for id, s := range d.bookings {
		s.Guests = append([]booking.Guest(nil), s.Guests...)
		bookings[id] = s
	}
	return &dataset{
		categories: maps.Clone(d.categories),
		units:      maps.Clone(d.units),
		bookings:   bookings,
		blocks:     maps.Clone(d.blocks),
		coupons:    maps.Clone(d.coupons),
		users:      maps.Clone(d.users),
		rules:      append([]pricing.Rule(nil), d.rules...),
		sources:    maps.Clone(d.sources),
		counters:   maps.Clone(d.counters),
	}
}

// Store runs write transactions one at a time against a copy of the data.
type Store struct {
	mu     sync.RWMutex
	data   *dataset
	logger *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{data: newDataset(), logger: logger}
}

func NewUnitOfWork(store *Store) shared.UnitOfWork {
	return store
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	working := s.data.clone()
	if err := fn(ctx, &memTx{store: s, data: working}); err != nil {
		return err
	}
	s.data = working
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &memTx{store: s, data: s.data, readOnly: true})
}

// Seeding helpers for local runs and tests. They bypass transactions.

func (s *Store) AddCategory(c *category.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.categories[c.ID()] = c
}

func (s *Store) AddUnit(u *unit.Unit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.units[u.ID()] = toUnitRow(u)
}

func (s *Store) AddCoupon(c *coupon.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.coupons[c.ID()] = couponRow{coupon: c, timesUsed: c.TimesUsed()}
}

func (s *Store) AddUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[u.ID()] = u
}

func (s *Store) AddPricingRule(r pricing.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.rules = append(s.data.rules, r)
}

func (s *Store) AddSource(src booking.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.sources[src.ID] = src
}

// Bookings returns every stored booking, for assertions.
func (s *Store) Bookings() []*booking.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*booking.Booking, 0, len(s.data.bookings))
	for _, snap := range s.data.bookings {
		out = append(out, booking.Reconstruct(snap))
	}
	return out
}

func toUnitRow(u *unit.Unit) unitRow {
	return unitRow{
		id:         u.ID(),
		categoryID: u.CategoryID(),
		code:       u.Code(),
		floor:      u.Floor(),
		enabled:    u.Enabled(),
		status:     u.Status(),
	}
}

func (r unitRow) toEntity() (*unit.Unit, error) {
	return unit.NewUnit(r.id, r.categoryID, r.code, r.floor, r.enabled, r.status)
}

type memTx struct {
	store    *Store
	data     *dataset
	readOnly bool
}

func (t *memTx) Categories() shared.CategoryRepository         { return categoryRepo{t} }
func (t *memTx) Units() shared.UnitRepository                  { return unitRepo{t} }
func (t *memTx) Bookings() shared.BookingRepository            { return bookingRepo{t} }
func (t *memTx) Blocks() shared.BlockRepository                { return blockRepo{t} }
func (t *memTx) Coupons() shared.CouponRepository              { return couponRepo{t} }
func (t *memTx) Users() shared.UserRepository                  { return userRepo{t} }
func (t *memTx) PricingRules() shared.PricingRuleRepository    { return pricingRuleRepo{t} }
func (t *memTx) BookingNumbers() shared.BookingNumberRepository { return bookingNumberRepo{t} }
func (t *memTx) BookingSources() shared.BookingSourceRepository { return bookingSourceRepo{t} }
