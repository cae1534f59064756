package memory

import (
	"context"
	"sort"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/domain/category"
	"reservation-engine/internal/domain/coupon"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/pricing"
	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

var errReadOnly = errs.New("write attempted in a read-only transaction")

func (t *memTx) writable(op string) error {
	if t.readOnly {
		return infra.WrapRepoErr(t.store.logger, infra.KindDBFailure, op, errReadOnly)
	}
	return nil
}

func (t *memTx) notFound(msg string) error {
	return infra.WrapRepoErr(t.store.logger, infra.KindNotFound, msg, nil)
}

// --- categories ---

type categoryRepo struct{ t *memTx }

func (r categoryRepo) FindByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	c, ok := r.t.data.categories[id]
	if !ok {
		return nil, r.t.notFound("category not found")
	}
	return c, nil
}

func (r categoryRepo) List(_ context.Context) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(r.t.data.categories))
	for _, c := range r.t.data.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// --- units ---

type unitRepo struct{ t *memTx }

func (r unitRepo) FindByID(_ context.Context, id uuid.UUID) (*unit.Unit, error) {
	row, ok := r.t.data.units[id]
	if !ok {
		return nil, r.t.notFound("unit not found")
	}
	return row.toEntity()
}

func (r unitRepo) LockByID(ctx context.Context, id uuid.UUID) (*unit.Unit, error) {
	return r.FindByID(ctx, id)
}

func (r unitRepo) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]*unit.Unit, error) {
	var out []*unit.Unit
	for _, row := range r.t.data.units {
		if row.categoryID != categoryID {
			continue
		}
		u, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	availability.SortUnits(out)
	return out, nil
}

func (r unitRepo) UpdateStatus(_ context.Context, id uuid.UUID, status unit.Status) error {
	if err := r.t.writable("update unit status"); err != nil {
		return err
	}
	row, ok := r.t.data.units[id]
	if !ok {
		return r.t.notFound("unit not found")
	}
	row.status = status
	r.t.data.units[id] = row
	return nil
}

// --- bookings ---

type bookingRepo struct{ t *memTx }

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if err := r.t.writable("create booking"); err != nil {
		return err
	}
	snap := b.Snapshot()
	for _, other := range r.t.data.bookings {
		if other.Number == snap.Number {
			return infra.WrapRepoErr(r.t.store.logger, infra.KindDuplicateKey, "booking number already used", nil)
		}
		if snap.Status.IsActive() && other.Status.IsActive() &&
			other.UnitID == snap.UnitID && other.Stay.Overlaps(snap.Stay) {
			return infra.WrapRepoErr(r.t.store.logger, infra.KindConflict, "overlapping active booking on unit", nil)
		}
	}
	r.t.data.bookings[snap.ID] = snap
	return nil
}

func (r bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	snap, ok := r.t.data.bookings[id]
	if !ok {
		return nil, r.t.notFound("booking not found")
	}
	return booking.Reconstruct(snap), nil
}

func (r bookingRepo) LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r bookingRepo) UpdateStatus(_ context.Context, b *booking.Booking) error {
	if err := r.t.writable("update booking status"); err != nil {
		return err
	}
	stored, ok := r.t.data.bookings[b.ID()]
	if !ok {
		return r.t.notFound("booking not found")
	}
	next := b.Snapshot()
	if next.Status.IsActive() && !stored.Status.IsActive() {
		for id, other := range r.t.data.bookings {
			if id != next.ID && other.Status.IsActive() &&
				other.UnitID == next.UnitID && other.Stay.Overlaps(next.Stay) {
				return infra.WrapRepoErr(r.t.store.logger, infra.KindConflict, "overlapping active booking on unit", nil)
			}
		}
	}
	stored.Status = next.Status
	stored.ConfirmedAt = next.ConfirmedAt
	stored.CheckedInAt = next.CheckedInAt
	stored.CheckedOutAt = next.CheckedOutAt
	stored.CancelledAt = next.CancelledAt
	stored.CancelReason = next.CancelReason
	stored.UpdatedAt = next.UpdatedAt
	r.t.data.bookings[stored.ID] = stored
	return nil
}

func (r bookingRepo) Occupancies(_ context.Context, unitIDs []uuid.UUID, period daterange.DateRange) ([]availability.Occupancy, error) {
	wanted := idSet(unitIDs)
	var out []availability.Occupancy
	for _, b := range r.t.data.bookings {
		if b.Status.IsActive() && wanted[b.UnitID] && b.Stay.Overlaps(period) {
			out = append(out, availability.Occupancy{UnitID: b.UnitID, Period: b.Stay})
		}
	}
	return out, nil
}

func (r bookingRepo) HasCheckedIn(_ context.Context, unitID uuid.UUID) (bool, error) {
	for _, b := range r.t.data.bookings {
		if b.UnitID == unitID && b.Status == booking.StatusCheckedIn {
			return true, nil
		}
	}
	return false, nil
}

// --- blocks ---

type blockRepo struct{ t *memTx }

func (r blockRepo) Create(_ context.Context, b *unit.Block) error {
	if err := r.t.writable("create block"); err != nil {
		return err
	}
	for _, other := range r.t.data.blocks {
		if other.UnitID() == b.UnitID() && other.Period().Overlaps(b.Period()) {
			return infra.WrapRepoErr(r.t.store.logger, infra.KindConflict, "overlapping block on unit", nil)
		}
	}
	r.t.data.blocks[b.ID()] = b
	return nil
}

func (r blockRepo) FindByID(_ context.Context, id uuid.UUID) (*unit.Block, error) {
	b, ok := r.t.data.blocks[id]
	if !ok {
		return nil, r.t.notFound("block not found")
	}
	return b, nil
}

func (r blockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.t.writable("delete block"); err != nil {
		return err
	}
	if _, ok := r.t.data.blocks[id]; !ok {
		return r.t.notFound("block not found")
	}
	delete(r.t.data.blocks, id)
	return nil
}

func (r blockRepo) Occupancies(_ context.Context, unitIDs []uuid.UUID, period daterange.DateRange) ([]availability.Occupancy, error) {
	wanted := idSet(unitIDs)
	var out []availability.Occupancy
	for _, b := range r.t.data.blocks {
		if wanted[b.UnitID()] && b.Period().Overlaps(period) {
			out = append(out, availability.Occupancy{UnitID: b.UnitID(), Period: b.Period()})
		}
	}
	return out, nil
}

func (r blockRepo) CoversDay(_ context.Context, unitID uuid.UUID, day time.Time) (bool, error) {
	for _, b := range r.t.data.blocks {
		if b.UnitID() == unitID && b.CoversDay(day) {
			return true, nil
		}
	}
	return false, nil
}

func (r blockRepo) List(_ context.Context, filter shared.BlockFilter) ([]*unit.Block, error) {
	var out []*unit.Block
	for _, b := range r.t.data.blocks {
		if filter.UnitID != nil && b.UnitID() != *filter.UnitID {
			continue
		}
		if filter.From != nil && b.Period().End().Compare(daterange.Day(*filter.From)) <= 0 {
			continue
		}
		if filter.To != nil && b.Period().Start().After(daterange.Day(*filter.To)) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate().Equal(out[j].StartDate()) {
			return out[i].StartDate().Before(out[j].StartDate())
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

// --- coupons ---

type couponRepo struct{ t *memTx }

func (r couponRepo) FindByCode(_ context.Context, code coupon.Code) (*coupon.Coupon, error) {
	for _, row := range r.t.data.coupons {
		if row.coupon.Code() == code {
			c := row.coupon
			return coupon.NewCoupon(c.ID(), c.Code().String(), c.Discount(), c.ValidFrom(), c.ValidTo(), c.UsageLimit(), row.timesUsed)
		}
	}
	return nil, r.t.notFound("coupon not found")
}

func (r couponRepo) IncrementUsage(_ context.Context, id uuid.UUID) error {
	if err := r.t.writable("increment coupon usage"); err != nil {
		return err
	}
	row, ok := r.t.data.coupons[id]
	if !ok {
		return r.t.notFound("coupon not found")
	}
	if limit := row.coupon.UsageLimit(); limit != nil && row.timesUsed >= *limit {
		return coupon.ErrCouponExhausted
	}
	row.timesUsed++
	r.t.data.coupons[id] = row
	return nil
}

// --- users ---

type userRepo struct{ t *memTx }

func (r userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.t.data.users[id]
	if !ok {
		return nil, r.t.notFound("user not found")
	}
	return u, nil
}

func (r userRepo) FindByEmail(_ context.Context, email user.Email) (*user.User, error) {
	if email.IsZero() {
		return nil, r.t.notFound("user not found")
	}
	for _, u := range r.t.data.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, r.t.notFound("user not found")
}

func (r userRepo) Create(_ context.Context, u *user.User) error {
	if err := r.t.writable("create user"); err != nil {
		return err
	}
	if !u.Email().IsZero() {
		for _, other := range r.t.data.users {
			if other.Email() == u.Email() {
				return infra.WrapRepoErr(r.t.store.logger, infra.KindDuplicateKey, "email already registered", nil)
			}
		}
	}
	r.t.data.users[u.ID()] = u
	return nil
}

// --- pricing rules ---

type pricingRuleRepo struct{ t *memTx }

func (r pricingRuleRepo) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]pricing.Rule, error) {
	var out []pricing.Rule
	for _, rule := range r.t.data.rules {
		if rule.CategoryID == categoryID {
			out = append(out, rule)
		}
	}
	return out, nil
}

// --- booking numbers ---

type bookingNumberRepo struct{ t *memTx }

func (r bookingNumberRepo) Next(_ context.Context, day time.Time) (int, error) {
	if err := r.t.writable("next booking number"); err != nil {
		return 0, err
	}
	key := day.Format(time.DateOnly)
	r.t.data.counters[key]++
	return r.t.data.counters[key], nil
}

// --- booking sources ---

type bookingSourceRepo struct{ t *memTx }

func (r bookingSourceRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Source, error) {
	src, ok := r.t.data.sources[id]
	if !ok {
		return nil, r.t.notFound("booking source not found")
	}
	return &src, nil
}

func idSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
