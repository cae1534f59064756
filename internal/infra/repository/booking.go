package repository

import (
	"context"
	"log/slog"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/money"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"
	"reservation-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, booking_number, channel, category_id, unit_id, guest_id,
	check_in, check_out, adults, children,
	nights, nightly_rate_cents, base_cents, extra_adults, extra_adult_cents,
	extra_children, extra_child_cents, subtotal_cents, coupon_code, discount_cents,
	taxable_cents, tax_rate_percent, tax_cents, total_cents,
	overridden, override_reason, calculated_total_cents,
	status, source_id, agent_id, coupon_id, commission_cents, notes, cancel_reason,
	created_at, updated_at, confirmed_at, checked_in_at, checked_out_at, cancelled_at`

func activeStatuses() []string {
	out := make([]string, len(booking.ActiveStatuses))
	for i, s := range booking.ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

type BookingRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingRepository(dbtx db.DBTX, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{db: dbtx, logger: logger}
}

// Create inserts the booking with its guests. The bookings_no_overlap
// exclusion constraint turns a double booking into a CONFLICT error.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	s := b.Snapshot()
	p := s.Price
	_, err := r.db.Exec(ctx, `INSERT INTO bookings (`+bookingColumns+`) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
		$31, $32, $33, $34, $35, $36, $37, $38, $39, $40)`,
		s.ID, s.Number, string(s.Channel), s.CategoryID, s.UnitID, s.GuestID,
		s.Stay.Start(), s.Stay.End(), s.Adults, s.Children,
		p.Nights, p.NightlyRate.Cents(), p.Base.Cents(), p.ExtraAdults, p.ExtraAdultAmount.Cents(),
		p.ExtraChildren, p.ExtraChildAmount.Cents(), p.Subtotal.Cents(), p.CouponCode, p.DiscountAmount.Cents(),
		p.Taxable.Cents(), p.TaxRatePercent, p.TaxAmount.Cents(), p.TotalAmount.Cents(),
		p.Overridden, p.OverrideReason, p.CalculatedTotal.Cents(),
		string(s.Status), pgconv.UUIDPtrToPgtype(s.SourceID), pgconv.UUIDPtrToPgtype(s.AgentID),
		pgconv.UUIDPtrToPgtype(s.CouponID), s.Commission.Cents(), s.Notes, s.CancelReason,
		s.CreatedAt, s.UpdatedAt, pgconv.TimePtrToPgtype(s.ConfirmedAt), pgconv.TimePtrToPgtype(s.CheckedInAt),
		pgconv.TimePtrToPgtype(s.CheckedOutAt), pgconv.TimePtrToPgtype(s.CancelledAt),
	)
	if err != nil {
		return infra.MapPgError(r.logger, "failed to insert booking", err)
	}

	for i, g := range s.Guests {
		_, err := r.db.Exec(ctx, `INSERT INTO booking_guests (booking_id, position, name, email, phone, is_primary)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			s.ID, i, g.Name, g.Email, g.Phone, g.IsPrimary)
		if err != nil {
			return infra.MapPgError(r.logger, "failed to insert booking guest", err)
		}
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.find(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

func (r *BookingRepository) LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.find(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

func (r *BookingRepository) find(ctx context.Context, query string, id uuid.UUID) (*booking.Booking, error) {
	snap, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to find booking", err)
	}

	guests, err := r.guests(ctx, id)
	if err != nil {
		return nil, err
	}
	snap.Guests = guests
	return booking.Reconstruct(snap), nil
}

func (r *BookingRepository) guests(ctx context.Context, bookingID uuid.UUID) ([]booking.Guest, error) {
	rows, err := r.db.Query(ctx, `SELECT name, email, phone, is_primary FROM booking_guests
		WHERE booking_id = $1 ORDER BY position`, bookingID)
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to load booking guests", err)
	}
	guests, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (booking.Guest, error) {
		var g booking.Guest
		err := row.Scan(&g.Name, &g.Email, &g.Phone, &g.IsPrimary)
		return g, err
	})
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to scan booking guests", err)
	}
	return guests, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	s := b.Snapshot()
	tag, err := r.db.Exec(ctx, `UPDATE bookings SET
			status = $2, confirmed_at = $3, checked_in_at = $4, checked_out_at = $5,
			cancelled_at = $6, cancel_reason = $7, updated_at = $8
		WHERE id = $1`,
		s.ID, string(s.Status),
		pgconv.TimePtrToPgtype(s.ConfirmedAt), pgconv.TimePtrToPgtype(s.CheckedInAt),
		pgconv.TimePtrToPgtype(s.CheckedOutAt), pgconv.TimePtrToPgtype(s.CancelledAt),
		s.CancelReason, s.UpdatedAt,
	)
	if err != nil {
		return infra.MapPgError(r.logger, "failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", nil)
	}
	return nil
}

func (r *BookingRepository) Occupancies(ctx context.Context, unitIDs []uuid.UUID, period daterange.DateRange) ([]availability.Occupancy, error) {
	if len(unitIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT unit_id, check_in, check_out FROM bookings
		WHERE unit_id = ANY($1) AND status = ANY($2) AND check_in < $4 AND $3 < check_out`,
		unitIDs, activeStatuses(), period.Start(), period.End())
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to query booking occupancies", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (availability.Occupancy, error) {
		var (
			unitID     uuid.UUID
			start, end time.Time
		)
		if err := row.Scan(&unitID, &start, &end); err != nil {
			return availability.Occupancy{}, err
		}
		stay, err := daterange.New(start, end)
		return availability.Occupancy{UnitID: unitID, Period: stay}, err
	})
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to scan booking occupancies", err)
	}
	return out, nil
}

func (r *BookingRepository) HasCheckedIn(ctx context.Context, unitID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM bookings WHERE unit_id = $1 AND status = $2)`,
		unitID, string(booking.StatusCheckedIn)).Scan(&exists)
	if err != nil {
		return false, infra.MapPgError(r.logger, "failed to check occupancy", err)
	}
	return exists, nil
}

func scanBooking(row pgx.Row) (booking.Snapshot, error) {
	var (
		s                                             booking.Snapshot
		channel, status                               string
		checkIn, checkOut                             time.Time
		nightly, base, extraAdult, extraChild         int64
		subtotal, discount, taxable, tax, total, calc int64
		commission                                    int64
		sourceID, agentID, couponID                   pgtype.UUID
		confirmedAt, checkedInAt                      pgtype.Timestamptz
		checkedOutAt, cancelledAt                     pgtype.Timestamptz
	)
	p := &s.Price
	err := row.Scan(
		&s.ID, &s.Number, &channel, &s.CategoryID, &s.UnitID, &s.GuestID,
		&checkIn, &checkOut, &s.Adults, &s.Children,
		&p.Nights, &nightly, &base, &p.ExtraAdults, &extraAdult,
		&p.ExtraChildren, &extraChild, &subtotal, &p.CouponCode, &discount,
		&taxable, &p.TaxRatePercent, &tax, &total,
		&p.Overridden, &p.OverrideReason, &calc,
		&status, &sourceID, &agentID, &couponID, &commission, &s.Notes, &s.CancelReason,
		&s.CreatedAt, &s.UpdatedAt, &confirmedAt, &checkedInAt, &checkedOutAt, &cancelledAt,
	)
	if err != nil {
		return booking.Snapshot{}, err
	}

	stay, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return booking.Snapshot{}, err
	}
	s.Stay = stay
	s.Channel = booking.Channel(channel)
	s.Status = booking.Status(status)
	p.NightlyRate = money.Money(nightly)
	p.Base = money.Money(base)
	p.ExtraAdultAmount = money.Money(extraAdult)
	p.ExtraChildAmount = money.Money(extraChild)
	p.Subtotal = money.Money(subtotal)
	p.DiscountAmount = money.Money(discount)
	p.Taxable = money.Money(taxable)
	p.TaxAmount = money.Money(tax)
	p.TotalAmount = money.Money(total)
	p.CalculatedTotal = money.Money(calc)
	s.Commission = money.Money(commission)
	s.SourceID = pgconv.UUIDPtrFromPgtype(sourceID)
	s.AgentID = pgconv.UUIDPtrFromPgtype(agentID)
	s.CouponID = pgconv.UUIDPtrFromPgtype(couponID)
	s.ConfirmedAt = pgconv.TimePtrFromPgtype(confirmedAt)
	s.CheckedInAt = pgconv.TimePtrFromPgtype(checkedInAt)
	s.CheckedOutAt = pgconv.TimePtrFromPgtype(checkedOutAt)
	s.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	return s, nil
}
