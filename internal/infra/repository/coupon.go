package repository

import (
	"context"
	"log/slog"

	"reservation-engine/internal/domain/coupon"
	"reservation-engine/internal/domain/money"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"
	"reservation-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CouponRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCouponRepository(dbtx db.DBTX, logger *slog.Logger) *CouponRepository {
	return &CouponRepository{db: dbtx, logger: logger}
}

func (r *CouponRepository) FindByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error) {
	var (
		id                 uuid.UUID
		codeValue          string
		amountOff          pgtype.Int8
		percentOff         pgtype.Float8
		validFrom, validTo pgtype.Timestamptz
		usageLimit         pgtype.Int4
		timesUsed          int
	)
	err := r.db.QueryRow(ctx, `SELECT id, code, amount_off_cents, percent_off, valid_from, valid_to,
			usage_limit, times_used
		FROM coupons WHERE code = $1`, code.String()).
		Scan(&id, &codeValue, &amountOff, &percentOff, &validFrom, &validTo, &usageLimit, &timesUsed)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "coupon not found", err)
		}
		return nil, infra.MapPgError(r.logger, "failed to find coupon", err)
	}

	discount, err := toDiscount(amountOff, percentOff)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "invalid coupon discount", err)
	}

	var limit *int
	if usageLimit.Valid {
		n := int(usageLimit.Int32)
		limit = &n
	}

	return coupon.NewCoupon(id, codeValue, discount,
		pgconv.TimePtrFromPgtype(validFrom), pgconv.TimePtrFromPgtype(validTo), limit, timesUsed)
}

// IncrementUsage consumes one use of the coupon. It returns
// coupon.ErrCouponExhausted when the usage limit is already reached.
func (r *CouponRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE coupons SET times_used = times_used + 1
		WHERE id = $1 AND (usage_limit IS NULL OR times_used < usage_limit)`, id)
	if err != nil {
		return infra.MapPgError(r.logger, "failed to increment coupon usage", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM coupons WHERE id = $1)`, id).Scan(&exists); err != nil {
		return infra.MapPgError(r.logger, "failed to check coupon", err)
	}
	if !exists {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "coupon not found", nil)
	}
	return coupon.ErrCouponExhausted
}

func toDiscount(amountOff pgtype.Int8, percentOff pgtype.Float8) (coupon.Discount, error) {
	pct, err := pgconv.Float64PtrFromPgtype(percentOff)
	if err != nil {
		return coupon.Discount{}, err
	}
	var amount *money.Money
	if amountOff.Valid {
		m := money.Money(amountOff.Int64)
		amount = &m
	}
	return coupon.NewDiscount(amount, pct)
}
