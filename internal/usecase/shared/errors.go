package shared

import (
	"errors"

	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/domain/category"
	"reservation-engine/internal/domain/coupon"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/pricing"
	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/pkg/errs"
)

var (
	ErrCategoryNotFound = errs.Mark(errs.New("room category not found"), errs.ErrNotFound)
	ErrUnitNotFound     = errs.Mark(errs.New("unit not found"), errs.ErrNotFound)
	ErrBookingNotFound  = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrBlockNotFound    = errs.Mark(errs.New("unit block not found"), errs.ErrNotFound)
	ErrSourceNotFound   = errs.Mark(errs.New("booking source not found"), errs.ErrNotFound)

	ErrInvalidCoupon       = errs.Mark(errs.New("coupon code is not valid"), errs.ErrValidation)
	ErrGuestEmailRequired  = errs.Mark(errs.New("guest email is required for online bookings"), errs.ErrValidation)
	ErrGuestNameRequired   = errs.Mark(errs.New("guest name is required"), errs.ErrValidation)
	ErrOverrideNotAllowed  = errs.Mark(errs.New("price override is only allowed on manual bookings"), errs.ErrValidation)
	ErrSoldOut             = errs.Mark(errs.New("no unit of this category is available for the requested stay"), errs.ErrConflict)
	ErrUnitUnavailable     = errs.Mark(errs.New("unit already has a booking or block in this period"), errs.ErrConflict)
	ErrDailyNumberExceeded = errs.Mark(errs.New("daily booking number range is exhausted"), errs.ErrConflict)
	ErrCouponLimitReached  = errs.Mark(errs.New("coupon usage limit was reached by other bookings"), errs.ErrConflict)
	ErrInsufficientRole    = errs.Mark(errs.New("insufficient role for this operation"), errs.ErrForbidden)
	ErrNotBookingOwner     = errs.Mark(errs.New("booking belongs to another guest"), errs.ErrForbidden)
)

var errorClasses = []struct {
	err   error
	class error
}{
	{daterange.ErrInvalidRange, errs.ErrValidation},
	{pricing.ErrNoNights, errs.ErrValidation},
	{pricing.ErrInvalidGuestCount, errs.ErrValidation},
	{pricing.ErrOverrideReasonRequired, errs.ErrValidation},
	{category.ErrOccupancyExceeded, errs.ErrValidation},
	{booking.ErrNoAdults, errs.ErrValidation},
	{booking.ErrNegativeTotal, errs.ErrValidation},
	{booking.ErrInvalidStatus, errs.ErrValidation},
	{booking.ErrStatusReasonRequired, errs.ErrValidation},
	{unit.ErrBlockReasonRequired, errs.ErrValidation},
	{user.ErrInvalidEmail, errs.ErrValidation},
	{user.ErrNameRequired, errs.ErrValidation},
	{coupon.ErrInvalidCouponCode, errs.ErrValidation},
	{coupon.ErrCouponExpired, errs.ErrValidation},
	{coupon.ErrCouponNotYetValid, errs.ErrValidation},
	{coupon.ErrCouponExhausted, errs.ErrValidation},

	{pricing.ErrOverrideBelowFloor, errs.ErrConflict},
	{booking.ErrInvalidTransition, errs.ErrConflict},
	{booking.ErrTerminalStatus, errs.ErrConflict},
	{booking.ErrSameStatus, errs.ErrConflict},
}

// Classify marks a domain error with its error class. Errors that already
// carry a class, and unknown errors, are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, class := range []error{errs.ErrValidation, errs.ErrConflict, errs.ErrNotFound, errs.ErrForbidden} {
		if errs.Is(err, class) {
			return err
		}
	}
	for _, c := range errorClasses {
		if errors.Is(err, c.err) {
			return errs.Mark(err, c.class)
		}
	}
	return err
}

// RepoErr maps a repository error, turning NOT_FOUND into notFound.
func RepoErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

// RaceLost reports whether a write lost against a concurrent one and the
// whole attempt may be re-run.
func RaceLost(err error) bool {
	return infra.IsKind(err, infra.KindConflict) ||
		infra.IsKind(err, infra.KindDuplicateKey) ||
		errs.Is(err, ErrUnitUnavailable)
}
