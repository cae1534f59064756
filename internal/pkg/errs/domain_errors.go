package errs

import "errors"

// Error classes shared by the usecase and handler layers. Specific errors are
// marked with one of these so callers can branch with Is.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")

	ErrUnauthorized = errors.New("unauthorized")

	// ErrConcurrencyConflict is returned once internal retries of a lost race are exhausted.
	ErrConcurrencyConflict = Mark(errors.New("concurrent modification, please retry"), ErrConflict)

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
