package unit

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyCode     = errors.New("unit code is required")
	ErrInvalidStatus = errors.New("invalid unit status")
)

// Unit is one physical bookable room of a category.
type Unit struct {
	id         uuid.UUID
	categoryID uuid.UUID
	code       string
	floor      int
	enabled    bool
	status     Status
}

func NewUnit(id, categoryID uuid.UUID, code string, floor int, enabled bool, status Status) (*Unit, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Unit{
		id:         id,
		categoryID: categoryID,
		code:       code,
		floor:      floor,
		enabled:    enabled,
		status:     status,
	}, nil
}

// SetStatus replaces the cached status and reports whether it changed.
func (u *Unit) SetStatus(s Status) (bool, error) {
	if !s.IsValid() {
		return false, ErrInvalidStatus
	}
	if u.status == s {
		return false, nil
	}
	u.status = s
	return true, nil
}

func (u *Unit) ID() uuid.UUID         { return u.id }
func (u *Unit) CategoryID() uuid.UUID { return u.categoryID }
func (u *Unit) Code() string          { return u.code }
func (u *Unit) Floor() int            { return u.floor }
func (u *Unit) Enabled() bool         { return u.enabled }
func (u *Unit) Status() Status        { return u.status }
