package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a staff member or a guest account that owns bookings.
type User struct {
	id           uuid.UUID
	email        Email
	name         string
	phone        string
	passwordHash string
	role         Role
	isGuest      bool
	isActive     bool
	createdAt    time.Time
}

// NewGuestAccount creates the lightweight account behind a public booking.
// placeholderHash must come from password.PlaceholderHash.
func NewGuestAccount(email Email, name, phone, placeholderHash string, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return &User{
		id:           uuid.New(),
		email:        email,
		name:         name,
		phone:        strings.TrimSpace(phone),
		passwordHash: placeholderHash,
		role:         RoleGuest,
		isGuest:      true,
		isActive:     true,
		createdAt:    now,
	}, nil
}

func Reconstruct(id uuid.UUID, email Email, name, phone, passwordHash string, role Role, isGuest, isActive bool, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		name:         name,
		phone:        phone,
		passwordHash: passwordHash,
		role:         role,
		isGuest:      isGuest,
		isActive:     isActive,
		createdAt:    createdAt,
	}
}

// CanLogin reports whether the password may authenticate this account.
// Guest accounts never log in regardless of what compare says.
func (u *User) CanLogin(password string, compare func(hash, password string) error) bool {
	if u.isGuest || !u.isActive || u.passwordHash == "" {
		return false
	}
	return compare(u.passwordHash, password) == nil
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) Name() string         { return u.name }
func (u *User) Phone() string        { return u.phone }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) IsGuest() bool        { return u.isGuest }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
