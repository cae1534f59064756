//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/infra/memory"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/pkg/jwt"
	"reservation-engine/internal/pkg/password"
	"reservation-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore(logger)
	jwtService := jwt.NewService("test-secret", time.Hour)

	hash, err := password.HashPassword("front-desk-2025")
	require.NoError(t, err)
	staffEmail, err := user.NewEmail("desk@hotel.example")
	require.NoError(t, err)
	staff := user.Reconstruct(uuid.New(), staffEmail, "Front Desk", "", hash, user.RoleStaff, false, true, fixtureNow)
	store.AddUser(staff)

	inactiveEmail, err := user.NewEmail("former@hotel.example")
	require.NoError(t, err)
	store.AddUser(user.Reconstruct(uuid.New(), inactiveEmail, "Former", "", hash, user.RoleStaff, false, false, fixtureNow))

	placeholder, err := password.PlaceholderHash()
	require.NoError(t, err)
	guestEmail, err := user.NewEmail("guest@example.com")
	require.NoError(t, err)
	guest, err := user.NewGuestAccount(guestEmail, "Guest", "", placeholder, fixtureNow)
	require.NoError(t, err)
	store.AddUser(guest)

	auth := commands.NewAuthCommands(memory.NewUnitOfWork(store), jwtService, logger)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := auth.Login(context.Background(), "Desk@Hotel.example", "front-desk-2025")
		require.NoError(t, err)
		assert.Equal(t, staff.ID(), res.UserID)
		assert.Equal(t, user.RoleStaff, res.Role)

		claims, err := jwtService.ValidateToken(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, staff.ID(), claims.UserID)
		assert.Equal(t, "staff", claims.Role)
	})

	for _, tc := range []struct {
		name  string
		email string
		pass  string
	}{
		{name: "wrong password", email: "desk@hotel.example", pass: "not-the-password"},
		{name: "unknown email", email: "nobody@hotel.example", pass: "front-desk-2025"},
		{name: "inactive account", email: "former@hotel.example", pass: "front-desk-2025"},
		{name: "guest account", email: "guest@example.com", pass: "whatever-they-try"},
		{name: "malformed email", email: "desk", pass: "front-desk-2025"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Login(context.Background(), tc.email, tc.pass)
			require.Error(t, err)
			assert.True(t, errs.Is(err, commands.ErrInvalidCredentials))
			assert.True(t, errs.Is(err, errs.ErrUnauthorized))
		})
	}
}
