//go:build unit

package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/handler"
	"reservation-engine/internal/handler/api"
	"reservation-engine/internal/handler/middleware"
	commandsmock "reservation-engine/internal/mock/commands"
	queriesmock "reservation-engine/internal/mock/queries"
	"reservation-engine/internal/pkg/config"
	"reservation-engine/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSecret = "router-secret"

// newRouter wires every handler over mocks with no expectations, so any
// request that slips past the middleware fails the test.
func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	handlers := handler.Handlers{
		Auth:         api.NewAuthHandler(commandsmock.NewMockAuthCommands(ctrl), queriesmock.NewMockUserQueries(ctrl)),
		Availability: api.NewAvailabilityHandler(queriesmock.NewMockAvailabilityQueries(ctrl)),
		Pricing:      api.NewPricingHandler(queriesmock.NewMockPricingQueries(ctrl)),
		Booking:      api.NewBookingHandler(commandsmock.NewMockBookingCommands(ctrl), queriesmock.NewMockBookingQueries(ctrl)),
		Block:        api.NewBlockHandler(commandsmock.NewMockUnitBlockCommands(ctrl), queriesmock.NewMockBlockQueries(ctrl)),
	}

	cfg := config.NewTestConfig()
	engine := gin.New()
	auth := middleware.NewAuthMiddleware(jwt.NewService(testSecret, time.Hour))
	require.NoError(t, handler.NewRouter(engine, cfg, middleware.NewLogger(cfg.Log), handlers, auth))
	return engine
}

func token(t *testing.T, role user.Role) string {
	t.Helper()
	tok, err := jwt.NewService(testSecret, time.Hour).GenerateToken(uuid.New(), role)
	require.NoError(t, err)
	return tok
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_AccessControl(t *testing.T) {
	router := newRouter(t)
	id := uuid.New().String()

	cases := []struct {
		name       string
		method     string
		path       string
		role       user.Role
		expectCode int
	}{
		{name: "manual booking needs a token", method: http.MethodPost, path: "/api/bookings/manual", expectCode: http.StatusUnauthorized},
		{name: "manual booking is staff only", method: http.MethodPost, path: "/api/bookings/manual", role: user.RoleGuest, expectCode: http.StatusForbidden},
		{name: "booking lookup needs a token", method: http.MethodGet, path: "/api/bookings/" + id, expectCode: http.StatusUnauthorized},
		{name: "confirm is staff only", method: http.MethodPost, path: "/api/bookings/" + id + "/confirm", role: user.RoleGuest, expectCode: http.StatusForbidden},
		{name: "check-in is staff only", method: http.MethodPost, path: "/api/bookings/" + id + "/check-in", role: user.RoleGuest, expectCode: http.StatusForbidden},
		{name: "status override needs a manager", method: http.MethodPut, path: "/api/bookings/" + id + "/status", role: user.RoleStaff, expectCode: http.StatusForbidden},
		{name: "blocking a unit is staff only", method: http.MethodPost, path: "/api/units/" + id + "/blocks", role: user.RoleGuest, expectCode: http.StatusForbidden},
		{name: "listing blocks needs a token", method: http.MethodGet, path: "/api/blocks", expectCode: http.StatusUnauthorized},
		{name: "unblocking is staff only", method: http.MethodDelete, path: "/api/blocks/" + id, role: user.RoleGuest, expectCode: http.StatusForbidden},
		{name: "me needs a token", method: http.MethodGet, path: "/api/auth/me", expectCode: http.StatusUnauthorized},
		{name: "online booking rejects a bad token", method: http.MethodPost, path: "/api/bookings", role: "bogus", expectCode: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			switch tc.role {
			case "":
			case "bogus":
				req.Header.Set("Authorization", "Bearer not-a-token")
			default:
				req.Header.Set("Authorization", "Bearer "+token(t, tc.role))
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.expectCode, rec.Code, rec.Body.String())
		})
	}
}
