//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"reservation-engine/internal/domain/user"
	reqdto "reservation-engine/internal/handler/dto/request"
	"reservation-engine/internal/handler/middleware"
	"reservation-engine/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var testNow = time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

// newTestEngine returns a bare engine with the error handler installed and an
// auth middleware backed by a real token service.
func newTestEngine(t *testing.T) (*gin.Engine, *middleware.AuthMiddleware) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, reqdto.RegisterValidators())

	engine := gin.New()
	engine.Use(middleware.ErrorHandler())
	return engine, middleware.NewAuthMiddleware(jwt.NewService(testSecret, time.Hour))
}

func tokenFor(t *testing.T, id uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(testSecret, time.Hour).GenerateToken(id, role)
	require.NoError(t, err)
	return token
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		if raw, ok := body.(string); ok {
			reqBody.WriteString(raw)
		} else {
			encoded, err := json.Marshal(body)
			require.NoError(t, err, "Failed to encode request body to JSON")
			reqBody.Write(encoded)
		}
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "body: %s", w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	decodeBody(t, w, &resp)
	return resp.Error.Message
}
