package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/handler/httperr"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/pkg/jwt"
	"reservation-engine/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const ctxActorKey = "actor"

var (
	errTokenRequired = errs.Mark(errs.New("access token required"), errs.ErrUnauthorized)
	errTokenInvalid  = errs.Mark(errs.New("invalid or expired token"), errs.ErrUnauthorized)
)

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Access token required", nil)
			return
		}

		actor, err := m.authenticate(token)
		if err != nil {
			slog.Warn("token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.Mark(err, errTokenInvalid), "Invalid or expired token", nil)
			return
		}

		setActor(c, actor)
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := GetActor(c).Require(minRole); err != nil {
			httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present and leaves the
// caller anonymous otherwise. An invalid token is never upgraded to anonymous.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		actor, err := m.authenticate(token)
		if err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.Mark(err, errTokenInvalid), "Invalid or expired token", nil)
			return
		}

		setActor(c, actor)
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(token string) (shared.Actor, error) {
	claims, err := m.tokenValidator.ValidateToken(token)
	if err != nil {
		return shared.Actor{}, err
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return shared.Actor{}, err
	}
	return shared.Actor{ID: claims.UserID, Role: role}, nil
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

func setActor(c *gin.Context, actor shared.Actor) {
	c.Set(ctxActorKey, actor)
	c.Set("jwt_claims", map[string]any{
		"user_id": actor.ID.String(),
		"role":    actor.Role.String(),
	})
}

// GetActor returns the authenticated caller, or an anonymous actor.
func GetActor(c *gin.Context) shared.Actor {
	if v, exists := c.Get(ctxActorKey); exists {
		if actor, ok := v.(shared.Actor); ok {
			return actor
		}
	}
	return shared.Anonymous()
}
