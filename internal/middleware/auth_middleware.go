package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ozank/stationhub/internal/app/models"
	"github.com/ozank/stationhub/internal/app/models/dto"
	"github.com/ozank/stationhub/internal/app/services"
)

// Context keys set by the auth middleware
const (
	ContextUserKey = "authUser"
)

// AuthMiddleware guards routes with bearer-key authentication and role
// membership checks
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireRole authenticates the request's bearer key and enforces that the
// resolved user's role is in the allowed set. 401 when the key is missing
// or unknown, 403 when the role does not qualify.
func (m *AuthMiddleware) RequireRole(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := extractBearerKey(c.GetHeader("Authorization"))
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		user, err := m.authService.Authorize(c.Request.Context(), key, allowedRoles...)
		if err != nil {
			abortWithAuthError(c, err)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// extractBearerKey pulls the opaque session key out of an Authorization
// header value
func extractBearerKey(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	key := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if key == "" {
		return "", false
	}
	return key, true
}

// CurrentUser returns the authenticated user placed in the context by
// RequireRole
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
