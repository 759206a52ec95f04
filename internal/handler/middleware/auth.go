package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"order-saga/internal/domain/order"
	"order-saga/internal/handler/httperr"
	"order-saga/internal/pkg/cookie"
	"order-saga/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxOwnerKey = "order_owner"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireUser authenticates the bearer token and makes the user the order owner.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			httperr.AbortWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", nil, "Access token required", nil)
			return
		}

		userID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", err, "Invalid or expired token", nil)
			return
		}

		// the bearer token alone decides ownership; a cart cookie on the same request is ignored
		owner, err := order.ResolveOwner(&userID, "")
		if err != nil {
			httperr.AbortWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxOwnerKey, owner)
		c.Next()
	}
}

// RequireSession makes the anonymous cart session from the sessionId cookie the order owner.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, err := order.ResolveOwner(nil, cookie.GetSessionID(c))
		if err != nil {
			httperr.AbortWithCode(c, http.StatusBadRequest, "MISSING_OWNER", err, "User ID or session ID is required", nil)
			return
		}
		c.Set(ctxOwnerKey, owner)
		c.Next()
	}
}

func GetOwner(c *gin.Context) (order.OwnerRef, bool) {
	v, exists := c.Get(ctxOwnerKey)
	if !exists {
		return order.OwnerRef{}, false
	}
	owner, ok := v.(order.OwnerRef)
	return owner, ok && owner.IsValid()
}

// SetOwner is used by tests that bypass authentication.
func SetOwner(c *gin.Context, owner order.OwnerRef) {
	c.Set(ctxOwnerKey, owner)
}
