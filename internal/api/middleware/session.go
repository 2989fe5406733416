package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/taskdeck/internal/api/dto"
	"github.com/martijn/taskdeck/internal/core/domain"
	"github.com/martijn/taskdeck/internal/core/service"
)

const (
	SessionCookieName = "session"

	UserContextKey  = "user"
	StaleContextKey = "stale_session"
)

// SessionMiddleware resolves the session cookie into the current user once
// per request. A missing, malformed or expired cookie leaves the request
// unauthenticated; a valid cookie whose user row no longer exists is
// flagged so gates can reject it with 404 instead of 401.
func SessionMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := authService.ResolveSession(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(UserContextKey, user)
		case errors.Is(err, service.ErrUserNotFound):
			c.Set(StaleContextKey, true)
		case errors.Is(err, service.ErrInvalidSession):
			// Tampered or expired cookie, treat as logged out
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to resolve session",
				Code:    http.StatusInternalServerError,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireUser gates routes that mutate task state. Unauthenticated
// requests are rejected outright, not redirected.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}

		if SessionStale(c) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "Not Found",
				Message: "User not found",
				Code:    http.StatusNotFound,
			})
			c.Abort()
			return
		}

		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Not authenticated",
			Code:    http.StatusUnauthorized,
		})
		c.Abort()
	}
}

// CurrentUser retrieves the resolved user from the request context
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*domain.User)
	return user, ok
}

// SessionStale reports whether the request carried a valid session for a
// user that no longer exists.
func SessionStale(c *gin.Context) bool {
	return c.GetBool(StaleContextKey)
}
