package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sharvari/wardrobe-backend/internal/domain"
	ctxlog "github.com/sharvari/wardrobe-backend/internal/log"
	"github.com/sharvari/wardrobe-backend/internal/repository"
)

const (
	errAuthRequired   = "Authentication required"
	errTokenInvalid   = "Invalid token"
	errUserNotFound   = "User not found"
	errInternalServer = "Server error"
)

const userKey = "currentUser"

// tokenVerifier is the subset of token.Service the guard needs.
type tokenVerifier interface {
	Verify(raw string) (string, error)
}

// Auth is the authentication guard shared by every protected endpoint.
// Three checks run in order: a Bearer token must be present, it must
// verify, and the user it references must still exist. Only then does the
// handler run, with the resolved user available via CurrentUser.
func Auth(tokens tokenVerifier, users repository.UserRepository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errAuthRequired})
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errTokenInvalid})
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
				return
			}
			logger.ErrorContext(c.Request.Context(), "auth guard user lookup", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
			return
		}

		ctx := ctxlog.ContextWithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by Auth. Panics if called from a
// handler that is not behind the guard.
func CurrentUser(c *gin.Context) *domain.User {
	return c.MustGet(userKey).(*domain.User)
}
