package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go-taskbot/internal/pkg/auth/application/domain"
	repository "go-taskbot/internal/pkg/auth/persistence/repository/port"
	"go-taskbot/internal/pkg/auth/token"
)

// userKey is where the middleware stores the authenticated user in the
// gin context.
const userKey = "auth.user"

// RequireUser validates the Bearer token and loads the user behind it.
// Requests without a valid, live account never reach the handler.
func RequireUser(tokens *token.Manager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			msg := "invalid token"
			if err == token.ErrExpired {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		user, err := users.FindByID(ctx, claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not load user"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}

// SetCurrentUser stores the user for handlers downstream. Exposed so
// tests can run authed handlers without a full token round trip.
func SetCurrentUser(c *gin.Context, u *domain.User) {
	c.Set(userKey, u)
}

// CurrentUser returns the user stored by RequireUser.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
