package middleware

import (
	"context"
	"strings"

	"github.com/ErlanBelekov/blog-api/internal/domain"
	ctxlog "github.com/ErlanBelekov/blog-api/internal/log"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

// Authenticator resolves a raw bearer token to a stored user.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*domain.User, error)
}

// RequireAuth rejects the request unless it carries a valid bearer token for
// an existing user. On success the user is available via CurrentUser.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			_ = c.Error(domain.ErrUnauthenticated)
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), raw)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when the token checks out and otherwise lets
// the request through anonymously.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if user, err := auth.Authenticate(c.Request.Context(), raw); err == nil {
				setUser(c, user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by RequireAuth or OptionalAuth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	raw = strings.TrimSpace(raw)
	return raw, ok && raw != ""
}

func setUser(c *gin.Context, user *domain.User) {
	c.Set(userKey, user)
	c.Request = c.Request.WithContext(ctxlog.WithUserID(c.Request.Context(), user.ID))
}
