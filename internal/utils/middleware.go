package utils

import (
	"context"
	"errors"
	"log"
	"net/http"

	"helpdesk-app/internal/models"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

// RoleSource reads the caller's role from their own user document.
type RoleSource interface {
	GetRole(ctx context.Context, userID string) (models.Role, error)
}

// SessionReader loads a session by its opaque token.
type SessionReader interface {
	Get(ctx context.Context, token string) (*Session, error)
}

// SessionMiddleware resolves the caller from the session cookie and stores the
// session in the request context. It never aborts: public endpoints run with
// no session, and the per-route policy decides what is required.
func SessionMiddleware(store SessionReader, roles RoleSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := store.Get(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, ErrNoSession) {
				log.Printf("session lookup failed: %v", err)
			}
			c.Next()
			return
		}

		role, err := roles.GetRole(c.Request.Context(), sess.UserID)
		if err != nil {
			// Missing or unreadable user document degrades to the default role.
			role = models.RoleUser
		}
		sess.Role = role

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// GetSession returns the resolved session for the current request, if any.
func GetSession(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok
}

// Require aborts the request unless the session satisfies the policy.
// SelfOrSecretary routes pass the gate as Authenticated here; the owner
// comparison happens in the service once the record is loaded.
func Require(policy AccessPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := GetSession(c)

		gate := policy
		if gate == SelfOrSecretary {
			gate = Authenticated
		}

		if err := Authorize(sess, gate, ""); err != nil {
			if errors.Is(err, models.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Secretary permission required"})
			return
		}
		c.Next()
	}
}
