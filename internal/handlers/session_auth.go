package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akalan-edu/portal-service/internal/auth"
	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
)

// SessionAuthMiddleware authenticates requests against the redis session
// store. Tokens are opaque bearer tokens issued at login; every authenticated
// request refreshes the session's idle TTL.
type SessionAuthMiddleware struct {
	sessions *auth.SessionStore
	userRepo repositories.UserRepository
}

func NewSessionAuthMiddleware(sessions *auth.SessionStore, userRepo repositories.UserRepository) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		sessions: sessions,
		userRepo: userRepo,
	}
}

// AuthMiddleware returns a Gin middleware that resolves the bearer token to a
// session and loads the user into the request context.
func (sam *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "missing or malformed authorization header",
			})
			c.Abort()
			return
		}

		session, err := sam.sessions.Get(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrSessionNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "unauthorized",
					"message": "session expired or unknown",
				})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "internal_error",
					"message": "failed to resolve session",
				})
			}
			c.Abort()
			return
		}

		user, err := sam.userRepo.GetByID(c.Request.Context(), session.UserID)
		if err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "account no longer available",
			})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_role", user.Role)
		c.Set("session_token", token)

		c.Next()
	}
}

// RequireRoleMiddleware restricts a route to the given roles. It must run
// after AuthMiddleware.
func (sam *SessionAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get("user_role")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "authentication required",
			})
			c.Abort()
			return
		}

		userRole := role.(models.UserRole)
		for _, allowed := range roles {
			if userRole == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "insufficient role for this operation",
		})
		c.Abort()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}
