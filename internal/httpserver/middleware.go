package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"warung/internal/domain"
)

const (
	sessionCookie = "session"
	cartCookie    = "cart_session"

	userCtxKey = "currentUser"
)

// requireAuth resolves the session cookie to a user and aborts with 401 when
// there is none or it does not validate.
func (h *handlers) requireAuth(c *gin.Context) {
	user := h.sessionUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "authentication required")
		c.Abort()
		return
	}
	c.Set(userCtxKey, user)
	c.Next()
}

// optionalAuth attaches the user when a valid session exists and lets the
// request through either way.
func (h *handlers) optionalAuth(c *gin.Context) {
	if user := h.sessionUser(c); user != nil {
		c.Set(userCtxKey, user)
	}
	c.Next()
}

func (h *handlers) requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		respondError(c, http.StatusForbidden, "insufficient permissions")
		c.Abort()
	}
}

func (h *handlers) sessionUser(c *gin.Context) *domain.User {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		return nil
	}
	user, err := h.deps.AuthSvc.UserFromToken(c.Request.Context(), token)
	if err != nil {
		return nil
	}
	return user
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
