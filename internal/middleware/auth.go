package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/session"
)

// RequireAuth redirects requests without a session to loginPath. Authenticated
// requests continue with user_id and username set on the context.
func RequireAuth(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := session.CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		// Store user info in context
		c.Set("user_id", identity.ID)
		c.Set("username", identity.Username)
		c.Next()
	}
}
