package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/showroom-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/httperr"
)

const RoleAdmin = "admin"

// AdminAuth guards admin routes with HTTP Basic credentials.
func AdminAuth(creds *auth.AdminCredentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || !creds.Check(user, pass) {
			c.Header("WWW-Authenticate", `Basic realm="showroom-admin"`)
			httperr.Abort(c, domain.NewError(domain.Unauthorized, "admin credentials required"))
			return
		}

		c.Set(ContextIdentity, auth.Identity{Subject: user, Role: RoleAdmin})
		c.Next()
	}
}
