package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/showroom-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/httperr"
)

const (
	ContextIdentity   = "identity"
	AccessTokenCookie = "access_token"
	AnonymousActor    = "anonymous"
)

// Credential extracts the caller credential: the Bearer header first, then
// the session cookie.
func Credential(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if tok := strings.TrimSpace(parts[1]); tok != "" {
				return tok
			}
		}
	}
	if tok, err := c.Cookie(AccessTokenCookie); err == nil {
		return strings.TrimSpace(tok)
	}
	return ""
}

// Identify verifies the caller credential. When required is false a missing
// or invalid credential is logged and the request continues anonymously.
func Identify(v auth.Verifier, required bool, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := Credential(c)

		if credential == "" {
			if required {
				httperr.Abort(c, domain.NewError(domain.Unauthorized, "authentication required"))
				return
			}
			logger.Debug("no credential supplied, continuing anonymously",
				"request_id", GetRequestID(c),
				"path", c.FullPath(),
			)
			c.Next()
			return
		}

		id, err := v.Verify(c.Request.Context(), credential)
		if err != nil {
			if required {
				logger.Info("credential rejected", "request_id", GetRequestID(c), "error", err)
				httperr.Abort(c, domain.WrapError(domain.Unauthorized, "invalid or expired credential", err))
				return
			}
			logger.Warn("credential rejected, continuing anonymously",
				"request_id", GetRequestID(c),
				"error", err,
			)
			c.Next()
			return
		}

		c.Set(ContextIdentity, id)
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

// Actor names the caller for audit records.
func Actor(c *gin.Context) string {
	if id, ok := IdentityFrom(c); ok && id.Subject != "" {
		return id.Subject
	}
	return AnonymousActor
}
