package middleware

import (
	"strings"

	"github.com/agenda-br/core/internal/pkg/response"
	"github.com/agenda-br/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
)

const ContextKeyUserID = "user_id"

// Auth returns a middleware that enforces bearer-token authentication.
// On failure the request is aborted with 401 before any handler runs; on
// success the resolved account id is stored in the context. Handlers pass
// that id to every store call, never a client-supplied one.
func Auth(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "Token de autenticação ausente.")
			return
		}
		userID, err := sm.Authenticate(c.Request.Context(), token)
		if err != nil {
			// Invalid, expired and revoked tokens all read the same to
			// the caller.
			response.Unauthorized(c, "Token inválido ou expirado.")
			return
		}
		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated account id from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// ExtractToken returns the raw bearer token of the request, or "".
func ExtractToken(c *gin.Context) string {
	return extractToken(c)
}

func extractToken(c *gin.Context) string {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if auth == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return auth
}
