package middleware

import (
	"log/slog"
	"net/http"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RequireRoles restricts a route to the given roles. It must run after
// AuthMiddleware, which stores the caller's role in the context.
func RequireRoles(allowed ...domain.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}

		GetLoggerFromCtx(c.Request.Context()).Warn("Role not allowed on route",
			slog.String("role", string(role)),
			slog.String("path", c.FullPath()))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}
