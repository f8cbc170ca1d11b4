package middleware

import (
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the context.
const userIDKey = contextKey("userID")

// userRoleKey is the key used to store the authenticated user's role in the context.
const userRoleKey = contextKey("userRole")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(userIDKey); v != nil {
			return v.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetUserRoleFromContext retrieves the authenticated user's role from the Gin
// context, falling back to the request context.
func GetUserRoleFromContext(c *gin.Context) (domain.StaffRole, bool) {
	roleVal, exists := c.Get(string(userRoleKey))
	if !exists {
		if v := c.Request.Context().Value(userRoleKey); v != nil {
			return v.(domain.StaffRole), true
		}
		return "", false
	}

	role, ok := roleVal.(domain.StaffRole)
	if !ok {
		return "", false
	}
	return role, true
}
