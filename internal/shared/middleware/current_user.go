package middleware

import (
	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// CurrentUser resolves the acting user. The app runs in single-user
// mode without authentication, so every request acts as the seeded
// account. Swapping this for a session or token lookup is the upgrade
// path to multi-user.
func CurrentUser(userID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID reads the acting user id set by CurrentUser.
func UserID(c *gin.Context) int {
	return c.GetInt(userIDKey)
}
