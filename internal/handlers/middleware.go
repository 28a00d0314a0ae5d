package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const userIDKey = "userID"

// requireAuth accepts a bearer token from the Authorization header or the
// token cookie and puts the authenticated user id on the context.
func (h *Handler) requireAuth(c *gin.Context) {
	var tokenStr string
	if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
		tokenStr = strings.TrimPrefix(ah, "Bearer ")
	}
	if tokenStr == "" {
		if v, err := c.Cookie("token"); err == nil {
			tokenStr = v
		}
	}
	if tokenStr == "" {
		c.AbortWithStatusJSON(401, gin.H{"success": false, "message": "No token provided"})
		return
	}
	userID, err := h.auth.ParseToken(tokenStr)
	if err != nil {
		c.AbortWithStatusJSON(401, gin.H{"success": false, "message": "Invalid token"})
		return
	}
	c.Set(userIDKey, userID)
	c.Next()
}

func userID(c *gin.Context) primitive.ObjectID {
	return c.MustGet(userIDKey).(primitive.ObjectID)
}
