package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chenyu445/toolbox-backend/internal/logger"
	"github.com/chenyu445/toolbox-backend/internal/middleware"
)

// Session returns the authenticated user's profile.
func (h *Handler) Session(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	u, err := h.directory.FindByID(c.Request.Context(), sess.UserID)
	if err != nil {
		logger.Error("user lookup failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user": viewOf(u),
		},
	})
}
