package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chenyu445/toolbox-backend/internal/logger"
	"github.com/chenyu445/toolbox-backend/internal/middleware"
)

// Logout deletes the current session token. Deleting an already-gone
// token is fine; the response is idempotent.
func (h *Handler) Logout(c *gin.Context) {
	token, ok := middleware.TokenFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.sessionStore.Delete(c.Request.Context(), token); err != nil {
		logger.Error("session delete failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}
