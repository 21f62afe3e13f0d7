package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chenyu445/toolbox-backend/internal/logger"
	"github.com/chenyu445/toolbox-backend/internal/user"
)

type loginRequest struct {
	Code string `json:"code" binding:"required"`
}

// Login exchanges a mini-program code for a session. A fresh openid
// creates the user record exactly once; repeated logins reuse it.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code is required"})
		return
	}

	creds, err := h.exchanger.Code2Session(c.Request.Context(), req.Code)
	if err != nil {
		logger.Warn("code exchange failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login failed"})
		return
	}

	u, err := h.directory.FindByOpenID(c.Request.Context(), creds.OpenID)
	if err != nil {
		logger.Error("user lookup failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if u == nil {
		created := user.New(creds.OpenID, creds.UnionID, creds.SessionKey)
		if err := h.directory.Create(c.Request.Context(), created); err != nil {
			logger.Error("user creation failed", map[string]any{
				"error": err.Error(),
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		u = &created
	}

	token, err := h.sessionStore.Create(c.Request.Context(), u.ID, creds.OpenID)
	if err != nil {
		logger.Error("session creation failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	logger.Info("login succeeded", map[string]any{
		"user_id": u.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"sessionId": token,
			"user":      viewOf(u),
		},
	})
}
