package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chenyu445/toolbox-backend/internal/logger"
	"github.com/chenyu445/toolbox-backend/internal/middleware"
	"github.com/chenyu445/toolbox-backend/internal/password"
	"github.com/chenyu445/toolbox-backend/internal/session"
)

type Handler struct {
	repo password.Repository
}

func NewHandler(repo password.Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts the password CRUD endpoints. Every route sits
// behind the gate and is scoped to the authenticated user's rows.
func (h *Handler) RegisterRoutes(r *gin.Engine, auth *middleware.AuthMiddleware) {
	group := r.Group("/passwords")
	group.Use(middleware.GinRequireAuth(auth))

	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

func currentSession(c *gin.Context) (*session.Data, bool) {
	sess, ok := middleware.SessionFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return sess, true
}

func serverError(c *gin.Context, msg string, err error) {
	logger.Error(msg, map[string]any{
		"error": err.Error(),
	})
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

func (h *Handler) List(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}

	entries, total, err := h.repo.List(c.Request.Context(), sess.UserID, page, pageSize)
	if err != nil {
		serverError(c, "password list failed", err)
		return
	}

	totalPages := (total + pageSize - 1) / pageSize

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"list": entries,
			"pagination": gin.H{
				"total":      total,
				"page":       page,
				"pageSize":   pageSize,
				"totalPages": totalPages,
			},
		},
	})
}

func (h *Handler) Get(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	entry, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), sess.UserID)
	if err != nil {
		serverError(c, "password lookup failed", err)
		return
	}
	if entry == nil {
		// Not-owned rows answer the same as missing ones.
		c.JSON(http.StatusNotFound, gin.H{"error": "Password entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entry,
	})
}

type createRequest struct {
	Title     string     `json:"title" binding:"required"`
	Placement string     `json:"placement"`
	Password  string     `json:"password" binding:"required"`
	ExpiredAt *time.Time `json:"expiredAt"`
	Note      string     `json:"note"`
}

func (h *Handler) Create(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and password are required"})
		return
	}

	entry := password.Entry{
		ID:        uuid.NewString(),
		UserID:    sess.UserID,
		Title:     req.Title,
		Placement: req.Placement,
		Password:  req.Password,
		ExpiredAt: req.ExpiredAt,
		Note:      req.Note,
	}

	if err := h.repo.Create(c.Request.Context(), entry); err != nil {
		serverError(c, "password creation failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"id": entry.ID},
	})
}

type updateRequest struct {
	Title     *string    `json:"title"`
	Placement *string    `json:"placement"`
	Password  *string    `json:"password"`
	ExpiredAt *time.Time `json:"expiredAt"`
	Note      *string    `json:"note"`
}

func (h *Handler) Update(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	upd := password.Update{
		Title:     req.Title,
		Placement: req.Placement,
		Password:  req.Password,
		ExpiredAt: req.ExpiredAt,
		Note:      req.Note,
	}
	if upd.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), c.Param("id"), sess.UserID, upd)
	if err != nil {
		serverError(c, "password update failed", err)
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Password entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password updated successfully",
	})
}

func (h *Handler) Delete(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	deleted, err := h.repo.Delete(c.Request.Context(), c.Param("id"), sess.UserID)
	if err != nil {
		serverError(c, "password delete failed", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Password entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password deleted successfully",
	})
}
