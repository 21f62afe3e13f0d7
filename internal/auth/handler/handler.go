package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chenyu445/toolbox-backend/internal/middleware"
	"github.com/chenyu445/toolbox-backend/internal/session"
	"github.com/chenyu445/toolbox-backend/internal/user"
	"github.com/chenyu445/toolbox-backend/internal/wechat"
)

type Handler struct {
	exchanger    wechat.Exchanger
	sessionStore session.Store
	directory    user.Directory
}

func NewHandler(
	exchanger wechat.Exchanger,
	sessionStore session.Store,
	directory user.Directory,
) *Handler {
	return &Handler{
		exchanger:    exchanger,
		sessionStore: sessionStore,
		directory:    directory,
	}
}

// RegisterRoutes mounts the auth endpoints. Login is the only public
// one; session and logout sit behind the gate.
func (h *Handler) RegisterRoutes(r *gin.Engine, auth *middleware.AuthMiddleware) {
	group := r.Group("/auth")
	group.POST("/login", h.Login)

	protected := group.Group("")
	protected.Use(middleware.GinRequireAuth(auth))
	protected.GET("/session", h.Session)
	protected.POST("/logout", h.Logout)
}

// userView is the client-facing user projection. The cached provider
// secret never leaves the server.
type userView struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
}

func viewOf(u *user.User) userView {
	return userView{
		ID:        u.ID,
		Nickname:  u.Nickname,
		AvatarURL: u.AvatarURL,
	}
}
