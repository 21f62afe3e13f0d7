package app

import (
	"context"

	authhandler "github.com/chenyu445/toolbox-backend/internal/auth/handler"
	"github.com/chenyu445/toolbox-backend/internal/config"
	"github.com/chenyu445/toolbox-backend/internal/middleware"
	"github.com/chenyu445/toolbox-backend/internal/password"
	passwordhandler "github.com/chenyu445/toolbox-backend/internal/password/handler"
	"github.com/chenyu445/toolbox-backend/internal/session"
	"github.com/chenyu445/toolbox-backend/internal/user"
	"github.com/chenyu445/toolbox-backend/internal/wechat"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	directory := user.NewPostgresDirectory(infra.DB)
	passwordRepo := password.NewPostgresRepository(infra.DB)

	exchanger, err := wechat.New(
		cfg.WechatAppID,
		cfg.WechatAppSecret,
		cfg.WechatAPIBase,
	)
	if err != nil {
		return nil, nil, err
	}

	authHandler := authhandler.NewHandler(exchanger, sessionStore, directory)
	passwordHandler := passwordhandler.NewHandler(passwordRepo)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authHandler.RegisterRoutes(router, authMiddleware)
	passwordHandler.RegisterRoutes(router, authMiddleware)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
