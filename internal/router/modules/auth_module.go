package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yogapratama/leasedrive/internal/container"
	repo "github.com/yogapratama/leasedrive/internal/domain/repository"
	handlers "github.com/yogapratama/leasedrive/internal/interface/http"
	"github.com/yogapratama/leasedrive/internal/interface/middleware"
)

// AuthModule wires the credential lifecycle endpoints.
// Public: register, login, refresh, reset init/confirm, account confirm.
// Protected: logout, change password, confirm init.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repo.UserRepository
}

func NewAuthModule(h *handlers.AuthHandler, users repo.UserRepository) *AuthModule {
	return &AuthModule{Handler: h, Users: users}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	registerLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)
	resetInitLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	tokenConfirmLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/auth/reset/init", resetInitLimiter, m.Handler.ResetInit)
	rg.POST("/auth/reset/confirm", tokenConfirmLimiter, m.Handler.ResetConfirm)
	rg.POST("/auth/confirm", tokenConfirmLimiter, m.Handler.ConfirmAccount)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, container.GetJWT(), m.Users))
	auth.Use(middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.POST("/auth/password", m.Handler.ChangePassword)
		auth.POST("/auth/confirm/init", m.Handler.ConfirmInit)
	}
}
