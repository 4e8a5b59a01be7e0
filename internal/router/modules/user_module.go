package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yogapratama/leasedrive/internal/container"
	repo "github.com/yogapratama/leasedrive/internal/domain/repository"
	handlers "github.com/yogapratama/leasedrive/internal/interface/http"
	"github.com/yogapratama/leasedrive/internal/interface/middleware"
)

// UserModule wires the profile routes.
type UserModule struct {
	Handler *handlers.UserHandler
	Users   repo.UserRepository
}

func NewUserModule(h *handlers.UserHandler, users repo.UserRepository) *UserModule {
	return &UserModule{Handler: h, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, container.GetJWT(), m.Users))
	auth.Use(
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
	}
}
