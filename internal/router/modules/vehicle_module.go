package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yogapratama/leasedrive/internal/container"
	"github.com/yogapratama/leasedrive/internal/domain/entity"
	repo "github.com/yogapratama/leasedrive/internal/domain/repository"
	handlers "github.com/yogapratama/leasedrive/internal/interface/http"
	"github.com/yogapratama/leasedrive/internal/interface/middleware"
)

// VehicleModule wires the listing routes. Reads are public; writes require
// a dealer or admin role.
type VehicleModule struct {
	Handler *handlers.VehicleHandler
	Users   repo.UserRepository
}

func NewVehicleModule(h *handlers.VehicleHandler, users repo.UserRepository) *VehicleModule {
	return &VehicleModule{Handler: h, Users: users}
}

func (m *VehicleModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	searchLimiter := middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/vehicles/search", searchLimiter, m.Handler.Search)
	rg.GET("/vehicles/:id", searchLimiter, m.Handler.Get)

	dealer := rg.Group("/")
	dealer.Use(middleware.Auth(rdb, container.GetJWT(), m.Users))
	dealer.Use(middleware.RequireRole(entity.RoleDealer, entity.RoleAdmin))
	dealer.Use(middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		dealer.POST("/vehicles", m.Handler.Create)
		dealer.GET("/vehicles/mine", m.Handler.Mine)
		dealer.PUT("/vehicles/:id", m.Handler.Update)
		dealer.DELETE("/vehicles/:id", m.Handler.Delete)
		dealer.POST("/vehicles/:id/photos", m.Handler.UploadPhoto)
	}
}
