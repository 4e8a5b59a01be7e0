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

// DealershipModule wires the application workflow. Decisions are admin-only;
// the role check lives here so the service can assume an authorized caller.
type DealershipModule struct {
	Handler *handlers.DealershipHandler
	Users   repo.UserRepository
}

func NewDealershipModule(h *handlers.DealershipHandler, users repo.UserRepository) *DealershipModule {
	return &DealershipModule{Handler: h, Users: users}
}

func (m *DealershipModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, container.GetJWT(), m.Users))
	auth.Use(middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/dealership/apply", m.Handler.Apply)

		admin := auth.Group("/")
		admin.Use(middleware.RequireRole(entity.RoleAdmin))
		{
			admin.POST("/dealership/applications/:id/respond", m.Handler.Respond)
			admin.POST("/dealership/applications/:id/revoke", m.Handler.Revoke)
		}
	}
}
