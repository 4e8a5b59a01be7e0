package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yogapratama/leasedrive/internal/application"
	"github.com/yogapratama/leasedrive/internal/domain/entity"
	"github.com/yogapratama/leasedrive/internal/interface/middleware"
	"github.com/yogapratama/leasedrive/pkg/response"
	"github.com/yogapratama/leasedrive/pkg/validation"
)

// DealershipHandler exposes the application workflow. The respond/revoke
// routes sit behind admin-only middleware; the handler itself does not
// re-check roles.
type DealershipHandler struct {
	Dealerships *application.DealershipService
}

func NewDealershipHandler(d *application.DealershipService) *DealershipHandler {
	return &DealershipHandler{Dealerships: d}
}

// Apply POST /api/dealership/apply (auth required)
func (h *DealershipHandler) Apply(c *gin.Context) {
	u, err := h.Dealerships.Apply(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "application submitted", nil)
}

// Respond POST /api/dealership/applications/:id/respond (admin)
func (h *DealershipHandler) Respond(c *gin.Context) {
	var req struct {
		Decision string `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Dealerships.Respond(c.Request.Context(), c.Param("id"), entity.ApplicationStatus(req.Decision))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "application "+req.Decision, nil)
}

// Revoke POST /api/dealership/applications/:id/revoke (admin)
func (h *DealershipHandler) Revoke(c *gin.Context) {
	u, err := h.Dealerships.Revoke(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "approval revoked", nil)
}
