package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yogapratama/leasedrive/internal/application"
	"github.com/yogapratama/leasedrive/internal/interface/middleware"
	"github.com/yogapratama/leasedrive/pkg/response"
	"github.com/yogapratama/leasedrive/pkg/validation"
)

// UserHandler exposes the profile surface.
type UserHandler struct {
	Users *application.UserService
}

func NewUserHandler(users *application.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// GetProfile GET /api/profile (auth required)
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Users.GetProfile(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

// UpdateProfile PUT /api/profile (auth required)
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile updated", nil)
}
