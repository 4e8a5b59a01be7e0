package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yogapratama/leasedrive/internal/application"
	"github.com/yogapratama/leasedrive/internal/interface/middleware"
	"github.com/yogapratama/leasedrive/pkg/response"
	"github.com/yogapratama/leasedrive/pkg/validation"
)

// VehicleHandler exposes vehicle listing CRUD, photo upload, and search.
type VehicleHandler struct {
	Vehicles *application.VehicleService
}

func NewVehicleHandler(v *application.VehicleService) *VehicleHandler {
	return &VehicleHandler{Vehicles: v}
}

type vehicleRequest struct {
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year" binding:"required"`
	PricePerDay  int64  `json:"price_per_day" binding:"required,gte=1"`
	Transmission string `json:"transmission" binding:"required,oneof=manual automatic"`
	Fuel         string `json:"fuel" binding:"required,oneof=petrol diesel hybrid electric"`
	Seats        int    `json:"seats" binding:"required,gte=1,lte=12"`
	City         string `json:"city" binding:"required"`
}

func (r vehicleRequest) toInput() application.VehicleInput {
	return application.VehicleInput{
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		PricePerDay:  r.PricePerDay,
		Transmission: r.Transmission,
		Fuel:         r.Fuel,
		Seats:        r.Seats,
		City:         r.City,
	}
}

// Create POST /api/vehicles (dealer/admin)
func (h *VehicleHandler) Create(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	v, err := h.Vehicles.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.toInput())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, v, "vehicle listed", nil)
}

// Get GET /api/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	v, err := h.Vehicles.Get(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "vehicle", nil)
}

// Mine GET /api/vehicles/mine (dealer/admin)
func (h *VehicleHandler) Mine(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	vs, err := h.Vehicles.ListByDealer(c.GetString(middleware.CtxUserIDKey), limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, vs, "vehicles", nil)
}

// Update PUT /api/vehicles/:id (dealer/admin, owner only)
func (h *VehicleHandler) Update(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	v, err := h.Vehicles.Update(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"), req.toInput())
	if err != nil {
		if errors.Is(err, application.ErrNotOwner) {
			response.Error[any](c, http.StatusForbidden, "not the listing owner", nil)
			return
		}
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "vehicle updated", nil)
}

// Delete DELETE /api/vehicles/:id (dealer/admin, owner only)
func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.Vehicles.Delete(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id")); err != nil {
		if errors.Is(err, application.ErrNotOwner) {
			response.Error[any](c, http.StatusForbidden, "not the listing owner", nil)
			return
		}
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "vehicle removed", nil)
}

// UploadPhoto POST /api/vehicles/:id/photos (dealer/admin, owner only)
func (h *VehicleHandler) UploadPhoto(c *gin.Context) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "photo file required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Vehicles.UploadPhoto(
		c.Request.Context(),
		c.GetString(middleware.CtxUserIDKey),
		c.Param("id"),
		file,
		header.Filename,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		if errors.Is(err, application.ErrNotOwner) {
			response.Error[any](c, http.StatusForbidden, "not the listing owner", nil)
			return
		}
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, "photo uploaded", nil)
}

// Search GET /api/vehicles/search?q=...
func (h *VehicleHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Vehicles.Search(c.Request.Context(), q, size)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "results", nil)
}
