package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/database"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

// VehicleHandler provides CRUD over fleet vehicles
type VehicleHandler struct {
	db *database.DB
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(db *database.DB) *VehicleHandler {
	return &VehicleHandler{db: db}
}

// VehicleRequest is the create/update payload
type VehicleRequest struct {
	LicensePlate string `json:"licensePlate" binding:"required"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Type         string `json:"type"`
	Status       string `json:"status"`
}

func (r *VehicleRequest) toModel() *models.Vehicle {
	v := &models.Vehicle{
		LicensePlate: r.LicensePlate,
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		Type:         r.Type,
		Status:       r.Status,
	}
	if v.Type == "" {
		v.Type = "truck"
	}
	if v.Status == "" {
		v.Status = "active"
	}
	return v
}

// ListVehicles returns all vehicles
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.db.ListVehicles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if vehicles == nil {
		vehicles = []*models.Vehicle{}
	}
	c.JSON(http.StatusOK, vehicles)
}

// CreateVehicle creates a vehicle record
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v := req.toModel()
	if err := h.db.CreateVehicle(c.Request.Context(), v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, v)
}

// UpdateVehicle updates a vehicle record
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v := req.toModel()
	v.ID = id
	if err := h.db.UpdateVehicle(c.Request.Context(), v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

// DeleteVehicle deletes a vehicle record
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, err := h.db.GetVehicleByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.DeleteVehicle(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "vehicle deleted"})
}
