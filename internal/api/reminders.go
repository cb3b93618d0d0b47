package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/database"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

// ReminderHandler provides CRUD over reminder configs
type ReminderHandler struct {
	db *database.DB
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(db *database.DB) *ReminderHandler {
	return &ReminderHandler{db: db}
}

// ReminderRequest is the create/update payload
type ReminderRequest struct {
	Title      string `json:"title" binding:"required"`
	Type       string `json:"type" binding:"required"`
	VehicleID  int64  `json:"vehicleId"`
	Document   string `json:"document"`
	Template   string `json:"template" binding:"required"`
	DueDate    string `json:"dueDate" binding:"required"` // "2006-01-02"
	DaysBefore string `json:"daysBefore"`                 // JSON array of ints
	Channels   string `json:"channels"`                   // JSON array of channel names
	Recipients string `json:"recipients"`                 // JSON array of addresses
	IsActive   *bool  `json:"isActive"`
}

func (r *ReminderRequest) toModel() (*models.ReminderConfig, error) {
	due, err := time.ParseInLocation("2006-01-02", r.DueDate, time.Local)
	if err != nil {
		return nil, err
	}

	cfg := &models.ReminderConfig{
		Title:      r.Title,
		Type:       r.Type,
		VehicleID:  r.VehicleID,
		Document:   r.Document,
		Template:   r.Template,
		DueDate:    due,
		DaysBefore: r.DaysBefore,
		Channels:   r.Channels,
		Recipients: r.Recipients,
		IsActive:   true,
	}
	if cfg.DaysBefore == "" {
		cfg.DaysBefore = "[7,3,1]"
	}
	if cfg.Channels == "" {
		cfg.Channels = `["email"]`
	}
	if cfg.Recipients == "" {
		cfg.Recipients = "[]"
	}
	if r.IsActive != nil {
		cfg.IsActive = *r.IsActive
	}
	return cfg, nil
}

// ListReminders returns all reminder configs
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	reminders, err := h.db.ListReminders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if reminders == nil {
		reminders = []*models.ReminderConfig{}
	}
	c.JSON(http.StatusOK, reminders)
}

// CreateReminder creates a reminder config
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dueDate must be YYYY-MM-DD"})
		return
	}

	if err := h.db.CreateReminder(c.Request.Context(), cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cfg)
}

// UpdateReminder updates a reminder config
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dueDate must be YYYY-MM-DD"})
		return
	}
	cfg.ID = id

	if err := h.db.UpdateReminder(c.Request.Context(), cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// DeleteReminder deletes a reminder config
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, err := h.db.GetReminderByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.DeleteReminder(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reminder deleted"})
}

// ListDeliveryLogs returns recent delivery attempts
func (h *ReminderHandler) ListDeliveryLogs(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	logs, err := h.db.ListDeliveryLogs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []*models.DeliveryLog{}
	}
	c.JSON(http.StatusOK, logs)
}
