package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/scheduler"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/settings"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

// SettingsHandler reads and writes the user-entered channel settings
type SettingsHandler struct {
	store *settings.Store
	sched *scheduler.Scheduler
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(store *settings.Store, sched *scheduler.Scheduler) *SettingsHandler {
	return &SettingsHandler{store: store, sched: sched}
}

// GetSettings returns all persisted settings records
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"email":    h.store.Email(ctx),
		"whatsapp": h.store.WhatsApp(ctx),
		"telegram": h.store.Telegram(ctx),
		"general":  h.store.General(ctx),
	})
}

// UpdateEmailSettings stores the user email settings
func (h *SettingsHandler) UpdateEmailSettings(c *gin.Context) {
	var v models.EmailSettings
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveEmail(c.Request.Context(), v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

// UpdateWhatsAppSettings stores the user WhatsApp settings
func (h *SettingsHandler) UpdateWhatsAppSettings(c *gin.Context) {
	var v models.WhatsAppSettings
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveWhatsApp(c.Request.Context(), v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

// UpdateTelegramSettings stores the user Telegram settings
func (h *SettingsHandler) UpdateTelegramSettings(c *gin.Context) {
	var v models.TelegramSettings
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveTelegram(c.Request.Context(), v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

// UpdateGeneralSettings stores the general settings and restarts the
// scheduler so a changed trigger time takes effect
func (h *SettingsHandler) UpdateGeneralSettings(c *gin.Context) {
	var v models.GeneralSettings
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveGeneral(c.Request.Context(), v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.sched.Restart()
	c.JSON(http.StatusOK, v)
}
