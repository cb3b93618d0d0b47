package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/autoconfig"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/systemconfig"
)

// SystemHandler exposes configuration and readiness state
type SystemHandler struct {
	initializer *autoconfig.Initializer
	resolver    *systemconfig.Resolver
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(initializer *autoconfig.Initializer, resolver *systemconfig.Resolver) *SystemHandler {
	return &SystemHandler{initializer: initializer, resolver: resolver}
}

// GetSystemStatus returns the auto-configuration summary
func (h *SystemHandler) GetSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.initializer.SystemStatus(c.Request.Context()))
}

// GetConfigStatus returns the per-channel configuration source
func (h *SystemHandler) GetConfigStatus(c *gin.Context) {
	status := h.resolver.ConfigStatus(c.Request.Context())
	ready, missing := h.resolver.SystemReady()

	c.JSON(http.StatusOK, gin.H{
		"channels": status,
		"ready":    ready,
		"missing":  missing,
	})
}

// ForceReconfigure resets the init flag and reseeds the defaults
func (h *SystemHandler) ForceReconfigure(c *gin.Context) {
	h.initializer.ForceReconfigure(c.Request.Context())
	c.JSON(http.StatusOK, h.initializer.SystemStatus(c.Request.Context()))
}
