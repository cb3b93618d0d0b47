package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/channel"
)

// RelayHandler proxies WhatsApp send requests to the upstream gateway so
// browser clients never talk to it directly
type RelayHandler struct {
	gatewayURL string
	httpClient *http.Client
}

// NewRelayHandler creates a new relay handler
func NewRelayHandler(gatewayURL string) *RelayHandler {
	return &RelayHandler{
		gatewayURL: gatewayURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendWhatsApp forwards one send request to the gateway and passes the
// upstream response back verbatim
func (h *RelayHandler) SendWhatsApp(c *gin.Context) {
	var req channel.GatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.APIKey == "" || req.Sender == "" || req.Number == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key, sender, number and message are required"})
		return
	}

	body, err := channel.PostToGateway(c.Request.Context(), h.httpClient, h.gatewayURL, req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
