package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

// WhatsAppSender sends reminders through the device gateway
type WhatsAppSender struct {
	gatewayURL string
	creds      func(ctx context.Context) models.WhatsAppSettings
	httpClient *http.Client
}

// GatewayRequest is the gateway send payload. Shared with the relay handler.
type GatewayRequest struct {
	APIKey  string `json:"api_key"`
	Sender  string `json:"sender"`
	Number  string `json:"number"`
	Message string `json:"message"`
}

// NewWhatsAppSender creates a WhatsApp sender. creds is called per send so
// the effective configuration is always current.
func NewWhatsAppSender(gatewayURL string, creds func(ctx context.Context) models.WhatsAppSettings) *WhatsAppSender {
	return &WhatsAppSender{
		gatewayURL: gatewayURL,
		creds:      creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send delivers one message through the gateway
func (s *WhatsAppSender) Send(ctx context.Context, msg Message) error {
	creds := s.creds(ctx)
	if !creds.IsConfigured() {
		return fmt.Errorf("whatsapp channel not configured")
	}

	_, err := PostToGateway(ctx, s.httpClient, s.gatewayURL, GatewayRequest{
		APIKey:  creds.APIKey,
		Sender:  creds.Sender,
		Number:  msg.Recipient,
		Message: msg.Body,
	})
	return err
}

// PostToGateway posts one send request to the WhatsApp gateway and returns
// the upstream response body. Used by both the sender and the relay endpoint.
func PostToGateway(ctx context.Context, client *http.Client, url string, req GatewayRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return respBody, fmt.Errorf("gateway error: %s (status %d)", string(respBody), resp.StatusCode)
	}
	return respBody, nil
}
