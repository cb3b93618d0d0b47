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

// EmailSender sends reminders through the EmailJS-style template API
type EmailSender struct {
	apiURL     string
	creds      func(ctx context.Context) models.EmailSettings
	httpClient *http.Client
}

// emailRequest is the template-send payload
type emailRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams map[string]any `json:"template_params"`
}

// NewEmailSender creates an email sender. creds is called per send so the
// effective configuration is always current.
func NewEmailSender(apiURL string, creds func(ctx context.Context) models.EmailSettings) *EmailSender {
	return &EmailSender{
		apiURL: apiURL,
		creds:  creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send delivers one email through the template API
func (s *EmailSender) Send(ctx context.Context, msg Message) error {
	creds := s.creds(ctx)
	if !creds.IsConfigured() {
		return fmt.Errorf("email channel not configured")
	}

	req := emailRequest{
		ServiceID:  creds.ServiceID,
		TemplateID: creds.TemplateID,
		UserID:     creds.PublicKey,
		TemplateParams: map[string]any{
			"to_email":   msg.Recipient,
			"subject":    msg.Subject,
			"message":    msg.Body,
			"from_name":  creds.FromName,
			"from_email": creds.FromEmail,
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email API error: %s (status %d)", string(respBody), resp.StatusCode)
	}
	return nil
}
