// services/email_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/brandlens/visibility-workflows/internal/config"
	"github.com/brandlens/visibility-workflows/internal/models"
)

type emailService struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewEmailService(cfg *config.Config) EmailService {
	return &emailService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SendReport posts the report payload to the configured delivery endpoint.
// Callers treat failures as non-fatal: a report that cannot be emailed is
// still returned to the client.
func (s *emailService) SendReport(ctx context.Context, payload *models.EmailReportPayload) error {
	if s.cfg.Email.DeliveryURL == "" {
		return fmt.Errorf("email delivery URL is not configured")
	}
	if payload == nil {
		return fmt.Errorf("email payload is required")
	}
	if payload.Email == "" {
		return fmt.Errorf("recipient email is required")
	}

	if payload.FromAddress == "" {
		payload.FromAddress = s.cfg.Email.FromAddress
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Email.DeliveryURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email delivery request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email delivery returned status %d", resp.StatusCode)
	}

	fmt.Printf("[EmailService] Report for %s delivered to %s\n", payload.BrandName, payload.Email)
	return nil
}
