package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cohaus/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SMSGateway dispatches invoice messages through an HTTP SMS provider.
// Requests are bounded by the configured timeout; a non-2xx response is a
// dispatch failure reported back to the send batch.
type SMSGateway struct {
	client   *http.Client
	url      string
	apiKey   string
	senderID string
	logger   *zap.Logger
}

// NewSMSGateway creates a new SMS gateway client
func NewSMSGateway(cfg config.NotificationConfig, logger *zap.Logger) *SMSGateway {
	return &SMSGateway{
		client:   &http.Client{Timeout: cfg.Timeout},
		url:      cfg.GatewayURL,
		apiKey:   cfg.APIKey,
		senderID: cfg.SenderID,
		logger:   logger.Named("sms"),
	}
}

type smsRequest struct {
	To   string `json:"to"`
	From string `json:"from,omitempty"`
	Text string `json:"text"`
}

// Send dispatches one message to one phone number
func (g *SMSGateway) Send(ctx context.Context, phone, message string) error {
	if phone == "" {
		return fmt.Errorf("recipient phone number is empty")
	}

	body, err := json.Marshal(smsRequest{To: phone, From: g.senderID, Text: message})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bounded slice of the body for the error message.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		g.logger.Warn("sms gateway rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("to", phone),
		)
		return fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode, string(detail))
	}

	g.logger.Debug("sms dispatched", zap.String("to", phone))
	return nil
}
