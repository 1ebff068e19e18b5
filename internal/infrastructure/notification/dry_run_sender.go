package notification

import (
	"context"

	"github.com/cohaus/backend/internal/application/billing"
	"github.com/cohaus/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// DryRunSender renders invoices into the log instead of dispatching them.
// Used in development and whenever notification.dry_run is enabled.
type DryRunSender struct {
	logger *zap.Logger
}

// NewDryRunSender creates a new DryRunSender
func NewDryRunSender(logger *zap.Logger) *DryRunSender {
	return &DryRunSender{logger: logger.Named("sms-dryrun")}
}

// Send logs the message without dispatching it
func (s *DryRunSender) Send(ctx context.Context, phone, message string) error {
	s.logger.Info("dry-run invoice notification",
		zap.String("to", phone),
		zap.String("message", message),
	)
	return nil
}

// NewSenderFromConfig picks the sender implied by configuration
func NewSenderFromConfig(cfg config.NotificationConfig, logger *zap.Logger) billing.NotificationSender {
	if cfg.DryRun || cfg.GatewayURL == "" {
		return NewDryRunSender(logger)
	}
	return NewSMSGateway(cfg, logger)
}
