package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/logger"
)

// LoggingAlertNotifier records alert dispatches in the service log. Real
// delivery channels (SMS, push, campus-security consoles) are out of scope;
// this stub stands in for them.
type LoggingAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingAlertNotifier builds the logging notifier.
func NewLoggingAlertNotifier(log *zap.Logger) *LoggingAlertNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingAlertNotifier{logger: log}
}

// AlertActivated logs the dispatch. It fires regardless of how much location
// enrichment succeeded.
func (n *LoggingAlertNotifier) AlertActivated(_ context.Context, alert domain.SOSAlert, account domain.Account) {
	fields := []zap.Field{
		zap.String("alert_id", alert.ID),
		zap.String("account_id", account.ID),
		zap.String("email", logger.MaskEmail(account.Email)),
		zap.Time("timestamp", alert.Timestamp),
	}
	if alert.Location.Coordinates != nil {
		fields = append(fields,
			zap.Float64("latitude", alert.Location.Coordinates.Latitude),
			zap.Float64("longitude", alert.Location.Coordinates.Longitude),
		)
	}
	if alert.Location.Address != "" {
		fields = append(fields, zap.String("address", alert.Location.Address))
	}

	n.logger.Warn("SOS alert activated, notifying campus security", fields...)
}
