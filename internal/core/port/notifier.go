package port

import (
	"context"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
)

// AlertNotifier announces an activated SOS alert to campus security. Real
// delivery channels are out of scope; implementations log the dispatch.
// Notification fires regardless of how much location enrichment succeeded.
type AlertNotifier interface {
	AlertActivated(ctx context.Context, alert domain.SOSAlert, account domain.Account)
}
