package usecase

import (
	"context"
	"sync"
	"time"

	uuid "github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/core/port"
)

// HoldState tracks a single account's position in the hold-to-activate
// cycle. The cycle is idle, pressing while the button is held, and activated
// once the hold threshold elapses. Releasing before the threshold returns to
// idle without firing; releasing after it consumes the activated state.
type HoldState string

const (
	HoldIdle      HoldState = "idle"
	HoldPressing  HoldState = "pressing"
	HoldActivated HoldState = "activated"
)

const defaultHoldDuration = 2 * time.Second

type hold struct {
	timer  *time.Timer
	coords *domain.Coordinates

	// activated is set once the threshold elapses and the alert fired;
	// released marks a release that lost the race with the elapsed timer,
	// leaving the activation to consume the hold.
	activated bool
	released  bool
}

// SOSService drives the emergency alert flow. Activation never fails closed:
// location enrichment and persistence failures are absorbed so the
// notification always goes out.
type SOSService struct {
	alerts       port.AlertRepository
	geocoder     port.ReverseGeocoder
	notifier     port.AlertNotifier
	activations  prometheus.Counter
	logger       *zap.Logger
	holdDuration time.Duration

	mu    sync.Mutex
	holds map[string]*hold
}

// NewSOSService constructs the service. A non-positive hold duration falls
// back to the default threshold.
func NewSOSService(
	alerts port.AlertRepository,
	geocoder port.ReverseGeocoder,
	notifier port.AlertNotifier,
	activations prometheus.Counter,
	holdDuration time.Duration,
	log *zap.Logger,
) *SOSService {
	if holdDuration <= 0 {
		holdDuration = defaultHoldDuration
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SOSService{
		alerts:       alerts,
		geocoder:     geocoder,
		notifier:     notifier,
		activations:  activations,
		logger:       log,
		holdDuration: holdDuration,
		holds:        make(map[string]*hold),
	}
}

// Press begins a hold for the account. Coordinates captured at press time
// travel with the hold; nil means the device denied geolocation. A repeated
// press while already holding restarts the timer with the fresh coordinates.
func (s *SOSService) Press(ctx context.Context, account domain.Account, coords *domain.Coordinates) HoldState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.holds[account.ID]; ok {
		existing.timer.Stop()
	}

	h := &hold{coords: coords}
	// The request context dies with the HTTP exchange; the deferred
	// activation must outlive it.
	fireCtx := context.WithoutCancel(ctx)
	h.timer = time.AfterFunc(s.holdDuration, func() {
		s.fire(fireCtx, account, h)
	})
	s.holds[account.ID] = h

	return HoldPressing
}

// Release ends a hold. Releasing before the threshold cancels activation
// entirely; releasing after it reports activated, since the alert already
// fired or is about to. Exactly one alert fires either way.
func (s *SOSService) Release(_ context.Context, accountID string) HoldState {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.holds[accountID]
	if !ok {
		return HoldIdle
	}

	if h.activated {
		delete(s.holds, accountID)
		return HoldActivated
	}
	if h.timer.Stop() {
		delete(s.holds, accountID)
		return HoldIdle
	}

	// The timer elapsed but the activation has not run yet. Leave the hold
	// in place for it to consume, or it would find nothing and never fire.
	h.released = true
	return HoldActivated
}

// State reports the account's current hold state.
func (s *SOSService) State(accountID string) HoldState {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.holds[accountID]
	if !ok {
		return HoldIdle
	}
	if h.activated || h.released {
		return HoldActivated
	}
	return HoldPressing
}

func (s *SOSService) fire(ctx context.Context, account domain.Account, h *hold) {
	s.mu.Lock()
	if s.holds[account.ID] == h {
		if h.released {
			delete(s.holds, account.ID)
		} else {
			h.activated = true
		}
	} else if !h.released {
		// Superseded by a fresh press before firing; the new hold owns
		// the activation now.
		s.mu.Unlock()
		return
	}
	coords := h.coords
	s.mu.Unlock()

	s.Trigger(ctx, account, coords)
}

// Trigger activates an alert immediately, bypassing the hold cycle. It
// always produces exactly one alert and one notification: reverse geocoding
// and persistence are best effort and their failures are logged, never
// returned.
func (s *SOSService) Trigger(ctx context.Context, account domain.Account, coords *domain.Coordinates) domain.SOSAlert {
	alert := domain.SOSAlert{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		Timestamp: time.Now().UTC(),
		Status:    domain.AlertStatusActive,
	}

	if coords != nil {
		c := *coords
		alert.Location.Coordinates = &c

		if s.geocoder != nil {
			address, err := s.geocoder.Reverse(ctx, c)
			if err != nil {
				s.logger.Warn("reverse geocoding failed, keeping raw coordinates",
					zap.String("alert_id", alert.ID),
					zap.Error(err),
				)
			} else {
				alert.Location.Address = address
			}
		}
	}

	if err := s.alerts.Save(ctx, alert); err != nil {
		s.logger.Error("persisting SOS alert failed, notifying anyway",
			zap.String("alert_id", alert.ID),
			zap.Error(err),
		)
	}

	if s.activations != nil {
		s.activations.Inc()
	}
	s.notifier.AlertActivated(ctx, alert, account)

	return alert
}

// ListAlerts returns every recorded alert for the admin console.
func (s *SOSService) ListAlerts(ctx context.Context) ([]domain.SOSAlert, error) {
	return s.alerts.FindAll(ctx)
}

// Resolve marks an alert handled. Unknown or already-resolved IDs are a
// silent no-op so retried resolutions stay safe.
func (s *SOSService) Resolve(ctx context.Context, alertID string) error {
	if err := s.alerts.Resolve(ctx, alertID); err != nil {
		return err
	}
	s.logger.Info("SOS alert resolved", zap.String("alert_id", alertID))
	return nil
}
