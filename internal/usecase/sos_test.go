package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap/zaptest"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
)

type mockAlertRepository struct {
	mu     sync.Mutex
	alerts []domain.SOSAlert

	saveErr      error
	resolveErr   error
	resolveCalls int
	resolvedID   string
}

func (m *mockAlertRepository) Save(_ context.Context, alert domain.SOSAlert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.alerts = append(m.alerts, alert)
	return nil
}

func (m *mockAlertRepository) FindAll(context.Context) ([]domain.SOSAlert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.SOSAlert, len(m.alerts))
	copy(out, m.alerts)
	return out, nil
}

func (m *mockAlertRepository) Resolve(_ context.Context, alertID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolveCalls++
	m.resolvedID = alertID
	return m.resolveErr
}

func (m *mockAlertRepository) saved() []domain.SOSAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.SOSAlert, len(m.alerts))
	copy(out, m.alerts)
	return out
}

type mockGeocoder struct {
	mu      sync.Mutex
	address string
	err     error
	calls   int
}

func (m *mockGeocoder) Reverse(_ context.Context, _ domain.Coordinates) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.address, m.err
}

type mockNotifier struct {
	fired chan domain.SOSAlert
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{fired: make(chan domain.SOSAlert, 4)}
}

func (m *mockNotifier) AlertActivated(_ context.Context, alert domain.SOSAlert, _ domain.Account) {
	m.fired <- alert
}

func (m *mockNotifier) wait(t *testing.T) domain.SOSAlert {
	t.Helper()
	select {
	case alert := <-m.fired:
		return alert
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for alert notification")
		return domain.SOSAlert{}
	}
}

func (m *mockNotifier) quiet(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case alert := <-m.fired:
		t.Fatalf("unexpected notification for alert %q", alert.ID)
	case <-time.After(d):
	}
}

func newSOSService(t *testing.T, repo *mockAlertRepository, geocoder *mockGeocoder, notifier *mockNotifier, hold time.Duration) *SOSService {
	t.Helper()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_sos_activations_total"})
	return NewSOSService(repo, geocoder, notifier, counter, hold, zaptest.NewLogger(t))
}

func TestTriggerWithoutCoordinates(t *testing.T) {
	repo := &mockAlertRepository{}
	geocoder := &mockGeocoder{}
	notifier := newMockNotifier()
	svc := newSOSService(t, repo, geocoder, notifier, time.Second)

	account := studentAccount("u1", "Priya Kumar", "priya@srmist.edu.in")
	alert := svc.Trigger(context.Background(), account, nil)

	if alert.Status != domain.AlertStatusActive {
		t.Fatalf("expected active alert, got %q", alert.Status)
	}
	if alert.Location.Coordinates != nil || alert.Location.Address != "" {
		t.Fatalf("denied geolocation must produce a coordinate-free alert: %+v", alert.Location)
	}
	if geocoder.calls != 0 {
		t.Fatal("geocoder must not be called without coordinates")
	}

	saved := repo.saved()
	if len(saved) != 1 || saved[0].ID != alert.ID {
		t.Fatalf("expected exactly one saved alert, got %+v", saved)
	}

	notified := notifier.wait(t)
	if notified.ID != alert.ID {
		t.Fatalf("notification must carry the alert, got %q", notified.ID)
	}
}

func TestTriggerEnrichesLocation(t *testing.T) {
	repo := &mockAlertRepository{}
	geocoder := &mockGeocoder{address: "SRM University, Kattankulathur, Tamil Nadu"}
	notifier := newMockNotifier()
	svc := newSOSService(t, repo, geocoder, notifier, time.Second)

	coords := &domain.Coordinates{Latitude: 12.8230, Longitude: 80.0444}
	alert := svc.Trigger(context.Background(), studentAccount("u1", "Priya Kumar", "priya@srmist.edu.in"), coords)

	if alert.Location.Coordinates == nil || alert.Location.Coordinates.Latitude != 12.8230 {
		t.Fatalf("coordinates must be recorded: %+v", alert.Location)
	}
	if alert.Location.Address != "SRM University, Kattankulathur, Tamil Nadu" {
		t.Fatalf("expected resolved address, got %q", alert.Location.Address)
	}
	if alert.Location.MapLink() == "" {
		t.Fatal("expected a map link for coordinates")
	}
	notifier.wait(t)
}

func TestTriggerAbsorbsGeocoderFailure(t *testing.T) {
	repo := &mockAlertRepository{}
	geocoder := &mockGeocoder{err: errors.New("nominatim unreachable")}
	notifier := newMockNotifier()
	svc := newSOSService(t, repo, geocoder, notifier, time.Second)

	coords := &domain.Coordinates{Latitude: 12.8230, Longitude: 80.0444}
	alert := svc.Trigger(context.Background(), studentAccount("u1", "Priya Kumar", "priya@srmist.edu.in"), coords)

	if alert.Location.Coordinates == nil {
		t.Fatal("raw coordinates must survive a failed geocode")
	}
	if alert.Location.Address != "" {
		t.Fatalf("address must stay empty on failure, got %q", alert.Location.Address)
	}
	if len(repo.saved()) != 1 {
		t.Fatal("alert must still be saved")
	}
	notifier.wait(t)
}

func TestTriggerNotifiesDespiteStoreFailure(t *testing.T) {
	repo := &mockAlertRepository{saveErr: errors.New("backend down")}
	notifier := newMockNotifier()
	svc := newSOSService(t, repo, &mockGeocoder{}, notifier, time.Second)

	alert := svc.Trigger(context.Background(), studentAccount("u1", "Priya Kumar", "priya@srmist.edu.in"), nil)

	notified := notifier.wait(t)
	if notified.ID != alert.ID {
		t.Fatalf("notification must fire even when persistence fails, got %q", notified.ID)
	}
}

func TestTriggerIncrementsActivationCounter(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_sos_activations"})
	notifier := newMockNotifier()
	svc := NewSOSService(&mockAlertRepository{}, &mockGeocoder{}, notifier, counter, time.Second, zaptest.NewLogger(t))

	svc.Trigger(context.Background(), studentAccount("u1", "Priya Kumar", "priya@srmist.edu.in"), nil)
	svc.Trigger(context.Background(), studentAccount("u1", "Priya Kumar", "priya@srmist.edu.in"), nil)

	if got := testutil.ToFloat64(counter); got != 2 {
		t.Fatalf("expected 2 activations counted, got %v", got)
	}
}

func TestHoldActivatesAfterThreshold(t *testing.T) {
	repo := &mockAlertRepository{}
	notifier := newMockNotifier()
	svc := newSOSService(t, repo, &mockGeocoder{}, notifier, 20*time.Millisecond)

	account := studentAccount("u1", "Priya Kumar", "priya@srmist.edu.in")
	coords := &domain.Coordinates{Latitude: 12.8230, Longitude: 80.0444}

	if state := svc.Press(context.Background(), account, coords); state != HoldPressing {
		t.Fatalf("expected pressing state, got %q", state)
	}
	if state := svc.State(account.ID); state != HoldPressing {
		t.Fatalf("expected pressing state while held, got %q", state)
	}

	alert := notifier.wait(t)
	if alert.Location.Coordinates == nil {
		t.Fatal("press-time coordinates must travel with the activation")
	}
	if len(repo.saved()) != 1 {
		t.Fatalf("expected one saved alert, got %d", len(repo.saved()))
	}
	if state := svc.State(account.ID); state != HoldActivated {
		t.Fatalf("state must report activated while still held, got %q", state)
	}
	if state := svc.Release(context.Background(), account.ID); state != HoldActivated {
		t.Fatalf("release after firing must report activated, got %q", state)
	}
	if state := svc.State(account.ID); state != HoldIdle {
		t.Fatalf("state must return to idle once the activation is consumed, got %q", state)
	}
}

func TestReleaseBeforeActivationRunsStillFires(t *testing.T) {
	repo := &mockAlertRepository{}
	notifier := newMockNotifier()
	svc := newSOSService(t, repo, &mockGeocoder{}, notifier, time.Hour)

	account := studentAccount("u1", "Priya Kumar", "priya@srmist.edu.in")
	coords := &domain.Coordinates{Latitude: 12.8230, Longitude: 80.0444}
	svc.Press(context.Background(), account, coords)

	// Stop the timer by hand to model the threshold elapsing while the
	// activation callback has not acquired the lock yet.
	svc.mu.Lock()
	h := svc.holds[account.ID]
	h.timer.Stop()
	svc.mu.Unlock()

	if state := svc.Release(context.Background(), account.ID); state != HoldActivated {
		t.Fatalf("release after the threshold must report activated, got %q", state)
	}

	svc.fire(context.Background(), account, h)

	notified := notifier.wait(t)
	if notified.Location.Coordinates == nil {
		t.Fatal("press-time coordinates must travel with the activation")
	}
	if len(repo.saved()) != 1 {
		t.Fatalf("exactly one alert must fire, got %d", len(repo.saved()))
	}
	if state := svc.State(account.ID); state != HoldIdle {
		t.Fatalf("state must return to idle after the activation runs, got %q", state)
	}
}

func TestReleaseBeforeThresholdCancels(t *testing.T) {
	repo := &mockAlertRepository{}
	notifier := newMockNotifier()
	svc := newSOSService(t, repo, &mockGeocoder{}, notifier, 200*time.Millisecond)

	account := studentAccount("u1", "Priya Kumar", "priya@srmist.edu.in")
	svc.Press(context.Background(), account, nil)

	if state := svc.Release(context.Background(), account.ID); state != HoldIdle {
		t.Fatalf("early release must cancel, got %q", state)
	}

	notifier.quiet(t, 400*time.Millisecond)
	if len(repo.saved()) != 0 {
		t.Fatalf("cancelled hold must not produce alerts, got %d", len(repo.saved()))
	}
}

func TestReleaseWithoutPressIsIdle(t *testing.T) {
	svc := newSOSService(t, &mockAlertRepository{}, &mockGeocoder{}, newMockNotifier(), time.Second)

	if state := svc.Release(context.Background(), "u1"); state != HoldIdle {
		t.Fatalf("expected idle, got %q", state)
	}
}

func TestRepeatedPressRestartsHold(t *testing.T) {
	repo := &mockAlertRepository{}
	notifier := newMockNotifier()
	svc := newSOSService(t, repo, &mockGeocoder{}, notifier, 30*time.Millisecond)

	account := studentAccount("u1", "Priya Kumar", "priya@srmist.edu.in")
	svc.Press(context.Background(), account, nil)
	svc.Press(context.Background(), account, nil)

	notifier.wait(t)
	notifier.quiet(t, 100*time.Millisecond)

	if len(repo.saved()) != 1 {
		t.Fatalf("restarted hold must fire exactly once, got %d alerts", len(repo.saved()))
	}
}

func TestResolveDelegates(t *testing.T) {
	repo := &mockAlertRepository{}
	svc := newSOSService(t, repo, &mockGeocoder{}, newMockNotifier(), time.Second)

	if err := svc.Resolve(context.Background(), "a1"); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if repo.resolveCalls != 1 || repo.resolvedID != "a1" {
		t.Fatalf("unexpected repository call: calls=%d id=%q", repo.resolveCalls, repo.resolvedID)
	}
}
