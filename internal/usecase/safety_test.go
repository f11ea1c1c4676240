package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
)

type mockSafetyStore struct {
	level    domain.SafetyLevel
	setErr   error
	setCalls int
}

func (m *mockSafetyStore) Level(context.Context) (domain.SafetyLevel, error) {
	if m.level == "" {
		return domain.SafetyNormal, nil
	}
	return m.level, nil
}

func (m *mockSafetyStore) SetLevel(_ context.Context, level domain.SafetyLevel) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.level = level
	return nil
}

func TestSafetyServiceDefaultsToNormal(t *testing.T) {
	svc := NewSafetyService(&mockSafetyStore{}, zaptest.NewLogger(t))

	level, err := svc.Level(context.Background())
	if err != nil {
		t.Fatalf("Level returned error: %v", err)
	}
	if level != domain.SafetyNormal {
		t.Fatalf("expected normal, got %q", level)
	}
}

func TestSafetyServiceSetLevel(t *testing.T) {
	store := &mockSafetyStore{}
	svc := NewSafetyService(store, zaptest.NewLogger(t))

	level, err := svc.SetLevel(context.Background(), "alert")
	if err != nil {
		t.Fatalf("SetLevel returned error: %v", err)
	}
	if level != domain.SafetyAlert || store.level != domain.SafetyAlert {
		t.Fatalf("unexpected level after set: %q / %q", level, store.level)
	}
}

func TestSafetyServiceRejectsUnknownLevel(t *testing.T) {
	store := &mockSafetyStore{}
	svc := NewSafetyService(store, zaptest.NewLogger(t))

	_, err := svc.SetLevel(context.Background(), "lockdown")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	if store.setCalls != 0 {
		t.Fatal("invalid level must not reach the store")
	}
}
