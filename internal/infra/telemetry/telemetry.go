package telemetry

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ajayabd17/she-help-srm-safe/internal/infra/config"
)

// Provider represents a telemetry provider handle.
type Provider struct {
	sosActivations prometheus.Counter
}

// Attach configures telemetry exporters and returns a provider handle.
func Attach(_ context.Context, cfg *config.AppConfig) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	counter := promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shehelp",
		Name:      "sos_activations_total",
		Help:      "Total number of SOS alert activations",
	})

	return &Provider{
		sosActivations: counter,
	}, nil
}

// SOSActivations exposes the activation counter.
func (p *Provider) SOSActivations() prometheus.Counter {
	if p == nil {
		return prometheus.NewCounter(prometheus.CounterOpts{})
	}
	return p.sosActivations
}
