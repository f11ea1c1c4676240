package geo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
)

const defaultTimeout = 5 * time.Second

// NominatimGeocoder resolves coordinates to an address through a
// Nominatim-compatible reverse-geocoding endpoint. The service is best
// effort: network failures are expected and callers fall back to an
// unresolved address.
type NominatimGeocoder struct {
	client *resty.Client
	logger *zap.Logger
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// NewNominatimGeocoder builds the client. The timeout bounds every lookup so
// a hung geocoding request can never stall an SOS activation.
func NewNominatimGeocoder(baseURL string, timeout time.Duration, logger *zap.Logger) *NominatimGeocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", "she-help-srm-safe/1.0")

	return &NominatimGeocoder{client: client, logger: logger}
}

// Reverse maps coordinates to a human-readable address string.
func (g *NominatimGeocoder) Reverse(ctx context.Context, coords domain.Coordinates) (string, error) {
	var result reverseResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "jsonv2",
			"lat":    strconv.FormatFloat(coords.Latitude, 'f', -1, 64),
			"lon":    strconv.FormatFloat(coords.Longitude, 'f', -1, 64),
		}).
		SetResult(&result).
		Get("/reverse")
	if err != nil {
		return "", fmt.Errorf("reverse geocode request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("reverse geocode status %d", resp.StatusCode())
	}

	address := strings.TrimSpace(result.DisplayName)
	if address == "" {
		return "", fmt.Errorf("reverse geocode returned no address")
	}
	return address, nil
}
