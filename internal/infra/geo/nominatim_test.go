package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
)

func TestReverseResolvesDisplayName(t *testing.T) {
	var gotLat, gotLon string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		gotLat = r.URL.Query().Get("lat")
		gotLon = r.URL.Query().Get("lon")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name":"SRM University, Kattankulathur, Tamil Nadu, India"}`))
	}))
	defer server.Close()

	geocoder := NewNominatimGeocoder(server.URL, time.Second, zaptest.NewLogger(t))

	address, err := geocoder.Reverse(context.Background(), domain.Coordinates{Latitude: 12.8230, Longitude: 80.0444})
	if err != nil {
		t.Fatalf("Reverse returned error: %v", err)
	}
	if address != "SRM University, Kattankulathur, Tamil Nadu, India" {
		t.Fatalf("unexpected address %q", address)
	}
	if gotLat != "12.823" || gotLon != "80.0444" {
		t.Fatalf("unexpected query coordinates lat=%q lon=%q", gotLat, gotLon)
	}
}

func TestReverseErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	geocoder := NewNominatimGeocoder(server.URL, time.Second, zaptest.NewLogger(t))

	if _, err := geocoder.Reverse(context.Background(), domain.Coordinates{}); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestReverseEmptyDisplayName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name":""}`))
	}))
	defer server.Close()

	geocoder := NewNominatimGeocoder(server.URL, time.Second, zaptest.NewLogger(t))

	if _, err := geocoder.Reverse(context.Background(), domain.Coordinates{}); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestReverseUnreachableEndpoint(t *testing.T) {
	geocoder := NewNominatimGeocoder("http://127.0.0.1:1", 100*time.Millisecond, zaptest.NewLogger(t))

	if _, err := geocoder.Reverse(context.Background(), domain.Coordinates{}); err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
}
