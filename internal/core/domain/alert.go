package domain

import (
	"fmt"
	"time"
)

// AlertStatus tracks the lifecycle of an SOS alert. The only defined
// transition is active to resolved.
type AlertStatus string

const (
	AlertStatusActive   AlertStatus = "active"
	AlertStatusResolved AlertStatus = "resolved"
)

// Coordinates is a device-reported latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AlertLocation captures whatever location data was available when the alert
// fired. Coordinates are absent entirely when geolocation was denied, and
// Address stays empty when reverse geocoding failed.
type AlertLocation struct {
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Address     string       `json:"address,omitempty"`
}

// MapLink renders an external map-viewer URL for the location, or empty when
// no coordinates were captured.
func (l AlertLocation) MapLink() string {
	if l.Coordinates == nil {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%f,%f", l.Coordinates.Latitude, l.Coordinates.Longitude)
}

// SOSAlert mirrors the persisted representation under the sosAlerts key.
type SOSAlert struct {
	ID        string        `json:"id"`
	AccountID string        `json:"userId"`
	Timestamp time.Time     `json:"timestamp"`
	Location  AlertLocation `json:"location"`
	Status    AlertStatus   `json:"status"`
}
