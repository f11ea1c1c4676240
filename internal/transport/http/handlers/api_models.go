package handlers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/usecase"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// StudyYear carries a study year over the wire: a number 1-6, or the
// literal "pg" for postgraduate students.
type StudyYear int

// UnmarshalJSON accepts a JSON number or the string "pg".
func (y *StudyYear) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		if strings.EqualFold(strings.TrimSpace(raw), "pg") {
			*y = StudyYear(domain.YearPostGraduate)
			return nil
		}
		return fmt.Errorf("invalid year %q", raw)
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid year payload: %w", err)
	}
	*y = StudyYear(n)
	return nil
}

// MarshalJSON renders the postgraduate marker back as "pg".
func (y StudyYear) MarshalJSON() ([]byte, error) {
	if int(y) == domain.YearPostGraduate {
		return json.Marshal("pg")
	}
	return json.Marshal(int(y))
}

// AccountSummary describes the account view returned by the API. The
// password hash never leaves the service.
type AccountSummary struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	Department        string    `json:"department,omitempty"`
	Year              StudyYear `json:"year,omitempty"`
	RegisterNumber    string    `json:"registerNumber,omitempty"`
	IsProfileComplete bool      `json:"isProfileComplete"`
	CreatedAt         time.Time `json:"createdAt"`
}

func newAccountSummary(account domain.Account) AccountSummary {
	return AccountSummary{
		ID:                account.ID,
		Name:              account.Name,
		Email:             account.Email,
		Role:              string(account.Role),
		Department:        account.Department,
		Year:              StudyYear(account.Year),
		RegisterNumber:    account.RegisterNumber,
		IsProfileComplete: account.IsProfileComplete,
		CreatedAt:         account.CreatedAt,
	}
}

// RegisterRequest defines the student registration payload.
type RegisterRequest struct {
	Name           string    `json:"name" binding:"required"`
	Email          string    `json:"email" binding:"required,email"`
	Password       string    `json:"password" binding:"required,min=8"`
	Department     string    `json:"department" binding:"required"`
	Year           StudyYear `json:"year" binding:"required"`
	RegisterNumber string    `json:"registerNumber"`
}

// LoginRequest defines the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse wraps the currently logged-in account.
type SessionResponse struct {
	User AccountSummary `json:"user"`
}

// ProfileUpdateRequest carries a partial profile merge. Absent fields leave
// the stored value untouched.
type ProfileUpdateRequest struct {
	Name           *string    `json:"name"`
	Department     *string    `json:"department"`
	Year           *StudyYear `json:"year"`
	RegisterNumber *string    `json:"registerNumber"`
}

// SubmitReportRequest defines the complaint submission payload.
type SubmitReportRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location"`
	Category    string `json:"category" binding:"required"`
	Anonymous   bool   `json:"anonymous"`
}

// ReportResponse is the report view decorated for the requesting viewer.
type ReportResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	Status         string    `json:"status"`
	Category       string    `json:"category"`
	Anonymous      bool      `json:"anonymous"`
	SubmitterName  string    `json:"submitterName,omitempty"`
	SubmitterEmail string    `json:"submitterEmail,omitempty"`
}

func newReportResponse(view usecase.ReportView) ReportResponse {
	return ReportResponse{
		ID:             view.ID,
		Title:          view.Title,
		Description:    view.Description,
		Location:       view.Location,
		Timestamp:      view.Timestamp,
		Status:         string(view.Status),
		Category:       string(view.Category),
		Anonymous:      view.Anonymous,
		SubmitterName:  view.SubmitterName,
		SubmitterEmail: view.SubmitterEmail,
	}
}

// UpdateReportStatusRequest sets a report's review status.
type UpdateReportStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SOSPressRequest carries the device-reported coordinates captured when the
// button was pressed. Coordinates are absent when geolocation was denied.
type SOSPressRequest struct {
	Coordinates *CoordinatesPayload `json:"coordinates"`
}

// CoordinatesPayload is a latitude/longitude pair from the client device.
type CoordinatesPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p *CoordinatesPayload) toDomain() *domain.Coordinates {
	if p == nil {
		return nil
	}
	return &domain.Coordinates{Latitude: p.Latitude, Longitude: p.Longitude}
}

// SOSStateResponse reports the caller's hold-to-activate state.
type SOSStateResponse struct {
	State string `json:"state"`
}

// AlertResponse is the SOS alert view for the admin console.
type AlertResponse struct {
	ID        string              `json:"id"`
	AccountID string              `json:"userId"`
	Timestamp time.Time           `json:"timestamp"`
	Status    string              `json:"status"`
	Address   string              `json:"address,omitempty"`
	Latitude  *float64            `json:"latitude,omitempty"`
	Longitude *float64            `json:"longitude,omitempty"`
	MapLink   string              `json:"mapLink,omitempty"`
	Submitter *AlertSubmitterInfo `json:"submitter,omitempty"`
}

// AlertSubmitterInfo identifies the account behind an alert.
type AlertSubmitterInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newAlertResponse(alert domain.SOSAlert) AlertResponse {
	resp := AlertResponse{
		ID:        alert.ID,
		AccountID: alert.AccountID,
		Timestamp: alert.Timestamp,
		Status:    string(alert.Status),
		Address:   alert.Location.Address,
		MapLink:   alert.Location.MapLink(),
	}
	if coords := alert.Location.Coordinates; coords != nil {
		lat, lon := coords.Latitude, coords.Longitude
		resp.Latitude = &lat
		resp.Longitude = &lon
	}
	return resp
}

// SafetyStatusRequest sets the campus-wide safety level.
type SafetyStatusRequest struct {
	Level string `json:"level" binding:"required"`
}

// SafetyStatusResponse reports the campus-wide safety level.
type SafetyStatusResponse struct {
	Level string `json:"level"`
}

// DashboardResponse aggregates the student dashboard view.
type DashboardResponse struct {
	User         AccountSummary   `json:"user"`
	SafetyLevel  string           `json:"safetyLevel"`
	MyReports    []ReportResponse `json:"myReports"`
	ActiveAlerts int              `json:"activeAlerts"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse describes dependency readiness results.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
