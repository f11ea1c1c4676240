package domain

import "time"

// ReportCategory enumerates the closed set of complaint categories.
type ReportCategory string

const (
	CategoryHarassment ReportCategory = "harassment"
	CategoryStalking   ReportCategory = "stalking"
	CategoryBullying   ReportCategory = "bullying"
	CategoryOther      ReportCategory = "other"
)

// ValidReportCategory reports whether the value belongs to the closed set.
func ValidReportCategory(c ReportCategory) bool {
	switch c {
	case CategoryHarassment, CategoryStalking, CategoryBullying, CategoryOther:
		return true
	}
	return false
}

// ReportStatus tracks the review state of a complaint. The repository does
// not enforce a transition graph; any of the three values may be written.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusInProgress ReportStatus = "in-progress"
	ReportStatusResolved   ReportStatus = "resolved"
)

// ValidReportStatus reports whether the value is one of the known statuses.
func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusResolved:
		return true
	}
	return false
}

// IncidentReport mirrors the persisted representation under the complaints
// key. SubmitterID and Timestamp never change once created. When Anonymous
// is set the submitter's identity is exposed only to administrator views.
type IncidentReport struct {
	ID          string         `json:"id"`
	SubmitterID string         `json:"userId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	Status      ReportStatus   `json:"status"`
	Category    ReportCategory `json:"category"`
	Anonymous   bool           `json:"anonymous"`
}
