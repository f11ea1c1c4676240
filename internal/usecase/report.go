package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/core/port"
	"github.com/ajayabd17/she-help-srm-safe/internal/repository"
)

// ErrReportNotFound indicates the report ID does not exist in the merged view.
var ErrReportNotFound = errors.New("report not found")

// SubmitReportInput carries the complaint form fields.
type SubmitReportInput struct {
	Title       string
	Description string
	Location    string
	Category    domain.ReportCategory
	Anonymous   bool
}

// ReportView is a report decorated with submitter identity for display.
// SubmitterName and SubmitterEmail are blanked on anonymous reports unless
// the viewer is an administrator.
type ReportView struct {
	domain.IncidentReport
	SubmitterName  string
	SubmitterEmail string
}

// ReportService handles incident complaint submission and review.
type ReportService struct {
	reports   port.ReportRepository
	directory port.AccountDirectory
	logger    *zap.Logger
}

// NewReportService constructs a report service.
func NewReportService(reports port.ReportRepository, directory port.AccountDirectory, log *zap.Logger) *ReportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportService{reports: reports, directory: directory, logger: log}
}

// Submit validates and stores a new complaint. New reports always start
// pending; the anonymous flag is frozen at submission.
func (s *ReportService) Submit(ctx context.Context, submitter domain.Account, input SubmitReportInput) (domain.IncidentReport, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)

	if title == "" {
		return domain.IncidentReport{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if description == "" {
		return domain.IncidentReport{}, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if !domain.ValidReportCategory(input.Category) {
		return domain.IncidentReport{}, fmt.Errorf("%w: unknown category %q", ErrValidation, input.Category)
	}

	report := domain.IncidentReport{
		ID:          uuid.NewString(),
		SubmitterID: submitter.ID,
		Title:       title,
		Description: description,
		Location:    strings.TrimSpace(input.Location),
		Timestamp:   time.Now().UTC(),
		Status:      domain.ReportStatusPending,
		Category:    input.Category,
		Anonymous:   input.Anonymous,
	}

	if err := s.reports.Save(ctx, report); err != nil {
		return domain.IncidentReport{}, fmt.Errorf("save report: %w", err)
	}

	s.logger.Info("complaint submitted",
		zap.String("report_id", report.ID),
		zap.String("category", string(report.Category)),
		zap.Bool("anonymous", report.Anonymous),
	)
	return report, nil
}

// ListMine returns the submitter's own reports. The submitter always sees
// their own identity, anonymous or not.
func (s *ReportService) ListMine(ctx context.Context, viewer domain.Account) ([]ReportView, error) {
	reports, err := s.reports.FindBySubmitter(ctx, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("list own reports: %w", err)
	}

	views := make([]ReportView, 0, len(reports))
	for _, r := range reports {
		views = append(views, ReportView{
			IncidentReport: r,
			SubmitterName:  viewer.Name,
			SubmitterEmail: viewer.Email,
		})
	}
	return views, nil
}

// ListAll returns every report decorated for the given viewer. On anonymous
// reports the submitter's identity is replaced with a placeholder unless the
// viewer is an administrator. Reports whose submitter no longer resolves get
// an unknown-user placeholder either way.
func (s *ReportService) ListAll(ctx context.Context, viewer domain.Account) ([]ReportView, error) {
	reports, err := s.reports.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	views := make([]ReportView, 0, len(reports))
	for _, r := range reports {
		views = append(views, s.decorate(ctx, r, viewer))
	}
	return views, nil
}

// UpdateStatus sets a report's review status. Any of the known statuses may
// be written; there is no transition graph.
func (s *ReportService) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) error {
	if !domain.ValidReportStatus(status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	reports, err := s.reports.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("lookup report: %w", err)
	}
	found := false
	for _, r := range reports {
		if r.ID == id {
			found = true
			break
		}
	}
	if !found {
		return ErrReportNotFound
	}

	if err := s.reports.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update report status: %w", err)
	}

	s.logger.Info("report status updated",
		zap.String("report_id", id),
		zap.String("status", string(status)),
	)
	return nil
}

func (s *ReportService) decorate(ctx context.Context, report domain.IncidentReport, viewer domain.Account) ReportView {
	view := ReportView{IncidentReport: report}

	if report.Anonymous && !viewer.IsAdmin() && report.SubmitterID != viewer.ID {
		view.SubmitterName = "Anonymous"
		return view
	}

	submitter, err := s.directory.FindByID(ctx, report.SubmitterID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("resolve report submitter", zap.String("report_id", report.ID), zap.Error(err))
		}
		view.SubmitterName = "Unknown User"
		return view
	}

	view.SubmitterName = submitter.Name
	view.SubmitterEmail = submitter.Email
	return view
}
