package kv

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/storage"
)

func testReport(id, submitter string) domain.IncidentReport {
	return domain.IncidentReport{
		ID:          id,
		SubmitterID: submitter,
		Title:       "Streetlight out near hostel",
		Description: "The path behind block C has been dark for a week.",
		Timestamp:   time.Now().UTC(),
		Status:      domain.ReportStatusPending,
		Category:    domain.CategoryOther,
	}
}

func TestReportRepositorySaveAppendsBothCopies(t *testing.T) {
	store := storage.NewMemoryStore(zaptest.NewLogger(t))
	repo := NewReportRepository(store, zaptest.NewLogger(t))
	ctx := context.Background()

	if err := repo.Save(ctx, testReport("r1", "u1")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := repo.Save(ctx, testReport("r2", "u1")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	var persisted []domain.IncidentReport
	if err := store.ReadCollection(ctx, storage.KeyComplaints, &persisted); err != nil {
		t.Fatalf("ReadCollection returned error: %v", err)
	}
	if len(persisted) != 2 {
		t.Fatalf("expected 2 persisted reports, got %d", len(persisted))
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 merged reports, got %d", len(all))
	}
}

func TestReportRepositoryMergeDeduplicatesByID(t *testing.T) {
	store := storage.NewMemoryStore(zaptest.NewLogger(t))
	repo := NewReportRepository(store, zaptest.NewLogger(t))
	ctx := context.Background()

	// Saving puts r1 in memory and in the store; both copies describe the
	// same report, so reads must surface it exactly once.
	if err := repo.Save(ctx, testReport("r1", "u1")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 report after dedupe, got %d", len(all))
	}
}

func TestReportRepositorySeesReportsFromOtherWriters(t *testing.T) {
	store := storage.NewMemoryStore(zaptest.NewLogger(t))
	ctx := context.Background()

	// A report written to the store by an earlier process, unknown to this
	// repository's in-memory copy.
	if err := store.WriteCollection(ctx, storage.KeyComplaints, []domain.IncidentReport{testReport("old1", "u9")}); err != nil {
		t.Fatalf("seed persisted reports: %v", err)
	}

	repo := NewReportRepository(store, zaptest.NewLogger(t))
	if err := repo.Save(ctx, testReport("r1", "u1")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected persisted and fresh reports, got %d", len(all))
	}
}

func TestReportRepositoryFindBySubmitter(t *testing.T) {
	store := storage.NewMemoryStore(zaptest.NewLogger(t))
	repo := NewReportRepository(store, zaptest.NewLogger(t))
	ctx := context.Background()

	if err := repo.Save(ctx, testReport("r1", "u1")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := repo.Save(ctx, testReport("r2", "u2")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	mine, err := repo.FindBySubmitter(ctx, "u1")
	if err != nil {
		t.Fatalf("FindBySubmitter returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "r1" {
		t.Fatalf("unexpected submitter filter result: %+v", mine)
	}
}

func TestReportRepositoryUpdateStatus(t *testing.T) {
	store := storage.NewMemoryStore(zaptest.NewLogger(t))
	repo := NewReportRepository(store, zaptest.NewLogger(t))
	ctx := context.Background()

	if err := repo.Save(ctx, testReport("r1", "u1")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := repo.UpdateStatus(ctx, "r1", domain.ReportStatusResolved); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if all[0].Status != domain.ReportStatusResolved {
		t.Fatalf("expected resolved status, got %q", all[0].Status)
	}

	var persisted []domain.IncidentReport
	if err := store.ReadCollection(ctx, storage.KeyComplaints, &persisted); err != nil {
		t.Fatalf("ReadCollection returned error: %v", err)
	}
	if persisted[0].Status != domain.ReportStatusResolved {
		t.Fatalf("persisted copy must be updated, got %q", persisted[0].Status)
	}
}

func TestReportRepositoryUpdateStatusUnknownIDIsNoOp(t *testing.T) {
	store := storage.NewMemoryStore(zaptest.NewLogger(t))
	repo := NewReportRepository(store, zaptest.NewLogger(t))

	if err := repo.UpdateStatus(context.Background(), "ghost", domain.ReportStatusResolved); err != nil {
		t.Fatalf("unknown id must be a silent no-op, got: %v", err)
	}
}
