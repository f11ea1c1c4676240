package storage

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"
)

type testRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestMemoryStoreCollectionRoundTrip(t *testing.T) {
	store := NewMemoryStore(zaptest.NewLogger(t))
	ctx := context.Background()

	in := []testRecord{{ID: "1", Name: "first"}, {ID: "2", Name: "second"}}
	if err := store.WriteCollection(ctx, KeyComplaints, in); err != nil {
		t.Fatalf("WriteCollection returned error: %v", err)
	}

	var out []testRecord
	if err := store.ReadCollection(ctx, KeyComplaints, &out); err != nil {
		t.Fatalf("ReadCollection returned error: %v", err)
	}
	if len(out) != 2 || out[0].ID != "1" || out[1].Name != "second" {
		t.Fatalf("unexpected round-trip result: %+v", out)
	}
}

func TestMemoryStoreReadCollectionMissingKey(t *testing.T) {
	store := NewMemoryStore(zaptest.NewLogger(t))

	var out []testRecord
	if err := store.ReadCollection(context.Background(), KeySOSAlerts, &out); err != nil {
		t.Fatalf("missing key must not error, got: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty collection, got %+v", out)
	}
}

func TestMemoryStoreReadCollectionMalformedPayload(t *testing.T) {
	store := NewMemoryStore(zaptest.NewLogger(t))
	ctx := context.Background()

	if err := store.WriteScalar(ctx, KeyComplaints, "{not json"); err != nil {
		t.Fatalf("WriteScalar returned error: %v", err)
	}

	var out []testRecord
	if err := store.ReadCollection(ctx, KeyComplaints, &out); err != nil {
		t.Fatalf("malformed payload must not error, got: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty collection, got %+v", out)
	}
}

func TestMemoryStoreScalarLifecycle(t *testing.T) {
	store := NewMemoryStore(zaptest.NewLogger(t))
	ctx := context.Background()

	if _, ok, err := store.ReadScalar(ctx, KeyCurrentUserEmail); err != nil || ok {
		t.Fatalf("expected absent scalar, got ok=%v err=%v", ok, err)
	}

	if err := store.WriteScalar(ctx, KeyCurrentUserEmail, "a@srmuniversity.edu.in"); err != nil {
		t.Fatalf("WriteScalar returned error: %v", err)
	}

	value, ok, err := store.ReadScalar(ctx, KeyCurrentUserEmail)
	if err != nil || !ok {
		t.Fatalf("expected stored scalar, got ok=%v err=%v", ok, err)
	}
	if value != "a@srmuniversity.edu.in" {
		t.Fatalf("unexpected scalar value %q", value)
	}

	if err := store.DeleteScalar(ctx, KeyCurrentUserEmail); err != nil {
		t.Fatalf("DeleteScalar returned error: %v", err)
	}
	if _, ok, _ := store.ReadScalar(ctx, KeyCurrentUserEmail); ok {
		t.Fatal("scalar should be gone after delete")
	}

	// Deleting an absent key stays a no-op.
	if err := store.DeleteScalar(ctx, KeyCurrentUserEmail); err != nil {
		t.Fatalf("deleting absent key returned error: %v", err)
	}
}
