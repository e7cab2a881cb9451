package storage

import (
	"path/filepath"
	"testing"

	"stacksafe/core/engine"
	"stacksafe/core/risk"
	"stacksafe/core/types"
	"stacksafe/internal/errors"
)

func newTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := NewHistoryStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testReport(score int, level types.Severity) *engine.Report {
	return &engine.Report{
		Result: risk.Result{
			OverallRiskLevel: level,
			Interactions:     nil,
			NutrientWarnings: nil,
		},
		Score:     score,
		StackSize: 2,
		KBVersion: "test",
	}
}

func TestSaveAndGet(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save(testReport(62, types.SeverityModerate), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected an ID")
	}

	got, err := store.Get(saved.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 62 || got.OverallRisk != types.SeverityModerate {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.StackHash != "abc123" {
		t.Errorf("expected stack hash abc123, got %s", got.StackHash)
	}
	if got.StackSize != 2 {
		t.Errorf("expected stack size 2, got %d", got.StackSize)
	}
	if len(got.Report) == 0 {
		t.Error("expected the stored report payload")
	}
}

func TestGetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("nonexistent")
	if err == nil {
		t.Fatal("expected error for unknown ID")
	}
	if !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	for i, level := range []types.Severity{types.SeverityNone, types.SeverityLow, types.SeverityHigh} {
		if _, err := store.Save(testReport(90-i, level), "hash"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := store.List(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].CreatedAt.After(entries[i-1].CreatedAt) {
			t.Error("expected newest-first ordering")
		}
	}
}

func TestListRespectsLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.Save(testReport(75, types.SeverityNone), "hash"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := store.List(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}
