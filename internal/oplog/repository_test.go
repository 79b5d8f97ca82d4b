package oplog

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenAt(filepath.Join(t.TempDir(), "oplog.db"))
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSave_AssignsIDAndTimestamp(t *testing.T) {
	repo := newTestRepo(t)

	entry := &Entry{
		Operation: "reconcile",
		Domain:    "example.com",
		Outcome:   OutcomeSuccess,
		Detail:    "added www.example.com -> 203.0.113.5 (A)",
	}
	if err := repo.Save(entry); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if entry.ID == 0 {
		t.Error("expected Save to assign an ID")
	}
	if entry.Timestamp.IsZero() {
		t.Error("expected Save to assign a timestamp")
	}
}

func TestList_NewestFirstAndBounded(t *testing.T) {
	repo := newTestRepo(t)

	for i := 0; i < 25; i++ {
		err := repo.Save(&Entry{
			Operation: "reconcile",
			Domain:    "example.com",
			Outcome:   OutcomeSuccess,
			Timestamp: time.Date(2026, 1, 1, 0, 0, i, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := repo.List(DisplayLimit)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != DisplayLimit {
		t.Fatalf("expected %d entries, got %d", DisplayLimit, len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.After(entries[i-1].Timestamp) {
			t.Fatal("entries not ordered newest first")
		}
	}
}

func TestListByOperation_Filters(t *testing.T) {
	repo := newTestRepo(t)

	ops := []string{"reconcile", "delete", "reconcile", "set-status"}
	for _, op := range ops {
		if err := repo.Save(&Entry{Operation: op, Outcome: OutcomeSuccess}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := repo.ListByOperation("reconcile", 10)
	if err != nil {
		t.Fatalf("ListByOperation failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 reconcile entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Operation != "reconcile" {
			t.Errorf("unexpected operation %q in filtered list", e.Operation)
		}
	}
}

func TestPrune_RemovesOldEntries(t *testing.T) {
	repo := newTestRepo(t)

	old := &Entry{Operation: "delete", Outcome: OutcomeError, Timestamp: time.Now().UTC().Add(-48 * time.Hour)}
	recent := &Entry{Operation: "delete", Outcome: OutcomeSuccess}
	if err := repo.Save(old); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(recent); err != nil {
		t.Fatal(err)
	}

	n, err := repo.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 pruned entry, got %d", n)
	}

	entries, err := repo.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Outcome != OutcomeSuccess {
		t.Errorf("expected only the recent entry to remain, got %+v", entries)
	}
}
