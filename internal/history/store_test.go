package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenPath returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	first := &Run{
		RunID:      "run-1",
		StartedAt:  time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 8, 24, 10, 0, 5, 0, time.UTC),
		Roots:      []string{"/movies/Dual", "/movies/English"},
		Scanned:    10,
		Renamed:    4,
		Skipped:    5,
		Failed:     1,
		ReportPath: "/reports/movies_renaming_report.json",
	}
	second := &Run{
		RunID:      "run-2",
		StartedAt:  time.Date(2026, 8, 24, 11, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 8, 24, 11, 0, 2, 0, time.UTC),
		DryRun:     true,
		Roots:      []string{"/movies/Dual"},
	}
	for _, run := range []*Run{first, second} {
		if err := store.RecordRun(ctx, run); err != nil {
			t.Fatalf("RecordRun returned error: %v", err)
		}
		if run.ID == 0 {
			t.Fatal("expected assigned run ID")
		}
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("unexpected run count: %d", len(runs))
	}
	if runs[0].RunID != "run-2" || runs[1].RunID != "run-1" {
		t.Fatalf("expected newest first, got %s then %s", runs[0].RunID, runs[1].RunID)
	}
	if !runs[0].DryRun {
		t.Fatal("dry-run flag lost")
	}
	if runs[0].ReportPath != "" {
		t.Fatalf("expected empty report path, got %q", runs[0].ReportPath)
	}
	if got := runs[1]; got.Scanned != 10 || got.Renamed != 4 || got.Skipped != 5 || got.Failed != 1 {
		t.Fatalf("counters lost: %+v", got)
	}
	if len(runs[1].Roots) != 2 || runs[1].Roots[0] != "/movies/Dual" {
		t.Fatalf("roots lost: %v", runs[1].Roots)
	}
	if runs[1].Elapsed() != 5*time.Second {
		t.Fatalf("unexpected elapsed: %v", runs[1].Elapsed())
	}
}

func TestListRunsHonorsLimit(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		run := &Run{
			RunID:      string(rune('a' + i)),
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
		}
		if err := store.RecordRun(ctx, run); err != nil {
			t.Fatalf("RecordRun returned error: %v", err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns returned error: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != "c" {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestLookupCacheRoundTrip(t *testing.T) {
	store := newStore(t)
	cache := NewLookupCache(store, time.Hour)
	ctx := context.Background()

	if _, ok, err := cache.GetCandidates(ctx, "the matrix", 0); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	years := []string{"1999", "", "2003"}
	if err := cache.PutCandidates(ctx, "the matrix", 0, years); err != nil {
		t.Fatalf("PutCandidates returned error: %v", err)
	}

	got, ok, err := cache.GetCandidates(ctx, "the matrix", 0)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 3 || got[0] != "1999" || got[1] != "" || got[2] != "2003" {
		t.Fatalf("candidate order lost: %v", got)
	}

	// The same query with a year filter is a distinct cache entry.
	if _, ok, err := cache.GetCandidates(ctx, "the matrix", 1999); err != nil || ok {
		t.Fatalf("year filter must partition the cache, got ok=%v err=%v", ok, err)
	}
}

func TestLookupCacheUpdatesExistingEntry(t *testing.T) {
	store := newStore(t)
	cache := NewLookupCache(store, time.Hour)
	ctx := context.Background()

	if err := cache.PutCandidates(ctx, "movie", 0, []string{"2001"}); err != nil {
		t.Fatalf("PutCandidates returned error: %v", err)
	}
	if err := cache.PutCandidates(ctx, "movie", 0, []string{"2002"}); err != nil {
		t.Fatalf("PutCandidates refresh returned error: %v", err)
	}

	got, ok, err := cache.GetCandidates(ctx, "movie", 0)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0] != "2002" {
		t.Fatalf("expected refreshed entry, got %v", got)
	}
}

func TestLookupCacheExpiresStaleEntries(t *testing.T) {
	store := newStore(t)
	cache := NewLookupCache(store, time.Hour)
	ctx := context.Background()

	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	if err := cache.PutCandidates(ctx, "movie", 0, []string{"2001"}); err != nil {
		t.Fatalf("PutCandidates returned error: %v", err)
	}

	cache.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, ok, err := cache.GetCandidates(ctx, "movie", 0); err != nil || ok {
		t.Fatalf("stale entry must miss, got ok=%v err=%v", ok, err)
	}

	// The stale row is evicted, so a refresh starts clean.
	if err := cache.PutCandidates(ctx, "movie", 0, []string{"2005"}); err != nil {
		t.Fatalf("PutCandidates after expiry returned error: %v", err)
	}
	if got, ok, _ := cache.GetCandidates(ctx, "movie", 0); !ok || got[0] != "2005" {
		t.Fatalf("expected refreshed entry, got ok=%v %v", ok, got)
	}
}

func TestOpenPathRejectsVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	store, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath returned error: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := OpenPath(path); err == nil {
		t.Fatal("expected schema mismatch error")
	}
}
