package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{
		Seed:     42,
		MaxDepth: 5,
		Levels:   4,
		Frames:   1200,
		Backend:  "terminal",
		Duration: 20 * time.Second,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	r, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if r == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}

	if r.Seed != 42 || r.MaxDepth != 5 || r.Levels != 4 {
		t.Errorf("run = %+v, expected seed 42, depth 5, 4 levels", r)
	}
	if r.Frames != 1200 {
		t.Errorf("Frames = %d, expected 1200", r.Frames)
	}
	if r.Backend != "terminal" {
		t.Errorf("Backend = %q, expected terminal", r.Backend)
	}
	if r.Duration != 20*time.Second {
		t.Errorf("Duration = %v, expected 20s", r.Duration)
	}
	if r.User != "" {
		t.Errorf("User = %q, expected empty", r.User)
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	r, err := store.RunByID(999)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if r != nil {
		t.Errorf("RunByID(999) = %+v, expected nil", r)
	}
}

func TestStoreRecentRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(RunRecord{Seed: int64(i), MaxDepth: 5, Levels: 5, Backend: "png"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Newest first: seeds 4, 3, 2
	if runs[0].Seed != 4 || runs[1].Seed != 3 || runs[2].Seed != 2 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreRecentRunsDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 25; i++ {
		store.SaveRun(RunRecord{Seed: int64(i), Backend: "terminal"})
	}

	runs, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 20 {
		t.Errorf("Expected 20 runs with default limit, got %d", len(runs))
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{Seed: 1, Backend: "terminal"})
	store.SaveRun(RunRecord{Seed: 2, Backend: "window"})

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.RecentRuns(10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{Seed: 1, Backend: "terminal", Frames: 100, Duration: time.Second})
	store.SaveRun(RunRecord{Seed: 2, Backend: "terminal", Frames: 50, Duration: 2 * time.Second})
	store.SaveRun(RunRecord{Seed: 3, Backend: "ssh", User: "alice", Frames: 10})

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 backends, got %d", len(stats))
	}

	term := stats["terminal"]
	if term == nil {
		t.Fatal("missing terminal stats")
	}
	if term.Runs != 2 || term.TotalFrames != 150 || term.TotalTime != 3*time.Second {
		t.Errorf("terminal stats = %+v, expected 2 runs, 150 frames, 3s", term)
	}
	if stats["ssh"].Runs != 1 {
		t.Errorf("ssh runs = %d, expected 1", stats["ssh"].Runs)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
