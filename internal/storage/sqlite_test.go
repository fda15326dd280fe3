package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/polycollide/internal/sim"
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, steps := range []int{100, 200, 300} {
		if _, err := store.SaveRun(RunRecord{SceneID: "stack", Steps: steps, Collisions: steps / 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(RunRecord{SceneID: "rain", Steps: 50}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("stack", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].Steps != 300 || runs[2].Steps != 100 {
		t.Errorf("Runs not newest first: %d, %d, %d", runs[0].Steps, runs[1].Steps, runs[2].Steps)
	}
	if runs[0].ID == "" {
		t.Error("Expected generated ID")
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 runs across scenes, got %d", len(all))
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(RunRecord{SceneID: "test", Steps: i})
	}

	runs, err := store.RecentRuns("test", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
}

func TestStoreSaveReport(t *testing.T) {
	store := openTestStore(t)

	rep := sim.Report{
		ID:             "7e57e57e-0000-4000-8000-000000000001",
		SceneID:        "bullet",
		Steps:          600,
		Bodies:         7,
		Collisions:     12,
		Touches:        3,
		Corrections:    4,
		MaxDepth:       1.25,
		MomentumBefore: 240,
		MomentumAfter:  239.5,
		Duration:       1500 * time.Microsecond,
	}
	id, err := store.SaveReport(rep)
	if err != nil {
		t.Fatalf("SaveReport() failed: %v", err)
	}
	if id != rep.ID {
		t.Errorf("SaveReport() id = %s, want %s", id, rep.ID)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() found nothing")
	}
	if got.SceneID != "bullet" || got.Steps != 600 || got.Bodies != 7 || got.Collisions != 12 ||
		got.Touches != 3 || got.Corrections != 4 || got.MaxDepth != 1.25 ||
		got.MomentumBefore != 240 || got.MomentumAfter != 239.5 || got.Duration != rep.Duration {
		t.Errorf("RunByID() = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}

	missing, err := store.RunByID("nope")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %v, %v", missing, err)
	}

	if _, err := store.SaveReport(rep); err == nil {
		t.Error("Expected duplicate ID to fail")
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{SceneID: "stack", Steps: 1})
	store.SaveRun(RunRecord{SceneID: "stack", Steps: 2})
	store.SaveRun(RunRecord{SceneID: "rain", Steps: 3})

	if err := store.ClearRuns("stack"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	stackRuns, _ := store.RecentRuns("stack", 10)
	if len(stackRuns) != 0 {
		t.Errorf("Expected 0 stack runs after clear, got %d", len(stackRuns))
	}

	rainRuns, _ := store.RecentRuns("rain", 10)
	if len(rainRuns) != 1 {
		t.Errorf("Rain runs should not be affected by clearing stack")
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns(\"\") failed: %v", err)
	}
	all, _ := store.RecentRuns("", 10)
	if len(all) != 0 {
		t.Errorf("Expected 0 runs after clearing all, got %d", len(all))
	}
}

func TestStoreSceneStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.SceneStats("stack")
	if err != nil {
		t.Fatalf("SceneStats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastRun.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRun(RunRecord{SceneID: "stack", Steps: 100, Collisions: 5, MaxDepth: 0.5, Duration: 2 * time.Millisecond})
	store.SaveRun(RunRecord{SceneID: "stack", Steps: 300, Collisions: 7, MaxDepth: 1.5, Duration: 4 * time.Millisecond})

	stats, err := store.SceneStats("stack")
	if err != nil {
		t.Fatalf("SceneStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.TotalSteps != 400 || stats.TotalCollisions != 12 {
		t.Errorf("Unexpected totals: %+v", stats)
	}
	if stats.MaxDepth != 1.5 {
		t.Errorf("Expected max depth 1.5, got %v", stats.MaxDepth)
	}
	if stats.AvgDuration != 3*time.Millisecond {
		t.Errorf("Expected average duration 3ms, got %v", stats.AvgDuration)
	}
	if stats.LastRun.IsZero() {
		t.Error("Expected last run time")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
