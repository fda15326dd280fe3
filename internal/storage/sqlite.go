// Package storage provides SQLite-based persistence for simulation run
// reports. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/polycollide/internal/sim"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord represents one stored simulation run.
type RunRecord struct {
	ID             string
	SceneID        string
	Steps          int
	Bodies         int
	Collisions     int
	Touches        int
	Corrections    int
	MaxDepth       float64
	MomentumBefore float64
	MomentumAfter  float64
	Duration       time.Duration
	CreatedAt      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			scene_id TEXT NOT NULL,
			steps INTEGER NOT NULL,
			bodies INTEGER NOT NULL DEFAULT 0,
			collisions INTEGER NOT NULL DEFAULT 0,
			touches INTEGER NOT NULL DEFAULT 0,
			corrections INTEGER NOT NULL DEFAULT 0,
			max_depth REAL NOT NULL DEFAULT 0,
			momentum_before REAL NOT NULL DEFAULT 0,
			momentum_after REAL NOT NULL DEFAULT 0,
			duration_us INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scene_id ON runs(scene_id);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(scene_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run. A missing ID is generated.
// Returns the ID of the stored record.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, scene_id, steps, bodies, collisions, touches, corrections, max_depth, momentum_before, momentum_after, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.SceneID,
		r.Steps,
		r.Bodies,
		r.Collisions,
		r.Touches,
		r.Corrections,
		r.MaxDepth,
		r.MomentumBefore,
		r.MomentumAfter,
		r.Duration.Microseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

// SaveReport stores a simulation report.
func (s *Store) SaveReport(rep sim.Report) (string, error) {
	return s.SaveRun(RunRecord{
		ID:             rep.ID,
		SceneID:        rep.SceneID,
		Steps:          rep.Steps,
		Bodies:         rep.Bodies,
		Collisions:     rep.Collisions,
		Touches:        rep.Touches,
		Corrections:    rep.Corrections,
		MaxDepth:       rep.MaxDepth,
		MomentumBefore: rep.MomentumBefore,
		MomentumAfter:  rep.MomentumAfter,
		Duration:       rep.Duration,
	})
}

const runColumns = `id, scene_id, steps, bodies, collisions, touches, corrections,
		        max_depth, momentum_before, momentum_after, duration_us, created_at`

// RecentRuns retrieves the most recent runs of a scene, newest first.
// An empty sceneID matches every scene.
func (s *Store) RecentRuns(sceneID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR scene_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		sceneID, sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*RunRecord, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ClearRuns deletes all runs of the given scene. An empty sceneID clears
// every run.
func (s *Store) ClearRuns(sceneID string) error {
	var err error
	if sceneID == "" {
		_, err = s.db.Exec("DELETE FROM runs")
	} else {
		_, err = s.db.Exec("DELETE FROM runs WHERE scene_id = ?", sceneID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SceneStats contains aggregated statistics for a scene.
type SceneStats struct {
	SceneID         string
	Runs            int
	TotalSteps      int64
	TotalCollisions int64
	MaxDepth        float64
	AvgDuration     time.Duration
	LastRun         time.Time
}

// SceneStats retrieves aggregated statistics for a specific scene.
func (s *Store) SceneStats(sceneID string) (*SceneStats, error) {
	stats := &SceneStats{SceneID: sceneID}

	var avgMicros float64
	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(steps), 0), COALESCE(SUM(collisions), 0),
		        COALESCE(MAX(max_depth), 0), COALESCE(AVG(duration_us), 0), MAX(created_at)
		 FROM runs WHERE scene_id = ?`,
		sceneID,
	).Scan(&stats.Runs, &stats.TotalSteps, &stats.TotalCollisions, &stats.MaxDepth, &avgMicros, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}

	stats.AvgDuration = time.Duration(avgMicros) * time.Microsecond
	stats.LastRun = parseTime(lastRun)
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var r RunRecord
	var micros int64
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.SceneID,
		&r.Steps,
		&r.Bodies,
		&r.Collisions,
		&r.Touches,
		&r.Corrections,
		&r.MaxDepth,
		&r.MomentumBefore,
		&r.MomentumAfter,
		&micros,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.Duration = time.Duration(micros) * time.Microsecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
