package tracker

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"tasklink/internal/logging"
	"tasklink/internal/types"
)

// SnapshotCache persists the last fetched task snapshot per project in a
// local SQLite database so `match --cached` and hooks can run offline. It is
// a collaborator convenience; the matching core itself never caches.
type SnapshotCache struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// OpenSnapshotCache initializes the SQLite database at the given path.
func OpenSnapshotCache(path string) (*SnapshotCache, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	cache := &SnapshotCache{db: db, dbPath: path}
	if err := cache.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return cache, nil
}

// initialize creates the required tables.
func (c *SnapshotCache) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS task_snapshots (
		project_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		payload TEXT NOT NULL,
		fetched_at INTEGER NOT NULL,
		PRIMARY KEY (project_id, position)
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_project ON task_snapshots(project_id);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Put replaces the cached snapshot for a project. Task order is preserved
// because the matcher's tie-break is input order.
func (c *SnapshotCache) Put(projectID string, tasks []types.Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM task_snapshots WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	now := time.Now().Unix()
	for i, task := range tasks {
		payload, err := json.Marshal(task)
		if err != nil {
			return fmt.Errorf("failed to encode task %s: %w", task.ID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO task_snapshots (project_id, position, payload, fetched_at) VALUES (?, ?, ?, ?)`,
			projectID, i, string(payload), now,
		); err != nil {
			return fmt.Errorf("failed to insert task %s: %w", task.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	logging.TrackerDebug("cached %d tasks for project %s", len(tasks), projectID)
	return nil
}

// Get returns the cached snapshot for a project and its age. A project with
// no snapshot returns an empty slice and zero age, not an error.
func (c *SnapshotCache) Get(projectID string) ([]types.Task, time.Duration, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, err := c.db.Query(
		`SELECT payload, fetched_at FROM task_snapshots WHERE project_id = ? ORDER BY position`,
		projectID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	var tasks []types.Task
	var fetchedAt int64
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload, &fetchedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		var task types.Task
		if err := json.Unmarshal([]byte(payload), &task); err != nil {
			return nil, 0, fmt.Errorf("failed to decode cached task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var age time.Duration
	if fetchedAt > 0 {
		age = time.Since(time.Unix(fetchedAt, 0))
	}
	return tasks, age, nil
}

// Close releases the database handle.
func (c *SnapshotCache) Close() error {
	return c.db.Close()
}
