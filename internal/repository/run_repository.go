package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tmyeomans/RS2.1/internal/models"
)

// RunRepository handles database operations for sampling runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new pending run
func (r *RunRepository) Create(run *models.Run) error {
	_, err := r.db.Exec(
		`INSERT INTO runs (id, kind, seed, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), run.Seed, run.Status, run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// MarkRunning marks a run as running
func (r *RunRepository) MarkRunning(id string) error {
	_, err := r.db.Exec(`UPDATE runs SET status = ? WHERE id = ?`, models.RunRunning, id)
	if err != nil {
		return fmt.Errorf("failed to mark run running: %w", err)
	}
	return nil
}

// MarkCompleted marks a run as completed
func (r *RunRepository) MarkCompleted(id string) error {
	_, err := r.db.Exec(
		`UPDATE runs SET status = ?, completed_at = ? WHERE id = ?`,
		models.RunCompleted, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark run completed: %w", err)
	}
	return nil
}

// MarkFailed marks a run as failed with an error message
func (r *RunRepository) MarkFailed(id string, errMsg string) error {
	_, err := r.db.Exec(
		`UPDATE runs SET status = ?, error = ?, completed_at = ? WHERE id = ?`,
		models.RunFailed, errMsg, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark run failed: %w", err)
	}
	return nil
}

// List returns runs ordered newest first
func (r *RunRepository) List(limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(
		`SELECT id, kind, seed, status, error, started_at, completed_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetByID returns a single run, or nil when absent
func (r *RunRepository) GetByID(id string) (*models.Run, error) {
	row := r.db.QueryRow(
		`SELECT id, kind, seed, status, error, started_at, completed_at FROM runs WHERE id = ?`, id,
	)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var run models.Run
	var kind string
	var completed sql.NullTime
	if err := row.Scan(&run.ID, &kind, &run.Seed, &run.Status, &run.Error, &run.StartedAt, &completed); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	run.Kind = models.RunKind(kind)
	if completed.Valid {
		t := completed.Time
		run.CompletedAt = &t
	}
	return &run, nil
}
