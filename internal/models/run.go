package models

import "time"

// RunKind identifies which pipeline a run executed.
type RunKind string

const (
	RunLines  RunKind = "lines"
	RunPads   RunKind = "pads"
	RunMatrix RunKind = "matrix"
)

// Run status lifecycle values.
const (
	RunPending   = "pending"
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// Run records one execution of a sampling pipeline, keyed by a UUID so
// results stay traceable after the working files have been handed off for
// digitization.
type Run struct {
	ID          string     `json:"id" db:"id"`
	Kind        RunKind    `json:"kind" db:"kind"`
	Seed        int64      `json:"seed" db:"seed"`
	Status      string     `json:"status" db:"status"`
	Error       string     `json:"error,omitempty" db:"error"`
	StartedAt   time.Time  `json:"started_at" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// StratumRecord is the registry row for one materialized stratum dataset.
type StratumRecord struct {
	RunID        string `json:"run_id" db:"run_id"`
	Name         string `json:"name" db:"name"`
	Kind         string `json:"kind" db:"kind"` // "strata", "grid", "ecosite"
	FeatureCount int    `json:"feature_count" db:"feature_count"`
	Path         string `json:"path" db:"path"`
}
