package repository

import (
	"database/sql"
	"fmt"

	"github.com/tmyeomans/RS2.1/internal/database"
	"github.com/tmyeomans/RS2.1/internal/models"
)

// SampleRepository handles database operations for strata and sample units
type SampleRepository struct {
	db *sql.DB
}

// NewSampleRepository creates a new sample repository
func NewSampleRepository(db *sql.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

// RecordStratum registers one materialized stratum dataset
func (r *SampleRepository) RecordStratum(s *models.StratumRecord) error {
	_, err := r.db.Exec(
		`INSERT INTO strata (run_id, name, kind, feature_count, path) VALUES (?, ?, ?, ?, ?)`,
		s.RunID, s.Name, s.Kind, s.FeatureCount, s.Path,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stratum: %w", err)
	}
	return nil
}

// RecordUnits inserts all sample units of one stratum in one transaction
func (r *SampleRepository) RecordUnits(units []models.SampleUnit) error {
	if len(units) == 0 {
		return nil
	}
	return database.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(
			`INSERT INTO sample_units (run_id, stratum, provenance_id, fraction, x, y)
			 VALUES (?, ?, ?, ?, ?, ?)`,
		)
		if err != nil {
			return fmt.Errorf("failed to prepare sample insert: %w", err)
		}
		defer stmt.Close()
		for _, u := range units {
			if _, err := stmt.Exec(u.RunID, u.Stratum, u.ProvenanceID, u.Fraction, u.X, u.Y); err != nil {
				return fmt.Errorf("failed to insert sample unit: %w", err)
			}
		}
		return nil
	})
}

// UnitsByRun returns every sample unit recorded for a run
func (r *SampleRepository) UnitsByRun(runID string) ([]models.SampleUnit, error) {
	rows, err := r.db.Query(
		`SELECT run_id, stratum, provenance_id, fraction, x, y
		 FROM sample_units WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sample units: %w", err)
	}
	defer rows.Close()

	var units []models.SampleUnit
	for rows.Next() {
		var u models.SampleUnit
		if err := rows.Scan(&u.RunID, &u.Stratum, &u.ProvenanceID, &u.Fraction, &u.X, &u.Y); err != nil {
			return nil, fmt.Errorf("failed to scan sample unit: %w", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// StrataByRun returns the stratum records for a run
func (r *SampleRepository) StrataByRun(runID string) ([]models.StratumRecord, error) {
	rows, err := r.db.Query(
		`SELECT run_id, name, kind, feature_count, path FROM strata WHERE run_id = ? ORDER BY name`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query strata: %w", err)
	}
	defer rows.Close()

	var records []models.StratumRecord
	for rows.Next() {
		var s models.StratumRecord
		if err := rows.Scan(&s.RunID, &s.Name, &s.Kind, &s.FeatureCount, &s.Path); err != nil {
			return nil, fmt.Errorf("failed to scan stratum: %w", err)
		}
		records = append(records, s)
	}
	return records, rows.Err()
}
