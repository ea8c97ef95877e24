package repository

import (
	"database/sql"
	"fmt"

	"github.com/tmyeomans/RS2.1/internal/database"
	"github.com/tmyeomans/RS2.1/internal/models"
)

// PlotRepository handles database operations for matrix plots
type PlotRepository struct {
	db *sql.DB
}

// NewPlotRepository creates a new plot repository
func NewPlotRepository(db *sql.DB) *PlotRepository {
	return &PlotRepository{db: db}
}

// RecordPlots inserts all plots of one run in one transaction
func (r *PlotRepository) RecordPlots(plots []models.MatrixPlot) error {
	if len(plots) == 0 {
		return nil
	}
	return database.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(
			`INSERT INTO plots (run_id, plot_id, end_type, x, y, radius)
			 VALUES (?, ?, ?, ?, ?, ?)`,
		)
		if err != nil {
			return fmt.Errorf("failed to prepare plot insert: %w", err)
		}
		defer stmt.Close()
		for _, p := range plots {
			if _, err := stmt.Exec(p.RunID, p.PlotID, p.EndType, p.X, p.Y, p.Radius); err != nil {
				return fmt.Errorf("failed to insert plot: %w", err)
			}
		}
		return nil
	})
}

// PlotsByRun returns every plot recorded for a run
func (r *PlotRepository) PlotsByRun(runID string) ([]models.MatrixPlot, error) {
	rows, err := r.db.Query(
		`SELECT run_id, plot_id, end_type, x, y, radius FROM plots WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query plots: %w", err)
	}
	defer rows.Close()

	var plots []models.MatrixPlot
	for rows.Next() {
		var p models.MatrixPlot
		if err := rows.Scan(&p.RunID, &p.PlotID, &p.EndType, &p.X, &p.Y, &p.Radius); err != nil {
			return nil, fmt.Errorf("failed to scan plot: %w", err)
		}
		plots = append(plots, p)
	}
	return plots, rows.Err()
}
