package database

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
)

// Migration represents a schema migration. Migrations are embedded rather
// than shipped as .sql assets so the CLI stays a single binary.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_runs",
		SQL: `
			CREATE TABLE IF NOT EXISTS runs (
				id TEXT PRIMARY KEY,
				kind TEXT NOT NULL,
				seed INTEGER NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				error TEXT NOT NULL DEFAULT '',
				started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				completed_at TIMESTAMP
			)
		`,
	},
	{
		Version: 2,
		Name:    "create_strata",
		SQL: `
			CREATE TABLE IF NOT EXISTS strata (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id TEXT NOT NULL REFERENCES runs(id),
				name TEXT NOT NULL,
				kind TEXT NOT NULL,
				feature_count INTEGER NOT NULL,
				path TEXT NOT NULL
			)
		`,
	},
	{
		Version: 3,
		Name:    "create_sample_units",
		SQL: `
			CREATE TABLE IF NOT EXISTS sample_units (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id TEXT NOT NULL REFERENCES runs(id),
				stratum TEXT NOT NULL,
				provenance_id INTEGER NOT NULL,
				fraction REAL NOT NULL,
				x REAL NOT NULL,
				y REAL NOT NULL
			)
		`,
	},
	{
		Version: 4,
		Name:    "create_plots",
		SQL: `
			CREATE TABLE IF NOT EXISTS plots (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id TEXT NOT NULL REFERENCES runs(id),
				plot_id INTEGER NOT NULL,
				end_type TEXT NOT NULL,
				x REAL NOT NULL,
				y REAL NOT NULL,
				radius REAL NOT NULL
			)
		`,
	},
	{
		Version: 5,
		Name:    "index_strata_run",
		SQL:     `CREATE INDEX IF NOT EXISTS idx_strata_run ON strata(run_id)`,
	},
	{
		Version: 6,
		Name:    "index_sample_units_run",
		SQL:     `CREATE INDEX IF NOT EXISTS idx_sample_units_run ON sample_units(run_id)`,
	},
	{
		Version: 7,
		Name:    "index_plots_run",
		SQL:     `CREATE INDEX IF NOT EXISTS idx_plots_run ON plots(run_id)`,
	},
}

// Migrate applies every unapplied migration in version order.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}
	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	pending := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	for _, m := range pending {
		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}
	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}
