package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "Initial schema",
		SQL: `
CREATE TABLE IF NOT EXISTS counties (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    latitude REAL NOT NULL,
    longitude REAL NOT NULL,
    climate_zone TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS county_environments (
    county_id INTEGER PRIMARY KEY REFERENCES counties(id),
    rainfall_min REAL NOT NULL,
    rainfall_max REAL NOT NULL,
    temp_min REAL NOT NULL,
    temp_max REAL NOT NULL,
    altitude_min REAL NOT NULL,
    altitude_max REAL NOT NULL,
    soil_ph_min REAL NOT NULL,
    soil_ph_max REAL NOT NULL,
    soil_types TEXT NOT NULL,
    best_seasons TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS species (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    base_survival REAL NOT NULL,
    soil TEXT NOT NULL DEFAULT '',
    rainfall TEXT NOT NULL DEFAULT '',
    temperature TEXT NOT NULL DEFAULT '',
    care_level TEXT NOT NULL DEFAULT '',
    best_season TEXT NOT NULL DEFAULT '',
    planting_method TEXT NOT NULL DEFAULT '',
    water TEXT NOT NULL DEFAULT '',
    planting_guide TEXT NOT NULL DEFAULT '[]',
    care_instructions TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS compatibilities (
    county_id INTEGER NOT NULL REFERENCES counties(id),
    species_id INTEGER NOT NULL REFERENCES species(id),
    survival_rate REAL NOT NULL,
    rank INTEGER NOT NULL,
    confidence_score REAL NOT NULL,
    seasonal_performance TEXT NOT NULL DEFAULT '{}',
    reason TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (county_id, species_id)
);

CREATE TABLE IF NOT EXISTS weather_snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    latitude REAL NOT NULL,
    longitude REAL NOT NULL,
    temp_c REAL NOT NULL,
    humidity REAL NOT NULL,
    wind_speed REAL NOT NULL,
    rainfall_mm REAL NOT NULL,
    fetched_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS predictions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    reference TEXT NOT NULL UNIQUE,
    county_id INTEGER NOT NULL REFERENCES counties(id),
    species_id INTEGER NOT NULL REFERENCES species(id),
    season TEXT NOT NULL,
    care_level TEXT NOT NULL,
    experience TEXT NOT NULL,
    final_score REAL NOT NULL,
    ml_score REAL,
    playbook_score REAL NOT NULL,
    seasonal_bonus REAL NOT NULL,
    llm_adjustment REAL,
    risk_tier TEXT NOT NULL,
    confidence TEXT NOT NULL,
    weather_source TEXT NOT NULL,
    snapshot_id INTEGER REFERENCES weather_snapshots(id),
    model_version TEXT NOT NULL,
    ai_used BOOLEAN NOT NULL DEFAULT FALSE,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tree_plantings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    county_id INTEGER NOT NULL REFERENCES counties(id),
    species_id INTEGER NOT NULL REFERENCES species(id),
    tree_count INTEGER NOT NULL,
    status TEXT NOT NULL DEFAULT 'planned',
    awarded BOOLEAN NOT NULL DEFAULT FALSE,
    planted_at DATETIME,
    verified_at DATETIME,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS environmental_reports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    county_id INTEGER NOT NULL REFERENCES counties(id),
    category TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'new',
    awarded BOOLEAN NOT NULL DEFAULT FALSE,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS ledger_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    kind TEXT NOT NULL,
    amount REAL NOT NULL,
    value_kes REAL,
    ref_kind TEXT NOT NULL,
    ref_id INTEGER NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_balances (
    user_id INTEGER PRIMARY KEY,
    points INTEGER NOT NULL DEFAULT 0,
    carbon_balance REAL NOT NULL DEFAULT 0,
    carbon_earned REAL NOT NULL DEFAULT 0,
    estimated_value_kes REAL NOT NULL DEFAULT 0,
    badges TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS carbon_transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    kind TEXT NOT NULL,
    amount REAL NOT NULL,
    value_kes REAL NOT NULL,
    project_name TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_predictions_county_species ON predictions(county_id, species_id);
CREATE INDEX IF NOT EXISTS idx_ledger_user ON ledger_entries(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_plantings_user ON tree_plantings(user_id);
CREATE INDEX IF NOT EXISTS idx_reports_user ON environmental_reports(user_id);
`,
	},
	{
		Version:     2,
		Description: "Add verified tree totals to user_balances for badge tiers",
		SQL: `
ALTER TABLE user_balances ADD COLUMN trees_verified INTEGER NOT NULL DEFAULT 0;
`,
	},
}

func (s *Store) Migrate() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		log.Printf("migrations: applying %d - %s", m.Version, m.Description)

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin tx for migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Description, time.Now().UTC(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}

		log.Printf("migrations: completed %d", m.Version)
	}

	return nil
}

func (s *Store) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME
		)
	`)
	return err
}

func (s *Store) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (s *Store) MigrationVersion() (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}
