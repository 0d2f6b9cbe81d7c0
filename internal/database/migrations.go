package database

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the embedded, versioned schema. Timestamps are stored as
// unix seconds. The journey_points TTL trigger enforces the 30-day retention
// at the storage layer so no application sweep is needed.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "001_create_history",
		SQL: `
			CREATE TABLE IF NOT EXISTS history (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id TEXT NOT NULL,
				latitude REAL,
				longitude REAL,
				speed REAL NOT NULL DEFAULT 0,
				accel_x REAL NOT NULL DEFAULT 0,
				accel_y REAL NOT NULL DEFAULT 0,
				accel_z REAL NOT NULL DEFAULT 0,
				gyro_x REAL NOT NULL DEFAULT 0,
				gyro_y REAL NOT NULL DEFAULT 0,
				gyro_z REAL NOT NULL DEFAULT 0,
				intensity TEXT NOT NULL DEFAULT 'Idle',
				is_abnormal INTEGER NOT NULL DEFAULT 0,
				ts INTEGER NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_history_user_ts ON history(user_id, ts);
		`,
	},
	{
		Version: 2,
		Name:    "002_create_journey_points",
		SQL: `
			CREATE TABLE IF NOT EXISTS journey_points (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id TEXT NOT NULL,
				date_key TEXT NOT NULL,
				ts INTEGER NOT NULL,
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				speed REAL NOT NULL DEFAULT 0,
				accuracy REAL NOT NULL DEFAULT 0,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_journey_points_user_day ON journey_points(user_id, date_key, ts);

			CREATE TRIGGER IF NOT EXISTS journey_points_retention
			AFTER INSERT ON journey_points
			BEGIN
				DELETE FROM journey_points WHERE ts < (strftime('%s', 'now') - 30 * 86400);
			END;
		`,
	},
	{
		Version: 3,
		Name:    "003_create_journey_events",
		SQL: `
			CREATE TABLE IF NOT EXISTS journey_events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id TEXT NOT NULL,
				date_key TEXT NOT NULL,
				ts INTEGER NOT NULL,
				type TEXT NOT NULL,
				title TEXT NOT NULL,
				subtitle TEXT NOT NULL,
				latitude REAL,
				longitude REAL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_journey_events_user_day ON journey_events(user_id, date_key, ts);
		`,
	},
	{
		Version: 4,
		Name:    "004_create_protectors",
		SQL: `
			CREATE TABLE IF NOT EXISTS protectors (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				name TEXT NOT NULL,
				phone TEXT NOT NULL,
				photo TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_protectors_user ON protectors(user_id);
		`,
	},
	{
		Version: 5,
		Name:    "005_create_users",
		SQL: `
			CREATE TABLE IF NOT EXISTS users (
				user_id TEXT PRIMARY KEY,
				name TEXT NOT NULL DEFAULT '',
				email TEXT NOT NULL DEFAULT '',
				phone TEXT NOT NULL DEFAULT '',
				avatar TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
}

// MigrationManager manages database migrations
type MigrationManager struct {
	db *sql.DB
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *sql.DB) *MigrationManager {
	return &MigrationManager{db: db}
}

// InitMigrationsTable creates the migrations tracking table
func (m *MigrationManager) InitMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := m.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// GetAppliedMigrations returns a list of applied migration versions
func (m *MigrationManager) GetAppliedMigrations() (map[int]bool, error) {
	rows, err := m.db.Query("SELECT version FROM migrations ORDER BY version")
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

	return applied, nil
}

// ApplyMigration applies a single migration
func (m *MigrationManager) ApplyMigration(migration Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	// Execute migration SQL
	_, err = tx.Exec(migration.SQL)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute migration %d: %w", migration.Version, err)
	}

	// Record migration
	_, err = tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", migration.Version, migration.Name)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
	}

	log.Printf("Applied migration %d: %s", migration.Version, migration.Name)
	return nil
}

// RunMigrations runs all pending migrations
func (m *MigrationManager) RunMigrations() error {
	// Initialize migrations table
	if err := m.InitMigrationsTable(); err != nil {
		return err
	}

	// Get applied migrations
	applied, err := m.GetAppliedMigrations()
	if err != nil {
		return err
	}

	pending := make([]Migration, len(migrations))
	copy(pending, migrations)
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Version < pending[j].Version
	})

	// Apply pending migrations
	for _, migration := range pending {
		if applied[migration.Version] {
			continue
		}

		if err := m.ApplyMigration(migration); err != nil {
			return err
		}
	}

	log.Println("All migrations applied successfully")
	return nil
}
