package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_reference_id_to_documents",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_ledger_transactions_table",
		Up:      migrationV2,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations() error {
	db, err := GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}

	// Create schema_version table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(db); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}

// migrationV1 adds the caller-facing stable reference column to documents.
// Early installs identified documents by row ID only.
func migrationV1(db *sql.DB) error {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('shipment_documents')
		WHERE name = 'reference_id'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to inspect shipment_documents: %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := db.Exec(`ALTER TABLE shipment_documents ADD COLUMN reference_id TEXT NOT NULL DEFAULT ''`); err != nil {
		return fmt.Errorf("failed to add reference_id: %w", err)
	}

	// Backfill existing rows with their own ID as the stable reference
	if _, err := db.Exec(`UPDATE shipment_documents SET reference_id = id WHERE reference_id = ''`); err != nil {
		return fmt.Errorf("failed to backfill reference_id: %w", err)
	}
	return nil
}

// migrationV2 adds the ledger transaction audit log.
func migrationV2(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ledger_transactions (
			tx_hash TEXT PRIMARY KEY,
			method TEXT NOT NULL,
			shipment_id TEXT NOT NULL,
			escrow_address TEXT,
			amount REAL DEFAULT 0,
			caller TEXT,
			submitted_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create ledger_transactions: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_ledger_shipment ON ledger_transactions(shipment_id)`)
	if err != nil {
		return fmt.Errorf("failed to index ledger_transactions: %w", err)
	}
	return nil
}
