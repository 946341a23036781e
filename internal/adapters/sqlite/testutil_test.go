// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the SINGLE POINT where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema and drift fails immediately with "no such column".
// Do not hardcode CREATE TABLE statements in test files; use setupTestDB()
// and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/tradeflow/internal/db"
)

const (
	testExporterDID = "did:web:finca-esperanza.example"
	testImporterDID = "did:web:alpine-roasters.example"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedParties inserts the two standard test counterparties.
func seedParties(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO parties (did, name, country, role) VALUES (?, 'Finca Esperanza', 'CO', 'EXPORTER'), (?, 'Alpine Roasters', 'CH', 'IMPORTER')",
		testExporterDID, testImporterDID,
	)
	if err != nil {
		t.Fatalf("failed to seed parties: %v", err)
	}
}

// seedTrade inserts a test trade and returns its ID.
func seedTrade(t *testing.T, db *sql.DB, id, status string) string {
	t.Helper()
	if id == "" {
		id = "TRADE-001"
	}
	if status == "" {
		status = "contracted"
	}
	_, err := db.Exec(
		"INSERT INTO trades (id, exporter_did, importer_did, commodity, status) VALUES (?, ?, ?, 'arabica green beans', ?)",
		id, testExporterDID, testImporterDID, status,
	)
	if err != nil {
		t.Fatalf("failed to seed trade: %v", err)
	}
	return id
}

// seedShipment inserts a test shipment and returns its ID.
func seedShipment(t *testing.T, db *sql.DB, id, tradeID, phase string) string {
	t.Helper()
	if id == "" {
		id = "SHIP-001"
	}
	if tradeID == "" {
		tradeID = "TRADE-001"
	}
	if phase == "" {
		phase = "APPROVAL"
	}
	_, err := db.Exec("INSERT INTO shipments (id, trade_id, phase) VALUES (?, ?, ?)", id, tradeID, phase)
	if err != nil {
		t.Fatalf("failed to seed shipment: %v", err)
	}
	return id
}

// seedDocument inserts a test document revision and returns its ID.
func seedDocument(t *testing.T, db *sql.DB, id, shipmentID, phase, docType, status string) string {
	t.Helper()
	if id == "" {
		id = "doc-0001"
	}
	if shipmentID == "" {
		shipmentID = "SHIP-001"
	}
	if phase == "" {
		phase = "PHASE_1"
	}
	if docType == "" {
		docType = "SHIPPING_NOTE"
	}
	if status == "" {
		status = "NOT_EVALUATED"
	}
	_, err := db.Exec(
		"INSERT INTO shipment_documents (id, shipment_id, phase, document_type, status, uploaded_by, content_ref, reference_id) VALUES (?, ?, ?, ?, ?, ?, 'ref-0001', ?)",
		id, shipmentID, phase, docType, status, testExporterDID, id,
	)
	if err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}
	return id
}
