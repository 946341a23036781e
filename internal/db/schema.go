package db

// SchemaSQL is the complete schema for fresh tradeflow installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(): if repository code references a column
// that doesn't exist here, tests fail immediately with "no such column"
// instead of drifting until production.
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Parties (organization directory)
CREATE TABLE IF NOT EXISTS parties (
	did TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	country TEXT,
	role TEXT NOT NULL CHECK(role IN ('EXPORTER', 'IMPORTER')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Trades (orders between two counterparties)
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	exporter_did TEXT NOT NULL,
	importer_did TEXT NOT NULL,
	commodity TEXT NOT NULL,
	incoterms TEXT,
	status TEXT NOT NULL CHECK(status IN ('draft', 'contracted', 'closed')) DEFAULT 'draft',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (exporter_did) REFERENCES parties(did),
	FOREIGN KEY (importer_did) REFERENCES parties(did)
);

-- Shipments (one physical delivery under a trade)
CREATE TABLE IF NOT EXISTS shipments (
	id TEXT PRIMARY KEY,
	trade_id TEXT NOT NULL,
	phase TEXT NOT NULL CHECK(phase IN ('APPROVAL', 'PHASE_1', 'PHASE_2', 'PHASE_3', 'PHASE_4', 'PHASE_5', 'CONFIRMED', 'ARBITRATION')) DEFAULT 'APPROVAL',
	shipment_number INTEGER DEFAULT 0,
	expiration_date DATETIME,
	fixing_date DATETIME,
	target_exchange TEXT,
	differential_applied REAL DEFAULT 0,
	price REAL DEFAULT 0,
	quantity INTEGER DEFAULT 0,
	containers_number INTEGER DEFAULT 0,
	net_weight REAL DEFAULT 0,
	gross_weight REAL DEFAULT 0,
	details_evaluation TEXT NOT NULL CHECK(details_evaluation IN ('NOT_EVALUATED', 'APPROVED', 'NOT_APPROVED')) DEFAULT 'NOT_EVALUATED',
	sample_evaluation TEXT NOT NULL CHECK(sample_evaluation IN ('NOT_EVALUATED', 'APPROVED', 'NOT_APPROVED')) DEFAULT 'NOT_EVALUATED',
	quality_evaluation TEXT NOT NULL CHECK(quality_evaluation IN ('NOT_EVALUATED', 'APPROVED', 'NOT_APPROVED')) DEFAULT 'NOT_EVALUATED',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (trade_id) REFERENCES trades(id)
);

-- Shipment documents (append-only revision log; re-upload supersedes)
CREATE TABLE IF NOT EXISTS shipment_documents (
	id TEXT PRIMARY KEY,
	shipment_id TEXT NOT NULL,
	phase TEXT NOT NULL,
	document_type TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('NOT_EVALUATED', 'APPROVED', 'NOT_APPROVED')) DEFAULT 'NOT_EVALUATED',
	uploaded_by TEXT NOT NULL,
	content_ref TEXT NOT NULL,
	reference_id TEXT NOT NULL,
	filename TEXT,
	mime_type TEXT,
	superseded INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (shipment_id) REFERENCES shipments(id)
);

-- Escrow accounts (local record of the last committed ledger state)
CREATE TABLE IF NOT EXISTS escrow_accounts (
	shipment_id TEXT PRIMARY KEY,
	address TEXT NOT NULL,
	deposited REAL NOT NULL DEFAULT 0,
	withdrawable REAL NOT NULL DEFAULT 0,
	state TEXT NOT NULL CHECK(state IN ('ACTIVE', 'LOCKED', 'CLOSED')) DEFAULT 'ACTIVE',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (shipment_id) REFERENCES shipments(id)
);

-- Ledger transactions (audit log of simulated contract calls)
CREATE TABLE IF NOT EXISTS ledger_transactions (
	tx_hash TEXT PRIMARY KEY,
	method TEXT NOT NULL,
	shipment_id TEXT NOT NULL,
	escrow_address TEXT,
	amount REAL DEFAULT 0,
	caller TEXT,
	submitted_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Create indexes for common queries
CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);
CREATE INDEX IF NOT EXISTS idx_trades_exporter ON trades(exporter_did);
CREATE INDEX IF NOT EXISTS idx_trades_importer ON trades(importer_did);
CREATE INDEX IF NOT EXISTS idx_shipments_trade ON shipments(trade_id);
CREATE INDEX IF NOT EXISTS idx_shipments_phase ON shipments(phase);
CREATE INDEX IF NOT EXISTS idx_documents_shipment ON shipment_documents(shipment_id);
CREATE INDEX IF NOT EXISTS idx_documents_active ON shipment_documents(shipment_id, phase, document_type, superseded);
CREATE INDEX IF NOT EXISTS idx_ledger_shipment ON ledger_transactions(shipment_id);
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Fresh install - create the schema directly and mark all
		// migrations as applied so they never run
		if _, err := db.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
