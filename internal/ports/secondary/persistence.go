// Package secondary defines the secondary ports (driven adapters) for the
// engine. These are the interfaces through which the application drives
// persistence and the external ledger, storage, and identity collaborators.
package secondary

import "context"

// TradeRepository defines the secondary port for trade persistence.
type TradeRepository interface {
	// Create persists a new trade.
	Create(ctx context.Context, trade *TradeRecord) error

	// GetByID retrieves a trade by its ID.
	GetByID(ctx context.Context, id string) (*TradeRecord, error)

	// List retrieves trades matching the given filters.
	List(ctx context.Context, filters TradeFilters) ([]*TradeRecord, error)

	// UpdateStatus updates the trade status.
	UpdateStatus(ctx context.Context, id, status string) error

	// GetNextID returns the next available trade ID.
	GetNextID(ctx context.Context) (string, error)
}

// TradeRecord represents a trade as stored in persistence.
type TradeRecord struct {
	ID          string
	ExporterDID string
	ImporterDID string
	Commodity   string
	Incoterms   string // Empty string means null
	Status      string // draft, contracted, closed
	CreatedAt   string
	UpdatedAt   string
}

// TradeFilters contains filter options for querying trades.
type TradeFilters struct {
	Status string
	Party  string // matches either counterparty DID
}

// ShipmentRepository defines the secondary port for shipment persistence.
type ShipmentRepository interface {
	// Create persists a new shipment.
	Create(ctx context.Context, shipment *ShipmentRecord) error

	// GetByID retrieves a shipment by its ID.
	GetByID(ctx context.Context, id string) (*ShipmentRecord, error)

	// List retrieves shipments matching the given filters.
	List(ctx context.Context, filters ShipmentFilters) ([]*ShipmentRecord, error)

	// UpdateTerms overwrites the negotiable terms and resets the details
	// evaluation in one statement.
	UpdateTerms(ctx context.Context, id string, terms *ShipmentTerms) error

	// UpdateEvaluation sets one of the three evaluation statuses.
	// field is one of "details", "sample", "quality".
	UpdateEvaluation(ctx context.Context, id, field, status string) error

	// UpdatePhase moves the shipment to the given phase.
	UpdatePhase(ctx context.Context, id, phase string) error

	// GetNextID returns the next available shipment ID.
	GetNextID(ctx context.Context) (string, error)

	// TradeExists checks if a trade exists (for validation).
	TradeExists(ctx context.Context, tradeID string) (bool, error)
}

// ShipmentRecord represents a shipment as stored in persistence.
type ShipmentRecord struct {
	ID                  string
	TradeID             string
	Phase               string // APPROVAL, PHASE_1..PHASE_5, CONFIRMED, ARBITRATION
	ShipmentNumber      int
	ExpirationDate      string // Empty string means null, RFC 3339 otherwise
	FixingDate          string // Empty string means null
	TargetExchange      string // Empty string means null
	DifferentialApplied float64
	Price               float64
	Quantity            int
	ContainersNumber    int
	NetWeight           float64
	GrossWeight         float64
	DetailsEvaluation   string // NOT_EVALUATED, APPROVED, NOT_APPROVED
	SampleEvaluation    string
	QualityEvaluation   string
	CreatedAt           string
	UpdatedAt           string
}

// ShipmentTerms are the negotiable fields the exporter proposes.
type ShipmentTerms struct {
	ShipmentNumber      int
	ExpirationDate      string
	FixingDate          string
	TargetExchange      string
	DifferentialApplied float64
	Price               float64
	Quantity            int
	ContainersNumber    int
	NetWeight           float64
	GrossWeight         float64
}

// ShipmentFilters contains filter options for querying shipments.
type ShipmentFilters struct {
	TradeID string
	Phase   string
}

// DocumentRepository defines the secondary port for document persistence.
// Documents are never hard-deleted: re-upload supersedes the previous
// revision and history is retained for audit.
type DocumentRepository interface {
	// Create persists a new document revision.
	Create(ctx context.Context, doc *DocumentRecord) error

	// GetByID retrieves a document revision by its ID.
	GetByID(ctx context.Context, id string) (*DocumentRecord, error)

	// GetActive retrieves the non-superseded document of the given type
	// for the given shipment and phase. Returns nil, nil when absent.
	GetActive(ctx context.Context, shipmentID, phase, documentType string) (*DocumentRecord, error)

	// ListActive retrieves all non-superseded documents for a shipment.
	ListActive(ctx context.Context, shipmentID string) ([]*DocumentRecord, error)

	// ListHistory retrieves every revision for a shipment, superseded
	// included, newest first.
	ListHistory(ctx context.Context, shipmentID string) ([]*DocumentRecord, error)

	// Supersede marks a document revision as replaced.
	Supersede(ctx context.Context, id string) error

	// UpdateStatus sets the evaluation status of a document revision.
	UpdateStatus(ctx context.Context, id, status string) error
}

// DocumentRecord represents one uploaded document revision.
type DocumentRecord struct {
	ID           string // uuid
	ShipmentID   string
	Phase        string
	DocumentType string
	Status       string // NOT_EVALUATED, APPROVED, NOT_APPROVED
	UploadedBy   string // party DID
	ContentRef   string // opaque reference into the content store
	ReferenceID  string // caller-facing stable reference
	Filename     string
	MimeType     string
	Superseded   bool
	CreatedAt    string
	UpdatedAt    string
}

// EscrowRepository defines the secondary port for escrow account state.
// The authoritative balance lives on the ledger; this is the engine's
// local record of the last committed state.
type EscrowRepository interface {
	// Create persists a newly determined escrow account.
	Create(ctx context.Context, escrow *EscrowRecord) error

	// GetByShipment retrieves the escrow account for a shipment.
	// Returns nil, nil when no escrow has been determined.
	GetByShipment(ctx context.Context, shipmentID string) (*EscrowRecord, error)

	// UpdateState sets the escrow lifecycle state.
	UpdateState(ctx context.Context, shipmentID, state string) error

	// UpdateAmounts sets the deposited and withdrawable balances.
	UpdateAmounts(ctx context.Context, shipmentID string, deposited, withdrawable float64) error
}

// EscrowRecord represents an escrow account as stored locally.
type EscrowRecord struct {
	ShipmentID   string
	Address      string
	Deposited    float64
	Withdrawable float64
	State        string // ACTIVE, LOCKED, CLOSED
	CreatedAt    string
	UpdatedAt    string
}

// PartyRepository defines the secondary port for the organization directory.
type PartyRepository interface {
	// Create registers a party.
	Create(ctx context.Context, party *PartyRecord) error

	// GetByDID retrieves a party by its DID.
	GetByDID(ctx context.Context, did string) (*PartyRecord, error)

	// List retrieves all registered parties.
	List(ctx context.Context) ([]*PartyRecord, error)
}

// PartyRecord represents an organization in the directory.
type PartyRecord struct {
	DID       string
	Name      string
	Country   string
	Role      string // EXPORTER or IMPORTER
	CreatedAt string
}
