// Package primary defines the primary ports (driving adapters) for the
// engine: the service interfaces the CLI or any other caller consumes,
// and the request/response types they exchange.
package primary

import "github.com/example/tradeflow/internal/models"

// PartyRef identifies the acting party on a command. Every mutating call
// carries one; the engine never infers identity from ambient state.
type PartyRef struct {
	DID  string
	Role models.Role
}

// Trade represents a trade/order between two counterparties.
type Trade struct {
	ID          string
	ExporterDID string
	ImporterDID string
	Commodity   string
	Incoterms   string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

// Shipment represents one physical delivery tied to a trade.
type Shipment struct {
	ID                  string
	TradeID             string
	Phase               models.ShipmentPhase
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
	DetailsEvaluation   models.EvaluationStatus
	SampleEvaluation    models.EvaluationStatus
	QualityEvaluation   models.EvaluationStatus
	CreatedAt           string
	UpdatedAt           string
}

// ShipmentDocument represents one uploaded document revision.
type ShipmentDocument struct {
	ID           string
	ShipmentID   string
	Phase        models.ShipmentPhase
	DocumentType models.DocumentType
	Status       models.EvaluationStatus
	UploadedBy   string
	ContentRef   string
	ReferenceID  string
	Filename     string
	MimeType     string
	Superseded   bool
	CreatedAt    string
	UpdatedAt    string
}

// EscrowAccount is the engine's view of the shipment's escrow.
type EscrowAccount struct {
	ShipmentID   string
	Address      string
	Deposited    float64
	Withdrawable float64
	State        models.EscrowState
	CreatedAt    string
	UpdatedAt    string
}

// DocumentDuty reports, for one required document of the current phase,
// what each party must do.
type DocumentDuty struct {
	DocumentType models.DocumentType
	UploaderRole models.Role
	ExporterDuty models.Duty
	ImporterDuty models.Duty
	// Document is the active revision of this type, nil when absent.
	Document *ShipmentDocument
}

// ShipmentAggregate is the full updated view returned by every mutating
// call so callers can re-render without re-fetching.
type ShipmentAggregate struct {
	Shipment  *Shipment
	Documents []*ShipmentDocument
	Duties    []DocumentDuty
	Escrow    *EscrowAccount // nil until determined
}
