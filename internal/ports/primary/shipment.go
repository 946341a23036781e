package primary

import (
	"context"

	"github.com/example/tradeflow/internal/models"
)

// ShipmentService is the entry point for shipment lifecycle commands:
// detail negotiation, evaluations, phase advancement, and arbitration.
type ShipmentService interface {
	// CreateShipment creates a shipment under a contracted trade.
	CreateShipment(ctx context.Context, req CreateShipmentRequest) (*ShipmentAggregate, error)

	// GetShipment retrieves the full aggregate for a shipment.
	GetShipment(ctx context.Context, shipmentID string) (*ShipmentAggregate, error)

	// ListShipments lists shipments with optional filters.
	ListShipments(ctx context.Context, filters ShipmentFilters) ([]*Shipment, error)

	// ProposeDetails overwrites the negotiable terms. Exporter only;
	// resets the details evaluation to NOT_EVALUATED.
	ProposeDetails(ctx context.Context, req ProposeDetailsRequest) (*ShipmentAggregate, error)

	// EvaluateDetails records the importer's verdict on the proposed terms.
	EvaluateDetails(ctx context.Context, req EvaluationRequest) (*ShipmentAggregate, error)

	// EvaluateSample records the importer's verdict on the physical sample.
	EvaluateSample(ctx context.Context, req EvaluationRequest) (*ShipmentAggregate, error)

	// EvaluateQuality records the importer's verdict on the quality report.
	EvaluateQuality(ctx context.Context, req EvaluationRequest) (*ShipmentAggregate, error)

	// RequestArbitration freezes the shipment in the ARBITRATION phase.
	RequestArbitration(ctx context.Context, req ArbitrationRequest) (*ShipmentAggregate, error)

	// AdvancePhaseIfReady re-evaluates the exit condition and advances the
	// phase to its fixed point. Idempotent; unmet conditions are a no-op.
	AdvancePhaseIfReady(ctx context.Context, shipmentID string) (*ShipmentAggregate, error)
}

// CreateShipmentRequest carries the fields for shipment creation.
type CreateShipmentRequest struct {
	TradeID     string
	ActingParty PartyRef
}

// ShipmentFilters contains filter options for listing shipments.
type ShipmentFilters struct {
	TradeID string
	Phase   string
}

// ShipmentTerms are the negotiable fields of a shipment.
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

// ProposeDetailsRequest carries a full replacement of the negotiable terms.
type ProposeDetailsRequest struct {
	ShipmentID  string
	Terms       ShipmentTerms
	ActingParty PartyRef
}

// EvaluationRequest records an importer verdict on details, sample, or
// quality. Verdict must be APPROVED or NOT_APPROVED.
type EvaluationRequest struct {
	ShipmentID  string
	Verdict     models.EvaluationStatus
	ActingParty PartyRef
}

// ArbitrationRequest moves a shipment into arbitration.
type ArbitrationRequest struct {
	ShipmentID  string
	ActingParty PartyRef
}
