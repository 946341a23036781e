package app

import (
	"context"
	"fmt"

	"github.com/example/tradeflow/internal/core/negotiation"
	"github.com/example/tradeflow/internal/models"
	"github.com/example/tradeflow/internal/ports/primary"
	"github.com/example/tradeflow/internal/ports/secondary"
)

// ShipmentServiceImpl implements the ShipmentService interface. It owns
// the detail-negotiation state machine: propose/evaluate transitions,
// arbitration, and phase advancement.
type ShipmentServiceImpl struct {
	shipmentRepo secondary.ShipmentRepository
	documentRepo secondary.DocumentRepository
	escrowRepo   secondary.EscrowRepository
	locker       *ShipmentLocker
}

// NewShipmentService creates a new ShipmentService with injected dependencies.
func NewShipmentService(
	shipmentRepo secondary.ShipmentRepository,
	documentRepo secondary.DocumentRepository,
	escrowRepo secondary.EscrowRepository,
	locker *ShipmentLocker,
) *ShipmentServiceImpl {
	return &ShipmentServiceImpl{
		shipmentRepo: shipmentRepo,
		documentRepo: documentRepo,
		escrowRepo:   escrowRepo,
		locker:       locker,
	}
}

// CreateShipment creates a shipment under a contracted trade.
func (s *ShipmentServiceImpl) CreateShipment(ctx context.Context, req primary.CreateShipmentRequest) (*primary.ShipmentAggregate, error) {
	exists, err := s.shipmentRepo.TradeExists(ctx, req.TradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate trade: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("trade %s not found or not contracted", req.TradeID)
	}

	nextID, err := s.shipmentRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate shipment ID: %w", err)
	}

	record := &secondary.ShipmentRecord{
		ID:      nextID,
		TradeID: req.TradeID,
	}
	if err := s.shipmentRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create shipment: %w", err)
	}

	return loadAggregate(ctx, s.shipmentRepo, s.documentRepo, s.escrowRepo, nextID)
}

// GetShipment retrieves the full aggregate for a shipment.
func (s *ShipmentServiceImpl) GetShipment(ctx context.Context, shipmentID string) (*primary.ShipmentAggregate, error) {
	return loadAggregate(ctx, s.shipmentRepo, s.documentRepo, s.escrowRepo, shipmentID)
}

// ListShipments lists shipments with optional filters.
func (s *ShipmentServiceImpl) ListShipments(ctx context.Context, filters primary.ShipmentFilters) ([]*primary.Shipment, error) {
	records, err := s.shipmentRepo.List(ctx, secondary.ShipmentFilters{
		TradeID: filters.TradeID,
		Phase:   filters.Phase,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	shipments := make([]*primary.Shipment, len(records))
	for i, r := range records {
		shipments[i] = recordToShipment(r)
	}
	return shipments, nil
}

// ProposeDetails overwrites the negotiable terms and resets the details
// evaluation. Exporter only; locked once confirmed or arbitrated.
func (s *ShipmentServiceImpl) ProposeDetails(ctx context.Context, req primary.ProposeDetailsRequest) (*primary.ShipmentAggregate, error) {
	unlock := s.locker.Lock(req.ShipmentID)
	defer unlock()

	record, err := s.shipmentRepo.GetByID(ctx, req.ShipmentID)
	if err != nil {
		return nil, err
	}

	guard := negotiation.CanProposeDetails(negotiation.ProposeContext{
		Phase:      models.ShipmentPhase(record.Phase),
		ActingRole: req.ActingParty.Role,
	})
	if !guard.Allowed {
		return nil, guard.Error()
	}

	terms := &secondary.ShipmentTerms{
		ShipmentNumber:      req.Terms.ShipmentNumber,
		ExpirationDate:      req.Terms.ExpirationDate,
		FixingDate:          req.Terms.FixingDate,
		TargetExchange:      req.Terms.TargetExchange,
		DifferentialApplied: req.Terms.DifferentialApplied,
		Price:               req.Terms.Price,
		Quantity:            req.Terms.Quantity,
		ContainersNumber:    req.Terms.ContainersNumber,
		NetWeight:           req.Terms.NetWeight,
		GrossWeight:         req.Terms.GrossWeight,
	}
	if err := s.shipmentRepo.UpdateTerms(ctx, req.ShipmentID, terms); err != nil {
		return nil, fmt.Errorf("failed to update terms: %w", err)
	}

	return loadAggregate(ctx, s.shipmentRepo, s.documentRepo, s.escrowRepo, req.ShipmentID)
}

// EvaluateDetails records the importer's verdict on the proposed terms.
func (s *ShipmentServiceImpl) EvaluateDetails(ctx context.Context, req primary.EvaluationRequest) (*primary.ShipmentAggregate, error) {
	return s.evaluate(ctx, req, "details")
}

// EvaluateSample records the importer's verdict on the physical sample.
func (s *ShipmentServiceImpl) EvaluateSample(ctx context.Context, req primary.EvaluationRequest) (*primary.ShipmentAggregate, error) {
	return s.evaluate(ctx, req, "sample")
}

// EvaluateQuality records the importer's verdict on the quality report.
func (s *ShipmentServiceImpl) EvaluateQuality(ctx context.Context, req primary.EvaluationRequest) (*primary.ShipmentAggregate, error) {
	return s.evaluate(ctx, req, "quality")
}

// evaluate is the shared propose/approve/reject shape for the three
// evaluation axes. Phase advancement re-runs after each verdict.
func (s *ShipmentServiceImpl) evaluate(ctx context.Context, req primary.EvaluationRequest, field string) (*primary.ShipmentAggregate, error) {
	unlock := s.locker.Lock(req.ShipmentID)
	defer unlock()

	record, err := s.shipmentRepo.GetByID(ctx, req.ShipmentID)
	if err != nil {
		return nil, err
	}

	guard := negotiation.CanEvaluate(negotiation.EvaluateContext{
		Phase:      models.ShipmentPhase(record.Phase),
		ActingRole: req.ActingParty.Role,
		Verdict:    req.Verdict,
	})
	if !guard.Allowed {
		return nil, guard.Error()
	}

	if err := s.shipmentRepo.UpdateEvaluation(ctx, req.ShipmentID, field, string(req.Verdict)); err != nil {
		return nil, fmt.Errorf("failed to record %s evaluation: %w", field, err)
	}

	switch field {
	case "details":
		record.DetailsEvaluation = string(req.Verdict)
	case "sample":
		record.SampleEvaluation = string(req.Verdict)
	case "quality":
		record.QualityEvaluation = string(req.Verdict)
	}

	if err := advancePhaseIfReady(ctx, s.shipmentRepo, s.documentRepo, record); err != nil {
		return nil, err
	}

	return loadAggregate(ctx, s.shipmentRepo, s.documentRepo, s.escrowRepo, req.ShipmentID)
}

// RequestArbitration moves the shipment into ARBITRATION. Either party may
// request it from any non-terminal phase; document and term mutation is
// frozen afterwards.
func (s *ShipmentServiceImpl) RequestArbitration(ctx context.Context, req primary.ArbitrationRequest) (*primary.ShipmentAggregate, error) {
	unlock := s.locker.Lock(req.ShipmentID)
	defer unlock()

	record, err := s.shipmentRepo.GetByID(ctx, req.ShipmentID)
	if err != nil {
		return nil, err
	}

	guard := negotiation.CanStartArbitration(negotiation.ArbitrationContext{
		Phase: models.ShipmentPhase(record.Phase),
	})
	if !guard.Allowed {
		return nil, guard.Error()
	}

	if err := s.shipmentRepo.UpdatePhase(ctx, req.ShipmentID, string(models.PhaseArbitration)); err != nil {
		return nil, fmt.Errorf("failed to start arbitration: %w", err)
	}

	return loadAggregate(ctx, s.shipmentRepo, s.documentRepo, s.escrowRepo, req.ShipmentID)
}

// AdvancePhaseIfReady re-evaluates the exit condition and advances the
// phase to its fixed point. Idempotent; never errors on unmet conditions.
func (s *ShipmentServiceImpl) AdvancePhaseIfReady(ctx context.Context, shipmentID string) (*primary.ShipmentAggregate, error) {
	unlock := s.locker.Lock(shipmentID)
	defer unlock()

	record, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if err := advancePhaseIfReady(ctx, s.shipmentRepo, s.documentRepo, record); err != nil {
		return nil, err
	}

	return loadAggregate(ctx, s.shipmentRepo, s.documentRepo, s.escrowRepo, shipmentID)
}

// Ensure ShipmentServiceImpl implements the interface
var _ primary.ShipmentService = (*ShipmentServiceImpl)(nil)
