package app

import (
	"context"
	"fmt"

	"github.com/example/tradeflow/internal/core/document"
	"github.com/example/tradeflow/internal/core/escrow"
	"github.com/example/tradeflow/internal/core/faults"
	"github.com/example/tradeflow/internal/models"
	"github.com/example/tradeflow/internal/ports/primary"
	"github.com/example/tradeflow/internal/ports/secondary"
)

// EscrowServiceImpl implements the EscrowService interface. Every fund
// operation runs gate check, then the ledger call, then the local commit:
// a ledger failure leaves the aggregate unchanged.
type EscrowServiceImpl struct {
	escrowRepo   secondary.EscrowRepository
	shipmentRepo secondary.ShipmentRepository
	documentRepo secondary.DocumentRepository
	ledger       secondary.LedgerClient
	locker       *ShipmentLocker
}

// NewEscrowService creates a new EscrowService with injected dependencies.
func NewEscrowService(
	escrowRepo secondary.EscrowRepository,
	shipmentRepo secondary.ShipmentRepository,
	documentRepo secondary.DocumentRepository,
	ledger secondary.LedgerClient,
	locker *ShipmentLocker,
) *EscrowServiceImpl {
	return &EscrowServiceImpl{
		escrowRepo:   escrowRepo,
		shipmentRepo: shipmentRepo,
		documentRepo: documentRepo,
		ledger:       ledger,
		locker:       locker,
	}
}

// DetermineEscrow creates the escrow account for a shipment on the ledger.
func (s *EscrowServiceImpl) DetermineEscrow(ctx context.Context, req primary.EscrowRequest) (*primary.EscrowAccount, error) {
	unlock := s.locker.Lock(req.ShipmentID)
	defer unlock()

	if _, err := s.shipmentRepo.GetByID(ctx, req.ShipmentID); err != nil {
		return nil, err
	}

	existing, err := s.escrowRepo.GetByShipment(ctx, req.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get escrow: %w", err)
	}
	if existing != nil {
		return nil, faults.Deny(faults.ErrInvalidTransition,
			"escrow already determined at %s", existing.Address).Error()
	}

	receipt, err := s.ledger.Submit(ctx, secondary.ContractCall{
		Method:     secondary.LedgerMethodDetermineEscrow,
		ShipmentID: req.ShipmentID,
		Caller:     req.ActingParty.DID,
	})
	if err != nil {
		return nil, faults.External("ledger determine escrow", err)
	}

	record := &secondary.EscrowRecord{
		ShipmentID: req.ShipmentID,
		Address:    receipt.EscrowAddress,
		State:      string(models.EscrowActive),
	}
	if err := s.escrowRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record escrow: %w", err)
	}

	created, err := s.escrowRepo.GetByShipment(ctx, req.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created escrow: %w", err)
	}
	return recordToEscrow(created), nil
}

// GetEscrow retrieves the escrow account, nil when undetermined.
func (s *EscrowServiceImpl) GetEscrow(ctx context.Context, shipmentID string) (*primary.EscrowAccount, error) {
	record, err := s.escrowRepo.GetByShipment(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get escrow: %w", err)
	}
	return recordToEscrow(record), nil
}

// DepositFunds deposits into the escrow.
func (s *EscrowServiceImpl) DepositFunds(ctx context.Context, req primary.FundsRequest) (*primary.EscrowAccount, error) {
	unlock := s.locker.Lock(req.ShipmentID)
	defer unlock()

	if req.Amount <= 0 {
		return nil, fmt.Errorf("deposit amount must be positive")
	}

	record, err := s.escrowRepo.GetByShipment(ctx, req.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get escrow: %w", err)
	}

	guard := escrow.CanDeposit(gateContext(record, nil, false))
	if !guard.Allowed {
		return nil, guard.Error()
	}

	if _, err := s.ledger.Submit(ctx, secondary.ContractCall{
		Method:        secondary.LedgerMethodDeposit,
		ShipmentID:    req.ShipmentID,
		EscrowAddress: record.Address,
		Amount:        req.Amount,
		Caller:        req.ActingParty.DID,
	}); err != nil {
		return nil, faults.External("ledger deposit", err)
	}

	if err := s.escrowRepo.UpdateAmounts(ctx, req.ShipmentID, record.Deposited+req.Amount, record.Withdrawable); err != nil {
		return nil, fmt.Errorf("failed to record deposit: %w", err)
	}

	updated, err := s.escrowRepo.GetByShipment(ctx, req.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch escrow: %w", err)
	}
	return recordToEscrow(updated), nil
}

// LockFunds locks the escrow.
func (s *EscrowServiceImpl) LockFunds(ctx context.Context, req primary.EscrowRequest) (*primary.EscrowAccount, error) {
	return s.transition(ctx, req, secondary.LedgerMethodLock, models.EscrowLocked, escrow.CanLock)
}

// UnlockFunds unlocks a locked escrow.
func (s *EscrowServiceImpl) UnlockFunds(ctx context.Context, req primary.EscrowRequest) (*primary.EscrowAccount, error) {
	return s.transition(ctx, req, secondary.LedgerMethodUnlock, models.EscrowActive, escrow.CanUnlock)
}

// ReleaseFunds releases escrowed funds to the exporter and closes the
// account. Requires a CONFIRMED shipment with every phase's documents
// approved.
func (s *EscrowServiceImpl) ReleaseFunds(ctx context.Context, req primary.EscrowRequest) (*primary.EscrowAccount, error) {
	unlock := s.locker.Lock(req.ShipmentID)
	defer unlock()

	record, err := s.escrowRepo.GetByShipment(ctx, req.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get escrow: %w", err)
	}

	shipment, err := s.shipmentRepo.GetByID(ctx, req.ShipmentID)
	if err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.ListActive(ctx, req.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	guard := escrow.CanRelease(gateContext(record, shipment, allPhasesDocumentsApproved(docs)))
	if !guard.Allowed {
		return nil, guard.Error()
	}

	if _, err := s.ledger.Submit(ctx, secondary.ContractCall{
		Method:        secondary.LedgerMethodRelease,
		ShipmentID:    req.ShipmentID,
		EscrowAddress: record.Address,
		Amount:        record.Deposited,
		Caller:        req.ActingParty.DID,
	}); err != nil {
		return nil, faults.External("ledger release", err)
	}

	if err := s.escrowRepo.UpdateAmounts(ctx, req.ShipmentID, record.Deposited, record.Deposited); err != nil {
		return nil, fmt.Errorf("failed to record release: %w", err)
	}
	if err := s.escrowRepo.UpdateState(ctx, req.ShipmentID, string(models.EscrowClosed)); err != nil {
		return nil, fmt.Errorf("failed to close escrow: %w", err)
	}

	updated, err := s.escrowRepo.GetByShipment(ctx, req.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch escrow: %w", err)
	}
	return recordToEscrow(updated), nil
}

// transition is the shared lock/unlock shape.
func (s *EscrowServiceImpl) transition(
	ctx context.Context,
	req primary.EscrowRequest,
	method string,
	target models.EscrowState,
	gate func(escrow.GateContext) faults.GuardResult,
) (*primary.EscrowAccount, error) {
	unlock := s.locker.Lock(req.ShipmentID)
	defer unlock()

	record, err := s.escrowRepo.GetByShipment(ctx, req.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get escrow: %w", err)
	}

	guard := gate(gateContext(record, nil, false))
	if !guard.Allowed {
		return nil, guard.Error()
	}

	if _, err := s.ledger.Submit(ctx, secondary.ContractCall{
		Method:        method,
		ShipmentID:    req.ShipmentID,
		EscrowAddress: record.Address,
		Caller:        req.ActingParty.DID,
	}); err != nil {
		return nil, faults.External("ledger "+method, err)
	}

	if err := s.escrowRepo.UpdateState(ctx, req.ShipmentID, string(target)); err != nil {
		return nil, fmt.Errorf("failed to record escrow state: %w", err)
	}

	updated, err := s.escrowRepo.GetByShipment(ctx, req.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch escrow: %w", err)
	}
	return recordToEscrow(updated), nil
}

// gateContext builds the escrow gate snapshot from local records.
func gateContext(record *secondary.EscrowRecord, shipment *secondary.ShipmentRecord, docsApproved bool) escrow.GateContext {
	ctx := escrow.GateContext{
		Determined:           record != nil,
		AllDocumentsApproved: docsApproved,
	}
	if record != nil {
		ctx.State = models.EscrowState(record.State)
		ctx.Withdrawable = record.Withdrawable
	}
	if shipment != nil {
		ctx.Phase = models.ShipmentPhase(shipment.Phase)
	}
	return ctx
}

// allPhasesDocumentsApproved reports whether every phase up to CONFIRMED
// has its required documents approved.
func allPhasesDocumentsApproved(docs []*secondary.DocumentRecord) bool {
	for _, p := range models.OrderedPhases() {
		if !document.HasAllRequiredDocuments(p, activeViewsForPhase(docs, p)) {
			return false
		}
	}
	return true
}

// Ensure EscrowServiceImpl implements the interface
var _ primary.EscrowService = (*EscrowServiceImpl)(nil)
