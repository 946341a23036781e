package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/tradeflow/internal/core/document"
	"github.com/example/tradeflow/internal/core/faults"
	"github.com/example/tradeflow/internal/core/phase"
	"github.com/example/tradeflow/internal/models"
	"github.com/example/tradeflow/internal/ports/primary"
	"github.com/example/tradeflow/internal/ports/secondary"
)

// DocumentServiceImpl implements the DocumentService interface: the
// per-shipment document registry with upload, validation, and duty
// computation.
type DocumentServiceImpl struct {
	documentRepo secondary.DocumentRepository
	shipmentRepo secondary.ShipmentRepository
	escrowRepo   secondary.EscrowRepository
	contentStore secondary.ContentStore
	locker       *ShipmentLocker
}

// NewDocumentService creates a new DocumentService with injected dependencies.
func NewDocumentService(
	documentRepo secondary.DocumentRepository,
	shipmentRepo secondary.ShipmentRepository,
	escrowRepo secondary.EscrowRepository,
	contentStore secondary.ContentStore,
	locker *ShipmentLocker,
) *DocumentServiceImpl {
	return &DocumentServiceImpl{
		documentRepo: documentRepo,
		shipmentRepo: shipmentRepo,
		escrowRepo:   escrowRepo,
		contentStore: contentStore,
		locker:       locker,
	}
}

// UploadDocument validates the upload, stores content externally, records
// the revision, and re-evaluates phase advancement. The external store
// call happens before any local commit: a storage failure leaves the
// aggregate untouched.
func (s *DocumentServiceImpl) UploadDocument(ctx context.Context, req primary.UploadDocumentRequest) (*primary.ShipmentAggregate, error) {
	unlock := s.locker.Lock(req.ShipmentID)
	defer unlock()

	shipment, err := s.shipmentRepo.GetByID(ctx, req.ShipmentID)
	if err != nil {
		return nil, err
	}

	currentPhase := models.ShipmentPhase(shipment.Phase)
	if currentPhase == models.PhaseArbitration {
		return nil, faults.Deny(faults.ErrPhaseLocked, "shipment is under arbitration").Error()
	}

	active, err := s.documentRepo.GetActive(ctx, req.ShipmentID, shipment.Phase, string(req.DocumentType))
	if err != nil {
		return nil, fmt.Errorf("failed to look up active document: %w", err)
	}

	var activeView *document.View
	if active != nil {
		activeView = &document.View{
			ID:           active.ID,
			DocumentType: models.DocumentType(active.DocumentType),
			Status:       models.EvaluationStatus(active.Status),
			UploadedBy:   active.UploadedBy,
		}
	}

	guard := document.CanAddDocument(document.AddContext{
		Phase:        currentPhase,
		DocumentType: req.DocumentType,
		ActingRole:   req.ActingParty.Role,
		Active:       activeView,
	})
	if !guard.Allowed {
		return nil, guard.Error()
	}

	// External call first; the put is the commit point for the upload
	contentRef, err := s.contentStore.Put(ctx, req.Content, secondary.ResourceSpec{
		Filename: req.Filename,
		MimeType: req.MimeType,
	})
	if err != nil {
		return nil, faults.External("content store put", err)
	}

	if active != nil {
		if err := s.documentRepo.Supersede(ctx, active.ID); err != nil {
			return nil, fmt.Errorf("failed to supersede previous revision: %w", err)
		}
	}

	record := &secondary.DocumentRecord{
		ID:           uuid.NewString(),
		ShipmentID:   req.ShipmentID,
		Phase:        shipment.Phase,
		DocumentType: string(req.DocumentType),
		UploadedBy:   req.ActingParty.DID,
		ContentRef:   contentRef,
		ReferenceID:  uuid.NewString(),
		Filename:     req.Filename,
		MimeType:     req.MimeType,
	}
	if err := s.documentRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record document: %w", err)
	}

	if err := advancePhaseIfReady(ctx, s.shipmentRepo, s.documentRepo, shipment); err != nil {
		return nil, err
	}

	return loadAggregate(ctx, s.shipmentRepo, s.documentRepo, s.escrowRepo, req.ShipmentID)
}

// ValidateDocument records an approve/reject verdict on a document and
// re-evaluates phase advancement.
func (s *DocumentServiceImpl) ValidateDocument(ctx context.Context, req primary.ValidateDocumentRequest) (*primary.ShipmentAggregate, error) {
	unlock := s.locker.Lock(req.ShipmentID)
	defer unlock()

	shipment, err := s.shipmentRepo.GetByID(ctx, req.ShipmentID)
	if err != nil {
		return nil, err
	}

	if models.ShipmentPhase(shipment.Phase) == models.PhaseArbitration {
		return nil, faults.Deny(faults.ErrPhaseLocked, "shipment is under arbitration").Error()
	}

	doc, err := s.documentRepo.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.ShipmentID != req.ShipmentID {
		return nil, fmt.Errorf("document %s does not belong to shipment %s", req.DocumentID, req.ShipmentID)
	}
	if doc.Superseded {
		return nil, faults.Deny(faults.ErrInvalidTransition, "document revision has been superseded").Error()
	}

	req2, ok := phase.FindRequirement(models.ShipmentPhase(doc.Phase), models.DocumentType(doc.DocumentType))
	if !ok {
		return nil, faults.Deny(faults.ErrInvalidPhaseDocumentType,
			"%s is not required in phase %s", doc.DocumentType, doc.Phase).Error()
	}

	guard := document.CanSetStatus(document.SetStatusContext{
		Document: document.View{
			ID:           doc.ID,
			DocumentType: models.DocumentType(doc.DocumentType),
			Status:       models.EvaluationStatus(doc.Status),
			UploadedBy:   doc.UploadedBy,
		},
		NewStatus:     req.Verdict,
		ActingPartyID: req.ActingParty.DID,
		ActingRole:    req.ActingParty.Role,
		ApproverRole:  req2.ApproverRole(),
	})
	if !guard.Allowed {
		return nil, guard.Error()
	}

	if err := s.documentRepo.UpdateStatus(ctx, doc.ID, string(req.Verdict)); err != nil {
		return nil, fmt.Errorf("failed to update document status: %w", err)
	}

	if err := advancePhaseIfReady(ctx, s.shipmentRepo, s.documentRepo, shipment); err != nil {
		return nil, err
	}

	return loadAggregate(ctx, s.shipmentRepo, s.documentRepo, s.escrowRepo, req.ShipmentID)
}

// ListDocuments returns the active documents for a shipment, or the full
// revision history when includeHistory is set.
func (s *DocumentServiceImpl) ListDocuments(ctx context.Context, shipmentID string, includeHistory bool) ([]*primary.ShipmentDocument, error) {
	var (
		records []*secondary.DocumentRecord
		err     error
	)
	if includeHistory {
		records, err = s.documentRepo.ListHistory(ctx, shipmentID)
	} else {
		records, err = s.documentRepo.ListActive(ctx, shipmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]*primary.ShipmentDocument, len(records))
	for i, r := range records {
		docs[i] = recordToDocument(r)
	}
	return docs, nil
}

// GetDuties computes what each party must do for the current phase.
func (s *DocumentServiceImpl) GetDuties(ctx context.Context, shipmentID string) ([]primary.DocumentDuty, error) {
	shipment, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.ListActive(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return computeDuties(shipment, docs), nil
}

// Ensure DocumentServiceImpl implements the interface
var _ primary.DocumentService = (*DocumentServiceImpl)(nil)
