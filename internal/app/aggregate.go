package app

import (
	"context"
	"fmt"

	"github.com/example/tradeflow/internal/core/document"
	"github.com/example/tradeflow/internal/core/phase"
	"github.com/example/tradeflow/internal/models"
	"github.com/example/tradeflow/internal/ports/primary"
	"github.com/example/tradeflow/internal/ports/secondary"
)

// Shared helpers for assembling the shipment aggregate returned by every
// mutating call.

func recordToShipment(r *secondary.ShipmentRecord) *primary.Shipment {
	return &primary.Shipment{
		ID:                  r.ID,
		TradeID:             r.TradeID,
		Phase:               models.ShipmentPhase(r.Phase),
		ShipmentNumber:      r.ShipmentNumber,
		ExpirationDate:      r.ExpirationDate,
		FixingDate:          r.FixingDate,
		TargetExchange:      r.TargetExchange,
		DifferentialApplied: r.DifferentialApplied,
		Price:               r.Price,
		Quantity:            r.Quantity,
		ContainersNumber:    r.ContainersNumber,
		NetWeight:           r.NetWeight,
		GrossWeight:         r.GrossWeight,
		DetailsEvaluation:   models.EvaluationStatus(r.DetailsEvaluation),
		SampleEvaluation:    models.EvaluationStatus(r.SampleEvaluation),
		QualityEvaluation:   models.EvaluationStatus(r.QualityEvaluation),
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func recordToDocument(r *secondary.DocumentRecord) *primary.ShipmentDocument {
	return &primary.ShipmentDocument{
		ID:           r.ID,
		ShipmentID:   r.ShipmentID,
		Phase:        models.ShipmentPhase(r.Phase),
		DocumentType: models.DocumentType(r.DocumentType),
		Status:       models.EvaluationStatus(r.Status),
		UploadedBy:   r.UploadedBy,
		ContentRef:   r.ContentRef,
		ReferenceID:  r.ReferenceID,
		Filename:     r.Filename,
		MimeType:     r.MimeType,
		Superseded:   r.Superseded,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func recordToEscrow(r *secondary.EscrowRecord) *primary.EscrowAccount {
	if r == nil {
		return nil
	}
	return &primary.EscrowAccount{
		ShipmentID:   r.ShipmentID,
		Address:      r.Address,
		Deposited:    r.Deposited,
		Withdrawable: r.Withdrawable,
		State:        models.EscrowState(r.State),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// activeViewsForPhase indexes the non-superseded documents of one phase by
// type, in the shape the core guards consume.
func activeViewsForPhase(docs []*secondary.DocumentRecord, p models.ShipmentPhase) map[models.DocumentType]*document.View {
	views := make(map[models.DocumentType]*document.View)
	for _, d := range docs {
		if d.Superseded || models.ShipmentPhase(d.Phase) != p {
			continue
		}
		views[models.DocumentType(d.DocumentType)] = &document.View{
			ID:           d.ID,
			DocumentType: models.DocumentType(d.DocumentType),
			Status:       models.EvaluationStatus(d.Status),
			UploadedBy:   d.UploadedBy,
		}
	}
	return views
}

// computeDuties builds the per-party duty list for the shipment's current
// phase from its active documents.
func computeDuties(rec *secondary.ShipmentRecord, docs []*secondary.DocumentRecord) []primary.DocumentDuty {
	currentPhase := models.ShipmentPhase(rec.Phase)
	views := activeViewsForPhase(docs, currentPhase)

	byType := make(map[models.DocumentType]*secondary.DocumentRecord)
	for _, d := range docs {
		if !d.Superseded && models.ShipmentPhase(d.Phase) == currentPhase {
			byType[models.DocumentType(d.DocumentType)] = d
		}
	}

	var duties []primary.DocumentDuty
	for _, req := range phase.RequiredDocuments(currentPhase) {
		view := views[req.DocumentType]
		duty := primary.DocumentDuty{
			DocumentType: req.DocumentType,
			UploaderRole: req.UploaderRole,
			ExporterDuty: document.DutyFor(models.RoleExporter, req, view),
			ImporterDuty: document.DutyFor(models.RoleImporter, req, view),
		}
		if rec, ok := byType[req.DocumentType]; ok {
			duty.Document = recordToDocument(rec)
		}
		duties = append(duties, duty)
	}
	return duties
}

// loadAggregate assembles the full shipment view from the repositories.
func loadAggregate(
	ctx context.Context,
	shipmentRepo secondary.ShipmentRepository,
	documentRepo secondary.DocumentRepository,
	escrowRepo secondary.EscrowRepository,
	shipmentID string,
) (*primary.ShipmentAggregate, error) {
	rec, err := shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	docs, err := documentRepo.ListActive(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	escrowRec, err := escrowRepo.GetByShipment(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get escrow: %w", err)
	}

	documents := make([]*primary.ShipmentDocument, len(docs))
	for i, d := range docs {
		documents[i] = recordToDocument(d)
	}

	return &primary.ShipmentAggregate{
		Shipment:  recordToShipment(rec),
		Documents: documents,
		Duties:    computeDuties(rec, docs),
		Escrow:    recordToEscrow(escrowRec),
	}, nil
}
