package primary

import (
	"context"

	"github.com/example/tradeflow/internal/models"
)

// DocumentService manages the per-shipment document registry.
type DocumentService interface {
	// UploadDocument stores content externally, records the revision, and
	// re-evaluates phase advancement. Re-upload supersedes a rejected or
	// pending revision of the same type.
	UploadDocument(ctx context.Context, req UploadDocumentRequest) (*ShipmentAggregate, error)

	// ValidateDocument records an approve/reject verdict on a document.
	ValidateDocument(ctx context.Context, req ValidateDocumentRequest) (*ShipmentAggregate, error)

	// ListDocuments returns the active documents for a shipment, or the
	// full revision history when includeHistory is set.
	ListDocuments(ctx context.Context, shipmentID string, includeHistory bool) ([]*ShipmentDocument, error)

	// GetDuties computes what each party must do for the current phase.
	GetDuties(ctx context.Context, shipmentID string) ([]DocumentDuty, error)
}

// UploadDocumentRequest carries one document upload.
type UploadDocumentRequest struct {
	ShipmentID   string
	DocumentType models.DocumentType
	Filename     string
	MimeType     string
	Content      []byte
	ActingParty  PartyRef
}

// ValidateDocumentRequest records a verdict on a document revision.
// Verdict must be APPROVED or NOT_APPROVED.
type ValidateDocumentRequest struct {
	ShipmentID  string
	DocumentID  string
	Verdict     models.EvaluationStatus
	ActingParty PartyRef
}
