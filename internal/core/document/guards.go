// Package document contains the pure business logic of the document
// registry: upload/approval guards, duty computation, and phase
// completeness checks. Guards evaluate preconditions without side effects.
package document

import (
	"github.com/example/tradeflow/internal/core/faults"
	"github.com/example/tradeflow/internal/core/phase"
	"github.com/example/tradeflow/internal/models"
)

// View carries the minimal document state guards need.
type View struct {
	ID           string
	DocumentType models.DocumentType
	Status       models.EvaluationStatus
	UploadedBy   string
}

// AddContext provides context for document upload guards.
type AddContext struct {
	Phase        models.ShipmentPhase
	DocumentType models.DocumentType
	ActingRole   models.Role
	// Active is the current non-superseded document of this type in this
	// phase, nil if none has been uploaded yet.
	Active *View
}

// CanAddDocument evaluates whether a document can be uploaded.
// Rules:
// - The document type must be required in the given phase
// - The acting party must hold the requirement's uploader role
// - An approved document cannot be replaced
func CanAddDocument(ctx AddContext) faults.GuardResult {
	req, ok := phase.FindRequirement(ctx.Phase, ctx.DocumentType)
	if !ok {
		return faults.Deny(faults.ErrInvalidPhaseDocumentType,
			"%s is not required in phase %s", ctx.DocumentType, ctx.Phase)
	}

	if ctx.ActingRole != req.UploaderRole {
		return faults.Deny(faults.ErrWrongRole,
			"%s must be uploaded by the %s", ctx.DocumentType, req.UploaderRole)
	}

	if ctx.Active != nil && ctx.Active.Status == models.Approved {
		return faults.Deny(faults.ErrAlreadyApproved,
			"an approved %s already exists for phase %s", ctx.DocumentType, ctx.Phase)
	}

	return faults.Allow()
}

// SetStatusContext provides context for document approval/rejection guards.
type SetStatusContext struct {
	Document      View
	NewStatus     models.EvaluationStatus
	ActingPartyID string
	ActingRole    models.Role
	ApproverRole  models.Role
}

// CanSetStatus evaluates whether a document's status can be changed.
// Rules:
// - The uploader may never evaluate their own document
// - Only the designated approver role may evaluate
// - APPROVED is terminal until a re-upload supersedes the document
// - Allowed edges: NOT_EVALUATED -> {APPROVED, NOT_APPROVED},
//   NOT_APPROVED -> APPROVED
func CanSetStatus(ctx SetStatusContext) faults.GuardResult {
	if ctx.ActingPartyID == ctx.Document.UploadedBy {
		return faults.Deny(faults.ErrSelfApproval,
			"%s uploaded this document and cannot evaluate it", ctx.ActingPartyID)
	}

	if ctx.ActingRole != ctx.ApproverRole {
		return faults.Deny(faults.ErrWrongRole,
			"%s must be evaluated by the %s", ctx.Document.DocumentType, ctx.ApproverRole)
	}

	if ctx.NewStatus != models.Approved && ctx.NewStatus != models.NotApproved {
		return faults.Deny(faults.ErrInvalidTransition,
			"cannot set document status to %s", ctx.NewStatus)
	}

	switch ctx.Document.Status {
	case models.NotEvaluated:
		return faults.Allow()
	case models.NotApproved:
		if ctx.NewStatus == models.Approved {
			return faults.Allow()
		}
		return faults.Deny(faults.ErrInvalidTransition,
			"document is already rejected")
	case models.Approved:
		return faults.Deny(faults.ErrInvalidTransition,
			"document is already approved")
	default:
		return faults.Deny(faults.ErrInvalidTransition,
			"unknown document status %s", ctx.Document.Status)
	}
}

// DutyFor computes the action the given role must take for one required
// document. doc is the active document of the required type, nil if absent.
func DutyFor(role models.Role, req phase.Requirement, doc *View) models.Duty {
	if doc == nil {
		if role == req.UploaderRole {
			return models.DutyUploadNeeded
		}
		return models.DutyNoActionNeeded
	}

	switch doc.Status {
	case models.NotApproved:
		if role == req.UploaderRole {
			return models.DutyUploadPossible
		}
	case models.NotEvaluated:
		if role == req.ApproverRole() {
			return models.DutyApprovalNeeded
		}
	}
	return models.DutyNoActionNeeded
}

// HasAllRequiredDocuments reports whether every required document type for
// the phase has an active document whose status is APPROVED. active is
// keyed by document type and must contain only non-superseded documents.
func HasAllRequiredDocuments(p models.ShipmentPhase, active map[models.DocumentType]*View) bool {
	for _, req := range phase.RequiredDocuments(p) {
		doc, ok := active[req.DocumentType]
		if !ok || doc == nil || doc.Status != models.Approved {
			return false
		}
	}
	return true
}
