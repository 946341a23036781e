// Package phase holds the static table mapping each shipment phase to its
// required document types and uploader roles. The table is total over the
// phase enum: terminal phases map to an empty requirement list.
package phase

import "github.com/example/tradeflow/internal/models"

// Requirement names one document a phase requires and the role that
// must upload it. The approver is always the uploader's counterpart.
type Requirement struct {
	DocumentType models.DocumentType
	UploaderRole models.Role
}

// ApproverRole returns the role responsible for approving the document.
func (r Requirement) ApproverRole() models.Role {
	return r.UploaderRole.Counterpart()
}

// requirements is the single source of truth for per-phase document rules.
// APPROVAL carries no documents: it is the detail/sample/quality
// negotiation phase. CONFIRMED and ARBITRATION are terminal.
var requirements = map[models.ShipmentPhase][]Requirement{
	models.PhaseApproval: {},
	models.Phase1: {
		{DocumentType: models.DocShippingInstructions, UploaderRole: models.RoleImporter},
		{DocumentType: models.DocShippingNote, UploaderRole: models.RoleExporter},
	},
	models.Phase2: {
		{DocumentType: models.DocBookingConfirmation, UploaderRole: models.RoleExporter},
		{DocumentType: models.DocCargoCollectionOrder, UploaderRole: models.RoleExporter},
	},
	models.Phase3: {
		{DocumentType: models.DocExportInvoice, UploaderRole: models.RoleExporter},
		{DocumentType: models.DocOriginCertificate, UploaderRole: models.RoleExporter},
	},
	models.Phase4: {
		{DocumentType: models.DocPhytosanitaryCertificate, UploaderRole: models.RoleExporter},
		{DocumentType: models.DocWeightCertificate, UploaderRole: models.RoleExporter},
		{DocumentType: models.DocBillOfLading, UploaderRole: models.RoleExporter},
	},
	models.Phase5: {
		{DocumentType: models.DocInsuranceCertificate, UploaderRole: models.RoleImporter},
		{DocumentType: models.DocContainerProofOfDelivery, UploaderRole: models.RoleImporter},
	},
	models.PhaseConfirmed:   {},
	models.PhaseArbitration: {},
}

// RequiredDocuments returns the ordered list of document requirements for
// the given phase. Unknown phases return an empty list.
func RequiredDocuments(p models.ShipmentPhase) []Requirement {
	reqs, ok := requirements[p]
	if !ok {
		return nil
	}
	out := make([]Requirement, len(reqs))
	copy(out, reqs)
	return out
}

// FindRequirement returns the requirement for the given document type in
// the given phase, or false if the type is not required in that phase.
func FindRequirement(p models.ShipmentPhase, docType models.DocumentType) (Requirement, bool) {
	for _, req := range requirements[p] {
		if req.DocumentType == docType {
			return req, true
		}
	}
	return Requirement{}, false
}
