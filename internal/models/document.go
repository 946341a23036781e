package models

// DocumentType is the closed set of trade documents the engine tracks.
type DocumentType string

// Document type constants
const (
	DocShippingInstructions      DocumentType = "SHIPPING_INSTRUCTIONS"
	DocShippingNote              DocumentType = "SHIPPING_NOTE"
	DocBookingConfirmation       DocumentType = "BOOKING_CONFIRMATION"
	DocCargoCollectionOrder      DocumentType = "CARGO_COLLECTION_ORDER"
	DocExportInvoice             DocumentType = "EXPORT_INVOICE"
	DocOriginCertificate         DocumentType = "ORIGIN_CERTIFICATE"
	DocPhytosanitaryCertificate  DocumentType = "PHYTOSANITARY_CERTIFICATE"
	DocWeightCertificate         DocumentType = "WEIGHT_CERTIFICATE"
	DocBillOfLading              DocumentType = "BILL_OF_LADING"
	DocInsuranceCertificate      DocumentType = "INSURANCE_CERTIFICATE"
	DocContainerProofOfDelivery  DocumentType = "CONTAINER_PROOF_OF_DELIVERY"
)

// AllDocumentTypes returns every known document type.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocShippingInstructions,
		DocShippingNote,
		DocBookingConfirmation,
		DocCargoCollectionOrder,
		DocExportInvoice,
		DocOriginCertificate,
		DocPhytosanitaryCertificate,
		DocWeightCertificate,
		DocBillOfLading,
		DocInsuranceCertificate,
		DocContainerProofOfDelivery,
	}
}

// IsValid reports whether t is a known document type.
func (t DocumentType) IsValid() bool {
	for _, known := range AllDocumentTypes() {
		if t == known {
			return true
		}
	}
	return false
}
