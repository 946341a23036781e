package models

// EvaluationStatus is the three-valued approval state shared by shipment
// documents and the shipment's detail/sample/quality evaluations.
type EvaluationStatus string

// Evaluation status constants
const (
	NotEvaluated EvaluationStatus = "NOT_EVALUATED"
	Approved     EvaluationStatus = "APPROVED"
	NotApproved  EvaluationStatus = "NOT_APPROVED"
)

// IsValid reports whether s is a known evaluation status value.
func (s EvaluationStatus) IsValid() bool {
	return s == NotEvaluated || s == Approved || s == NotApproved
}

// Duty is the action, if any, a given party must take with respect
// to a required document.
type Duty string

// Duty constants
const (
	DutyNoActionNeeded Duty = "NO_ACTION_NEEDED"
	DutyUploadNeeded   Duty = "UPLOAD_NEEDED"
	DutyUploadPossible Duty = "UPLOAD_POSSIBLE"
	DutyApprovalNeeded Duty = "APPROVAL_NEEDED"
)
