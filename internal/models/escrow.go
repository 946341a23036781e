package models

// EscrowState is the lifecycle state of an escrow account on the ledger.
type EscrowState string

// Escrow state constants
const (
	EscrowActive EscrowState = "ACTIVE"
	EscrowLocked EscrowState = "LOCKED"
	EscrowClosed EscrowState = "CLOSED"
)

// IsValid reports whether s is a known escrow state value.
func (s EscrowState) IsValid() bool {
	return s == EscrowActive || s == EscrowLocked || s == EscrowClosed
}
