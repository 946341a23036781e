// Package escrow contains the pure authorization logic gating fund
// movement. The gate never moves funds itself; the authoritative balance
// lives on the external ledger.
package escrow

import (
	"github.com/example/tradeflow/internal/core/faults"
	"github.com/example/tradeflow/internal/models"
)

// GateContext is the snapshot the gate evaluates before a fund operation.
type GateContext struct {
	// Determined is true once an escrow account has been created for the
	// shipment. All fund operations require it.
	Determined bool
	State      models.EscrowState
	Phase      models.ShipmentPhase
	// AllDocumentsApproved is true when every phase up to CONFIRMED has
	// its required documents approved. Only release checks it.
	AllDocumentsApproved bool
	Withdrawable         float64
}

// CanDeposit evaluates whether funds may be deposited.
// Rules:
// - Escrow must be determined
// - Account must be ACTIVE
func CanDeposit(ctx GateContext) faults.GuardResult {
	if !ctx.Determined {
		return faults.Deny(faults.ErrEscrowNotDetermined, "no escrow account exists for this shipment")
	}
	if ctx.State != models.EscrowActive {
		return faults.Deny(faults.ErrInvalidTransition, "escrow is %s, deposits require ACTIVE", ctx.State)
	}
	return faults.Allow()
}

// CanLock evaluates whether the escrow may be locked.
func CanLock(ctx GateContext) faults.GuardResult {
	if !ctx.Determined {
		return faults.Deny(faults.ErrEscrowNotDetermined, "no escrow account exists for this shipment")
	}
	if ctx.State != models.EscrowActive {
		return faults.Deny(faults.ErrInvalidTransition, "escrow is %s, only ACTIVE escrows can be locked", ctx.State)
	}
	return faults.Allow()
}

// CanUnlock evaluates whether the escrow may be unlocked.
func CanUnlock(ctx GateContext) faults.GuardResult {
	if !ctx.Determined {
		return faults.Deny(faults.ErrEscrowNotDetermined, "no escrow account exists for this shipment")
	}
	if ctx.State != models.EscrowLocked {
		return faults.Deny(faults.ErrInvalidTransition, "escrow is %s, only LOCKED escrows can be unlocked", ctx.State)
	}
	return faults.Allow()
}

// CanRelease evaluates whether escrowed funds may be released to the
// exporter.
// Rules:
// - Escrow must be determined and not CLOSED
// - Shipment must have reached CONFIRMED
// - Every phase's required documents must be approved
func CanRelease(ctx GateContext) faults.GuardResult {
	if !ctx.Determined {
		return faults.Deny(faults.ErrEscrowNotDetermined, "no escrow account exists for this shipment")
	}
	if ctx.State == models.EscrowClosed {
		return faults.Deny(faults.ErrInvalidTransition, "escrow is already closed")
	}
	if ctx.Phase != models.PhaseConfirmed {
		return faults.Deny(faults.ErrPhaseLocked, "funds release requires a CONFIRMED shipment (current phase: %s)", ctx.Phase)
	}
	if !ctx.AllDocumentsApproved {
		return faults.Deny(faults.ErrPhaseLocked, "funds release requires every required document approved")
	}
	return faults.Allow()
}
