// Package negotiation contains the pure business logic of the shipment
// state machine: who may propose or evaluate the negotiable terms, when a
// phase may advance, and when arbitration may start.
package negotiation

import (
	"github.com/example/tradeflow/internal/core/faults"
	"github.com/example/tradeflow/internal/models"
)

// ProposeContext provides context for term-proposal guards.
type ProposeContext struct {
	Phase      models.ShipmentPhase
	ActingRole models.Role
}

// CanProposeDetails evaluates whether the negotiable terms can be rewritten.
// Rules:
// - Only the exporter proposes terms
// - Renegotiation is allowed in any phase before CONFIRMED
// - An arbitrated shipment is frozen
func CanProposeDetails(ctx ProposeContext) faults.GuardResult {
	if ctx.ActingRole != models.RoleExporter {
		return faults.Deny(faults.ErrWrongRole, "only the exporter may propose shipment details")
	}
	if ctx.Phase == models.PhaseArbitration {
		return faults.Deny(faults.ErrPhaseLocked, "shipment is under arbitration")
	}
	if ctx.Phase == models.PhaseConfirmed {
		return faults.Deny(faults.ErrPhaseLocked, "shipment is already confirmed")
	}
	return faults.Allow()
}

// EvaluateContext provides context for detail/sample/quality evaluation guards.
type EvaluateContext struct {
	Phase      models.ShipmentPhase
	ActingRole models.Role
	Verdict    models.EvaluationStatus
}

// CanEvaluate evaluates whether an importer verdict can be recorded.
// Rules:
// - Only the importer evaluates
// - The verdict must be APPROVED or NOT_APPROVED
// - Terminal phases are frozen
func CanEvaluate(ctx EvaluateContext) faults.GuardResult {
	if ctx.ActingRole != models.RoleImporter {
		return faults.Deny(faults.ErrWrongRole, "only the importer may evaluate shipment details")
	}
	if ctx.Verdict != models.Approved && ctx.Verdict != models.NotApproved {
		return faults.Deny(faults.ErrInvalidTransition, "verdict must be APPROVED or NOT_APPROVED, got %s", ctx.Verdict)
	}
	if ctx.Phase == models.PhaseArbitration {
		return faults.Deny(faults.ErrPhaseLocked, "shipment is under arbitration")
	}
	if ctx.Phase == models.PhaseConfirmed {
		return faults.Deny(faults.ErrPhaseLocked, "shipment is already confirmed")
	}
	return faults.Allow()
}

// ArbitrationContext provides context for arbitration guards.
type ArbitrationContext struct {
	Phase models.ShipmentPhase
}

// CanStartArbitration evaluates whether arbitration can begin.
// Either party may arbitrate from any non-terminal phase.
func CanStartArbitration(ctx ArbitrationContext) faults.GuardResult {
	if ctx.Phase == models.PhaseArbitration {
		return faults.Deny(faults.ErrInvalidTransition, "shipment is already under arbitration")
	}
	if ctx.Phase == models.PhaseConfirmed {
		return faults.Deny(faults.ErrInvalidTransition, "cannot arbitrate a confirmed shipment")
	}
	return faults.Allow()
}

// ExitContext is the consistent snapshot advancePhaseIfReady evaluates.
type ExitContext struct {
	Phase             models.ShipmentPhase
	Details           models.EvaluationStatus
	Sample            models.EvaluationStatus
	Quality           models.EvaluationStatus
	DocumentsComplete bool
}

// ExitConditionMet reports whether the current phase may be left behind:
// all three evaluations approved and every required document for the
// current phase approved. Terminal phases never exit.
func ExitConditionMet(ctx ExitContext) bool {
	if ctx.Phase.IsTerminal() {
		return false
	}
	if ctx.Details != models.Approved || ctx.Sample != models.Approved || ctx.Quality != models.Approved {
		return false
	}
	return ctx.DocumentsComplete
}
