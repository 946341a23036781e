// Package models contains domain types for tradeflow entities.
// SQL persistence lives in internal/adapters/sqlite/*.go
package models

// ShipmentPhase is an ordered stage in the physical delivery lifecycle.
// Phases only move forward; ARBITRATION is a side branch reachable from
// any non-terminal phase.
type ShipmentPhase string

// Shipment phase constants, in lifecycle order.
const (
	PhaseApproval    ShipmentPhase = "APPROVAL"
	Phase1           ShipmentPhase = "PHASE_1"
	Phase2           ShipmentPhase = "PHASE_2"
	Phase3           ShipmentPhase = "PHASE_3"
	Phase4           ShipmentPhase = "PHASE_4"
	Phase5           ShipmentPhase = "PHASE_5"
	PhaseConfirmed   ShipmentPhase = "CONFIRMED"
	PhaseArbitration ShipmentPhase = "ARBITRATION"
)

// phaseOrder maps each forward phase to its ordinal. ARBITRATION has no
// ordinal: it sits outside the forward progression.
var phaseOrder = map[ShipmentPhase]int{
	PhaseApproval:  0,
	Phase1:         1,
	Phase2:         2,
	Phase3:         3,
	Phase4:         4,
	Phase5:         5,
	PhaseConfirmed: 6,
}

// OrderedPhases returns the forward phases in lifecycle order,
// excluding ARBITRATION.
func OrderedPhases() []ShipmentPhase {
	return []ShipmentPhase{
		PhaseApproval, Phase1, Phase2, Phase3, Phase4, Phase5, PhaseConfirmed,
	}
}

// Ordinal returns the position of the phase in the forward progression,
// and false for ARBITRATION or unknown phases.
func (p ShipmentPhase) Ordinal() (int, bool) {
	ord, ok := phaseOrder[p]
	return ord, ok
}

// Next returns the phase following p in the forward progression.
// Returns false for CONFIRMED, ARBITRATION, and unknown phases.
func (p ShipmentPhase) Next() (ShipmentPhase, bool) {
	ord, ok := phaseOrder[p]
	if !ok || p == PhaseConfirmed {
		return "", false
	}
	return OrderedPhases()[ord+1], true
}

// IsTerminal reports whether no further forward transitions exist.
func (p ShipmentPhase) IsTerminal() bool {
	return p == PhaseConfirmed || p == PhaseArbitration
}

// Before reports whether p comes strictly before other in the forward
// progression. ARBITRATION is never before or after anything.
func (p ShipmentPhase) Before(other ShipmentPhase) bool {
	a, okA := phaseOrder[p]
	b, okB := phaseOrder[other]
	return okA && okB && a < b
}

// IsValid reports whether p is a known phase value.
func (p ShipmentPhase) IsValid() bool {
	_, ok := phaseOrder[p]
	return ok || p == PhaseArbitration
}
