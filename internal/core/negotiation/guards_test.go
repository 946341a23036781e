package negotiation

import (
	"errors"
	"testing"

	"github.com/example/tradeflow/internal/core/faults"
	"github.com/example/tradeflow/internal/models"
)

func TestCanProposeDetails(t *testing.T) {
	tests := []struct {
		name     string
		ctx      ProposeContext
		wantOK   bool
		wantKind error
	}{
		{"exporter proposes during approval", ProposeContext{models.PhaseApproval, models.RoleExporter}, true, nil},
		{"exporter renegotiates mid-lifecycle", ProposeContext{models.Phase3, models.RoleExporter}, true, nil},
		{"importer may not propose", ProposeContext{models.PhaseApproval, models.RoleImporter}, false, faults.ErrWrongRole},
		{"confirmed shipment is locked", ProposeContext{models.PhaseConfirmed, models.RoleExporter}, false, faults.ErrPhaseLocked},
		{"arbitrated shipment is frozen", ProposeContext{models.PhaseArbitration, models.RoleExporter}, false, faults.ErrPhaseLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanProposeDetails(tt.ctx)
			if result.Allowed != tt.wantOK {
				t.Fatalf("Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantOK, result.Reason)
			}
			if !tt.wantOK && !errors.Is(result.Error(), tt.wantKind) {
				t.Errorf("error = %v, want kind %v", result.Error(), tt.wantKind)
			}
		})
	}
}

func TestCanEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		ctx      EvaluateContext
		wantOK   bool
		wantKind error
	}{
		{"importer approves", EvaluateContext{models.PhaseApproval, models.RoleImporter, models.Approved}, true, nil},
		{"importer rejects", EvaluateContext{models.Phase2, models.RoleImporter, models.NotApproved}, true, nil},
		{"exporter may not evaluate", EvaluateContext{models.PhaseApproval, models.RoleExporter, models.Approved}, false, faults.ErrWrongRole},
		{"verdict must be decisive", EvaluateContext{models.PhaseApproval, models.RoleImporter, models.NotEvaluated}, false, faults.ErrInvalidTransition},
		{"confirmed shipment is locked", EvaluateContext{models.PhaseConfirmed, models.RoleImporter, models.Approved}, false, faults.ErrPhaseLocked},
		{"arbitrated shipment is frozen", EvaluateContext{models.PhaseArbitration, models.RoleImporter, models.Approved}, false, faults.ErrPhaseLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanEvaluate(tt.ctx)
			if result.Allowed != tt.wantOK {
				t.Fatalf("Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantOK, result.Reason)
			}
			if !tt.wantOK && !errors.Is(result.Error(), tt.wantKind) {
				t.Errorf("error = %v, want kind %v", result.Error(), tt.wantKind)
			}
		})
	}
}

func TestCanStartArbitration(t *testing.T) {
	tests := []struct {
		name   string
		phase  models.ShipmentPhase
		wantOK bool
	}{
		{"from approval", models.PhaseApproval, true},
		{"from phase 3", models.Phase3, true},
		{"from phase 5", models.Phase5, true},
		{"not from confirmed", models.PhaseConfirmed, false},
		{"not when already arbitrated", models.PhaseArbitration, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanStartArbitration(ArbitrationContext{Phase: tt.phase})
			if result.Allowed != tt.wantOK {
				t.Errorf("Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantOK, result.Reason)
			}
			if !tt.wantOK && !errors.Is(result.Error(), faults.ErrInvalidTransition) {
				t.Errorf("error = %v, want kind ErrInvalidTransition", result.Error())
			}
		})
	}
}

func TestExitConditionMet(t *testing.T) {
	allApproved := ExitContext{
		Phase:             models.Phase1,
		Details:           models.Approved,
		Sample:            models.Approved,
		Quality:           models.Approved,
		DocumentsComplete: true,
	}

	tests := []struct {
		name   string
		mutate func(ExitContext) ExitContext
		want   bool
	}{
		{"all conditions met", func(c ExitContext) ExitContext { return c }, true},
		{"details pending", func(c ExitContext) ExitContext { c.Details = models.NotEvaluated; return c }, false},
		{"sample rejected", func(c ExitContext) ExitContext { c.Sample = models.NotApproved; return c }, false},
		{"quality pending", func(c ExitContext) ExitContext { c.Quality = models.NotEvaluated; return c }, false},
		{"documents incomplete", func(c ExitContext) ExitContext { c.DocumentsComplete = false; return c }, false},
		{"confirmed never exits", func(c ExitContext) ExitContext { c.Phase = models.PhaseConfirmed; return c }, false},
		{"arbitration never exits", func(c ExitContext) ExitContext { c.Phase = models.PhaseArbitration; return c }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitConditionMet(tt.mutate(allApproved)); got != tt.want {
				t.Errorf("ExitConditionMet = %v, want %v", got, tt.want)
			}
		})
	}
}
