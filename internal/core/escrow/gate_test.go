package escrow

import (
	"errors"
	"testing"

	"github.com/example/tradeflow/internal/core/faults"
	"github.com/example/tradeflow/internal/models"
)

func TestCanDeposit(t *testing.T) {
	tests := []struct {
		name     string
		ctx      GateContext
		wantOK   bool
		wantKind error
	}{
		{"active determined escrow accepts deposits", GateContext{Determined: true, State: models.EscrowActive}, true, nil},
		{"undetermined escrow rejects deposits", GateContext{Determined: false}, false, faults.ErrEscrowNotDetermined},
		{"locked escrow rejects deposits", GateContext{Determined: true, State: models.EscrowLocked}, false, faults.ErrInvalidTransition},
		{"closed escrow rejects deposits", GateContext{Determined: true, State: models.EscrowClosed}, false, faults.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanDeposit(tt.ctx)
			if result.Allowed != tt.wantOK {
				t.Fatalf("Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantOK, result.Reason)
			}
			if !tt.wantOK && !errors.Is(result.Error(), tt.wantKind) {
				t.Errorf("error = %v, want kind %v", result.Error(), tt.wantKind)
			}
		})
	}
}

func TestCanLockUnlock(t *testing.T) {
	t.Run("active escrow can be locked", func(t *testing.T) {
		if r := CanLock(GateContext{Determined: true, State: models.EscrowActive}); !r.Allowed {
			t.Errorf("expected lock allowed, got %s", r.Reason)
		}
	})
	t.Run("locked escrow cannot be locked again", func(t *testing.T) {
		r := CanLock(GateContext{Determined: true, State: models.EscrowLocked})
		if r.Allowed || !errors.Is(r.Error(), faults.ErrInvalidTransition) {
			t.Errorf("expected invalid transition, got %v", r.Error())
		}
	})
	t.Run("locked escrow can be unlocked", func(t *testing.T) {
		if r := CanUnlock(GateContext{Determined: true, State: models.EscrowLocked}); !r.Allowed {
			t.Errorf("expected unlock allowed, got %s", r.Reason)
		}
	})
	t.Run("active escrow cannot be unlocked", func(t *testing.T) {
		r := CanUnlock(GateContext{Determined: true, State: models.EscrowActive})
		if r.Allowed || !errors.Is(r.Error(), faults.ErrInvalidTransition) {
			t.Errorf("expected invalid transition, got %v", r.Error())
		}
	})
	t.Run("undetermined escrow cannot be locked", func(t *testing.T) {
		r := CanLock(GateContext{Determined: false})
		if r.Allowed || !errors.Is(r.Error(), faults.ErrEscrowNotDetermined) {
			t.Errorf("expected escrow not determined, got %v", r.Error())
		}
	})
}

func TestCanRelease(t *testing.T) {
	releasable := GateContext{
		Determined:           true,
		State:                models.EscrowActive,
		Phase:                models.PhaseConfirmed,
		AllDocumentsApproved: true,
	}

	tests := []struct {
		name     string
		mutate   func(GateContext) GateContext
		wantOK   bool
		wantKind error
	}{
		{"confirmed shipment with complete documents releases", func(c GateContext) GateContext { return c }, true, nil},
		{"undetermined escrow", func(c GateContext) GateContext { c.Determined = false; return c }, false, faults.ErrEscrowNotDetermined},
		{"closed escrow", func(c GateContext) GateContext { c.State = models.EscrowClosed; return c }, false, faults.ErrInvalidTransition},
		{"unconfirmed shipment", func(c GateContext) GateContext { c.Phase = models.Phase5; return c }, false, faults.ErrPhaseLocked},
		{"incomplete documents", func(c GateContext) GateContext { c.AllDocumentsApproved = false; return c }, false, faults.ErrPhaseLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanRelease(tt.mutate(releasable))
			if result.Allowed != tt.wantOK {
				t.Fatalf("Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantOK, result.Reason)
			}
			if !tt.wantOK && !errors.Is(result.Error(), tt.wantKind) {
				t.Errorf("error = %v, want kind %v", result.Error(), tt.wantKind)
			}
		})
	}
}
