// Package faults defines the engine's error taxonomy and the GuardResult
// type shared by all core guard packages. Every guard denial carries one of
// the sentinel kinds below so callers can match with errors.Is.
package faults

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Validation kinds are raised before any state
// mutation; ErrExternalCall wraps a collaborator failure after the call
// was attempted.
var (
	ErrWrongRole                = errors.New("wrong role")
	ErrSelfApproval             = errors.New("self approval")
	ErrInvalidTransition        = errors.New("invalid transition")
	ErrInvalidPhaseDocumentType = errors.New("document type not allowed in phase")
	ErrAlreadyApproved          = errors.New("document already approved")
	ErrPhaseLocked              = errors.New("phase locked")
	ErrEscrowNotDetermined      = errors.New("escrow not determined")
	ErrExternalCall             = errors.New("external call failed")
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Kind    error // sentinel kind, nil when allowed
	Reason  string
}

// Allow returns a passing guard result.
func Allow() GuardResult {
	return GuardResult{Allowed: true}
}

// Deny returns a failing guard result with the given kind and reason.
func Deny(kind error, format string, args ...any) GuardResult {
	return GuardResult{
		Allowed: false,
		Kind:    kind,
		Reason:  fmt.Sprintf(format, args...),
	}
}

// Error converts the guard result to an error if not allowed.
// The returned error matches the sentinel kind via errors.Is.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Kind == nil {
		return errors.New(r.Reason)
	}
	return fmt.Errorf("%w: %s", r.Kind, r.Reason)
}

// External wraps a collaborator failure so it matches ErrExternalCall
// while retaining the underlying cause.
func External(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrExternalCall, op, err)
}
