package primary

import "context"

// EscrowService gates and records fund movement. Each operation asks the
// escrow gate, submits to the external ledger, and only then commits the
// resulting state locally.
type EscrowService interface {
	// DetermineEscrow creates the escrow account for a shipment on the
	// ledger. Fund operations fail until this has happened.
	DetermineEscrow(ctx context.Context, req EscrowRequest) (*EscrowAccount, error)

	// GetEscrow retrieves the escrow account, nil when undetermined.
	GetEscrow(ctx context.Context, shipmentID string) (*EscrowAccount, error)

	// DepositFunds deposits into the escrow.
	DepositFunds(ctx context.Context, req FundsRequest) (*EscrowAccount, error)

	// LockFunds locks the escrow.
	LockFunds(ctx context.Context, req EscrowRequest) (*EscrowAccount, error)

	// UnlockFunds unlocks a locked escrow.
	UnlockFunds(ctx context.Context, req EscrowRequest) (*EscrowAccount, error)

	// ReleaseFunds releases escrowed funds to the exporter once the
	// shipment is CONFIRMED and every required document is approved.
	ReleaseFunds(ctx context.Context, req EscrowRequest) (*EscrowAccount, error)
}

// EscrowRequest carries an amount-less escrow command.
type EscrowRequest struct {
	ShipmentID  string
	ActingParty PartyRef
}

// FundsRequest carries a deposit command.
type FundsRequest struct {
	ShipmentID  string
	Amount      float64
	ActingParty PartyRef
}
