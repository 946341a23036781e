package secondary

import "context"

// Contract call method names understood by the ledger.
const (
	LedgerMethodDetermineEscrow = "determine_escrow"
	LedgerMethodDeposit         = "deposit"
	LedgerMethodLock            = "lock"
	LedgerMethodUnlock          = "unlock"
	LedgerMethodRelease         = "release"
)

// ContractCall describes one smart-contract invocation. The engine treats
// the ledger's answer as the commit point for its own aggregate state.
type ContractCall struct {
	Method        string
	ShipmentID    string
	EscrowAddress string // empty for determine_escrow
	Amount        float64
	Caller        string // acting party DID
}

// TransactionReceipt is the ledger's acknowledgement of a submitted call.
type TransactionReceipt struct {
	TxHash        string
	EscrowAddress string // populated by determine_escrow
	SubmittedAt   string
}

// LedgerClient defines the secondary port to the external transaction
// ledger. Implementations own timeouts and serialization; the engine
// never retries a submission.
type LedgerClient interface {
	Submit(ctx context.Context, call ContractCall) (*TransactionReceipt, error)
}
