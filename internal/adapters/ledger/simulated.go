// Package ledger contains the simulated settlement ledger adapter. It
// stands in for the external escrow contract: every submitted call is
// recorded in the ledger_transactions audit table and acknowledged with a
// transaction receipt, the way a chain gateway would.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/tradeflow/internal/ports/secondary"
)

// SimulatedClient implements secondary.LedgerClient against the local
// audit table.
type SimulatedClient struct {
	db *sql.DB
}

// NewSimulatedClient creates a ledger client backed by the given database.
func NewSimulatedClient(db *sql.DB) *SimulatedClient {
	return &SimulatedClient{db: db}
}

// Submit records the contract call and returns its receipt. determine_escrow
// calls are assigned a fresh escrow address; all other methods must carry
// the address of an existing account.
func (c *SimulatedClient) Submit(ctx context.Context, call secondary.ContractCall) (*secondary.TransactionReceipt, error) {
	if call.ShipmentID == "" {
		return nil, fmt.Errorf("contract call requires a shipment ID")
	}

	address := call.EscrowAddress
	if call.Method == secondary.LedgerMethodDetermineEscrow {
		address = newEscrowAddress()
	} else if address == "" {
		return nil, fmt.Errorf("%s requires an escrow address", call.Method)
	}

	txHash := newTxHash()
	submittedAt := time.Now().UTC()

	_, err := c.db.ExecContext(ctx,
		"INSERT INTO ledger_transactions (tx_hash, method, shipment_id, escrow_address, amount, caller) VALUES (?, ?, ?, ?, ?, ?)",
		txHash, call.Method, call.ShipmentID, address, call.Amount, call.Caller,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record ledger transaction: %w", err)
	}

	return &secondary.TransactionReceipt{
		TxHash:        txHash,
		EscrowAddress: address,
		SubmittedAt:   submittedAt.Format(time.RFC3339),
	}, nil
}

func newTxHash() string {
	return "0x" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func newEscrowAddress() string {
	return "0x" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Ensure SimulatedClient implements the interface
var _ secondary.LedgerClient = (*SimulatedClient)(nil)
