package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/tradeflow/internal/ports/secondary"
)

// EscrowRepository implements secondary.EscrowRepository with SQLite. It
// records the last committed ledger state; the authoritative balance lives
// on the ledger itself.
type EscrowRepository struct {
	db *sql.DB
}

// NewEscrowRepository creates a new SQLite escrow repository.
func NewEscrowRepository(db *sql.DB) *EscrowRepository {
	return &EscrowRepository{db: db}
}

// Create persists a newly determined escrow account.
func (r *EscrowRepository) Create(ctx context.Context, escrow *secondary.EscrowRecord) error {
	if escrow.ShipmentID == "" {
		return fmt.Errorf("escrow shipment ID must be pre-populated by service layer")
	}
	if escrow.Address == "" {
		return fmt.Errorf("escrow address must be pre-populated by service layer")
	}

	state := escrow.State
	if state == "" {
		state = "ACTIVE"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO escrow_accounts (shipment_id, address, deposited, withdrawable, state) VALUES (?, ?, ?, ?, ?)",
		escrow.ShipmentID, escrow.Address, escrow.Deposited, escrow.Withdrawable, state,
	)
	if err != nil {
		return fmt.Errorf("failed to create escrow: %w", err)
	}

	return nil
}

// GetByShipment retrieves the escrow account for a shipment.
// Returns nil, nil when no escrow has been determined.
func (r *EscrowRepository) GetByShipment(ctx context.Context, shipmentID string) (*secondary.EscrowRecord, error) {
	record := &secondary.EscrowRecord{}
	var (
		createdAt time.Time
		updatedAt sql.NullTime
	)

	err := r.db.QueryRowContext(ctx,
		"SELECT shipment_id, address, deposited, withdrawable, state, created_at, updated_at FROM escrow_accounts WHERE shipment_id = ?",
		shipmentID,
	).Scan(&record.ShipmentID, &record.Address, &record.Deposited, &record.Withdrawable, &record.State, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get escrow: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	if updatedAt.Valid {
		record.UpdatedAt = updatedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// UpdateState sets the escrow lifecycle state.
func (r *EscrowRepository) UpdateState(ctx context.Context, shipmentID, state string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE escrow_accounts SET state = ?, updated_at = CURRENT_TIMESTAMP WHERE shipment_id = ?",
		state, shipmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update escrow state: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("escrow for shipment %s not found", shipmentID)
	}

	return nil
}

// UpdateAmounts sets the deposited and withdrawable balances.
func (r *EscrowRepository) UpdateAmounts(ctx context.Context, shipmentID string, deposited, withdrawable float64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE escrow_accounts SET deposited = ?, withdrawable = ?, updated_at = CURRENT_TIMESTAMP WHERE shipment_id = ?",
		deposited, withdrawable, shipmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update escrow amounts: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("escrow for shipment %s not found", shipmentID)
	}

	return nil
}

// Ensure EscrowRepository implements the interface
var _ secondary.EscrowRepository = (*EscrowRepository)(nil)
