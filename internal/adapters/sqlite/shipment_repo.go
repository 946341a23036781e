package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/tradeflow/internal/ports/secondary"
)

// ShipmentRepository implements secondary.ShipmentRepository with SQLite.
type ShipmentRepository struct {
	db *sql.DB
}

// NewShipmentRepository creates a new SQLite shipment repository.
func NewShipmentRepository(db *sql.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

const shipmentColumns = `id, trade_id, phase, shipment_number, expiration_date, fixing_date,
	target_exchange, differential_applied, price, quantity, containers_number,
	net_weight, gross_weight, details_evaluation, sample_evaluation, quality_evaluation,
	created_at, updated_at`

// Create persists a new shipment in the APPROVAL phase.
// The shipment record must have its ID pre-populated by the service layer.
func (r *ShipmentRepository) Create(ctx context.Context, shipment *secondary.ShipmentRecord) error {
	if shipment.ID == "" {
		return fmt.Errorf("shipment ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO shipments (id, trade_id) VALUES (?, ?)",
		shipment.ID, shipment.TradeID,
	)
	if err != nil {
		return fmt.Errorf("failed to create shipment: %w", err)
	}

	return nil
}

func scanShipment(scan func(dest ...any) error) (*secondary.ShipmentRecord, error) {
	record := &secondary.ShipmentRecord{}
	var (
		expirationDate sql.NullTime
		fixingDate     sql.NullTime
		targetExchange sql.NullString
		createdAt      time.Time
		updatedAt      sql.NullTime
	)

	err := scan(
		&record.ID, &record.TradeID, &record.Phase, &record.ShipmentNumber,
		&expirationDate, &fixingDate, &targetExchange,
		&record.DifferentialApplied, &record.Price, &record.Quantity,
		&record.ContainersNumber, &record.NetWeight, &record.GrossWeight,
		&record.DetailsEvaluation, &record.SampleEvaluation, &record.QualityEvaluation,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if expirationDate.Valid {
		record.ExpirationDate = expirationDate.Time.Format(time.RFC3339)
	}
	if fixingDate.Valid {
		record.FixingDate = fixingDate.Time.Format(time.RFC3339)
	}
	record.TargetExchange = targetExchange.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	if updatedAt.Valid {
		record.UpdatedAt = updatedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// GetByID retrieves a shipment by its ID.
func (r *ShipmentRepository) GetByID(ctx context.Context, id string) (*secondary.ShipmentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+shipmentColumns+" FROM shipments WHERE id = ?", id,
	)

	record, err := scanShipment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("shipment %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	return record, nil
}

// List retrieves shipments matching the given filters.
func (r *ShipmentRepository) List(ctx context.Context, filters secondary.ShipmentFilters) ([]*secondary.ShipmentRecord, error) {
	query := "SELECT " + shipmentColumns + " FROM shipments"
	args := []any{}
	where := ""

	if filters.TradeID != "" {
		where = " WHERE trade_id = ?"
		args = append(args, filters.TradeID)
	}
	if filters.Phase != "" {
		if where == "" {
			where = " WHERE"
		} else {
			where += " AND"
		}
		where += " phase = ?"
		args = append(args, filters.Phase)
	}

	query += where + " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	defer rows.Close()

	var shipments []*secondary.ShipmentRecord
	for rows.Next() {
		record, err := scanShipment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shipment: %w", err)
		}
		shipments = append(shipments, record)
	}

	return shipments, nil
}

// UpdateTerms overwrites the negotiable terms and resets the details
// evaluation in one statement, so a reproposal can never be observed with a
// stale verdict.
func (r *ShipmentRepository) UpdateTerms(ctx context.Context, id string, terms *secondary.ShipmentTerms) error {
	var expirationDate, fixingDate sql.NullTime
	if terms.ExpirationDate != "" {
		t, err := time.Parse(time.RFC3339, terms.ExpirationDate)
		if err != nil {
			return fmt.Errorf("invalid expiration date: %w", err)
		}
		expirationDate = sql.NullTime{Time: t, Valid: true}
	}
	if terms.FixingDate != "" {
		t, err := time.Parse(time.RFC3339, terms.FixingDate)
		if err != nil {
			return fmt.Errorf("invalid fixing date: %w", err)
		}
		fixingDate = sql.NullTime{Time: t, Valid: true}
	}

	var targetExchange sql.NullString
	if terms.TargetExchange != "" {
		targetExchange = sql.NullString{String: terms.TargetExchange, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE shipments SET
			shipment_number = ?, expiration_date = ?, fixing_date = ?,
			target_exchange = ?, differential_applied = ?, price = ?,
			quantity = ?, containers_number = ?, net_weight = ?, gross_weight = ?,
			details_evaluation = 'NOT_EVALUATED',
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		terms.ShipmentNumber, expirationDate, fixingDate,
		targetExchange, terms.DifferentialApplied, terms.Price,
		terms.Quantity, terms.ContainersNumber, terms.NetWeight, terms.GrossWeight,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update shipment terms: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("shipment %s not found", id)
	}

	return nil
}

// UpdateEvaluation sets one of the three evaluation statuses.
func (r *ShipmentRepository) UpdateEvaluation(ctx context.Context, id, field, status string) error {
	var column string
	switch field {
	case "details":
		column = "details_evaluation"
	case "sample":
		column = "sample_evaluation"
	case "quality":
		column = "quality_evaluation"
	default:
		return fmt.Errorf("unknown evaluation field %s", field)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE shipments SET "+column+" = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s evaluation: %w", field, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("shipment %s not found", id)
	}

	return nil
}

// UpdatePhase moves the shipment to the given phase.
func (r *ShipmentRepository) UpdatePhase(ctx context.Context, id, phase string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE shipments SET phase = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		phase, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update shipment phase: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("shipment %s not found", id)
	}

	return nil
}

// GetNextID returns the next available shipment ID.
// SHIP-XXX format where XXX is extracted from position 6 (SHIP- is 5 chars)
func (r *ShipmentRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM shipments",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next shipment ID: %w", err)
	}

	return fmt.Sprintf("SHIP-%03d", maxID+1), nil
}

// TradeExists checks that the trade exists and is contracted.
func (r *ShipmentRepository) TradeExists(ctx context.Context, tradeID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM trades WHERE id = ? AND status = 'contracted'",
		tradeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check trade: %w", err)
	}

	return count > 0, nil
}

// Ensure ShipmentRepository implements the interface
var _ secondary.ShipmentRepository = (*ShipmentRepository)(nil)
