// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/tradeflow/internal/ports/secondary"
)

// TradeRepository implements secondary.TradeRepository with SQLite.
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new SQLite trade repository.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create persists a new trade.
// The trade record must have its ID pre-populated by the service layer.
func (r *TradeRepository) Create(ctx context.Context, trade *secondary.TradeRecord) error {
	if trade.ID == "" {
		return fmt.Errorf("trade ID must be pre-populated by service layer")
	}

	var incoterms sql.NullString
	if trade.Incoterms != "" {
		incoterms = sql.NullString{String: trade.Incoterms, Valid: true}
	}

	status := trade.Status
	if status == "" {
		status = "draft"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO trades (id, exporter_did, importer_did, commodity, incoterms, status) VALUES (?, ?, ?, ?, ?, ?)",
		trade.ID, trade.ExporterDID, trade.ImporterDID, trade.Commodity, incoterms, status,
	)
	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}

	return nil
}

// GetByID retrieves a trade by its ID.
func (r *TradeRepository) GetByID(ctx context.Context, id string) (*secondary.TradeRecord, error) {
	record := &secondary.TradeRecord{}
	var (
		incoterms sql.NullString
		createdAt time.Time
		updatedAt sql.NullTime
	)

	err := r.db.QueryRowContext(ctx,
		"SELECT id, exporter_did, importer_did, commodity, incoterms, status, created_at, updated_at FROM trades WHERE id = ?",
		id,
	).Scan(&record.ID, &record.ExporterDID, &record.ImporterDID, &record.Commodity, &incoterms, &record.Status, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trade %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}

	record.Incoterms = incoterms.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	if updatedAt.Valid {
		record.UpdatedAt = updatedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// List retrieves trades matching the given filters.
func (r *TradeRepository) List(ctx context.Context, filters secondary.TradeFilters) ([]*secondary.TradeRecord, error) {
	query := "SELECT id, exporter_did, importer_did, commodity, incoterms, status, created_at, updated_at FROM trades"
	args := []any{}
	where := ""

	if filters.Status != "" {
		where = " WHERE status = ?"
		args = append(args, filters.Status)
	}
	if filters.Party != "" {
		if where == "" {
			where = " WHERE"
		} else {
			where += " AND"
		}
		where += " (exporter_did = ? OR importer_did = ?)"
		args = append(args, filters.Party, filters.Party)
	}

	query += where + " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	var trades []*secondary.TradeRecord
	for rows.Next() {
		record := &secondary.TradeRecord{}
		var (
			incoterms sql.NullString
			createdAt time.Time
			updatedAt sql.NullTime
		)

		err := rows.Scan(&record.ID, &record.ExporterDID, &record.ImporterDID, &record.Commodity, &incoterms, &record.Status, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}

		record.Incoterms = incoterms.String
		record.CreatedAt = createdAt.Format(time.RFC3339)
		if updatedAt.Valid {
			record.UpdatedAt = updatedAt.Time.Format(time.RFC3339)
		}

		trades = append(trades, record)
	}

	return trades, nil
}

// UpdateStatus updates the trade status.
func (r *TradeRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE trades SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update trade status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("trade %s not found", id)
	}

	return nil
}

// GetNextID returns the next available trade ID.
// TRADE-XXX format where XXX is extracted from position 7 (TRADE- is 6 chars)
func (r *TradeRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 7) AS INTEGER)), 0) FROM trades",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next trade ID: %w", err)
	}

	return fmt.Sprintf("TRADE-%03d", maxID+1), nil
}

// Ensure TradeRepository implements the interface
var _ secondary.TradeRepository = (*TradeRepository)(nil)
