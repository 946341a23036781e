package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/tradeflow/internal/ports/secondary"
)

// PartyRepository implements secondary.PartyRepository with SQLite.
type PartyRepository struct {
	db *sql.DB
}

// NewPartyRepository creates a new SQLite party repository.
func NewPartyRepository(db *sql.DB) *PartyRepository {
	return &PartyRepository{db: db}
}

// Create registers a party in the directory.
func (r *PartyRepository) Create(ctx context.Context, party *secondary.PartyRecord) error {
	if party.DID == "" {
		return fmt.Errorf("party DID is required")
	}

	var country sql.NullString
	if party.Country != "" {
		country = sql.NullString{String: party.Country, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO parties (did, name, country, role) VALUES (?, ?, ?, ?)",
		party.DID, party.Name, country, party.Role,
	)
	if err != nil {
		return fmt.Errorf("failed to create party: %w", err)
	}

	return nil
}

// GetByDID retrieves a party by its DID.
func (r *PartyRepository) GetByDID(ctx context.Context, did string) (*secondary.PartyRecord, error) {
	record := &secondary.PartyRecord{}
	var (
		country   sql.NullString
		createdAt time.Time
	)

	err := r.db.QueryRowContext(ctx,
		"SELECT did, name, country, role, created_at FROM parties WHERE did = ?",
		did,
	).Scan(&record.DID, &record.Name, &country, &record.Role, &createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("party %s not found", did)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get party: %w", err)
	}

	record.Country = country.String
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// List retrieves all registered parties.
func (r *PartyRepository) List(ctx context.Context) ([]*secondary.PartyRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT did, name, country, role, created_at FROM parties ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	var parties []*secondary.PartyRecord
	for rows.Next() {
		record := &secondary.PartyRecord{}
		var (
			country   sql.NullString
			createdAt time.Time
		)

		err := rows.Scan(&record.DID, &record.Name, &country, &record.Role, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}

		record.Country = country.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		parties = append(parties, record)
	}

	return parties, nil
}

// Ensure PartyRepository implements the interface
var _ secondary.PartyRepository = (*PartyRepository)(nil)
