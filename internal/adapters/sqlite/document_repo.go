package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/tradeflow/internal/ports/secondary"
)

// DocumentRepository implements secondary.DocumentRepository with SQLite.
// Documents are append-only: re-upload supersedes the previous revision and
// history is retained for audit.
type DocumentRepository struct {
	db *sql.DB
}

// NewDocumentRepository creates a new SQLite document repository.
func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `id, shipment_id, phase, document_type, status, uploaded_by,
	content_ref, reference_id, filename, mime_type, superseded, created_at, updated_at`

// Create persists a new document revision.
// The record must have ID and ReferenceID pre-populated by the service layer.
func (r *DocumentRepository) Create(ctx context.Context, doc *secondary.DocumentRecord) error {
	if doc.ID == "" {
		return fmt.Errorf("document ID must be pre-populated by service layer")
	}
	if doc.ReferenceID == "" {
		return fmt.Errorf("document reference ID must be pre-populated by service layer")
	}

	var filename, mimeType sql.NullString
	if doc.Filename != "" {
		filename = sql.NullString{String: doc.Filename, Valid: true}
	}
	if doc.MimeType != "" {
		mimeType = sql.NullString{String: doc.MimeType, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shipment_documents (id, shipment_id, phase, document_type, uploaded_by, content_ref, reference_id, filename, mime_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.ShipmentID, doc.Phase, doc.DocumentType, doc.UploadedBy,
		doc.ContentRef, doc.ReferenceID, filename, mimeType,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

func scanDocument(scan func(dest ...any) error) (*secondary.DocumentRecord, error) {
	record := &secondary.DocumentRecord{}
	var (
		filename  sql.NullString
		mimeType  sql.NullString
		createdAt time.Time
		updatedAt sql.NullTime
	)

	err := scan(
		&record.ID, &record.ShipmentID, &record.Phase, &record.DocumentType,
		&record.Status, &record.UploadedBy, &record.ContentRef, &record.ReferenceID,
		&filename, &mimeType, &record.Superseded, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Filename = filename.String
	record.MimeType = mimeType.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	if updatedAt.Valid {
		record.UpdatedAt = updatedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// GetByID retrieves a document revision by its ID.
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*secondary.DocumentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM shipment_documents WHERE id = ?", id,
	)

	record, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return record, nil
}

// GetActive retrieves the non-superseded document of the given type for the
// given shipment and phase. Returns nil, nil when absent.
func (r *DocumentRepository) GetActive(ctx context.Context, shipmentID, phase, documentType string) (*secondary.DocumentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM shipment_documents WHERE shipment_id = ? AND phase = ? AND document_type = ? AND superseded = 0",
		shipmentID, phase, documentType,
	)

	record, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active document: %w", err)
	}

	return record, nil
}

// ListActive retrieves all non-superseded documents for a shipment.
func (r *DocumentRepository) ListActive(ctx context.Context, shipmentID string) ([]*secondary.DocumentRecord, error) {
	return r.list(ctx,
		"SELECT "+documentColumns+" FROM shipment_documents WHERE shipment_id = ? AND superseded = 0 ORDER BY created_at",
		shipmentID,
	)
}

// ListHistory retrieves every revision for a shipment, superseded included,
// newest first.
func (r *DocumentRepository) ListHistory(ctx context.Context, shipmentID string) ([]*secondary.DocumentRecord, error) {
	return r.list(ctx,
		"SELECT "+documentColumns+" FROM shipment_documents WHERE shipment_id = ? ORDER BY created_at DESC",
		shipmentID,
	)
}

func (r *DocumentRepository) list(ctx context.Context, query string, args ...any) ([]*secondary.DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*secondary.DocumentRecord
	for rows.Next() {
		record, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, record)
	}

	return docs, nil
}

// Supersede marks a document revision as replaced.
func (r *DocumentRepository) Supersede(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE shipment_documents SET superseded = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to supersede document: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("document %s not found", id)
	}

	return nil
}

// UpdateStatus sets the evaluation status of a document revision.
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE shipment_documents SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update document status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("document %s not found", id)
	}

	return nil
}

// Ensure DocumentRepository implements the interface
var _ secondary.DocumentRepository = (*DocumentRepository)(nil)
