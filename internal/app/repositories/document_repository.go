package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oakhaven/prepschool/internal/app/models"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
)

// DocumentRepository handles database operations for application documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{
		db: db,
	}
}

// Create persists a new document record and sets its generated id
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO application_documents
			(application_id, name, mime_type, storage_path, document_type, file_size, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		doc.ApplicationID, doc.Name, doc.MimeType, doc.StoragePath,
		doc.DocumentType, doc.FileSize, doc.UploadedAt,
	).Scan(&doc.ID)
	if err != nil {
		return fmt.Errorf("error creating document: %w", err)
	}

	return nil
}

// GetByApplication lists the documents attached to an application, oldest first
func (r *DocumentRepository) GetByApplication(ctx context.Context, appID int64) ([]models.Document, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, application_id, name, mime_type, storage_path, document_type, file_size, uploaded_at
		FROM application_documents
		WHERE application_id = $1
		ORDER BY uploaded_at ASC`, appID)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.ApplicationID, &doc.Name, &doc.MimeType,
			&doc.StoragePath, &doc.DocumentType, &doc.FileSize, &doc.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// GetByID retrieves a document scoped to its parent application
func (r *DocumentRepository) GetByID(ctx context.Context, appID, docID int64) (*models.Document, error) {
	query := `
		SELECT id, application_id, name, mime_type, storage_path, document_type, file_size, uploaded_at
		FROM application_documents
		WHERE id = $1 AND application_id = $2
	`

	var doc models.Document
	err := r.db.QueryRow(ctx, query, docID, appID).Scan(
		&doc.ID, &doc.ApplicationID, &doc.Name, &doc.MimeType,
		&doc.StoragePath, &doc.DocumentType, &doc.FileSize, &doc.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}

	return &doc, nil
}

// Delete removes a document record scoped to its parent application
func (r *DocumentRepository) Delete(ctx context.Context, appID, docID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM application_documents WHERE id = $1 AND application_id = $2`, docID, appID)
	if err != nil {
		return fmt.Errorf("error deleting document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}
