package services

import (
	"context"
	"io"
	"mime/multipart"
	"time"

	"github.com/oakhaven/prepschool/internal/app/models"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
	"github.com/oakhaven/prepschool/internal/pkg/filestorage"
	"github.com/oakhaven/prepschool/internal/pkg/logger"
)

// DocumentStore defines the persistence operations the service needs
type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByApplication(ctx context.Context, appID int64) ([]models.Document, error)
	GetByID(ctx context.Context, appID, docID int64) (*models.Document, error)
	Delete(ctx context.Context, appID, docID int64) error
}

// ApplicationChecker reports whether an application id resolves
type ApplicationChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// DocumentService implements business logic for application documents
type DocumentService struct {
	documents    DocumentStore
	applications ApplicationChecker
	storage      filestorage.BlobStore
}

// NewDocumentService creates a new document service
func NewDocumentService(documents DocumentStore, applications ApplicationChecker, storage filestorage.BlobStore) *DocumentService {
	return &DocumentService{
		documents:    documents,
		applications: applications,
		storage:      storage,
	}
}

// Upload validates, stores and records a document for an application.
// If the application does not exist the just-written file is removed again
// so a failed upload leaves no orphaned files behind.
func (s *DocumentService) Upload(ctx context.Context, appID int64, file *multipart.FileHeader, documentType string) (*models.Document, error) {
	if documentType == "" {
		return nil, apperrors.ErrDocumentTypeMissing
	}
	docType := models.DocumentType(documentType)
	if !models.ValidDocumentType(docType) {
		return nil, apperrors.ValidationError("unknown document type: " + documentType)
	}

	if err := filestorage.ValidateUpload(file); err != nil {
		return nil, err
	}

	key, err := s.storage.Save(file)
	if err != nil {
		return nil, err
	}

	exists, err := s.applications.Exists(ctx, appID)
	if err != nil {
		s.removeBlob(key)
		return nil, err
	}
	if !exists {
		s.removeBlob(key)
		return nil, apperrors.ErrApplicationNotFound
	}

	doc := &models.Document{
		ApplicationID: appID,
		Name:          file.Filename,
		MimeType:      filestorage.ContentType(file),
		StoragePath:   key,
		DocumentType:  docType,
		FileSize:      file.Size,
		UploadedAt:    time.Now().UTC(),
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		s.removeBlob(key)
		return nil, err
	}

	return doc, nil
}

// List returns an application's documents, empty slice when none exist
func (s *DocumentService) List(ctx context.Context, appID int64) ([]models.Document, error) {
	exists, err := s.applications.Exists(ctx, appID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrApplicationNotFound
	}
	return s.documents.GetByApplication(ctx, appID)
}

// Open returns a document's metadata and a reader over its content
func (s *DocumentService) Open(ctx context.Context, appID, docID int64) (*models.Document, io.ReadCloser, error) {
	doc, err := s.documents.GetByID(ctx, appID, docID)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.storage.Open(doc.StoragePath)
	if err != nil {
		return nil, nil, err
	}
	return doc, reader, nil
}

// Delete removes a document record and its backing file. A file already
// missing on disk is tolerated, the record is removed either way.
func (s *DocumentService) Delete(ctx context.Context, appID, docID int64) error {
	doc, err := s.documents.GetByID(ctx, appID, docID)
	if err != nil {
		return err
	}

	if err := s.documents.Delete(ctx, appID, docID); err != nil {
		return err
	}

	if err := s.storage.Delete(doc.StoragePath); err != nil {
		logger.Warn().Err(err).Str("key", doc.StoragePath).Msg("Failed to delete document file")
	}
	return nil
}

func (s *DocumentService) removeBlob(key string) {
	if err := s.storage.Delete(key); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to clean up uploaded file")
	}
}
