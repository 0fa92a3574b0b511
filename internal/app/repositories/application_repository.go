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

// ApplicationRepository handles database operations for admissions applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
	}
}

const applicationColumns = `id, first_name, last_name, date_of_birth, gender, email, phone,
	address, current_school, grade_applying, parent_name, message, status, application_date`

// Create persists a new application and sets its generated id
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications
			(first_name, last_name, date_of_birth, gender, email, phone,
			 address, current_school, grade_applying, parent_name, message, status, application_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		app.FirstName, app.LastName, app.DateOfBirth, app.Gender, app.Email, app.Phone,
		app.Address, app.CurrentSchool, app.GradeApplying, app.ParentName, app.Message,
		app.Status, app.ApplicationDate,
	).Scan(&app.ID)
	if err != nil {
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

// GetByID retrieves an application with its documents
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	docs, err := r.documentsForApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	app.Documents = docs

	return app, nil
}

// Exists reports whether an application with the given id exists
func (r *ApplicationRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking application existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves all applications, newest first, with their documents
func (r *ApplicationRepository) GetAll(ctx context.Context) ([]*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY application_date DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	byID := make(map[int64]*models.Application)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		app.Documents = []models.Document{}
		apps = append(apps, app)
		byID[app.ID] = app
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	docRows, err := r.db.Query(ctx, `
		SELECT id, application_id, name, mime_type, storage_path, document_type, file_size, uploaded_at
		FROM application_documents
		ORDER BY uploaded_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer docRows.Close()

	for docRows.Next() {
		var doc models.Document
		if err := docRows.Scan(&doc.ID, &doc.ApplicationID, &doc.Name, &doc.MimeType,
			&doc.StoragePath, &doc.DocumentType, &doc.FileSize, &doc.UploadedAt); err != nil {
			return nil, err
		}
		if app, ok := byID[doc.ApplicationID]; ok {
			app.Documents = append(app.Documents, doc)
		}
	}
	if err := docRows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

// UpdateStatus sets a new status and returns the updated record.
// Enum membership is validated by the service; this trusts its input.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (*models.Application, error) {
	tag, err := r.db.Exec(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return nil, fmt.Errorf("error updating application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrApplicationNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) documentsForApplication(ctx context.Context, appID int64) ([]models.Document, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, application_id, name, mime_type, storage_path, document_type, file_size, uploaded_at
		FROM application_documents
		WHERE application_id = $1
		ORDER BY uploaded_at ASC`, appID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving documents: %w", err)
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

func scanApplication(row pgx.Row) (*models.Application, error) {
	var app models.Application
	err := row.Scan(
		&app.ID, &app.FirstName, &app.LastName, &app.DateOfBirth, &app.Gender,
		&app.Email, &app.Phone, &app.Address, &app.CurrentSchool, &app.GradeApplying,
		&app.ParentName, &app.Message, &app.Status, &app.ApplicationDate,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}
