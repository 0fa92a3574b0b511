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

// ContactRepository handles database operations for contact messages
type ContactRepository struct {
	db *pgxpool.Pool
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{
		db: db,
	}
}

// Create persists a new contact message and sets its generated id
func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, subject, message, responded, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		msg.Name, msg.Email, msg.Subject, msg.Message, msg.Responded, msg.SubmittedAt,
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("error creating contact message: %w", err)
	}

	return nil
}

// GetAll retrieves all contact messages, newest first
func (r *ContactRepository) GetAll(ctx context.Context) ([]*models.ContactMessage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, subject, message, responded, submitted_at
		FROM contact_messages
		ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing contact messages: %w", err)
	}
	defer rows.Close()

	messages := []*models.ContactMessage{}
	for rows.Next() {
		var msg models.ContactMessage
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject,
			&msg.Message, &msg.Responded, &msg.SubmittedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

// MarkResponded flags a contact message as handled and returns the updated record
func (r *ContactRepository) MarkResponded(ctx context.Context, id int64) (*models.ContactMessage, error) {
	query := `
		UPDATE contact_messages SET responded = TRUE WHERE id = $1
		RETURNING id, name, email, subject, message, responded, submitted_at
	`

	var msg models.ContactMessage
	err := r.db.QueryRow(ctx, query, id).Scan(
		&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.Responded, &msg.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("error updating contact message: %w", err)
	}

	return &msg, nil
}
