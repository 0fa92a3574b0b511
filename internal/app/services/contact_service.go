package services

import (
	"context"
	"strings"
	"time"

	"github.com/oakhaven/prepschool/internal/app/models"
	"github.com/oakhaven/prepschool/internal/app/models/dto"
	"github.com/oakhaven/prepschool/internal/pkg/email"
	"github.com/oakhaven/prepschool/internal/pkg/logger"
)

// ContactStore defines the persistence operations the service needs
type ContactStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	GetAll(ctx context.Context) ([]*models.ContactMessage, error)
	MarkResponded(ctx context.Context, id int64) (*models.ContactMessage, error)
}

// ContactService implements business logic for contact messages
type ContactService struct {
	contacts    ContactStore
	emailSender email.Service
}

// NewContactService creates a new contact service
func NewContactService(contacts ContactStore, emailSender email.Service) *ContactService {
	return &ContactService{
		contacts:    contacts,
		emailSender: emailSender,
	}
}

// Create persists a contact-form submission and notifies the school inbox
func (s *ContactService) Create(ctx context.Context, req *dto.CreateContactRequest) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:     strings.TrimSpace(req.Subject),
		Message:     req.Message,
		Responded:   false,
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.contacts.Create(ctx, msg); err != nil {
		return nil, err
	}

	// notification is best effort, submission already succeeded
	go func(m models.ContactMessage) {
		if err := s.emailSender.SendContactNotification(&m); err != nil {
			logger.Warn().Err(err).Int64("contactId", m.ID).Msg("Failed to send contact notification")
		}
	}(*msg)

	return msg, nil
}

// GetAll returns every contact message, newest first
func (s *ContactService) GetAll(ctx context.Context) ([]*models.ContactMessage, error) {
	return s.contacts.GetAll(ctx)
}

// MarkResponded flips the responded flag. Calling it on an already
// handled message succeeds and leaves the flag set.
func (s *ContactService) MarkResponded(ctx context.Context, id int64) (*models.ContactMessage, error) {
	return s.contacts.MarkResponded(ctx, id)
}
