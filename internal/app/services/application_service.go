package services

import (
	"context"
	"strings"
	"time"

	"github.com/oakhaven/prepschool/internal/app/models"
	"github.com/oakhaven/prepschool/internal/app/models/dto"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
	"github.com/oakhaven/prepschool/internal/pkg/email"
	"github.com/oakhaven/prepschool/internal/pkg/logger"
)

// ApplicationStore defines the persistence operations the service needs
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	GetAll(ctx context.Context) ([]*models.Application, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (*models.Application, error)
}

// ApplicationService implements business logic for admissions applications
type ApplicationService struct {
	applications ApplicationStore
	emailSender  email.Service
}

// NewApplicationService creates a new application service
func NewApplicationService(applications ApplicationStore, emailSender email.Service) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		emailSender:  emailSender,
	}
}

// Create validates and persists a new application.
// Duplicate submissions from the same email are allowed.
func (s *ApplicationService) Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error) {
	app := &models.Application{
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Gender:          req.Gender,
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           strings.TrimSpace(req.Phone),
		Address:         req.Address,
		CurrentSchool:   req.CurrentSchool,
		GradeApplying:   req.GradeApplying,
		ParentName:      strings.TrimSpace(req.ParentName),
		Message:         req.Message,
		Status:          models.ApplicationPending,
		ApplicationDate: time.Now().UTC(),
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, apperrors.ValidationError("dob must be in YYYY-MM-DD format")
		}
		app.DateOfBirth = &dob
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	app.Documents = []models.Document{}

	// notification is best effort, submission already succeeded
	go func(a models.Application) {
		if err := s.emailSender.SendApplicationNotification(&a); err != nil {
			logger.Warn().Err(err).Int64("applicationId", a.ID).Msg("Failed to send application notification")
		}
	}(*app)

	return app, nil
}

// GetAll returns every application, newest first
func (s *ApplicationService) GetAll(ctx context.Context) ([]*models.Application, error) {
	return s.applications.GetAll(ctx)
}

// GetByID returns a single application with its documents
func (s *ApplicationService) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	return s.applications.GetByID(ctx, id)
}

// SetStatus updates an application's status. Any of the four known values is
// accepted from any prior state; only enum membership is checked.
func (s *ApplicationService) SetStatus(ctx context.Context, id int64, status string) (*models.Application, error) {
	newStatus := models.ApplicationStatus(status)
	if !models.ValidApplicationStatus(newStatus) {
		return nil, apperrors.ErrInvalidStatus
	}
	return s.applications.UpdateStatus(ctx, id, newStatus)
}
