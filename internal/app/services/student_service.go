package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oakhaven/prepschool/internal/app/models"
	"github.com/oakhaven/prepschool/internal/app/models/dto"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
	"github.com/oakhaven/prepschool/internal/pkg/auth"
	"github.com/oakhaven/prepschool/internal/pkg/email"
	"github.com/oakhaven/prepschool/internal/pkg/logger"
)

// passwordResetTTL bounds how long a reset link stays redeemable
const passwordResetTTL = 10 * time.Minute

// StudentStore defines the persistence operations the service needs
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetByResetToken(ctx context.Context, tokenHash string) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ApplicationClaimed(ctx context.Context, appID int64) (bool, error)
	StudentIdentifierExists(ctx context.Context, identifier string, excludeID int64) (bool, error)
	UpdateProfile(ctx context.Context, student *models.Student) error
	UpdateParents(ctx context.Context, id int64, parents []models.Parent) error
	UpdateAdminFields(ctx context.Context, student *models.Student) error
	SetResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error
	ClearResetToken(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// StudentService implements the student account lifecycle, from promotion
// out of an application through self-service profile management
type StudentService struct {
	students     StudentStore
	applications ApplicationStore
	jwtService   *auth.JWTService
	emailSender  email.Service
}

// NewStudentService creates a new student service
func NewStudentService(students StudentStore, applications ApplicationStore, jwtService *auth.JWTService, emailSender email.Service) *StudentService {
	return &StudentService{
		students:     students,
		applications: applications,
		jwtService:   jwtService,
		emailSender:  emailSender,
	}
}

// Register promotes an existing application into a student account. The
// submitted email must match the application's email and the application
// must not already be claimed by another student.
func (s *StudentService) Register(ctx context.Context, req *dto.RegisterStudentRequest) (*models.Student, string, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.students.EmailExists(ctx, emailAddr)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", apperrors.ErrEmailAlreadyExists
	}

	app, err := s.applications.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, "", err
	}
	if !strings.EqualFold(app.Email, emailAddr) {
		return nil, "", apperrors.ErrApplicationEmailMismatch
	}

	claimed, err := s.students.ApplicationClaimed(ctx, app.ID)
	if err != nil {
		return nil, "", err
	}
	if claimed {
		return nil, "", apperrors.ErrApplicationAlreadyClaimed
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	student := &models.Student{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         emailAddr,
		Password:      hashed,
		Grade:         app.GradeApplying,
		DateOfBirth:   app.DateOfBirth,
		Address:       app.Address,
		PhoneNumber:   app.Phone,
		Gender:        app.Gender,
		Status:        models.StudentPending,
		ApplicationID: app.ID,
		CreatedAt:     time.Now().UTC(),
		Parents: []models.Parent{
			{
				Name:               app.ParentName,
				Relationship:       "Parent/Guardian",
				Email:              app.Email,
				Phone:              app.Phone,
				IsEmergencyContact: true,
			},
		},
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(student.ID, student.Email, auth.UserTypeStudent, "")
	if err != nil {
		return nil, "", err
	}
	return student, token, nil
}

// Login verifies a student's credentials and issues a session token
func (s *StudentService) Login(ctx context.Context, req *dto.StudentLoginRequest) (*models.Student, string, error) {
	student, err := s.students.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(student.Password, req.Password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.students.UpdateLastLogin(ctx, student.ID, now); err != nil {
		logger.Warn().Err(err).Int64("studentId", student.ID).Msg("Failed to record student login time")
	} else {
		student.LastLoginAt = &now
	}

	token, err := s.jwtService.GenerateToken(student.ID, student.Email, auth.UserTypeStudent, "")
	if err != nil {
		return nil, "", err
	}
	return student, token, nil
}

// ForgotPassword issues a short-lived reset token and mails it to the
// student. Only a one-way hash of the token is stored; if the email cannot
// be sent the stored hash is cleared again so no dangling token survives.
func (s *StudentService) ForgotPassword(ctx context.Context, emailAddr string) error {
	student, err := s.students.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	token := uuid.NewString()
	expires := time.Now().UTC().Add(passwordResetTTL)
	if err := s.students.SetResetToken(ctx, student.ID, hashResetToken(token), expires); err != nil {
		return err
	}

	if err := s.emailSender.SendPasswordResetEmail(student.Email, student.FirstName, token); err != nil {
		if clearErr := s.students.ClearResetToken(ctx, student.ID); clearErr != nil {
			logger.Error().Err(clearErr).Int64("studentId", student.ID).Msg("Failed to roll back reset token")
		}
		return err
	}
	return nil
}

// ResetPassword redeems a reset token and replaces the student's password
func (s *StudentService) ResetPassword(ctx context.Context, token, password string) error {
	student, err := s.students.GetByResetToken(ctx, hashResetToken(token))
	if err != nil {
		return apperrors.ErrInvalidPasswordResetToken
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.students.UpdatePassword(ctx, student.ID, hashed)
}

// GetByID returns a student account by id
func (s *StudentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// Dashboard joins the student with its originating application
func (s *StudentService) Dashboard(ctx context.Context, studentID int64) (*dto.StudentDashboardResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	resp := &dto.StudentDashboardResponse{Student: student}
	if app, err := s.applications.GetByID(ctx, student.ApplicationID); err == nil {
		resp.Application = app
	} else {
		logger.Warn().Err(err).Int64("studentId", studentID).Msg("Failed to load dashboard application")
	}
	return resp, nil
}

// UpdateProfile saves the student's own editable fields
func (s *StudentService) UpdateProfile(ctx context.Context, studentID int64, req *dto.UpdateStudentProfileRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		student.FirstName = req.FirstName
	}
	if req.LastName != "" {
		student.LastName = req.LastName
	}
	if req.Address != "" {
		student.Address = req.Address
	}
	if req.PhoneNumber != "" {
		student.PhoneNumber = req.PhoneNumber
	}

	if err := s.students.UpdateProfile(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// UpdateParent replaces the parent entry at the given index
func (s *StudentService) UpdateParent(ctx context.Context, studentID int64, index int, req *dto.ParentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(student.Parents) {
		return nil, apperrors.ErrParentNotFound
	}

	student.Parents[index] = models.Parent{
		Name:               req.Name,
		Relationship:       req.Relationship,
		Email:              req.Email,
		Phone:              req.Phone,
		IsEmergencyContact: req.IsEmergencyContact,
	}
	if err := s.students.UpdateParents(ctx, studentID, student.Parents); err != nil {
		return nil, err
	}
	return student, nil
}

// AddParent appends a new parent entry to the student's record
func (s *StudentService) AddParent(ctx context.Context, studentID int64, req *dto.ParentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	student.Parents = append(student.Parents, models.Parent{
		Name:               req.Name,
		Relationship:       req.Relationship,
		Email:              req.Email,
		Phone:              req.Phone,
		IsEmergencyContact: req.IsEmergencyContact,
	})
	if err := s.students.UpdateParents(ctx, studentID, student.Parents); err != nil {
		return nil, err
	}
	return student, nil
}

// GetAll returns every student account for the staff back office
func (s *StudentService) GetAll(ctx context.Context) ([]*models.Student, error) {
	return s.students.GetAll(ctx)
}

// AdminUpdate saves the staff-editable fields of a student record
func (s *StudentService) AdminUpdate(ctx context.Context, studentID int64, req *dto.UpdateStudentAdminRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		status := models.StudentStatus(req.Status)
		if !models.ValidStudentStatus(status) {
			return nil, apperrors.ErrInvalidStatus
		}
		student.Status = status
	}
	if req.StudentID != nil {
		identifier := strings.TrimSpace(*req.StudentID)
		if identifier == "" {
			student.StudentID = nil
		} else {
			taken, err := s.students.StudentIdentifierExists(ctx, identifier, studentID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperrors.ErrStudentIdentifierExists
			}
			student.StudentID = &identifier
		}
	}
	if req.Grade != "" {
		student.Grade = req.Grade
	}

	if err := s.students.UpdateAdminFields(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// RecordLogin stamps the time of the most recent authenticated request
func (s *StudentService) RecordLogin(ctx context.Context, studentID int64) error {
	return s.students.UpdateLastLogin(ctx, studentID, time.Now().UTC())
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
