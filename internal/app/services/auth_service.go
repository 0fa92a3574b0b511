package services

import (
	"context"
	"strings"
	"time"

	"github.com/oakhaven/prepschool/internal/app/models"
	"github.com/oakhaven/prepschool/internal/app/models/dto"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
	"github.com/oakhaven/prepschool/internal/pkg/auth"
	"github.com/oakhaven/prepschool/internal/pkg/logger"
)

// StaffStore defines the persistence operations the service needs
type StaffStore interface {
	Create(ctx context.Context, user *models.StaffUser) error
	GetByID(ctx context.Context, id int64) (*models.StaffUser, error)
	GetByEmail(ctx context.Context, email string) (*models.StaffUser, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// AuthService implements staff authentication and account management
type AuthService struct {
	staff      StaffStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new staff auth service
func NewAuthService(staff StaffStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		staff:      staff,
		jwtService: jwtService,
	}
}

// Login verifies staff credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, req *dto.StaffLoginRequest) (*models.StaffUser, string, error) {
	user, err := s.staff.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.staff.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Warn().Err(err).Int64("staffId", user.ID).Msg("Failed to record staff login time")
	} else {
		user.LastLoginAt = &now
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, auth.UserTypeStaff, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Bootstrap creates the very first staff account. Once any staff account
// exists the unauthenticated register endpoint is closed for good.
func (s *AuthService) Bootstrap(ctx context.Context, req *dto.RegisterStaffRequest) (*models.StaffUser, string, error) {
	count, err := s.staff.Count(ctx)
	if err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", apperrors.ErrPermissionDenied
	}

	user, err := s.createStaff(ctx, req)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, auth.UserTypeStaff, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CreateStaff lets an admin provision a new staff account
func (s *AuthService) CreateStaff(ctx context.Context, req *dto.RegisterStaffRequest) (*models.StaffUser, error) {
	return s.createStaff(ctx, req)
}

// GetByID returns a staff account by id
func (s *AuthService) GetByID(ctx context.Context, id int64) (*models.StaffUser, error) {
	return s.staff.GetByID(ctx, id)
}

// RecordLogin stamps the time of the most recent authenticated request
func (s *AuthService) RecordLogin(ctx context.Context, staffID int64) error {
	return s.staff.UpdateLastLogin(ctx, staffID, time.Now().UTC())
}

func (s *AuthService) createStaff(ctx context.Context, req *dto.RegisterStaffRequest) (*models.StaffUser, error) {
	role := models.StaffRole(req.Role)
	if req.Role == "" {
		role = models.RoleStaff
	}
	if !models.ValidStaffRole(role) {
		return nil, apperrors.ErrInvalidRole
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.staff.EmailExists(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.StaffUser{
		Name:      strings.TrimSpace(req.Name),
		Email:     emailAddr,
		Password:  hashed,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.staff.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
