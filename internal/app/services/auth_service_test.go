package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhaven/prepschool/internal/app/models"
	"github.com/oakhaven/prepschool/internal/app/models/dto"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
	"github.com/oakhaven/prepschool/internal/pkg/auth"
)

func newTestAuthService() (*AuthService, *fakeStaffStore) {
	staff := newFakeStaffStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		SessionLifetime: time.Hour,
		TokenIssuer:     "prepschool.test",
	})
	return NewAuthService(staff, jwtService), staff
}

func staffRegisterRequest() *dto.RegisterStaffRequest {
	return &dto.RegisterStaffRequest{
		Name:     "Head of Admissions",
		Email:    "head@oakhavenprep.edu",
		Password: "very-secret-1",
		Role:     "admin",
	}
}

func TestBootstrapCreatesFirstAccountOnly(t *testing.T) {
	svc, _ := newTestAuthService()

	user, token, err := svc.Bootstrap(context.Background(), staffRegisterRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// the open register endpoint closes as soon as any staff exist
	req := staffRegisterRequest()
	req.Email = "second@oakhavenprep.edu"
	_, _, err = svc.Bootstrap(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCreateStaffDefaultsToStaffRole(t *testing.T) {
	svc, _ := newTestAuthService()

	req := staffRegisterRequest()
	req.Role = ""
	user, err := svc.CreateStaff(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, user.Role)
}

func TestCreateStaffRejectsUnknownRole(t *testing.T) {
	svc, _ := newTestAuthService()

	req := staffRegisterRequest()
	req.Role = "superuser"
	_, err := svc.CreateStaff(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestCreateStaffRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.CreateStaff(context.Background(), staffRegisterRequest())
	require.NoError(t, err)

	_, err = svc.CreateStaff(context.Background(), staffRegisterRequest())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestStaffLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	_, err := svc.CreateStaff(context.Background(), staffRegisterRequest())
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), &dto.StaffLoginRequest{
		Email:    "head@oakhavenprep.edu",
		Password: "very-secret-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotNil(t, user.LastLoginAt)

	_, _, err = svc.Login(context.Background(), &dto.StaffLoginRequest{
		Email:    "head@oakhavenprep.edu",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
