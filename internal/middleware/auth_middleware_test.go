package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhaven/prepschool/internal/app/models"
	"github.com/oakhaven/prepschool/internal/app/services"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
	"github.com/oakhaven/prepschool/internal/pkg/auth"
)

// staffStoreStub backs an AuthService with a single fixed account
type staffStoreStub struct {
	user *models.StaffUser
}

func (s *staffStoreStub) Create(context.Context, *models.StaffUser) error { return nil }

func (s *staffStoreStub) GetByID(_ context.Context, id int64) (*models.StaffUser, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, apperrors.ErrStaffUserNotFound
}

func (s *staffStoreStub) GetByEmail(context.Context, string) (*models.StaffUser, error) {
	return nil, apperrors.ErrStaffUserNotFound
}

func (s *staffStoreStub) EmailExists(context.Context, string) (bool, error) { return false, nil }

func (s *staffStoreStub) Count(context.Context) (int64, error) { return 1, nil }

func (s *staffStoreStub) UpdateLastLogin(context.Context, int64, time.Time) error { return nil }

// studentStoreStub backs a StudentService with a single fixed account
type studentStoreStub struct {
	student *models.Student
}

func (s *studentStoreStub) Create(context.Context, *models.Student) error { return nil }

func (s *studentStoreStub) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if s.student != nil && s.student.ID == id {
		return s.student, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *studentStoreStub) GetByEmail(context.Context, string) (*models.Student, error) {
	return nil, apperrors.ErrStudentNotFound
}

func (s *studentStoreStub) GetByResetToken(context.Context, string) (*models.Student, error) {
	return nil, apperrors.ErrStudentNotFound
}

func (s *studentStoreStub) GetAll(context.Context) ([]*models.Student, error) { return nil, nil }

func (s *studentStoreStub) EmailExists(context.Context, string) (bool, error) { return false, nil }

func (s *studentStoreStub) ApplicationClaimed(context.Context, int64) (bool, error) {
	return false, nil
}

func (s *studentStoreStub) StudentIdentifierExists(context.Context, string, int64) (bool, error) {
	return false, nil
}

func (s *studentStoreStub) UpdateProfile(context.Context, *models.Student) error { return nil }

func (s *studentStoreStub) UpdateParents(context.Context, int64, []models.Parent) error { return nil }

func (s *studentStoreStub) UpdateAdminFields(context.Context, *models.Student) error { return nil }

func (s *studentStoreStub) SetResetToken(context.Context, int64, string, time.Time) error {
	return nil
}

func (s *studentStoreStub) ClearResetToken(context.Context, int64) error { return nil }

func (s *studentStoreStub) UpdatePassword(context.Context, int64, string) error { return nil }

func (s *studentStoreStub) UpdateLastLogin(context.Context, int64, time.Time) error { return nil }

type authFixture struct {
	jwt            *auth.JWTService
	router         *gin.Engine
	staffToken     string
	studentToken   string
	expiredToken   string
	unknownIDToken string
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		SessionLifetime: time.Hour,
		TokenIssuer:     "prepschool.test",
	})

	staffUser := &models.StaffUser{ID: 1, Email: "staff@oakhavenprep.edu", Role: models.RoleStaff}
	student := &models.Student{ID: 2, Email: "kid@example.com", Status: models.StudentActive}

	authService := services.NewAuthService(&staffStoreStub{user: staffUser}, jwtService)
	studentService := services.NewStudentService(&studentStoreStub{student: student}, nil, jwtService, nil)

	f := &authFixture{jwt: jwtService}

	var err error
	f.staffToken, err = jwtService.GenerateToken(1, staffUser.Email, auth.UserTypeStaff, "staff")
	require.NoError(t, err)
	f.studentToken, err = jwtService.GenerateToken(2, student.Email, auth.UserTypeStudent, "")
	require.NoError(t, err)
	f.unknownIDToken, err = jwtService.GenerateToken(99, "ghost@example.com", auth.UserTypeStaff, "staff")
	require.NoError(t, err)

	expiredService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		SessionLifetime: -time.Minute,
		TokenIssuer:     "prepschool.test",
	})
	f.expiredToken, err = expiredService.GenerateToken(1, staffUser.Email, auth.UserTypeStaff, "staff")
	require.NoError(t, err)

	router := gin.New()
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	router.GET("/staff", StaffAuth(jwtService, authService), ok)
	router.GET("/staff/admin",
		StaffAuth(jwtService, authService), RequireRole(models.RoleAdmin), ok)
	router.GET("/student", StudentAuth(jwtService, studentService), ok)
	router.GET("/student/graduated-only",
		StudentAuth(jwtService, studentService), RequireStatus(models.StudentGraduated), ok)
	f.router = router

	return f
}

func (f *authFixture) request(t *testing.T, path, bearer, cookieName, cookieValue string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if cookieName != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookieValue})
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestStaffAuthAcceptsBearerAndCookie(t *testing.T) {
	f := newAuthFixture(t)

	assert.Equal(t, http.StatusOK, f.request(t, "/staff", f.staffToken, "", "").Code)
	assert.Equal(t, http.StatusOK, f.request(t, "/staff", "", auth.StaffCookieName, f.staffToken).Code)
}

func TestStaffAuthRejectsMissingToken(t *testing.T) {
	f := newAuthFixture(t)
	assert.Equal(t, http.StatusUnauthorized, f.request(t, "/staff", "", "", "").Code)
}

func TestStaffAuthRejectsStudentToken(t *testing.T) {
	f := newAuthFixture(t)
	assert.Equal(t, http.StatusUnauthorized, f.request(t, "/staff", f.studentToken, "", "").Code)
}

func TestStudentAuthRejectsStaffToken(t *testing.T) {
	f := newAuthFixture(t)
	assert.Equal(t, http.StatusUnauthorized, f.request(t, "/student", f.staffToken, "", "").Code)
	assert.Equal(t, http.StatusOK, f.request(t, "/student", f.studentToken, "", "").Code)
}

func TestStaffAuthRejectsExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	assert.Equal(t, http.StatusUnauthorized, f.request(t, "/staff", f.expiredToken, "", "").Code)
}

func TestStaffAuthRejectsUnknownPrincipal(t *testing.T) {
	f := newAuthFixture(t)
	// unauthenticated rather than not-found, so ids cannot be probed
	assert.Equal(t, http.StatusUnauthorized, f.request(t, "/staff", f.unknownIDToken, "", "").Code)
}

func TestStaffAuthRejectsGarbageToken(t *testing.T) {
	f := newAuthFixture(t)
	assert.Equal(t, http.StatusUnauthorized, f.request(t, "/staff", "garbage.token.here", "", "").Code)
}

func TestRequireRoleRejectsInsufficientRole(t *testing.T) {
	f := newAuthFixture(t)
	assert.Equal(t, http.StatusForbidden, f.request(t, "/staff/admin", f.staffToken, "", "").Code)
}

func TestRequireStatusRejectsDisallowedStatus(t *testing.T) {
	f := newAuthFixture(t)
	assert.Equal(t, http.StatusForbidden, f.request(t, "/student/graduated-only", f.studentToken, "", "").Code)
}
