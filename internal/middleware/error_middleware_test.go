package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.ErrValidationFailed, http.StatusBadRequest},
		{apperrors.ValidationError("dob must be in YYYY-MM-DD format"), http.StatusBadRequest},
		{apperrors.ErrEmailAlreadyExists, http.StatusBadRequest},
		{apperrors.ErrApplicationAlreadyClaimed, http.StatusBadRequest},
		{apperrors.ErrFileTooLarge, http.StatusBadRequest},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{apperrors.ErrWrongTokenDomain, http.StatusUnauthorized},
		{apperrors.ErrPermissionDenied, http.StatusForbidden},
		{apperrors.ErrApplicationNotFound, http.StatusNotFound},
		{apperrors.ErrFileNotFound, http.StatusNotFound},
		{fmt.Errorf("loading student: %w", apperrors.ErrStudentNotFound), http.StatusNotFound},
		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, statusForError(tc.err), "error: %v", tc.err)
	}
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/students", nil)

	HandleAPIError(c, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation does not exist")
	assert.Contains(t, w.Body.String(), "An unexpected error occurred")
}

func TestHandleAPIErrorKeepsKnownMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/student/login", nil)

	HandleAPIError(c, apperrors.ErrInvalidCredentials)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), apperrors.ErrInvalidCredentials.Error())
}
