package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oakhaven/prepschool/internal/app/models/dto"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
	"github.com/oakhaven/prepschool/internal/pkg/logger"
)

// HandleAPIError translates service errors to HTTP responses. Known errors
// keep their message; anything unrecognized is logged server-side and
// reported with a generic message only.
func HandleAPIError(c *gin.Context, err error) {
	status := statusForError(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unexpected error handling request")
		c.JSON(status, dto.NewErrorResponse("An unexpected error occurred"))
		return
	}

	c.JSON(status, dto.NewErrorResponse(err.Error()))
}

func statusForError(err error) int {
	switch {
	case isAny(err,
		apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		apperrors.ErrInvalidStatus,
		apperrors.ErrInvalidRole,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrApplicationAlreadyClaimed,
		apperrors.ErrApplicationEmailMismatch,
		apperrors.ErrStudentIdentifierExists,
		apperrors.ErrInvalidPasswordResetToken,
		apperrors.ErrFileTooLarge,
		apperrors.ErrFileTypeNotAllowed,
		apperrors.ErrDocumentTypeMissing):
		return http.StatusBadRequest
	case isAny(err,
		apperrors.ErrInvalidCredentials,
		apperrors.ErrTokenExpired,
		apperrors.ErrTokenInvalid,
		apperrors.ErrTokenMissing,
		apperrors.ErrWrongTokenDomain):
		return http.StatusUnauthorized
	case isAny(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden
	case isAny(err,
		apperrors.ErrApplicationNotFound,
		apperrors.ErrDocumentNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrStaffUserNotFound,
		apperrors.ErrContactNotFound,
		apperrors.ErrFileNotFound,
		apperrors.ErrParentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
