package apperrors

import "errors"

// Validation errors (HTTP 400)
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrInvalidStatus    = errors.New("invalid status value")
	ErrInvalidRole      = errors.New("invalid role value")
)

// Authentication errors (HTTP 401)
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenMissing       = errors.New("authentication token missing")
	ErrWrongTokenDomain   = errors.New("token not valid for this resource")
)

// Authorization errors (HTTP 403)
var (
	ErrPermissionDenied = errors.New("permission denied")
)

// Not-found errors (HTTP 404)
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrStaffUserNotFound   = errors.New("staff user not found")
	ErrContactNotFound     = errors.New("contact message not found")
	ErrFileNotFound        = errors.New("file not found")
	ErrParentNotFound      = errors.New("parent entry not found")
)

// Conflict errors (reported as HTTP 400, matching the original design)
var (
	ErrEmailAlreadyExists        = errors.New("an account with this email already exists")
	ErrApplicationAlreadyClaimed = errors.New("application already linked to a student account")
	ErrApplicationEmailMismatch  = errors.New("email does not match the application on file")
	ErrStudentIdentifierExists   = errors.New("student ID already in use")
	ErrInvalidPasswordResetToken = errors.New("invalid or expired password reset token")
)

// Upload errors (HTTP 400)
var (
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrFileTypeNotAllowed  = errors.New("file type not allowed")
	ErrDocumentTypeMissing = errors.New("document type is required")
)

// ValidationError wraps ErrValidationFailed with a caller-facing message.
func ValidationError(message string) error {
	return &messageError{err: ErrValidationFailed, message: message}
}

// NotFoundError wraps a not-found sentinel with a caller-facing message.
func NotFoundError(sentinel error, message string) error {
	return &messageError{err: sentinel, message: message}
}

type messageError struct {
	err     error
	message string
}

func (e *messageError) Error() string {
	if e.message != "" {
		return e.message
	}
	return e.err.Error()
}

func (e *messageError) Unwrap() error {
	return e.err
}
