package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oakhaven/prepschool/internal/app/models"
	"github.com/oakhaven/prepschool/internal/app/services"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
	"github.com/oakhaven/prepschool/internal/pkg/auth"
	"github.com/oakhaven/prepschool/internal/pkg/logger"
)

// Context keys set by the auth middlewares
const (
	ContextStaffUser = "staffUser"
	ContextStudent   = "student"
	ContextUserID    = "userID"
)

// StaffAuth authenticates staff requests from the staff session cookie or a
// bearer token. The resolved account is stored on the request context.
func StaffAuth(jwtService *auth.JWTService, authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := resolveClaims(c, jwtService, auth.StaffCookieName)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		if claims.UserType != auth.UserTypeStaff {
			HandleAPIError(c, apperrors.ErrWrongTokenDomain)
			c.Abort()
			return
		}

		user, err := authService.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			// 401 rather than 404 so ids cannot be probed
			HandleAPIError(c, apperrors.ErrTokenInvalid)
			c.Abort()
			return
		}

		go recordLogin(func(ctx context.Context) error {
			return authService.RecordLogin(ctx, user.ID)
		})

		c.Set(ContextStaffUser, user)
		c.Set(ContextUserID, user.ID)
		c.Next()
	}
}

// StudentAuth authenticates student requests from the student session cookie
// or a bearer token. Tokens minted for the staff domain are rejected.
func StudentAuth(jwtService *auth.JWTService, studentService *services.StudentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := resolveClaims(c, jwtService, auth.StudentCookieName)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		if claims.UserType != auth.UserTypeStudent {
			HandleAPIError(c, apperrors.ErrWrongTokenDomain)
			c.Abort()
			return
		}

		student, err := studentService.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			HandleAPIError(c, apperrors.ErrTokenInvalid)
			c.Abort()
			return
		}

		go recordLogin(func(ctx context.Context) error {
			return studentService.RecordLogin(ctx, student.ID)
		})

		c.Set(ContextStudent, student)
		c.Set(ContextUserID, student.ID)
		c.Next()
	}
}

// RequireRole rejects authenticated staff whose role is not in the allowed set
func RequireRole(roles ...models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := StaffUserFromContext(c)
		if user == nil {
			HandleAPIError(c, apperrors.ErrTokenMissing)
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		HandleAPIError(c, apperrors.ErrPermissionDenied)
		c.Abort()
	}
}

// RequireStatus rejects authenticated students whose status is not in the
// allowed set
func RequireStatus(statuses ...models.StudentStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		student := StudentFromContext(c)
		if student == nil {
			HandleAPIError(c, apperrors.ErrTokenMissing)
			c.Abort()
			return
		}
		for _, status := range statuses {
			if student.Status == status {
				c.Next()
				return
			}
		}
		HandleAPIError(c, apperrors.ErrPermissionDenied)
		c.Abort()
	}
}

// StaffUserFromContext returns the staff account set by StaffAuth, or nil
func StaffUserFromContext(c *gin.Context) *models.StaffUser {
	if value, ok := c.Get(ContextStaffUser); ok {
		if user, ok := value.(*models.StaffUser); ok {
			return user
		}
	}
	return nil
}

// StudentFromContext returns the student account set by StudentAuth, or nil
func StudentFromContext(c *gin.Context) *models.Student {
	if value, ok := c.Get(ContextStudent); ok {
		if student, ok := value.(*models.Student); ok {
			return student
		}
	}
	return nil
}

// resolveClaims extracts a token from the named cookie, falling back to the
// Authorization header, and validates it
func resolveClaims(c *gin.Context, jwtService *auth.JWTService, cookieName string) (*auth.Claims, error) {
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		token = auth.ExtractBearerToken(c.GetHeader("Authorization"))
	}
	if token == "" {
		return nil, apperrors.ErrTokenMissing
	}

	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		logger.Debug().Err(err).Msg("Token validation failed")
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}
	return claims, nil
}

// recordLogin runs a lastLogin update detached from the request. Failures
// are logged and never affect the response.
func recordLogin(update func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := update(ctx); err != nil {
		logger.Debug().Err(err).Msg("Failed to record login time")
	}
}
