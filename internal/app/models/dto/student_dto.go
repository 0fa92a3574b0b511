package dto

import "github.com/oakhaven/prepschool/internal/app/models"

// RegisterStudentRequest is the self-registration body that promotes an
// application into a student account
type RegisterStudentRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	ApplicationID int64  `json:"applicationId" binding:"required"`
}

// StudentLoginRequest is the student login body
type StudentLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest starts the password-reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest redeems a reset token
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateStudentProfileRequest is the student's own profile update body;
// the target id always comes from the session token, never the body
type UpdateStudentProfileRequest struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// ParentRequest adds or replaces one parent/guardian entry
type ParentRequest struct {
	Name               string `json:"name" binding:"required"`
	Relationship       string `json:"relationship" binding:"required"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	IsEmergencyContact bool   `json:"isEmergencyContact"`
}

// UpdateStudentAdminRequest is the staff-side student PATCH body
type UpdateStudentAdminRequest struct {
	Status    string  `json:"status,omitempty"`
	StudentID *string `json:"studentId,omitempty"`
	Grade     string  `json:"grade,omitempty"`
}

// StudentAuthResponse carries the session token and public-safe student fields
type StudentAuthResponse struct {
	Token   string          `json:"token"`
	Student *models.Student `json:"student"`
}

// StudentDashboardResponse joins the student with its originating
// application and that application's documents
type StudentDashboardResponse struct {
	Student     *models.Student     `json:"student"`
	Application *models.Application `json:"application,omitempty"`
}
