package dto

import "github.com/oakhaven/prepschool/internal/app/models"

// StaffLoginRequest is the staff login body
type StaffLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterStaffRequest creates a staff account. The unauthenticated
// /auth/register route only honors it while no staff users exist.
type RegisterStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role,omitempty"`
}

// StaffAuthResponse carries the session token and public-safe staff fields
type StaffAuthResponse struct {
	Token string            `json:"token"`
	User  *models.StaffUser `json:"user"`
}
