package models

import "time"

// StaffRole defines the staff role type
type StaffRole string

const (
	RoleAdmin StaffRole = "admin"
	RoleStaff StaffRole = "staff"
)

// ValidStaffRole reports whether r is one of the known roles
func ValidStaffRole(r StaffRole) bool {
	return r == RoleAdmin || r == RoleStaff
}

// StaffUser defines an administrator or staff member based on the 'staff_users' table
type StaffUser struct {
	ID           int64      `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	Password     string     `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Role         StaffRole  `json:"role" db:"role"`
	ProfileImage *string    `json:"profileImage,omitempty" db:"profile_image"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}
