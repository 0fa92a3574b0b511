package models

import "time"

// StudentStatus is the enrollment state of a student account
type StudentStatus string

const (
	StudentPending   StudentStatus = "pending"
	StudentActive    StudentStatus = "active"
	StudentInactive  StudentStatus = "inactive"
	StudentGraduated StudentStatus = "graduated"
)

// ValidStudentStatus reports whether s is one of the known statuses
func ValidStudentStatus(s StudentStatus) bool {
	switch s {
	case StudentPending, StudentActive, StudentInactive, StudentGraduated:
		return true
	}
	return false
}

// Parent is one parent/guardian contact on a student record,
// stored as a JSONB array on the 'students' table
type Parent struct {
	Name               string `json:"name"`
	Relationship       string `json:"relationship"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	IsEmergencyContact bool   `json:"isEmergencyContact"`
}

// Student defines a student/parent portal account based on the 'students' table.
// A student is created only by promotion from an accepted application.
type Student struct {
	ID            int64         `json:"id" db:"id"`
	StudentID     *string       `json:"studentId,omitempty" db:"student_identifier"` // school-assigned, unique when present
	FirstName     string        `json:"firstName" db:"first_name"`
	LastName      string        `json:"lastName" db:"last_name"`
	Email         string        `json:"email" db:"email"`
	Password      string        `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Grade         string        `json:"grade" db:"grade"`
	DateOfBirth   *time.Time    `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Address       string        `json:"address,omitempty" db:"address"`
	PhoneNumber   string        `json:"phoneNumber,omitempty" db:"phone_number"`
	Gender        string        `json:"gender,omitempty" db:"gender"`
	Status        StudentStatus `json:"status" db:"status"`
	Parents       []Parent      `json:"parents" db:"parents"`
	ApplicationID int64         `json:"applicationId" db:"application_id"` // the one application this account was promoted from
	LastLoginAt   *time.Time    `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`

	// Password reset bookkeeping; only the hash is ever stored
	ResetPasswordToken   *string    `json:"-" db:"reset_password_token"`
	ResetPasswordExpires *time.Time `json:"-" db:"reset_password_expires"`
}
