package models

import "time"

// ApplicationStatus is the review state of an admissions application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ValidApplicationStatus reports whether s is one of the four known statuses.
// Transitions between statuses are deliberately unconstrained; admins may set
// any known value from any prior state.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Application defines one admissions submission based on the 'applications' table
type Application struct {
	ID              int64             `json:"id" db:"id" example:"1"`
	FirstName       string            `json:"firstName" db:"first_name" example:"Ada"`
	LastName        string            `json:"lastName" db:"last_name" example:"Okafor"`
	DateOfBirth     *time.Time        `json:"dob,omitempty" db:"date_of_birth"`
	Gender          string            `json:"gender,omitempty" db:"gender" example:"female"`
	Email           string            `json:"email" db:"email" example:"parent@example.com"` // stored lower-cased and trimmed
	Phone           string            `json:"phone" db:"phone" example:"+2348012345678"`
	Address         string            `json:"address,omitempty" db:"address"`
	CurrentSchool   string            `json:"currentSchool,omitempty" db:"current_school"`
	GradeApplying   string            `json:"gradeApplying" db:"grade_applying" example:"JSS 1"`
	ParentName      string            `json:"parentName" db:"parent_name" example:"Mrs. Okafor"`
	Message         string            `json:"message,omitempty" db:"message"`
	Status          ApplicationStatus `json:"status" db:"status" example:"pending"`
	ApplicationDate time.Time         `json:"applicationDate" db:"application_date"` // server-set at creation, immutable
	Documents       []Document        `json:"documents"`
}
