package dto

// CreateApplicationRequest is the public admissions-form submission body.
// Duplicate submissions from the same email are allowed on purpose.
type CreateApplicationRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	DateOfBirth   string `json:"dob,omitempty"` // YYYY-MM-DD
	Gender        string `json:"gender,omitempty"`
	Address       string `json:"address,omitempty"`
	CurrentSchool string `json:"currentSchool,omitempty"`
	GradeApplying string `json:"gradeApplying" binding:"required"`
	ParentName    string `json:"parentName" binding:"required"`
	Message       string `json:"message,omitempty"`
}

// UpdateApplicationStatusRequest is the admin status PATCH body
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
