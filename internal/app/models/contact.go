package models

import "time"

// ContactMessage defines one public contact-form submission
// based on the 'contact_messages' table
type ContactMessage struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Subject     string    `json:"subject" db:"subject"`
	Message     string    `json:"message" db:"message"`
	Responded   bool      `json:"responded" db:"responded"`
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
}
