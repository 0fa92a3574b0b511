package models

import "time"

// DocumentType tags an uploaded attachment with its purpose
type DocumentType string

const (
	DocumentBirthCertificate DocumentType = "birthCertificate"
	DocumentTranscript       DocumentType = "transcript"
	DocumentMedicalRecord    DocumentType = "medicalRecord"
	DocumentIdentification   DocumentType = "identification"
	DocumentOther            DocumentType = "other"
)

// ValidDocumentType reports whether t is one of the known document tags
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentBirthCertificate, DocumentTranscript, DocumentMedicalRecord,
		DocumentIdentification, DocumentOther:
		return true
	}
	return false
}

// Document is a file attachment bound to one application,
// based on the 'application_documents' table
type Document struct {
	ID            int64        `json:"id" db:"id"`
	ApplicationID int64        `json:"applicationId" db:"application_id"`
	Name          string       `json:"name" db:"name"`                  // original display name
	MimeType      string       `json:"mimeType" db:"mime_type"`         // e.g. application/pdf
	StoragePath   string       `json:"-" db:"storage_path"`             // where the blob lives; never exposed
	DocumentType  DocumentType `json:"documentType" db:"document_type"` // purpose tag
	FileSize      int64        `json:"fileSize" db:"file_size"`         // bytes
	UploadedAt    time.Time    `json:"uploadedAt" db:"uploaded_at"`
}
