package services

import (
	"github.com/oakhaven/prepschool/internal/app/repositories"
	"github.com/oakhaven/prepschool/internal/pkg/auth"
	"github.com/oakhaven/prepschool/internal/pkg/email"
	"github.com/oakhaven/prepschool/internal/pkg/filestorage"
)

// Services holds all service instances
type Services struct {
	Applications *ApplicationService
	Documents    *DocumentService
	Students     *StudentService
	Auth         *AuthService
	Contacts     *ContactService
}

// NewServices wires every service to its repositories and shared dependencies
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, emailSender email.Service, storage filestorage.BlobStore) *Services {
	return &Services{
		Applications: NewApplicationService(repos.Applications, emailSender),
		Documents:    NewDocumentService(repos.Documents, repos.Applications, storage),
		Students:     NewStudentService(repos.Students, repos.Applications, jwtService, emailSender),
		Auth:         NewAuthService(repos.Staff, jwtService),
		Contacts:     NewContactService(repos.Contacts, emailSender),
	}
}
