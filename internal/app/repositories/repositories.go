package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	Applications *ApplicationRepository
	Documents    *DocumentRepository
	Students     *StudentRepository
	Staff        *StaffRepository
	Contacts     *ContactRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Applications: NewApplicationRepository(db),
		Documents:    NewDocumentRepository(db),
		Students:     NewStudentRepository(db),
		Staff:        NewStaffRepository(db),
		Contacts:     NewContactRepository(db),
	}
}
