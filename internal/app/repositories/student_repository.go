package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oakhaven/prepschool/internal/app/models"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
)

// StudentRepository handles database operations for student accounts
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentColumns = `id, student_identifier, first_name, last_name, email, password, grade,
	date_of_birth, address, phone_number, gender, status, parents, application_id,
	last_login_at, created_at, reset_password_token, reset_password_expires`

// Create persists a new student account and sets its generated id
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	parents, err := json.Marshal(student.Parents)
	if err != nil {
		return fmt.Errorf("error encoding parents: %w", err)
	}

	query := `
		INSERT INTO students
			(student_identifier, first_name, last_name, email, password, grade,
			 date_of_birth, address, phone_number, gender, status, parents, application_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, $13, $14)
		RETURNING id
	`

	err = r.db.QueryRow(ctx, query,
		student.StudentID, student.FirstName, student.LastName, student.Email,
		student.Password, student.Grade, student.DateOfBirth, student.Address,
		student.PhoneNumber, student.Gender, student.Status, string(parents),
		student.ApplicationID, student.CreatedAt,
	).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student account by id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a student account by email, case-insensitively
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE LOWER(email) = LOWER($1)`
	return r.getOne(ctx, query, email)
}

// GetByResetToken retrieves the student holding an unexpired reset token hash
func (r *StudentRepository) GetByResetToken(ctx context.Context, tokenHash string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
		WHERE reset_password_token = $1 AND reset_password_expires > NOW()`
	return r.getOne(ctx, query, tokenHash)
}

// GetAll retrieves all student accounts, newest first
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

// EmailExists reports whether a student account uses the given email
func (r *StudentRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student email: %w", err)
	}
	return exists, nil
}

// ApplicationClaimed reports whether an application is already linked to a student
func (r *StudentRepository) ApplicationClaimed(ctx context.Context, appID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE application_id = $1)`, appID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking application claim: %w", err)
	}
	return exists, nil
}

// StudentIdentifierExists reports whether the school-issued identifier is taken
// by a student other than the given one
func (r *StudentRepository) StudentIdentifierExists(ctx context.Context, identifier string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE student_identifier = $1 AND id <> $2)`,
		identifier, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student identifier: %w", err)
	}
	return exists, nil
}

// UpdateProfile saves the student-editable profile fields
func (r *StudentRepository) UpdateProfile(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, address = $3, phone_number = $4
		WHERE id = $5
	`

	tag, err := r.db.Exec(ctx, query,
		student.FirstName, student.LastName, student.Address, student.PhoneNumber, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateParents replaces the stored parent contact list
func (r *StudentRepository) UpdateParents(ctx context.Context, id int64, parents []models.Parent) error {
	encoded, err := json.Marshal(parents)
	if err != nil {
		return fmt.Errorf("error encoding parents: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE students SET parents = $1::jsonb WHERE id = $2`, string(encoded), id)
	if err != nil {
		return fmt.Errorf("error updating parents: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateAdminFields saves the staff-editable fields of a student record
func (r *StudentRepository) UpdateAdminFields(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET status = $1, student_identifier = $2, grade = $3
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query,
		student.Status, student.StudentID, student.Grade, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetResetToken stores a password reset token hash and its expiry
func (r *StudentRepository) SetResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE students SET reset_password_token = $1, reset_password_expires = $2 WHERE id = $3`,
		tokenHash, expires, id)
	if err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}
	return nil
}

// ClearResetToken removes any stored password reset token
func (r *StudentRepository) ClearResetToken(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE students SET reset_password_token = NULL, reset_password_expires = NULL WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error clearing reset token: %w", err)
	}
	return nil
}

// UpdatePassword replaces the password hash and clears any reset token
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE students
		SET password = $1, reset_password_token = NULL, reset_password_expires = NULL
		WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}

// UpdateLastLogin records the time of the most recent authenticated request
func (r *StudentRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE students SET last_login_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

func (r *StudentRepository) getOne(ctx context.Context, query string, arg any) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var parents []byte

	err := row.Scan(
		&student.ID, &student.StudentID, &student.FirstName, &student.LastName,
		&student.Email, &student.Password, &student.Grade, &student.DateOfBirth,
		&student.Address, &student.PhoneNumber, &student.Gender, &student.Status,
		&parents, &student.ApplicationID, &student.LastLoginAt, &student.CreatedAt,
		&student.ResetPasswordToken, &student.ResetPasswordExpires,
	)
	if err != nil {
		return nil, err
	}

	student.Parents = []models.Parent{}
	if len(parents) > 0 {
		if err := json.Unmarshal(parents, &student.Parents); err != nil {
			return nil, fmt.Errorf("error decoding parents: %w", err)
		}
	}

	return &student, nil
}
