package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oakhaven/prepschool/internal/app/models"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
)

// StaffRepository handles database operations for staff accounts
type StaffRepository struct {
	db *pgxpool.Pool
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{
		db: db,
	}
}

const staffColumns = `id, name, email, password, role, profile_image, last_login_at, created_at`

// Create persists a new staff account and sets its generated id
func (r *StaffRepository) Create(ctx context.Context, user *models.StaffUser) error {
	query := `
		INSERT INTO staff_users (name, email, password, role, profile_image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.Password, user.Role, user.ProfileImage, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("error creating staff user: %w", err)
	}

	return nil
}

// GetByID retrieves a staff account by id
func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*models.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a staff account by email, case-insensitively
func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE LOWER(email) = LOWER($1)`
	return r.getOne(ctx, query, email)
}

// EmailExists reports whether a staff account uses the given email
func (r *StaffRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM staff_users WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking staff email: %w", err)
	}
	return exists, nil
}

// Count returns the total number of staff accounts
func (r *StaffRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM staff_users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting staff users: %w", err)
	}
	return count, nil
}

// UpdateLastLogin records the time of the most recent authenticated request
func (r *StaffRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE staff_users SET last_login_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

func (r *StaffRepository) getOne(ctx context.Context, query string, arg any) (*models.StaffUser, error) {
	var user models.StaffUser
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
		&user.ProfileImage, &user.LastLoginAt, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStaffUserNotFound
		}
		return nil, fmt.Errorf("error retrieving staff user: %w", err)
	}
	return &user, nil
}
