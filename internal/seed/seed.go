package seed

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/oakhaven/prepschool/internal/app/models"
	appRepos "github.com/oakhaven/prepschool/internal/app/repositories"
	"github.com/oakhaven/prepschool/internal/config"
	"github.com/oakhaven/prepschool/internal/pkg/auth"
)

// CreateDefaultData creates the default admin account when no staff exist.
// Runs after migrations on every startup and is a no-op once any staff
// account is present.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	staffRepo := appRepos.NewStaffRepository(dbPool)

	count, err := staffRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		lgr.Debug().Int64("staffCount", count).Msg("Staff accounts present, skipping admin seed")
		return nil
	}

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		lgr.Warn().Msg("No admin credentials configured, skipping admin seed")
		return nil
	}

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &appModels.StaffUser{
		Name:      "Administrator",
		Email:     cfg.Admin.Email,
		Password:  hashed,
		Role:      appModels.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := staffRepo.Create(ctx, admin); err != nil {
		return err
	}

	lgr.Info().Str("email", admin.Email).Msg("Default admin account created")
	return nil
}
