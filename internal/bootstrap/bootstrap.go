package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/oakhaven/prepschool/internal/app/controllers"
	appMigrations "github.com/oakhaven/prepschool/internal/app/migrations"
	appRepos "github.com/oakhaven/prepschool/internal/app/repositories"
	appRoutes "github.com/oakhaven/prepschool/internal/app/routes"
	appServices "github.com/oakhaven/prepschool/internal/app/services"
	"github.com/oakhaven/prepschool/internal/config"
	"github.com/oakhaven/prepschool/internal/db"
	pkgAuth "github.com/oakhaven/prepschool/internal/pkg/auth"
	"github.com/oakhaven/prepschool/internal/pkg/email"
	"github.com/oakhaven/prepschool/internal/pkg/filestorage"
	"github.com/oakhaven/prepschool/internal/pkg/helpers"
	"github.com/oakhaven/prepschool/internal/pkg/logger"
	"github.com/oakhaven/prepschool/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                 *appRepos.Repositories
	Services              *appServices.Services
	JWTService            *pkgAuth.JWTService
	FileStorage           *filestorage.LocalStorage
	EmailService          email.Service
	ApplicationController *appControllers.ApplicationController
	DocumentController    *appControllers.DocumentController
	StudentController     *appControllers.StudentController
	AuthController        *appControllers.AuthController
	ContactController     *appControllers.ContactController
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection established")

	migrator := appMigrations.NewMigrator(dbPool)
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		// seed failure should not stop startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		SessionLifetime: helpers.ParseDuration(cfg.JWT.SessionLifetime, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewService(email.SMTPConfig{
		Host:            cfg.SMTP.Host,
		Port:            cfg.SMTP.Port,
		Username:        cfg.SMTP.Username,
		Password:        cfg.SMTP.Password,
		FromName:        cfg.SMTP.FromName,
		FromEmail:       cfg.SMTP.FromEmail,
		UseTLS:          cfg.SMTP.UseTLS,
		AdmissionsInbox: cfg.SMTP.AdmissionsInbox,
		BaseURL:         cfg.Server.BaseURL,
	}, lgr)

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.EmailService, deps.FileStorage)

	secureCookies := cfg.IsProduction()
	deps.ApplicationController = appControllers.NewApplicationController(deps.Services.Applications, lgr)
	deps.DocumentController = appControllers.NewDocumentController(deps.Services.Documents, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.Services.Students, deps.JWTService, secureCookies, lgr)
	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth, deps.JWTService, secureCookies, lgr)
	deps.ContactController = appControllers.NewContactController(deps.Services.Contacts, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.ApplicationController,
		deps.DocumentController,
		deps.StudentController,
		deps.AuthController,
		deps.ContactController,
		deps.JWTService,
		deps.Services,
	)

	return router
}
