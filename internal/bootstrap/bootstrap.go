package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yigit/librarium/internal/app/admin"
	appControllers "github.com/yigit/librarium/internal/app/controllers"
	appMigrations "github.com/yigit/librarium/internal/app/migrations"
	appRepos "github.com/yigit/librarium/internal/app/repositories"
	appRoutes "github.com/yigit/librarium/internal/app/routes"
	appServices "github.com/yigit/librarium/internal/app/services"
	"github.com/yigit/librarium/internal/config"
	"github.com/yigit/librarium/internal/db"
	appMiddleware "github.com/yigit/librarium/internal/middleware"
	pkgAuth "github.com/yigit/librarium/internal/pkg/auth"
	"github.com/yigit/librarium/internal/pkg/helpers"
	"github.com/yigit/librarium/internal/pkg/logger"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Site           *admin.Site
	Signer         *pkgAuth.Signer
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    *appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		File: logger.FileConfig{
			Filename:   cfg.Logging.File,
			MaxSize:    cfg.Logging.MaxSize,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAge:     cfg.Logging.MaxAge,
			Compress:   cfg.Logging.Compress,
		},
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens the connection pool.
func ConnectDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// Migrate applies the embedded migrations that have not run yet.
func Migrate(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// Stores exposes the repositories through the interfaces the services consume.
func Stores(r *appRepos.Repositories) appServices.Stores {
	return appServices.Stores{
		Authors:           r.Authors,
		AuthorDetails:     r.AuthorDetails,
		Categories:        r.Categories,
		Libraries:         r.Libraries,
		Members:           r.Members,
		Books:             r.Books,
		Reviews:           r.Reviews,
		Borrows:           r.Borrows,
		Posts:             r.Posts,
		Events:            r.Events,
		EventParticipants: r.EventParticipants,
		AdminUsers:        r.AdminUsers,
	}
}

// TxRunner binds a fresh set of repositories to each transaction.
func TxRunner(database *db.PostgresDB) appServices.TxRunner {
	return func(ctx context.Context, fn func(ctx context.Context, tx appServices.Stores) error) error {
		return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return fn(ctx, Stores(appRepos.NewRepositories(tx)))
		})
	}
}

// BuildServices wires repositories and services without the HTTP layer.
func BuildServices(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*appRepos.Repositories, *appServices.Services, *pkgAuth.Signer) {
	repos := appRepos.NewRepositories(database.Pool)

	signer := pkgAuth.NewSigner(pkgAuth.SignerConfig{
		Secret: cfg.JWT.Secret,
		TTL:    helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		Issuer: cfg.JWT.Issuer,
	})

	svc := appServices.NewServices(Stores(repos), TxRunner(database), signer, lgr, time.Now)
	return repos, svc, signer
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos, deps.Services, deps.Signer = BuildServices(cfg, database, lgr)

	site, err := admin.NewLibrarySite(deps.Repos.Console)
	if err != nil {
		lgr.Error().Err(err).Msg("Admin site configuration is invalid")
		return nil, fmt.Errorf("failed to build admin site: %w", err)
	}
	deps.Site = site

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Signer, deps.Services.Auth)
	deps.Controllers = appRoutes.NewControllers(
		deps.Services,
		appControllers.NewConsoleController(site),
		appControllers.NewAuthController(deps.Services.Auth, lgr),
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(),
		appMiddleware.Recovery(),
	)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	return router
}
