// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "finledger/internal/api"
	"finledger/internal/api/handler"
	"finledger/internal/config"
	"finledger/internal/repository"
	"finledger/internal/repository/memory"
	"finledger/internal/repository/postgres"
	"finledger/internal/service"
	"finledger/internal/util"
	"finledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB // nil when the memory backend is selected

	// Repositories
	UserRepository      repository.UserRepository
	StatementRepository repository.StatementRepository

	// Services
	UserService   service.UserService
	LedgerService service.LedgerService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()

	// 2. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Initialize Storage
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		app.UserRepository = memory.NewUserRepository()
		app.StatementRepository = memory.NewStatementRepository()
		app.Logger.Info("In-memory repositories initialized.")
	default:
		database, err := db.NewPostgresDB(cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = database
		app.UserRepository = postgres.NewUserRepository(app.DB)
		app.StatementRepository = postgres.NewStatementRepository(app.DB)
		app.Logger.Info("Database connection established and repositories initialized.")
	}

	// 4. Initialize Services
	app.UserService = service.NewUserService(app.UserRepository, cfg.JWTSecret, cfg.JWTExpiresIn)
	app.LedgerService = service.NewLedgerService(app.UserRepository, app.StatementRepository)
	app.Logger.Info("Services initialized.")

	// 5. Initialize HTTP Handlers and Router
	userHandler := handler.NewUserHandler(app.UserService, app.Logger)
	statementHandler := handler.NewStatementHandler(app.LedgerService, app.Logger)
	app.HTTPHandler = router.NewRouter(userHandler, statementHandler, cfg.JWTSecret, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
