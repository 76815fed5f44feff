package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portsrepo "github.com/awbsmith/bookkeeper/internal/core/ports/repositories"
	"github.com/awbsmith/bookkeeper/internal/core/services"
	"github.com/awbsmith/bookkeeper/internal/handlers"
	"github.com/awbsmith/bookkeeper/internal/middleware"
	"github.com/awbsmith/bookkeeper/internal/platform/config"
	"github.com/awbsmith/bookkeeper/internal/repositories/database/pgsql"
	"github.com/awbsmith/bookkeeper/internal/repositories/memory"
	"github.com/awbsmith/bookkeeper/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ledgerRepo, journalRepo, cleanup, err := setupStorage(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to set up storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	// Bootstrap the accounting engine with the well-known accounts.
	accountingSvc, err := services.SetUpAccounting(context.Background(), ledgerRepo, journalRepo)
	if err != nil {
		logger.Error("Failed to set up accounting", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(limitermem.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, accountingSvc)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.Storage))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupStorage wires the ledger and journal stores selected by configuration.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.LedgerRepository, portsrepo.JournalRepository, func(), error) {
	if cfg.Storage != config.StoragePostgres {
		logger.Info("Using in-memory storage")
		return memory.NewLedgerRepository(), memory.NewJournalRepository(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		dbPool.Close()
		return nil, nil, nil, err
	}

	logger.Info("Using PostgreSQL storage")
	cleanup := func() { database.ClosePgxPool(dbPool) }
	return pgsql.NewLedgerRepository(dbPool), pgsql.NewJournalRepository(dbPool), cleanup, nil
}

// runMigrations applies pending schema migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}
	return nil
}
