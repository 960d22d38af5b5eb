package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portssvc "github.com/jpkgen/jpk_wb_app/internal/core/ports/services"
	"github.com/jpkgen/jpk_wb_app/internal/core/services"
	"github.com/jpkgen/jpk_wb_app/internal/handlers"
	"github.com/jpkgen/jpk_wb_app/internal/middleware"
	"github.com/jpkgen/jpk_wb_app/internal/platform/config"
	"github.com/jpkgen/jpk_wb_app/internal/repositories/database/pgsql"
	"github.com/jpkgen/jpk_wb_app/internal/xmlschema"
	"github.com/jpkgen/jpk_wb_app/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Error("could not load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		logger.Error("PGSQL_URL must be set")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("could not connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("could not run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	verifier, err := xmlschema.NewVerifier(cfg.SchemaDir)
	if err != nil {
		logger.Error("could not load schema set", slog.Any("error", err))
		os.Exit(1)
	}
	defer verifier.Close()

	repo := pgsql.NewStatementRepository(pool)
	validationEngine := pgsql.NewValidationEngine(pool)
	generationEngine := pgsql.NewGenerationEngine(pool)

	container := &portssvc.ServiceContainer{
		IngestionSvc: services.NewIngestionService(repo, validationEngine),
		ExportSvc:    services.NewExportService(validationEngine, generationEngine, verifier, cfg.XMLFilePrefix),
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.Use(gin.Recovery())

	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		logger.Error("could not register routes", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	// A separate database/sql connection through the pgx stdlib driver;
	// migrate cannot ride the pgxpool.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("opening migration connection: %w", err)
	}
	defer migrationDB.Close()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("no new migrations to apply")
			return nil
		}
		return fmt.Errorf("applying migrations: %w", err)
	}
	logger.Info("database migrations applied")
	return nil
}
