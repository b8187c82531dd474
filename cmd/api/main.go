package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/radimbig2/SRM/config"
	"github.com/radimbig2/SRM/internal/handlers"
	"github.com/radimbig2/SRM/internal/seed"
	"github.com/radimbig2/SRM/pkg/database"
	"github.com/radimbig2/SRM/pkg/middleware"
	"github.com/radimbig2/SRM/pkg/repositories"
	"github.com/radimbig2/SRM/pkg/tracing"
	"github.com/radimbig2/SRM/pkg/tracing/exporters"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg)
	logger.WithFields(map[string]any{"app": cfg.AppName, "port": cfg.Port}).Info("Starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := setupTracing(ctx, cfg)
		if err != nil {
			logger.WithError(err).Error("Failed to set up tracing")
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	db, err := database.Connect(ctx, database.ConnectConfig{
		Host:            cfg.DatabaseHost,
		Port:            cfg.DatabasePort,
		UserName:        cfg.DatabaseUserName,
		Password:        cfg.DatabasePassword,
		Name:            cfg.DatabaseName,
		SSLMode:         cfg.DatabaseSSLMode,
		RetryCount:      cfg.DatabaseReconnectRetryCount,
		MaxOpenConns:    cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	if err := runMigrations(cfg, db, logger); err != nil {
		logger.WithError(err).Error("Failed to run migrations")
		os.Exit(1)
	}

	clientRepo := repositories.NewClientRepository(db, logger)
	recruiterRepo := repositories.NewRecruiterRepository(db, logger)
	vacancyRepo := repositories.NewVacancyRepository(db, logger, clientRepo)
	candidateRepo := repositories.NewCandidateRepository(db, logger)
	applicationRepo := repositories.NewApplicationRepository(db, logger, candidateRepo, vacancyRepo, recruiterRepo)
	paymentRepo := repositories.NewPaymentRepository(db, logger)
	reportRepo := repositories.NewReportRepository(db, logger)

	if cfg.SeedClients {
		if err := seed.Clients(ctx, clientRepo, logger); err != nil {
			logger.WithError(err).Error("Failed to seed clients")
			os.Exit(1)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.Error(logger)

	if cfg.TracingEnabled {
		e.Use(otelecho.Middleware(cfg.ServiceName))
	}
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handlers.NewHealthHandler(db).RegisterRoutes(e)

	api := e.Group("/api")
	handlers.NewClientHandler(clientRepo).RegisterRoutes(api)
	handlers.NewRecruiterHandler(recruiterRepo).RegisterRoutes(api)
	handlers.NewVacancyHandler(vacancyRepo).RegisterRoutes(api)
	handlers.NewCandidateHandler(candidateRepo).RegisterRoutes(api)
	handlers.NewApplicationHandler(applicationRepo, paymentRepo).RegisterRoutes(api)
	handlers.NewPaymentHandler(paymentRepo).RegisterRoutes(api)
	handlers.NewReportHandler(reportRepo).RegisterRoutes(api)

	if cfg.StaticDir != "" {
		e.Static("/", cfg.StaticDir)
	}

	e.Server.ReadTimeout = cfg.HTTPReadTimeout
	e.Server.WriteTimeout = cfg.HTTPWriteTimeout
	e.Server.IdleTimeout = cfg.HTTPIdleTimeout

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to shut down server cleanly")
	}
}

func newLogger(cfg *config.Config) ectologger.Logger {
	var zapLogger *zap.Logger
	var err error
	if cfg.PrettyLogs {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

func runMigrations(cfg *config.Config, db *database.DatabaseInstance, logger ectologger.Logger) error {
	driver, err := postgres.WithInstance(db.SqlDB(), &postgres.Config{})
	if err != nil {
		return err
	}

	ms := database.NewMigrationService(logger, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Version:             uint(cfg.DatabaseMigrationVersion),
	})
	return ms.Migrate(cfg.DatabaseName, driver)
}

func setupTracing(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	exporter, err := exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
		Endpoint: cfg.TracingEndpoint,
		Insecure: cfg.TracingInsecure,
	})
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	tracing.SetTracer(tp.Tracer(cfg.ServiceName))

	return tp.Shutdown, nil
}
