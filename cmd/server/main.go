package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/config"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/database"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/logging"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/probe"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/routes"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/services"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/session"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)

	sessions, err := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure)
	if err != nil {
		slog.Error("SESSION_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// DB log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewStdoutHandler(os.Stdout, cfg.AppEnv),
		dbLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Services
	identityService := services.NewIdentityService(database.DB)
	appService := services.NewAppService(database.DB)
	probeService := services.NewProbeService(
		database.DB,
		probe.NewHTTPProber(),
		probe.NewTemplatePreviewer(cfg.PreviewURLTemplate),
		cfg,
	)

	// Handlers
	pageHandler, err := handlers.NewPageHandler()
	if err != nil {
		slog.Error("failed to load entry page", "error", err)
		os.Exit(1)
	}
	h := routes.Handlers{
		Fingerprint: handlers.NewFingerprintHandler(identityService, sessions),
		App:         handlers.NewAppHandler(appService),
		Probe:       handlers.NewProbeHandler(probeService),
		Tag:         handlers.NewTagHandler(appService),
		User:        handlers.NewUserHandler(appService, identityService, sessions),
		Health:      handlers.NewHealthHandler(database.DB),
		Page:        pageHandler,
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(metrics.Middleware())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	// Routes
	routes.Setup(app, cfg, sessions, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "db", cfg.DBDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(database.DB); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
