package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"

	"github.com/propertypinoy/website/internal/catalog"
	"github.com/propertypinoy/website/internal/config"
	"github.com/propertypinoy/website/internal/database"
	"github.com/propertypinoy/website/internal/dto"
	"github.com/propertypinoy/website/internal/handlers"
	"github.com/propertypinoy/website/internal/logging"
	"github.com/propertypinoy/website/internal/repository"
	"github.com/propertypinoy/website/internal/routes"
	"github.com/propertypinoy/website/internal/services"
	"github.com/propertypinoy/website/internal/session"
	"github.com/propertypinoy/website/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the website (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if err := requireIdentityConfig(cfg); err != nil {
		return err
	}

	// Database
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}()

	// PostgreSQL log handler (ERROR+ async batch)
	var pgLogHandler *logging.PGHandler
	if cfg.LogErrorsToDB {
		pgLogHandler = logging.NewPGHandler(db)
		logging.WithSinks(pgLogHandler)
		defer pgLogHandler.Stop()
	}

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	// Services
	store := repository.NewStore(db)
	idp := newIdentityClient(cfg)
	sessions := session.NewManager(idp, session.Options{
		Secure: cfg.CookieSecure,
		Domain: cfg.CookieDomain,
	})
	roleService := services.NewRoleService(store)
	userService := services.NewUserService(idp, store)
	contactService := services.NewContactService(store)

	// Handlers
	site := cfg.Site()
	pageHandler := handlers.NewPageHandler(cat, store, site)
	healthHandler := handlers.NewHealthHandler(store)
	contactHandler := handlers.NewContactHandler(contactService, site)
	adminUserHandler := handlers.NewAdminUserHandler(userService)
	userTypeHandler := handlers.NewUserTypeHandler(store)
	authHandler := handlers.NewAuthHandler(idp, sessions, roleService, site)
	adminPageHandler := handlers.NewAdminPageHandler(cat, sessions, roleService, site)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if cfg.EnableTemporaryAdmin {
		slog.Warn("temporary admin page enabled; /temporary-admin creates users without authentication")
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:     1 * 1024 * 1024,
		CaseSensitive: true,
		ErrorHandler:  errorHandler(pageHandler),
		Views:         web.NewEngine(),
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
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, sessions, roleService,
		healthHandler, contactHandler, adminUserHandler, userTypeHandler,
		authHandler, pageHandler, adminPageHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		serveErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
	return nil
}

// errorHandler renders 404s on page paths as HTML and everything else as
// JSON. Server error details are logged, never returned.
func errorHandler(pages *handlers.PageHandler) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if code >= 500 {
			slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
			if hub := sentryfiber.GetHubFromContext(c); hub != nil {
				hub.CaptureException(err)
			}
			message = "Internal server error"
		}

		if code == fiber.StatusNotFound && !strings.HasPrefix(c.Path(), "/api/") {
			return pages.NotFound(c)
		}
		return c.Status(code).JSON(dto.ErrorResponse{
			Error:   true,
			Message: message,
		})
	}
}
