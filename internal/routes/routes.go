package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/propertypinoy/website/internal/config"
	"github.com/propertypinoy/website/internal/dto"
	"github.com/propertypinoy/website/internal/handlers"
	"github.com/propertypinoy/website/internal/middleware"
	"github.com/propertypinoy/website/internal/web"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	sessions middleware.SessionResolver,
	roles middleware.RoleChecker,
	healthHandler *handlers.HealthHandler,
	contactHandler *handlers.ContactHandler,
	adminUserHandler *handlers.AdminUserHandler,
	userTypeHandler *handlers.UserTypeHandler,
	authHandler *handlers.AuthHandler,
	pageHandler *handlers.PageHandler,
	adminPageHandler *handlers.AdminPageHandler,
) {
	// Static assets are served before the admin gate and never pass it.
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   web.Static(),
		MaxAge: 86400,
	}))

	app.Use(middleware.AdminGate(sessions, roles))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", middleware.CORS(cfg), middleware.RateLimit(cfg.RateLimitPerMinute))
	api.Get("/health", healthHandler.Check)
	api.Post("/contact", contactHandler.Create)
	api.Get("/user-types", userTypeHandler.List)
	// No authentication in-route: callers reach it only through the
	// temporary admin page or the CLI.
	api.Post("/admin/create-user", adminUserHandler.Create)
	api.Post("/auth/logout", authHandler.Logout)
	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Not found"})
	})

	// Public pages
	app.Get("/", pageHandler.Home)
	app.Get("/about", pageHandler.About)
	app.Get("/properties", pageHandler.Properties)
	app.Get("/properties/new", pageHandler.NewProperty)
	app.Get("/properties/:id", pageHandler.Property)
	app.Get("/contact", contactHandler.Page)
	app.Post("/contact", contactHandler.Submit)
	if cfg.EnableTemporaryAdmin {
		app.Get("/temporary-admin", pageHandler.TemporaryAdmin)
	}

	// Admin (gated above, re-checked per page)
	app.Get("/admin/login", authHandler.LoginPage)
	app.Post("/admin/login", authHandler.Login)
	app.Get("/admin", adminPageHandler.Dashboard)
	app.Get("/admin/users", adminPageHandler.Users)
	app.Get("/admin/properties", adminPageHandler.Properties)
	app.Get("/admin/settings", adminPageHandler.Settings)

	app.Use(pageHandler.NotFound)
}
