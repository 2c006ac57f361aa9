package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/propertypinoy/website/internal/catalog"
	"github.com/propertypinoy/website/internal/config"
	"github.com/propertypinoy/website/internal/guard"
)

// PageHandler renders the public marketing and listing pages.
type PageHandler struct {
	pages
	catalog *catalog.Catalog
	types   UserTypeLister
}

func NewPageHandler(cat *catalog.Catalog, types UserTypeLister, site config.Site) *PageHandler {
	return &PageHandler{pages: pages{site: site}, catalog: cat, types: types}
}

func (h *PageHandler) Home(c *fiber.Ctx) error {
	return h.render(c, "pages/index", mainLayout, fiber.Map{
		"Properties": h.catalog.Featured(),
		"Types":      h.catalog.Types(),
	})
}

func (h *PageHandler) About(c *fiber.Ctx) error {
	return h.render(c, "pages/about", mainLayout, fiber.Map{"Title": "About"})
}

func (h *PageHandler) Properties(c *fiber.Ctx) error {
	propertyType := c.Query("type")
	return h.render(c, "pages/properties", mainLayout, fiber.Map{
		"Title":      "Properties",
		"Type":       propertyType,
		"Types":      h.catalog.Types(),
		"Properties": h.catalog.Filter(propertyType),
	})
}

func (h *PageHandler) NewProperty(c *fiber.Ctx) error {
	return h.render(c, "pages/property_new", mainLayout, fiber.Map{"Title": "List Your Property", "Types": h.catalog.Types()})
}

func (h *PageHandler) Property(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return h.NotFound(c)
	}
	p, ok := h.catalog.Get(id)
	if !ok {
		return h.NotFound(c)
	}
	return h.render(c, "pages/property", mainLayout, fiber.Map{
		"Title":    p.Title,
		"Property": p,
		"Agent":    h.catalog.Agent(),
	})
}

// TemporaryAdmin renders the bootstrap create-user form. It is only
// routed when ENABLE_TEMPORARY_ADMIN is set.
func (h *PageHandler) TemporaryAdmin(c *fiber.Ctx) error {
	types, err := h.types.ListUserTypes(c.UserContext())
	if err != nil {
		slog.Error("list user types failed", "action", "temporary_admin", "trace_id", traceID(c), "error", err)
	}
	return h.render(c, "pages/temporary_admin", mainLayout, fiber.Map{"Title": "Create User", "UserTypes": types})
}

func (h *PageHandler) NotFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return h.render(c, "pages/not_found", mainLayout, fiber.Map{"Title": "Page not found"})
}

// AdminPageHandler renders the admin shell. Every page re-checks access
// through a guard, independent of the edge gate.
type AdminPageHandler struct {
	pages
	catalog  *catalog.Catalog
	sessions Sessions
	roles    Roles
	guard    []guard.Option
}

func NewAdminPageHandler(cat *catalog.Catalog, sessions Sessions, roles Roles, site config.Site, opts ...guard.Option) *AdminPageHandler {
	return &AdminPageHandler{pages: pages{site: site}, catalog: cat, sessions: sessions, roles: roles, guard: opts}
}

func (h *AdminPageHandler) Dashboard(c *fiber.Ctx) error {
	return h.guarded(c, "admin/dashboard", fiber.Map{
		"Title":      "Dashboard",
		"Stats":      h.catalog.Stats(),
		"Properties": h.catalog.All(),
	})
}

func (h *AdminPageHandler) Users(c *fiber.Ctx) error {
	return h.guarded(c, "admin/users", fiber.Map{"Title": "Users", "Users": h.catalog.Users()})
}

func (h *AdminPageHandler) Properties(c *fiber.Ctx) error {
	return h.guarded(c, "admin/properties", fiber.Map{"Title": "Properties", "Properties": h.catalog.All()})
}

func (h *AdminPageHandler) Settings(c *fiber.Ctx) error {
	return h.guarded(c, "admin/settings", fiber.Map{"Title": "Settings"})
}

func (h *AdminPageHandler) guarded(c *fiber.Ctx, view string, data fiber.Map) error {
	g := guard.New(h.roles, h.guard...)
	g.SessionLoading()

	user, err := h.sessions.Resolve(c)
	if err != nil {
		slog.Error("session resolve failed", "action", "admin_guard", "trace_id", traceID(c), "error", err)
		user = nil
	}
	g.IdentityChanged(c.UserContext(), user)

	switch d := g.Decision(); d {
	case guard.Allow:
		data["User"] = user
		return h.render(c, view, adminLayout, data)
	case guard.Wait:
		return h.render(c, "admin/verifying", mainLayout, fiber.Map{"Title": "Verifying access"})
	default:
		return c.Redirect(guard.Target(d), fiber.StatusTemporaryRedirect)
	}
}
