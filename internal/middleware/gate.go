package middleware

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/propertypinoy/website/internal/identity"
	"github.com/propertypinoy/website/internal/metrics"
)

const (
	AdminPrefix = "/admin"
	LoginPath   = "/admin/login"
)

var imageExtensions = map[string]bool{
	".svg":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".ico":  true,
}

// SessionResolver rebuilds the signed-in identity from request cookies.
type SessionResolver interface {
	Resolve(c *fiber.Ctx) (*identity.User, error)
}

type RoleChecker interface {
	IsAdmin(ctx context.Context, authUserID uuid.UUID) bool
}

// IsStaticAsset reports whether p is excluded from the gate.
func IsStaticAsset(p string) bool {
	if strings.HasPrefix(p, "/static/") || p == "/favicon.ico" {
		return true
	}
	return imageExtensions[strings.ToLower(path.Ext(p))]
}

// IsAdminPath reports whether p is the admin root or below it.
func IsAdminPath(p string) bool {
	return p == AdminPrefix || strings.HasPrefix(p, AdminPrefix+"/")
}

// AdminGate decides, before any admin page renders, whether the request
// may continue. Lookup failures redirect; they never surface as errors.
func AdminGate(sessions SessionResolver, roles RoleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The router may match paths case-insensitively; the gate must too.
		p := strings.ToLower(strings.TrimSuffix(c.Path(), "/"))
		if p == "" {
			p = "/"
		}
		if IsStaticAsset(p) || !IsAdminPath(p) {
			return c.Next()
		}

		c.Set("X-Frame-Options", "DENY")
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		user, err := sessions.Resolve(c)
		if err != nil {
			slog.Error("session resolve failed", "action", "admin_gate", "path", p, "trace_id", traceID(c), "error", err)
			user = nil
		}

		if p == LoginPath {
			if user != nil {
				if c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead {
					metrics.GateDecisions.WithLabelValues("admin_redirect").Inc()
					return c.Redirect(AdminPrefix, fiber.StatusSeeOther)
				}
				return redirect(c, "admin_redirect", AdminPrefix)
			}
			metrics.GateDecisions.WithLabelValues("login_page").Inc()
			return c.Next()
		}

		if user == nil {
			return redirect(c, "login_redirect", LoginPath)
		}
		if !roles.IsAdmin(c.UserContext(), user.ID) {
			return redirect(c, "root_redirect", "/")
		}
		metrics.GateDecisions.WithLabelValues("pass").Inc()
		return c.Next()
	}
}

func redirect(c *fiber.Ctx, decision, to string) error {
	metrics.GateDecisions.WithLabelValues(decision).Inc()
	return c.Redirect(to, fiber.StatusTemporaryRedirect)
}

func traceID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
