package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/propertypinoy/website/internal/config"
	"github.com/propertypinoy/website/internal/dto"
	"github.com/propertypinoy/website/internal/identity"
)

const accessDenied = "Access denied. Admin privileges required."

// Authenticator is the end-user half of the identity provider.
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error)
	GetUser(ctx context.Context, accessToken string) (*identity.User, error)
	SignOut(ctx context.Context, accessToken string) error
}

type AuthHandler struct {
	pages
	auth     Authenticator
	sessions Sessions
	roles    Roles
}

func NewAuthHandler(auth Authenticator, sessions Sessions, roles Roles, site config.Site) *AuthHandler {
	return &AuthHandler{pages: pages{site: site}, auth: auth, sessions: sessions, roles: roles}
}

// LoginPage handles GET /admin/login. Signed-in visitors never get here;
// the admin gate sends them to /admin.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return h.loginForm(c, fiber.StatusOK, "", "")
}

// Login handles POST /admin/login. Only admins keep the session; anyone
// else is signed out again.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.loginForm(c, fiber.StatusBadRequest, "", "Invalid form submission")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return h.loginForm(c, fiber.StatusBadRequest, email, "Email and password are required")
	}

	ctx := c.UserContext()
	sess, err := h.auth.SignInWithPassword(ctx, email, req.Password)
	if err != nil {
		if identity.IsClientError(err) {
			return h.loginForm(c, fiber.StatusUnauthorized, email, "Invalid email or password")
		}
		slog.Error("sign in failed", "action", "admin_login", "trace_id", traceID(c), "error", err)
		return h.loginForm(c, fiber.StatusInternalServerError, email, "Login failed. Please try again.")
	}

	user := sess.User
	if user == nil {
		if user, err = h.auth.GetUser(ctx, sess.AccessToken); err != nil {
			slog.Error("load signed-in user failed", "action", "admin_login", "trace_id", traceID(c), "error", err)
			h.signOut(ctx, c, sess.AccessToken)
			return h.loginForm(c, fiber.StatusInternalServerError, email, "Login failed. Please try again.")
		}
	}

	if !h.roles.IsAdmin(ctx, user.ID) {
		h.signOut(ctx, c, sess.AccessToken)
		return h.loginForm(c, fiber.StatusForbidden, email, accessDenied)
	}

	h.sessions.Establish(c, sess)
	slog.Info("admin signed in", "action", "admin_login", "auth_user_id", user.ID.String(), "trace_id", traceID(c))
	return c.Redirect("/admin", fiber.StatusSeeOther)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, err := h.sessions.Resolve(c)
	if err != nil {
		slog.Error("session resolve failed", "action", "logout", "trace_id", traceID(c), "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if user == nil {
		h.sessions.Clear(c)
		return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
	}

	if err := h.auth.SignOut(c.UserContext(), h.sessions.AccessToken(c)); err != nil {
		if identity.IsClientError(err) {
			return jsonError(c, fiber.StatusBadRequest, "Failed to log out")
		}
		slog.Error("sign out failed", "action", "logout", "auth_user_id", user.ID.String(), "trace_id", traceID(c), "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	h.sessions.Clear(c)
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) signOut(ctx context.Context, c *fiber.Ctx, accessToken string) {
	if err := h.auth.SignOut(ctx, accessToken); err != nil {
		slog.Error("sign out of rejected session failed", "action", "admin_login", "trace_id", traceID(c), "error", err)
	}
	h.sessions.Clear(c)
}

func (h *AuthHandler) loginForm(c *fiber.Ctx, status int, email, message string) error {
	c.Status(status)
	return h.render(c, "admin/login", mainLayout, fiber.Map{"Title": "Admin Login", "Email": email, "Error": message})
}
