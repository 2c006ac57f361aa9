package routes_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/propertypinoy/website/internal/catalog"
	"github.com/propertypinoy/website/internal/config"
	"github.com/propertypinoy/website/internal/handlers"
	"github.com/propertypinoy/website/internal/identity"
	"github.com/propertypinoy/website/internal/models"
	"github.com/propertypinoy/website/internal/repository"
	"github.com/propertypinoy/website/internal/routes"
	"github.com/propertypinoy/website/internal/services"
	"github.com/propertypinoy/website/internal/session"
	"github.com/propertypinoy/website/internal/web"
)

const serviceRoleKey = "service-role-key-must-stay-server-side"

// backend fakes the identity provider and the store at once.
type backend struct {
	users    map[string]*identity.User
	profiles map[uuid.UUID]*models.UserProfile
}

func (b *backend) GetUser(_ context.Context, token string) (*identity.User, error) {
	if u, ok := b.users[token]; ok {
		return u, nil
	}
	return nil, &identity.APIError{Status: http.StatusUnauthorized}
}

func (b *backend) RefreshSession(context.Context, string) (*identity.Session, error) {
	return nil, &identity.APIError{Status: http.StatusBadRequest, Code: "invalid_grant"}
}

func (b *backend) SignInWithPassword(context.Context, string, string) (*identity.Session, error) {
	return nil, &identity.APIError{Status: http.StatusBadRequest}
}

func (b *backend) SignOut(context.Context, string) error { return nil }

func (b *backend) AdminCreateUser(_ context.Context, attrs identity.AdminUserAttributes) (*identity.User, error) {
	return &identity.User{ID: uuid.New(), Email: attrs.Email}, nil
}

func (b *backend) AdminDeleteUser(context.Context, uuid.UUID) error { return nil }

func (b *backend) FindProfileWithType(_ context.Context, id uuid.UUID) (*models.UserProfile, error) {
	if p, ok := b.profiles[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (b *backend) CreateCompany(_ context.Context, c *models.Company) error {
	c.ID = uuid.New()
	return nil
}

func (b *backend) DeleteCompany(context.Context, uuid.UUID) error { return nil }

func (b *backend) EnsureUserType(_ context.Context, name string) (*models.UserType, error) {
	return &models.UserType{ID: uuid.New(), TypeName: name}, nil
}

func (b *backend) EnsureUserStatus(_ context.Context, key, label string) (*models.UserStatus, error) {
	return &models.UserStatus{ID: uuid.New(), StatusKey: key, StatusLabel: label}, nil
}

func (b *backend) CreateProfile(_ context.Context, p *models.UserProfile) error {
	p.ID = uuid.New()
	return nil
}

func (b *backend) CreateContact(_ context.Context, c *models.ContactSubmission) error {
	c.ID = uuid.New()
	return nil
}

func (b *backend) ListUserTypes(context.Context) ([]models.UserType, error) {
	return []models.UserType{{ID: uuid.New(), TypeName: "Admin"}}, nil
}

func (b *backend) Ping(context.Context) error { return nil }

func newServer(t *testing.T, temporaryAdmin bool) *fiber.App {
	t.Helper()
	admin := &identity.User{ID: uuid.New(), Email: "lisa.garcia@propertypinoy.com"}
	agent := &identity.User{ID: uuid.New(), Email: "robert.chen@propertypinoy.com"}
	b := &backend{
		users: map[string]*identity.User{"admin-token": admin, "agent-token": agent},
		profiles: map[uuid.UUID]*models.UserProfile{
			admin.ID: {AuthUserID: admin.ID, UserType: &models.UserType{TypeName: "Admin"}},
			agent.ID: {AuthUserID: agent.ID, UserType: &models.UserType{TypeName: "Agent"}},
		},
	}

	cfg := &config.Config{
		SupabaseServiceRoleKey: serviceRoleKey,
		EnableTemporaryAdmin:   temporaryAdmin,
		CORSOrigins:            "*",
		SiteName:               "Property Pinoy",
	}
	cat, err := catalog.Default()
	require.NoError(t, err)

	sessions := session.NewManager(b, session.Options{})
	roles := services.NewRoleService(b)
	site := cfg.Site()

	app := fiber.New(fiber.Config{CaseSensitive: true, Views: web.NewEngine()})
	routes.Setup(app, cfg, sessions, roles,
		handlers.NewHealthHandler(b),
		handlers.NewContactHandler(services.NewContactService(b), site),
		handlers.NewAdminUserHandler(services.NewUserService(b, b)),
		handlers.NewUserTypeHandler(b),
		handlers.NewAuthHandler(b, sessions, roles, site),
		handlers.NewPageHandler(cat, b, site),
		handlers.NewAdminPageHandler(cat, sessions, roles, site),
	)
	return app
}

func get(t *testing.T, app *fiber.App, path, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.AccessCookie, Value: token})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestAdminAccess(t *testing.T) {
	app := newServer(t, false)

	resp, body := get(t, app, "/admin", "admin-token")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Dashboard")
	require.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))

	resp, _ = get(t, app, "/admin/users", "")
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	require.Equal(t, "/admin/login", resp.Header.Get("Location"))

	resp, _ = get(t, app, "/admin/users", "agent-token")
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	resp, _ = get(t, app, "/admin/users", "forged-token")
	require.Equal(t, "/admin/login", resp.Header.Get("Location"))

	resp, _ = get(t, app, "/admin/login", "admin-token")
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	require.Equal(t, "/admin", resp.Header.Get("Location"))

	resp, _ = get(t, app, "/admin/login", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminAccessIgnoresPathCase(t *testing.T) {
	app := newServer(t, false)

	resp, _ := get(t, app, "/Admin/users", "agent-token")
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
	require.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))

	resp, _ = get(t, app, "/ADMIN/users", "")
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	require.Equal(t, "/admin/login", resp.Header.Get("Location"))

	// Only the lowercase route serves the admin shell.
	resp, body := get(t, app, "/ADMIN", "admin-token")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotContains(t, body, "Dashboard")
	require.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestPublicSurface(t *testing.T) {
	app := newServer(t, false)

	resp, body := get(t, app, "/static/css/site.css", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, resp.Header.Get("X-Frame-Options"))
	require.NotEmpty(t, body)

	resp, _ = get(t, app, "/temporary-admin", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = get(t, app, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.JSONEq(t, `{"error":true,"message":"Not found"}`, body)

	resp, body = get(t, app, "/api/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, `"db":"ok"`)

	_, _ = get(t, app, "/admin", "")
	resp, body = get(t, app, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "propertypinoy_gate_decisions_total")
}

func TestServiceKeyNeverRendered(t *testing.T) {
	app := newServer(t, true)

	pages := []struct{ path, token string }{
		{"/", ""},
		{"/about", ""},
		{"/properties", ""},
		{"/properties/1", ""},
		{"/properties/new", ""},
		{"/contact", ""},
		{"/temporary-admin", ""},
		{"/admin/login", ""},
		{"/admin", "admin-token"},
		{"/admin/users", "admin-token"},
		{"/admin/properties", "admin-token"},
		{"/admin/settings", "admin-token"},
		{"/static/js/admin.js", ""},
		{"/static/js/create-user.js", ""},
	}
	for _, p := range pages {
		resp, body := get(t, app, p.path, p.token)
		require.Equal(t, http.StatusOK, resp.StatusCode, p.path)
		require.NotContains(t, body, serviceRoleKey, p.path)
	}
}
