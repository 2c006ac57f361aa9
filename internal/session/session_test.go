package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/propertypinoy/website/internal/identity"
	"github.com/propertypinoy/website/internal/session"
)

type fakeAuth struct {
	users       map[string]*identity.User
	refreshed   *identity.Session
	refreshErr  error
	getUserErr  error
	getUserHits int
}

func (f *fakeAuth) GetUser(_ context.Context, token string) (*identity.User, error) {
	f.getUserHits++
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, &identity.APIError{Status: http.StatusUnauthorized, Code: "bad_jwt"}
}

func (f *fakeAuth) RefreshSession(_ context.Context, _ string) (*identity.Session, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshed, nil
}

func token(t *testing.T, exp time.Time) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newApp(m *session.Manager) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		user, err := m.Resolve(c)
		if err != nil {
			return c.SendStatus(fiber.StatusBadGateway)
		}
		// A second call must be served from the request memo.
		_, _ = m.Resolve(c)
		if user == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(user.Email)
	})
	return app
}

func TestResolveWithoutCookies(t *testing.T) {
	auth := &fakeAuth{}
	app := newApp(session.NewManager(auth, session.Options{}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 0, auth.getUserHits)
}

func TestResolveValidAccessToken(t *testing.T) {
	access := token(t, time.Now().Add(time.Hour))
	auth := &fakeAuth{users: map[string]*identity.User{access: {ID: uuid.New(), Email: "admin@propertypinoy.com"}}}
	app := newApp(session.NewManager(auth, session.Options{}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: session.AccessCookie, Value: access})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, auth.getUserHits)
	require.Empty(t, resp.Header.Values("Set-Cookie"))
}

func TestResolveRefreshesExpiredTokenAndRewritesCookies(t *testing.T) {
	stale := token(t, time.Now().Add(-time.Minute))
	fresh := token(t, time.Now().Add(time.Hour))
	auth := &fakeAuth{
		users:     map[string]*identity.User{fresh: {ID: uuid.New(), Email: "admin@propertypinoy.com"}},
		refreshed: &identity.Session{AccessToken: fresh, RefreshToken: "rotated", ExpiresIn: 3600},
	}
	app := newApp(session.NewManager(auth, session.Options{Secure: true}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: session.AccessCookie, Value: stale})
	req.AddCookie(&http.Cookie{Name: session.RefreshCookie, Value: "old"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := map[string]*http.Cookie{}
	for _, c := range resp.Cookies() {
		cookies[c.Name] = c
	}
	require.Equal(t, fresh, cookies[session.AccessCookie].Value)
	require.Equal(t, "rotated", cookies[session.RefreshCookie].Value)
	require.True(t, cookies[session.AccessCookie].HttpOnly)
	require.True(t, cookies[session.AccessCookie].Secure)
}

func TestResolveRevokedRefreshClearsCookies(t *testing.T) {
	auth := &fakeAuth{refreshErr: &identity.APIError{Status: http.StatusBadRequest, Code: "invalid_grant"}}
	app := newApp(session.NewManager(auth, session.Options{}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: session.RefreshCookie, Value: "revoked"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		require.Empty(t, c.Value)
	}
	require.Len(t, resp.Cookies(), 2)
}

func TestResolveProviderDownIsError(t *testing.T) {
	access := token(t, time.Now().Add(time.Hour))
	auth := &fakeAuth{getUserErr: context.DeadlineExceeded}
	app := newApp(session.NewManager(auth, session.Options{}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: session.AccessCookie, Value: access})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	require.Equal(t, 1, auth.getUserHits)
}
