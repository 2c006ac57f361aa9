package handlers_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/propertypinoy/website/internal/config"
	"github.com/propertypinoy/website/internal/dto"
	"github.com/propertypinoy/website/internal/identity"
	"github.com/propertypinoy/website/internal/models"
	"github.com/propertypinoy/website/internal/services"
	"github.com/propertypinoy/website/internal/web"
)

var (
	site       = config.Site{Name: "Property Pinoy", ContactEmail: "info@propertypinoy.com"}
	errBackend = errors.New("backend unavailable")
)

const sessionCookie = "test-session"

// cookieSessions maps the test-session cookie value to a user.
type cookieSessions struct {
	users       map[string]*identity.User
	err         error
	established []*identity.Session
	cleared     int
}

func (s *cookieSessions) Resolve(c *fiber.Ctx) (*identity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[c.Cookies(sessionCookie)], nil
}

func (s *cookieSessions) Establish(_ *fiber.Ctx, sess *identity.Session) {
	s.established = append(s.established, sess)
}

func (s *cookieSessions) Clear(_ *fiber.Ctx) { s.cleared++ }

func (s *cookieSessions) AccessToken(c *fiber.Ctx) string { return c.Cookies(sessionCookie) }

type roleMap map[uuid.UUID]bool

func (r roleMap) IsAdmin(_ context.Context, id uuid.UUID) bool { return r[id] }

type fakeAuth struct {
	sessions   map[string]*identity.Session
	users      map[string]*identity.User
	signInErr  error
	signOutErr error
	signedOut  []string
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, password string) (*identity.Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	s, ok := f.sessions[email+":"+password]
	if !ok {
		return nil, &identity.APIError{Status: http.StatusBadRequest, Code: "invalid_credentials"}
	}
	return s, nil
}

func (f *fakeAuth) GetUser(_ context.Context, token string) (*identity.User, error) {
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, &identity.APIError{Status: http.StatusUnauthorized}
}

func (f *fakeAuth) SignOut(_ context.Context, token string) error {
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.signedOut = append(f.signedOut, token)
	return nil
}

type fakeContacts struct {
	rows []dto.ContactRequest
	err  error
}

func (f *fakeContacts) Submit(ctx context.Context, req dto.ContactRequest) (*models.ContactSubmission, error) {
	if f.err != nil {
		return nil, f.err
	}
	svc := services.NewContactService(contactStoreFunc(func(context.Context, *models.ContactSubmission) error { return nil }))
	row, err := svc.Submit(ctx, req)
	if err == nil {
		f.rows = append(f.rows, req)
	}
	return row, err
}

type contactStoreFunc func(context.Context, *models.ContactSubmission) error

func (f contactStoreFunc) CreateContact(ctx context.Context, row *models.ContactSubmission) error {
	return f(ctx, row)
}

type fakeUsers struct {
	result *services.CreateUserResult
	err    error
	got    []dto.CreateUserRequest
}

func (f *fakeUsers) CreateUser(_ context.Context, req dto.CreateUserRequest) (*services.CreateUserResult, error) {
	f.got = append(f.got, req)
	return f.result, f.err
}

type fakeTypes struct {
	types []models.UserType
	err   error
}

func (f fakeTypes) ListUserTypes(context.Context) ([]models.UserType, error) {
	return f.types, f.err
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{Views: web.NewEngine()})
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func withSession(req *http.Request, value string) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: value})
	return req
}

func httptestGet(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}
