// Package session rebuilds the signed-in identity of a request from its
// cookies, refreshing and rewriting them when the access token expired.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/propertypinoy/website/internal/identity"
)

const (
	AccessCookie  = "sb-access-token"
	RefreshCookie = "sb-refresh-token"

	resolvedKey = "session.resolved"
	accessKey   = "session.access_token"
)

// Authenticator is the part of the identity provider a session needs.
type Authenticator interface {
	GetUser(ctx context.Context, accessToken string) (*identity.User, error)
	RefreshSession(ctx context.Context, refreshToken string) (*identity.Session, error)
}

type Options struct {
	Secure        bool
	Domain        string
	RefreshMaxAge time.Duration
	// ExpirySkew treats tokens expiring within this window as expired.
	ExpirySkew time.Duration
}

type Manager struct {
	auth Authenticator
	opts Options
	now  func() time.Time
}

func NewManager(auth Authenticator, opts Options) *Manager {
	if opts.RefreshMaxAge <= 0 {
		opts.RefreshMaxAge = 30 * 24 * time.Hour
	}
	if opts.ExpirySkew <= 0 {
		opts.ExpirySkew = 10 * time.Second
	}
	return &Manager{auth: auth, opts: opts, now: time.Now}
}

type resolved struct {
	user *identity.User
	err  error
}

// Resolve returns the request's authenticated user, or nil when there is
// no valid session. The outcome is memoized for the rest of the request.
// Rejected or expired credentials are not errors; an unreachable provider
// is.
func (m *Manager) Resolve(c *fiber.Ctx) (*identity.User, error) {
	if r, ok := c.Locals(resolvedKey).(*resolved); ok {
		return r.user, r.err
	}
	user, err := m.resolve(c)
	c.Locals(resolvedKey, &resolved{user: user, err: err})
	return user, err
}

func (m *Manager) resolve(c *fiber.Ctx) (*identity.User, error) {
	access := c.Cookies(AccessCookie)
	refresh := c.Cookies(RefreshCookie)
	if access == "" && refresh == "" {
		return nil, nil
	}
	ctx := c.UserContext()

	if refresh != "" && (access == "" || m.expired(access)) {
		session, err := m.auth.RefreshSession(ctx, refresh)
		if err != nil {
			if identity.IsClientError(err) {
				m.Clear(c)
				return nil, nil
			}
			return nil, fmt.Errorf("failed to refresh session: %w", err)
		}
		m.Establish(c, session)
		access = session.AccessToken
	}
	if access == "" {
		return nil, nil
	}

	user, err := m.auth.GetUser(ctx, access)
	if err != nil {
		if identity.IsClientError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	c.Locals(accessKey, access)
	return user, nil
}

// expired reads exp without verifying the signature; the provider
// verifies the token on GetUser.
func (m *Manager) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !m.now().Add(m.opts.ExpirySkew).Before(exp.Time)
}

// AccessToken returns the access token in effect for this request,
// including one obtained by a refresh during Resolve.
func (m *Manager) AccessToken(c *fiber.Ctx) string {
	if token, ok := c.Locals(accessKey).(string); ok && token != "" {
		return token
	}
	return c.Cookies(AccessCookie)
}

// Establish writes the session cookies for s on the response.
func (m *Manager) Establish(c *fiber.Ctx, s *identity.Session) {
	accessAge := s.ExpiresIn
	if accessAge <= 0 {
		accessAge = int(time.Hour / time.Second)
	}
	m.setCookie(c, AccessCookie, s.AccessToken, accessAge)
	if s.RefreshToken != "" {
		m.setCookie(c, RefreshCookie, s.RefreshToken, int(m.opts.RefreshMaxAge/time.Second))
	}
	c.Locals(accessKey, s.AccessToken)
	if s.User != nil {
		c.Locals(resolvedKey, &resolved{user: s.User})
	}
}

// Clear expires both session cookies on the response.
func (m *Manager) Clear(c *fiber.Ctx) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   m.opts.Domain,
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			Secure:   m.opts.Secure,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	c.Locals(accessKey, "")
	c.Locals(resolvedKey, &resolved{})
}

func (m *Manager) setCookie(c *fiber.Ctx, name, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.opts.Domain,
		MaxAge:   maxAge,
		Secure:   m.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
