// Package identity is a client for the hosted auth service's REST API
// (GoTrue-compatible, mounted at /auth/v1 of the project URL).
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID      `json:"id"`
	Email            string         `json:"email"`
	Role             string         `json:"role,omitempty"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UserMetadata     map[string]any `json:"user_metadata,omitempty"`
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	User         *User  `json:"user"`
}

// AdminUserAttributes is the body of an administrative user creation.
type AdminUserAttributes struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	EmailConfirm bool           `json:"email_confirm"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

type Config struct {
	// ProjectURL is the hosted project base URL, without the /auth/v1 suffix.
	ProjectURL string
	// PublicKey is the browser-safe key used for end-user calls.
	PublicKey string
	// AdminKey is the service key used for administrative calls only.
	AdminKey string
	Timeout  time.Duration
}

type Client struct {
	baseURL    string
	publicKey  string
	adminKey   string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.ProjectURL + "/auth/v1",
		publicKey:  cfg.PublicKey,
		adminKey:   cfg.AdminKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", c.publicKey, "", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	var session Session
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", c.publicKey, "", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetUser validates accessToken with the provider and returns its user.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/user", c.publicKey, accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/logout", c.publicKey, accessToken, nil, nil)
}

func (c *Client) AdminCreateUser(ctx context.Context, attrs AdminUserAttributes) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/admin/users", c.adminKey, c.adminKey, attrs, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) AdminDeleteUser(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id.String()), c.adminKey, c.adminKey, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, apiKey, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read auth response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}
	return nil
}
