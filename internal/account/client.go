package account

import (
	"context"

	"github.com/gaibarra/33fitstudio/internal/backend"
	"github.com/gaibarra/33fitstudio/internal/session"
)

// Client wraps the backend's auth endpoints.
type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

// Token exchanges credentials for an access/refresh pair.
func (c *Client) Token(ctx context.Context, email, password string) (session.TokenPair, error) {
	var tp session.TokenPair
	err := c.api.Post(ctx, "/api/auth/token/", "", map[string]string{
		"email":    email,
		"password": password,
	}, &tp)
	return tp, err
}

// Refresh trades a refresh token for a fresh access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var out struct {
		Access string `json:"access"`
	}
	err := c.api.Post(ctx, "/api/auth/token/refresh/", "", map[string]string{
		"refresh": refreshToken,
	}, &out)
	return out.Access, err
}

func (c *Client) Register(ctx context.Context, form RegisterForm) error {
	return c.api.Post(ctx, "/api/auth/register/", "", map[string]string{
		"email":                 form.Email,
		"full_name":             form.FullName,
		"phone":                 form.Phone,
		"password":              form.Password,
		"password_confirmation": form.PasswordConfirmation,
	}, nil)
}

// Me resolves the profile for the stored token.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var u User
	if err := c.api.Get(ctx, "/api/auth/me/", token, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateMe(ctx context.Context, token string, form ProfileForm) (*User, error) {
	var u User
	err := c.api.Patch(ctx, "/api/auth/me/", token, map[string]string{
		"email":     form.Email,
		"full_name": form.FullName,
		"phone":     form.Phone,
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
