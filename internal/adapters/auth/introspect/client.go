package introspect

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sow-breeding-records/internal/platform/httpclient"
	"sow-breeding-records/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("introspection not configured")
	ErrUnauthorized  = errors.New("token not active")
	ErrUpstream      = errors.New("introspection upstream error")
)

type Config struct {
	// URL completa del endpoint de introspección.
	URL     string
	Timeout time.Duration
}

// Client consulta el endpoint de introspección del proveedor de identidad.
// Request: POST {"token": "..."} con el token también en Authorization.
// Response: {"active": bool, "sub": "...", "email": "...", "name": "...", "role": "...", "exp": 1700000000}.
type Client struct {
	url  string
	http *httpclient.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:  strings.TrimSpace(cfg.URL),
		http: httpclient.New(timeout),
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.url != ""
}

type introspectionResponse struct {
	Active bool   `json:"active"`
	Sub    string `json:"sub"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Exp    int64  `json:"exp"` // segundos unix; 0 = sin caducidad informada
}

// Introspection es la respuesta de un token activo.
type Introspection struct {
	Claims    auth.Claims
	ExpiresAt time.Time // cero si el proveedor no informa exp
}

func (c *Client) Introspect(ctx context.Context, token string) (Introspection, error) {
	if !c.IsConfigured() {
		return Introspection{}, ErrNotConfigured
	}

	var out introspectionResponse
	err := c.http.DoJSON(ctx, http.MethodPost, c.url,
		map[string]string{"Authorization": "Bearer " + token},
		map[string]string{"token": token},
		&out,
	)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && (he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden) {
			return Introspection{}, ErrUnauthorized
		}
		return Introspection{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if !out.Active {
		return Introspection{}, ErrUnauthorized
	}

	res := Introspection{
		Claims: auth.Claims{
			UserID: strings.TrimSpace(out.Sub),
			Email:  strings.TrimSpace(out.Email),
			Name:   strings.TrimSpace(out.Name),
			Role:   strings.TrimSpace(out.Role),
		},
	}
	if out.Exp > 0 {
		res.ExpiresAt = time.Unix(out.Exp, 0).UTC()
	}
	return res, nil
}
