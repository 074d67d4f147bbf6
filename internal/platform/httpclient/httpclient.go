package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultRetries = 2
)

// Client envuelve resty con helpers comunes para adapters y la CLI.
type Client struct {
	r *resty.Client
}

// New crea un Client sin BaseURL; DoJSON necesitará URLs absolutas.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	r := resty.New().
		SetTimeout(timeout).
		SetRetryCount(DefaultRetries).
		SetRetryWaitTime(200 * time.Millisecond).
		SetHeader("Accept", "application/json")
	return &Client{r: r}
}

// NewWithBaseURL crea un Client con BaseURL + timeout.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.r.SetBaseURL(strings.TrimRight(baseURL, "/"))
	return c, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// DoJSON hace un request JSON.
// - pathOrURL: URL absoluta o path relativo si hay BaseURL
// - in: body a enviar (opcional)
// - out: donde decodificar la respuesta 2xx (opcional)
// Retorna *HTTPError si el status no es 2xx.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	if c == nil || c.r == nil {
		return errors.New("httpclient: nil client")
	}

	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return errors.New("httpclient: empty url")
	}
	if !isAbsolute(pathOrURL) && c.r.BaseURL == "" {
		return errors.New("httpclient: relative path requires BaseURL")
	}

	req := c.r.R().SetContext(ctx)
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.SetHeader(k, v)
	}
	if in != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(in)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, pathOrURL)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	if resp.IsError() {
		return &HTTPError{
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(resp.String()),
		}
	}
	return nil
}

func isAbsolute(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
