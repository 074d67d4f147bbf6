package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sow-breeding-records/internal/middleware"
	"sow-breeding-records/internal/platform/httpclient"
)

const defaultAPI = "http://localhost:8080"

// apiFlags son los flags comunes de los comandos que hablan con la API.
type apiFlags struct {
	baseURL string
	user    string
	token   string
	timeout time.Duration
}

func (f *apiFlags) register(cmd *cobra.Command) {
	api := os.Getenv("SOWCTL_API")
	if api == "" {
		api = defaultAPI
	}
	cmd.Flags().StringVar(&f.baseURL, "api", api, "URL base de la API (env SOWCTL_API)")
	cmd.Flags().StringVar(&f.user, "user", os.Getenv("SOWCTL_USER"), "usuario para X-Debug-User-ID (modo dev)")
	cmd.Flags().StringVar(&f.token, "token", os.Getenv("SOWCTL_TOKEN"), "Bearer token")
	cmd.Flags().DurationVar(&f.timeout, "timeout", httpclient.DefaultTimeout, "timeout por request")
}

// apiClient envuelve httpclient con la autenticación de la API.
type apiClient struct {
	http    *httpclient.Client
	headers map[string]string
}

func (f *apiFlags) client() (*apiClient, error) {
	c, err := httpclient.NewWithBaseURL(f.baseURL, f.timeout)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{}
	switch {
	case strings.TrimSpace(f.token) != "":
		headers["Authorization"] = "Bearer " + strings.TrimSpace(f.token)
	case strings.TrimSpace(f.user) != "":
		headers[middleware.DebugUserHeader] = strings.TrimSpace(f.user)
	default:
		return nil, fmt.Errorf("either --token or --user is required")
	}
	return &apiClient{http: c, headers: headers}, nil
}

func (c *apiClient) get(ctx context.Context, path string, out any) error {
	return c.http.DoJSON(ctx, http.MethodGet, path, c.headers, nil, out)
}

func (c *apiClient) post(ctx context.Context, path string, in, out any) error {
	return c.http.DoJSON(ctx, http.MethodPost, path, c.headers, in, out)
}
