// Package backend talks to the InsightLens analytics service.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/csheth/insightlens/internal/result"
)

// EnvBackendURL is consulted when no base URL is configured explicitly.
const EnvBackendURL = "INSIGHTLENS_BACKEND_URL"

// The backend may generate SQL through an LLM before answering, which can
// take well over a minute. The console keeps waiting; only the escalation
// message changes.
const defaultHTTPTimeout = 2 * time.Minute

// Config describes how to build a backend client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client issues queries against the analytics backend.
type Client interface {
	Query(ctx context.Context, query string) (result.Result, error)
	Health(ctx context.Context) error
	Name() string
}

// ErrNoBaseURL is returned when neither the config nor the environment names a backend.
var ErrNoBaseURL = errors.New("backend: base URL is not configured")

// StatusError reports a non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: unexpected status %s", e.Status)
}

// New validates the base URL and builds a client.
func New(cfg Config) (Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = strings.TrimSpace(os.Getenv(EnvBackendURL))
	}
	base, err := NormalizeBaseURL(base)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return newRestyClient(base, pickHTTPClient(cfg.HTTPClient, cfg.Timeout), logger), nil
}

// NormalizeBaseURL checks that raw is an absolute http(s) URL and strips the
// trailing slash so endpoint paths can be appended.
func NormalizeBaseURL(raw string) (string, error) {
	if raw == "" {
		return "", ErrNoBaseURL
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("backend: invalid base URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("backend: base URL %q must use http or https", raw)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("backend: base URL %q has no host", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}
