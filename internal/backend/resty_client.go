package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/csheth/insightlens/internal/result"
)

const (
	queryPath  = "/query"
	healthPath = "/health"
)

type queryRequest struct {
	Query string `json:"query"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type restyClient struct {
	base string
	rc   *resty.Client
	log  *slog.Logger
}

func newRestyClient(base string, hc *http.Client, logger *slog.Logger) *restyClient {
	rc := resty.NewWithClient(hc).
		SetBaseURL(base).
		SetHeader("Accept", "application/json")
	return &restyClient{
		base: base,
		rc:   rc,
		log:  logger.With(slog.String("component", "backend")),
	}
}

func (c *restyClient) Name() string {
	return c.base
}

// Query sends the raw query text unchanged. Any transport failure, non-2xx
// status, or undecodable body is returned as an error.
func (c *restyClient) Query(ctx context.Context, query string) (result.Result, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(queryRequest{Query: query}).
		Post(queryPath)
	if err != nil {
		return result.Result{}, fmt.Errorf("backend: post %s: %w", queryPath, err)
	}
	c.log.Debug("query response",
		slog.Int("status", resp.StatusCode()),
		slog.Duration("elapsed", resp.Time()),
		slog.Int("bytes", len(resp.Body())),
	)
	if !resp.IsSuccess() {
		return result.Result{}, &StatusError{Code: resp.StatusCode(), Status: resp.Status()}
	}
	res, err := result.Decode(resp.Body())
	if err != nil {
		return result.Result{}, fmt.Errorf("backend: %s: %w", queryPath, err)
	}
	return res, nil
}

func (c *restyClient) Health(ctx context.Context) error {
	resp, err := c.rc.R().SetContext(ctx).Get(healthPath)
	if err != nil {
		return fmt.Errorf("backend: get %s: %w", healthPath, err)
	}
	if !resp.IsSuccess() {
		return &StatusError{Code: resp.StatusCode(), Status: resp.Status()}
	}
	var parsed healthResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return fmt.Errorf("backend: decode %s: %w", healthPath, err)
	}
	if !strings.EqualFold(parsed.Status, "ok") {
		return fmt.Errorf("backend: health status %q", parsed.Status)
	}
	return nil
}
