package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(Config{BaseURL: server.URL + "/", HTTPClient: server.Client()})
	require.NoError(t, err)
	return client, server
}

func TestQueryPostsJSONBody(t *testing.T) {
	var hits int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var payload struct {
			Query string `json:"query"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "  total sales last quarter ", payload.Query)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"42"}`))
	})

	res, err := client.Query(context.Background(), "  total sales last quarter ")
	require.NoError(t, err)
	assert.Equal(t, "42", res.TextValue())
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits), "no retries")
}

func TestQueryNonSuccessStatus(t *testing.T) {
	var hits int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
	})

	_, err := client.Query(context.Background(), "q")
	require.Error(t, err)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestQueryMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.Query(context.Background(), "q")
	assert.Error(t, err)
}

func TestQueryNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := New(Config{BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)
	_, err = client.Query(context.Background(), "q")
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	assert.NoError(t, client.Health(context.Background()))

	degraded, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"starting"}`))
	})
	assert.Error(t, degraded.Health(context.Background()))
}

func TestNewRequiresBaseURL(t *testing.T) {
	t.Setenv(EnvBackendURL, "")
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNoBaseURL)

	t.Setenv(EnvBackendURL, "http://localhost:8000")
	client, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", client.Name())
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := NormalizeBaseURL("https://insights.example.com/api/")
	require.NoError(t, err)
	assert.Equal(t, "https://insights.example.com/api", got)

	for _, bad := range []string{"localhost:8000", "ftp://example.com", "http://"} {
		_, err := NormalizeBaseURL(bad)
		assert.Error(t, err, bad)
	}
}

func TestPickHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: 42 * time.Second}
	assert.Same(t, custom, pickHTTPClient(custom, time.Second))
	assert.Equal(t, defaultHTTPTimeout, pickHTTPClient(nil, 0).Timeout)
	assert.Equal(t, 5*time.Second, pickHTTPClient(nil, 5*time.Second).Timeout)
}
