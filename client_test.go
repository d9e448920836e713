package addigy_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-addigy"
)

func TestNewClient(t *testing.T) {
	t.Run("success with required options", func(t *testing.T) {
		client, err := addigy.NewClient(
			addigy.WithCredentials("client-id", "client-secret"),
		)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.NotNil(t, client.Devices)
		assert.NotNil(t, client.Policies)
		assert.NotNil(t, client.Alerts)
		assert.NotNil(t, client.Maintenance)
		assert.NotNil(t, client.Profiles)
		assert.NotNil(t, client.Software)
		assert.NotNil(t, client.Files)
		assert.NotNil(t, client.Users)
		assert.NotNil(t, client.Integrations)
		assert.NotNil(t, client.Account)
		assert.Equal(t, addigy.DefaultBaseURL, client.BaseURL())
	})

	t.Run("error without credentials", func(t *testing.T) {
		_, err := addigy.NewClient()
		require.Error(t, err)
		assert.ErrorIs(t, err, addigy.ErrNoCredentials)
	})

	t.Run("error with partial credentials", func(t *testing.T) {
		_, err := addigy.NewClient(
			addigy.WithCredentials("client-id", ""),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, addigy.ErrNoCredentials)
	})

	t.Run("admin credentials are optional", func(t *testing.T) {
		client, err := addigy.NewClient(
			addigy.WithCredentials("client-id", "client-secret"),
			addigy.WithAdminCredentials("", ""),
		)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("trims trailing slash from base URL", func(t *testing.T) {
		client, err := addigy.NewClient(
			addigy.WithCredentials("client-id", "client-secret"),
			addigy.WithBaseURL("https://addigy.example.com/"),
		)
		require.NoError(t, err)
		assert.Equal(t, "https://addigy.example.com", client.BaseURL())
	})

	t.Run("success with all options", func(t *testing.T) {
		client, err := addigy.NewClient(
			addigy.WithCredentials("client-id", "client-secret"),
			addigy.WithAdminCredentials("admin@example.com", "secret"),
			addigy.WithUserAgent("test-agent/1.0"),
			addigy.WithTimeout(60*time.Second),
			addigy.WithLogger(quietLogger()),
		)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("success with custom HTTP client", func(t *testing.T) {
		customClient := &http.Client{
			Timeout: 90 * time.Second,
		}
		client, err := addigy.NewClient(
			addigy.WithCredentials("client-id", "client-secret"),
			addigy.WithHTTPClient(customClient),
		)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestClient_DefaultHeaders(t *testing.T) {
	client, err := addigy.NewClient(
		addigy.WithCredentials("client-id", "client-secret"),
	)
	require.NoError(t, err)

	headers := client.DefaultHeaders()
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "application/json", headers.Get("Accept"))
	assert.Equal(t, "client-id", headers.Get("client-id"))
	assert.Equal(t, "client-secret", headers.Get("client-secret"))

	// Mutating the copy must not leak into later requests.
	headers.Set("client-id", "tampered")
	assert.Equal(t, "client-id", client.DefaultHeaders().Get("client-id"))
}

func TestClient_RequestOptions(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", r.Header.Get("X-Request-ID"))
		assert.Equal(t, "yes", r.Header.Get("X-Trace"))
		assert.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))
		assertDefaultHeaders(t, r)
		writeJSON(t, w, []any{})
	}, addigy.WithUserAgent("test-agent/1.0"))

	_, err := client.Devices.List(context.Background(),
		addigy.WithRequestID("req-42"),
		addigy.WithHeaders(map[string]string{"X-Trace": "yes"}),
	)
	require.NoError(t, err)
}

func TestClient_ErrorPropagation(t *testing.T) {
	t.Run("non-success status is returned as APIError", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Upstream", "edge-1")
			w.WriteHeader(http.StatusTooManyRequests)
			_, err := w.Write([]byte(`{"error":"slow down"}`))
			assert.NoError(t, err)
		})

		_, err := client.Devices.List(context.Background())
		require.Error(t, err)

		var apiErr *addigy.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		assert.JSONEq(t, `{"error":"slow down"}`, string(apiErr.Body))
		assert.Equal(t, "edge-1", apiErr.Header.Get("X-Upstream"))
	})

	t.Run("invalid JSON body is an error", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, err := w.Write([]byte("<html>maintenance</html>"))
			assert.NoError(t, err)
		})

		_, err := client.Policies.List(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid JSON")
	})

	t.Run("network failure is returned", func(t *testing.T) {
		client, err := addigy.NewClient(
			addigy.WithCredentials("client-id", "client-secret"),
			addigy.WithBaseURL("http://127.0.0.1:1"),
			addigy.WithLogger(quietLogger()),
		)
		require.NoError(t, err)

		_, err = client.Devices.List(context.Background())
		require.Error(t, err)

		var apiErr *addigy.APIError
		assert.NotErrorAs(t, err, &apiErr)
	})

	t.Run("cancelled context", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, []any{})
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Devices.List(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
