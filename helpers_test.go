package addigy_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-addigy"
)

var testSession = addigy.SessionAuth{
	OrgID:        "org-1",
	AuthToken:    "tok-123",
	EmailAddress: "admin@example.com",
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// setupTestServer points every Addigy host at a single test server.
func setupTestServer(t *testing.T, handler http.HandlerFunc, opts ...addigy.ClientOption) *addigy.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base := []addigy.ClientOption{
		addigy.WithBaseURL(server.URL),
		addigy.WithAppURL(server.URL),
		addigy.WithFileManagerURL(server.URL),
		addigy.WithCredentials("test-client-id", "test-client-secret"),
		addigy.WithLogger(quietLogger()),
	}

	client, err := addigy.NewClient(append(base, opts...)...)
	require.NoError(t, err)

	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func assertDefaultHeaders(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "test-client-id", r.Header.Get("client-id"))
	assert.Equal(t, "test-client-secret", r.Header.Get("client-secret"))
	assert.Equal(t, "application/json", r.Header.Get("Accept"))
	assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
}

func assertSessionCookie(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "auth_token=tok-123;", r.Header.Get("Cookie"))
	assert.Empty(t, r.Header.Get("client-id"))
}

func assertIdentityHeaders(t *testing.T, r *http.Request) {
	t.Helper()
	assertSessionCookie(t, r)
	assert.Equal(t, "admin@example.com", r.Header.Get("email"))
	assert.Equal(t, "org-1", r.Header.Get("orgid"))
}
