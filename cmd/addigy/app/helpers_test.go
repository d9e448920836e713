package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-addigy/internal/config"
)

// executeCommand executes a command and returns its output.
func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// setupCLI starts a test server and writes a config file pointing at it. The
// returned args select that config.
func setupCLI(t *testing.T, handler http.HandlerFunc, admin bool) []string {
	t.Helper()
	for _, env := range []string{
		config.EnvConfigPath, config.EnvClientID, config.EnvClientSecret,
		config.EnvAdminUsername, config.EnvAdminPassword,
	} {
		t.Setenv(env, "")
	}

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		ClientID:       "cli-id",
		ClientSecret:   "cli-secret",
		BaseURL:        server.URL,
		AppURL:         server.URL,
		FileManagerURL: server.URL,
	}
	if admin {
		cfg.AdminUsername = "admin@example.com"
		cfg.AdminPassword = "hunter2"
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.Save(cfg, path))

	return []string{"--config", path}
}

func writeJSONResponse(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}
