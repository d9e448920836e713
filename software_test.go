package addigy_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-addigy"
)

var testCustomSoftware = addigy.CustomSoftwareRequest{
	BaseIdentifier:     "Acrobat Reader",
	Version:            "2020.9.20063",
	Downloads:          []string{"file-1"},
	InstallationScript: "/usr/sbin/installer -pkg reader.pkg -target /",
	ConditionScript:    "exit 0",
	RemovalScript:      "rm -rf /Applications/Reader.app",
}

func TestSoftwareService_Catalog(t *testing.T) {
	tests := []struct {
		name      string
		call      func(ctx context.Context, s addigy.SoftwareService) error
		wantPath  string
		wantQuery string
	}{
		{
			name: "public",
			call: func(ctx context.Context, s addigy.SoftwareService) error {
				_, err := s.Public(ctx)
				return err
			},
			wantPath: "/api/catalog/public",
		},
		{
			name: "custom",
			call: func(ctx context.Context, s addigy.SoftwareService) error {
				_, err := s.Custom(ctx)
				return err
			},
			wantPath: "/api/custom-software",
		},
		{
			name: "custom versions",
			call: func(ctx context.Context, s addigy.SoftwareService) error {
				_, err := s.CustomVersions(ctx, "acrobat-reader")
				return err
			},
			wantPath:  "/api/custom-software",
			wantQuery: "identifier=acrobat-reader",
		},
		{
			name: "custom version",
			call: func(ctx context.Context, s addigy.SoftwareService) error {
				_, err := s.CustomVersion(ctx, "ins-1")
				return err
			},
			wantPath:  "/api/custom-software",
			wantQuery: "instructionid=ins-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				assertDefaultHeaders(t, r)
				writeJSON(t, w, []any{})
			})

			require.NoError(t, tt.call(context.Background(), client.Software))
		})
	}
}

func TestSoftwareService_CreateCustom(t *testing.T) {
	t.Run("empty body returned unchanged", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/custom-software", r.URL.Path)
			assertDefaultHeaders(t, r)

			body := decodeBody(t, r)
			assert.Equal(t, "Acrobat Reader", body["base_identifier"])
			assert.Equal(t, "2020.9.20063", body["version"])
			assert.Equal(t, []any{"file-1"}, body["downloads"])
			assert.Equal(t, "/usr/sbin/installer -pkg reader.pkg -target /", body["installation_script"])
			assert.Equal(t, "exit 0", body["condition"])
			assert.Equal(t, "rm -rf /Applications/Reader.app", body["remove_script"])

			w.WriteHeader(http.StatusOK)
		})

		req := testCustomSoftware
		res, err := client.Software.CreateCustom(context.Background(), &req)
		require.NoError(t, err)
		assert.Equal(t, "", string(res))
	})

	t.Run("JSON body returned", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"instructionId": "ins-1"})
		})

		req := testCustomSoftware
		res, err := client.Software.CreateCustom(context.Background(), &req)
		require.NoError(t, err)
		assert.JSONEq(t, `{"instructionId":"ins-1"}`, string(res))
	})
}

func TestSoftwareService_StagedInstructions(t *testing.T) {
	t.Run("copy to stage uses unterminated cookie", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/copy_instruction_to_stage/", r.URL.Path)
			assert.Equal(t, "auth_token=tok-123", r.Header.Get("Cookie"))
			assert.Equal(t, map[string]any{"instructionid": "ins-1"}, decodeBody(t, r))
			writeJSON(t, w, map[string]any{"staged": true})
		})

		_, err := client.Software.CopyToStage(context.Background(), testSession, "ins-1")
		require.NoError(t, err)
	})

	t.Run("confirm returns raw body", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/software/confirm_staged_instruction", r.URL.Path)
			assert.Equal(t, "instructionid=ins-1", r.URL.RawQuery)
			assertSessionCookie(t, r)
			_, err := w.Write([]byte("ok"))
			assert.NoError(t, err)
		})

		res, err := client.Software.ConfirmStaged(context.Background(), testSession, "ins-1")
		require.NoError(t, err)
		assert.Equal(t, "ok", string(res))
	})
}

func TestSoftwareService_CreateSmart(t *testing.T) {
	t.Run("runs the pipeline in order", func(t *testing.T) {
		var (
			mu    sync.Mutex
			steps []string
		)
		record := func(step string) {
			mu.Lock()
			defer mu.Unlock()
			steps = append(steps, step)
		}

		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/custom-software":
				record("create")
				assertDefaultHeaders(t, r)
				writeJSON(t, w, map[string]any{
					"instructionId": "ins-1",
					"description":   "stale",
					"name":          "Acrobat Reader",
				})
			case "/copy_instruction_to_stage/":
				record("stage")
				assert.Equal(t, map[string]any{"instructionid": "ins-1"}, decodeBody(t, r))
				writeJSON(t, w, map[string]any{"staged": true})
			case "/api/software/update_staged_instruction/":
				record("update")
				assertSessionCookie(t, r)
				body := decodeBody(t, r)
				assert.Equal(t, "ins-1", body["instructionId"])
				assert.Equal(t, "Acrobat Reader", body["name"])
				assert.Equal(t, "PDF reader", body["description"])
				assert.Equal(t, map[string]any{"id": "icon-1"}, body["icon"])
				assert.Equal(t, []any{"profile-1"}, body["profiles"])
				writeJSON(t, w, map[string]any{"result": "updated"})
			case "/api/software/confirm_staged_instruction":
				record("confirm")
				assert.Equal(t, "instructionid=ins-1", r.URL.RawQuery)
				_, err := w.Write([]byte(`{"result":"confirmed"}`))
				assert.NoError(t, err)
			default:
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				w.WriteHeader(http.StatusNotFound)
			}
		})

		res, err := client.Software.CreateSmart(context.Background(), testSession, &addigy.SmartSoftwareRequest{
			CustomSoftwareRequest: testCustomSoftware,
			Description:           "PDF reader",
			Icon:                  map[string]any{"id": "icon-1"},
			Profiles:              []string{"profile-1"},
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"result":"updated"}`, string(res))
		assert.Equal(t, []string{"create", "stage", "update", "confirm"}, steps)
	})

	t.Run("empty description removes it and nil extras are left alone", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/custom-software":
				writeJSON(t, w, map[string]any{"instructionId": "ins-1", "description": "stale", "icon": "keep"})
			case "/api/software/update_staged_instruction/":
				body := decodeBody(t, r)
				assert.NotContains(t, body, "description")
				assert.NotContains(t, body, "profiles")
				assert.Equal(t, "keep", body["icon"])
				writeJSON(t, w, map[string]any{})
			default:
				writeJSON(t, w, map[string]any{})
			}
		})

		_, err := client.Software.CreateSmart(context.Background(), testSession, &addigy.SmartSoftwareRequest{
			CustomSoftwareRequest: testCustomSoftware,
		})
		require.NoError(t, err)
	})

	t.Run("failed update leaves earlier steps in place", func(t *testing.T) {
		var confirmed bool
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/custom-software":
				writeJSON(t, w, map[string]any{"instructionId": "ins-1"})
			case "/api/software/update_staged_instruction/":
				w.WriteHeader(http.StatusInternalServerError)
			case "/api/software/confirm_staged_instruction":
				confirmed = true
			default:
				writeJSON(t, w, map[string]any{})
			}
		})

		_, err := client.Software.CreateSmart(context.Background(), testSession, &addigy.SmartSoftwareRequest{
			CustomSoftwareRequest: testCustomSoftware,
		})
		var apiErr *addigy.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.False(t, confirmed)
	})

	t.Run("empty create response cannot be staged", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/custom-software" {
				t.Errorf("unexpected request %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		})

		_, err := client.Software.CreateSmart(context.Background(), testSession, &addigy.SmartSoftwareRequest{
			CustomSoftwareRequest: testCustomSoftware,
		})
		require.Error(t, err)
	})
}
