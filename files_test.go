package addigy_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileService_UploadURL(t *testing.T) {
	tests := []struct {
		name            string
		contentType     string
		wantContentType string
	}{
		{name: "explicit content type", contentType: "application/x-apple-diskimage", wantContentType: "application/x-apple-diskimage"},
		{name: "default content type", wantContentType: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/upload/url", r.URL.Path)
				assert.Equal(t, "test-client-id", r.Header.Get("client-id"))
				assert.Equal(t, "test-client-secret", r.Header.Get("client-secret"))
				assert.Equal(t, "reader.dmg", r.Header.Get("file-name"))
				assert.Equal(t, tt.wantContentType, r.Header.Get("Content-Type"))
				writeJSON(t, w, "https://upload.example.com/put/abc")
			})

			res, err := client.Files.UploadURL(context.Background(), "reader.dmg", tt.contentType)
			require.NoError(t, err)
			assert.JSONEq(t, `"https://upload.example.com/put/abc"`, string(res))
		})
	}
}

func TestFileService_Upload(t *testing.T) {
	var uploadURL string
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/put/abc", r.URL.Path)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("client-id"))

		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, "package bytes", string(data))

		w.WriteHeader(http.StatusOK)
		_, err = w.Write([]byte("uploaded"))
		assert.NoError(t, err)
	})
	uploadURL = client.BaseURL() + "/put/abc"

	res, err := client.Files.Upload(context.Background(), uploadURL, strings.NewReader("package bytes"), "")
	require.NoError(t, err)
	assert.Equal(t, "uploaded", string(res))
}

func TestFileService_Info(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload/metadata/file-1", r.URL.Path)
		assertDefaultHeaders(t, r)
		writeJSON(t, w, map[string]any{"id": "file-1", "size": 1024})
	})

	res, err := client.Files.Info(context.Background(), "file-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"file-1","size":1024}`, string(res))
}

func TestFileService_SmartInfo(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/filebuilder/pkg/info", r.URL.Path)
		assert.Equal(t, "id=file-1", r.URL.RawQuery)
		assertSessionCookie(t, r)
		writeJSON(t, w, map[string]any{"bundle_id": "com.adobe.Reader"})
	})

	res, err := client.Files.SmartInfo(context.Background(), testSession, "file-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"bundle_id":"com.adobe.Reader"}`, string(res))
}
