package addigy

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/tphakala/go-addigy/internal/api"
)

const defaultUploadContentType = "application/octet-stream"

// FileService provides file upload and metadata operations.
//
//go:generate mockery --name=FileService --output=mocks --outpkg=mocks --filename=file_service.go
type FileService interface {
	// UploadURL requests a pre-signed upload URL for fileName. An empty
	// contentType means application/octet-stream.
	UploadURL(ctx context.Context, fileName, contentType string, opts ...RequestOption) (json.RawMessage, error)

	// Upload PUTs the contents of file to a URL returned by UploadURL and
	// returns the response body unchanged.
	Upload(ctx context.Context, uploadURL string, file io.Reader, contentType string, opts ...RequestOption) (json.RawMessage, error)

	// Info returns metadata of an uploaded file.
	Info(ctx context.Context, fileID string, opts ...RequestOption) (json.RawMessage, error)

	// SmartInfo returns package information for a smart file. Internal API.
	SmartInfo(ctx context.Context, session SessionAuth, fileID string, opts ...RequestOption) (json.RawMessage, error)
}

// fileService implements FileService.
type fileService struct {
	*service
}

func contentTypeOrDefault(contentType string) string {
	if contentType == "" {
		return defaultUploadContentType
	}
	return contentType
}

func (s *fileService) UploadURL(ctx context.Context, fileName, contentType string, opts ...RequestOption) (json.RawMessage, error) {
	headers := s.creds.KeyHeaders()
	headers.Set("file-name", fileName)
	headers.Set("Content-Type", contentTypeOrDefault(contentType))

	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.fileURL("/upload/url"),
		headers: headers,
	}, opts...)
}

func (s *fileService) Upload(ctx context.Context, uploadURL string, file io.Reader, contentType string, opts ...RequestOption) (json.RawMessage, error) {
	headers := make(http.Header)
	headers.Set("Content-Type", contentTypeOrDefault(contentType))

	return s.do(ctx, &call{
		method:   http.MethodPut,
		url:      uploadURL,
		headers:  headers,
		body:     file,
		encoding: api.EncodingRaw,
		mode:     decodeRaw,
	}, opts...)
}

func (s *fileService) Info(ctx context.Context, fileID string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.fileURL("/upload/metadata/" + fileID),
		headers: s.publicHeaders(),
	}, opts...)
}

func (s *fileService) SmartInfo(ctx context.Context, session SessionAuth, fileID string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.appURL("/filebuilder/pkg/info?id=" + fileID),
		headers: session.cookieHeaders(),
	}, opts...)
}
