package addigy

import (
	"context"
	"encoding/json"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/tphakala/go-addigy/internal/api"
)

// responseMode controls how a response body is handed back to the caller.
type responseMode int

const (
	// decodeStrict requires a JSON body; an empty body is an error.
	decodeStrict responseMode = iota
	// decodeLenient passes an empty body through, otherwise requires JSON.
	decodeLenient
	// decodeRaw returns the body unchanged.
	decodeRaw
)

// call is a request descriptor built fresh for every operation.
type call struct {
	method   string
	url      string
	headers  http.Header
	body     any
	encoding api.Encoding
	mode     responseMode
}

func (s *service) publicURL(path string) string {
	return s.primaryHost + "/api" + path
}

func (s *service) siteURL(path string) string {
	return s.primaryHost + path
}

func (s *service) appURL(path string) string {
	return s.appHost + "/api" + path
}

func (s *service) fileURL(path string) string {
	return s.fileHost + "/api" + path
}

// publicHeaders returns a fresh copy of the default API key header set.
func (s *service) publicHeaders() http.Header {
	return s.defaultHeaders.Clone()
}

// do dispatches c and interprets the response according to c.mode.
func (s *service) do(ctx context.Context, c *call, opts ...RequestOption) (json.RawMessage, error) {
	resp, err := s.send(ctx, c, opts...)
	if err != nil {
		return nil, err
	}
	return decodeBody(resp.Body, c.mode)
}

// send dispatches c and converts non-2xx responses into *APIError.
func (s *service) send(ctx context.Context, c *call, opts ...RequestOption) (*api.Response, error) {
	reqCfg := newRequestConfig()
	reqCfg.apply(opts...)

	headers := c.headers
	if headers == nil {
		headers = make(http.Header)
	}
	maps.Copy(headers, reqCfg.headers)

	resp, err := s.transport.Do(ctx, &api.Request{
		Method:   c.method,
		URL:      c.url,
		Headers:  headers,
		Body:     c.body,
		Encoding: c.encoding,
	})
	if err != nil {
		return nil, err
	}

	if !resp.Success() {
		return nil, newAPIError(resp.StatusCode, resp.Body, resp.Headers)
	}

	return resp, nil
}

func decodeBody(body []byte, mode responseMode) (json.RawMessage, error) {
	switch mode {
	case decodeRaw:
		return json.RawMessage(body), nil
	case decodeLenient:
		if len(body) == 0 {
			return json.RawMessage(body), nil
		}
	}
	if !json.Valid(body) {
		return nil, errors.New("decoding response: body is not valid JSON")
	}
	return json.RawMessage(body), nil
}

// componentUnescaper restores the characters encodeURIComponent leaves alone
// but url.QueryEscape encodes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent percent-encodes v the way encodeURIComponent does: spaces
// become %20 and !'()* stay literal.
func escapeComponent(v string) string {
	return componentUnescaper.Replace(url.QueryEscape(v))
}
