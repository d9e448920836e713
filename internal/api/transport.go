// Package api provides low-level HTTP transport for Addigy API calls.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const defaultHTTPTimeout = 30 * time.Second

// Encoding selects how Request.Body is written to the wire.
type Encoding int

const (
	// EncodingNone sends no body.
	EncodingNone Encoding = iota
	// EncodingJSON marshals Body as JSON.
	EncodingJSON
	// EncodingForm sends Body (url.Values) as application/x-www-form-urlencoded.
	EncodingForm
	// EncodingRaw streams Body ([]byte or io.Reader) unchanged.
	EncodingRaw
)

// Transport dispatches fully assembled requests. It does not retry, log or
// interpret status codes; callers get the response exactly as received.
type Transport struct {
	client    *resty.Client
	UserAgent string
}

// Logger is the subset of a structured logger resty writes its own warnings to.
type Logger = resty.Logger

// NewTransport creates a Transport on top of httpClient.
func NewTransport(httpClient *http.Client, logger Logger) *Transport {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultHTTPTimeout,
		}
	}

	client := resty.NewWithClient(httpClient).
		SetAllowGetMethodPayload(true).
		SetRetryCount(0)
	if logger != nil {
		client.SetLogger(logger)
	}

	return &Transport{
		client:    client,
		UserAgent: "go-addigy/1.0",
	}
}

// Request is a fully assembled API request.
type Request struct {
	Method   string
	URL      string
	Headers  http.Header
	Body     any
	Encoding Encoding
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Success reports whether the status code is 2xx.
func (r *Response) Success() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Do executes req and returns the raw response. Network failures are
// returned as produced by the HTTP client.
func (t *Transport) Do(ctx context.Context, req *Request) (*Response, error) {
	r, err := t.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Headers:    resp.Header(),
	}, nil
}

func (t *Transport) buildRequest(ctx context.Context, req *Request) (*resty.Request, error) {
	r := t.client.R().SetContext(ctx)

	for k, vals := range req.Headers {
		for _, v := range vals {
			r.Header.Add(k, v)
		}
	}
	if t.UserAgent != "" && r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", t.UserAgent)
	}

	switch req.Encoding {
	case EncodingNone:
	case EncodingJSON:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling request body")
		}
		setDefaultHeader(r.Header, "Content-Type", "application/json")
		setDefaultHeader(r.Header, "Accept", "application/json")
		r.SetBody(data)
	case EncodingForm:
		values, ok := req.Body.(url.Values)
		if !ok {
			return nil, errors.Errorf("form body must be url.Values, got %T", req.Body)
		}
		setDefaultHeader(r.Header, "Content-Type", "application/x-www-form-urlencoded")
		r.SetBody(values.Encode())
	case EncodingRaw:
		switch body := req.Body.(type) {
		case []byte, io.Reader:
			r.SetBody(body)
		default:
			return nil, errors.Errorf("raw body must be []byte or io.Reader, got %T", req.Body)
		}
	default:
		return nil, errors.Errorf("unknown body encoding %d", req.Encoding)
	}

	return r, nil
}

func setDefaultHeader(h http.Header, key, value string) {
	if h.Get(key) == "" {
		h.Set(key, value)
	}
}
