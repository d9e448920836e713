package addigy

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	baseURL        string
	appURL         string
	fileManagerURL string
	clientID       string
	clientSecret   string
	adminUsername  string
	adminPassword  string
	httpClient     *http.Client
	timeout        time.Duration
	userAgent      string
	logger         logrus.FieldLogger
}

// WithCredentials sets the public API client ID and secret.
func WithCredentials(clientID, clientSecret string) ClientOption {
	return func(c *clientConfig) {
		c.clientID = clientID
		c.clientSecret = clientSecret
	}
}

// WithAdminCredentials sets the username and password of an owner or power
// user account. They are only needed by Login.
func WithAdminCredentials(username, password string) ClientOption {
	return func(c *clientConfig) {
		c.adminUsername = username
		c.adminPassword = password
	}
}

// WithBaseURL overrides the primary host (public API and console sign-in).
func WithBaseURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithAppURL overrides the internal web console API host.
func WithAppURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.appURL = url
	}
}

// WithFileManagerURL overrides the file manager API host.
func WithFileManagerURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.fileManagerURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the default request timeout.
// Note: This option is ignored when WithHTTPClient is used;
// set the timeout directly on the provided client instead.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for debug output. Defaults to the logrus
// standard logger.
func WithLogger(logger logrus.FieldLogger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// RequestOption configures individual API requests.
type RequestOption func(*requestConfig)

type requestConfig struct {
	headers http.Header
}

func newRequestConfig() *requestConfig {
	return &requestConfig{
		headers: make(http.Header),
	}
}

func (r *requestConfig) apply(opts ...RequestOption) {
	for _, opt := range opts {
		opt(r)
	}
}

// WithHeader adds a custom header to a request.
func WithHeader(key, value string) RequestOption {
	return func(r *requestConfig) {
		r.headers.Set(key, value)
	}
}

// WithHeaders adds multiple custom headers to a request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *requestConfig) {
		for k, v := range headers {
			r.headers.Set(k, v)
		}
	}
}

// WithRequestID sets the X-Request-ID header for tracing.
func WithRequestID(id string) RequestOption {
	return WithHeader("X-Request-ID", id)
}
