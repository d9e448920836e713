// Package auth provides Addigy authentication headers.
//
// The public API authenticates every call with a static client-id/client-secret
// pair. The console endpoints authenticate with the auth_token session cookie
// obtained from a sign-in.
package auth

import "net/http"

// Header names used by the public API.
const (
	HeaderClientID     = "client-id"
	HeaderClientSecret = "client-secret"
)

// Credentials holds Addigy public API credentials.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Apply adds the API key headers to h.
func (c *Credentials) Apply(h http.Header) {
	if c == nil {
		return
	}
	h.Set(HeaderClientID, c.ClientID)
	h.Set(HeaderClientSecret, c.ClientSecret)
}

// Valid reports whether credentials are configured.
func (c *Credentials) Valid() bool {
	return c != nil && c.ClientID != "" && c.ClientSecret != ""
}

// DefaultHeaders returns the header set sent with most public API calls.
// The result is built once per client and cloned for every request.
func (c *Credentials) DefaultHeaders() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	c.Apply(h)
	return h
}

// KeyHeaders returns only the API key headers.
func (c *Credentials) KeyHeaders() http.Header {
	h := make(http.Header)
	c.Apply(h)
	return h
}
