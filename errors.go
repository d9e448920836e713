package addigy

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/tphakala/go-addigy/internal/auth"
)

// Sentinel errors for configuration failures. These are returned before any
// request is sent and are not worth retrying.
var (
	ErrNoCredentials      = errors.New("addigy: no API credentials configured")
	ErrNoAdminCredentials = errors.New("addigy: this call uses the internal API, but no admin username or password was configured")
	ErrNotFound           = errors.New("addigy: not found")

	// ErrSessionTokenNotFound is returned by Impersonate when the response
	// does not set a usable auth_token cookie.
	ErrSessionTokenNotFound = auth.ErrTokenNotFound
)

// APIError is returned for any response outside the 2xx range. The status is
// not interpreted; inspect StatusCode and Body to decide what to do.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
	Header     http.Header
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("addigy: API error %d", e.StatusCode)
	}
	return fmt.Sprintf("addigy: API error %d: %s", e.StatusCode, e.Message)
}

// NotFoundError indicates that a resource could not be located locally, for
// example a user looked up by email.
type NotFoundError struct {
	ResourceType string
	Field        string
	Value        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("addigy: no %s with %s %s exists", e.ResourceType, e.Field, e.Value)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// maxErrorMessageLen caps APIError.Message in bytes. Body keeps everything.
const maxErrorMessageLen = 512

// newAPIError builds an APIError from a non-success response.
func newAPIError(statusCode int, body []byte, headers http.Header) error {
	msg := string(body)
	if len(msg) > maxErrorMessageLen {
		cut := maxErrorMessageLen
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut] + "…"
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    msg,
		Body:       body,
		Header:     headers,
	}
}
