package auth

import (
	"errors"
	"net/http"
	"strings"
)

// Cookie names set by the sign-in and impersonation endpoints.
const (
	TokenCookie         = "auth_token"
	OriginalTokenCookie = "original_" + TokenCookie
)

// ErrTokenNotFound is returned when no usable auth_token cookie is present.
var ErrTokenNotFound = errors.New("auth_token cookie not found")

// Session is a console login: organization, token and the signed-in email.
type Session struct {
	OrgID string
	Token string
	Email string
}

// Cookie returns the Cookie header value for the session.
// Most console endpoints expect the trailing semicolon.
func (s Session) Cookie(terminated bool) string {
	v := TokenCookie + "=" + s.Token
	if terminated {
		v += ";"
	}
	return v
}

// Headers returns headers carrying only the session cookie.
func (s Session) Headers() http.Header {
	h := make(http.Header)
	h.Set("Cookie", s.Cookie(true))
	return h
}

// IdentityHeaders returns the session cookie plus the email and orgid
// headers required by billing, API key and APNs endpoints.
func (s Session) IdentityHeaders() http.Header {
	h := s.Headers()
	h.Set("email", s.Email)
	h.Set("orgid", s.OrgID)
	return h
}

// ExtractToken picks the value of the name cookie out of a list of Set-Cookie
// header values, skipping any entry that mentions excluded.
//
// The first entry containing name but not excluded wins. Its value is the text
// between "name=" and the next ";". An entry that matches but carries no
// "name=" marker is an error rather than a reason to keep scanning.
func ExtractToken(setCookies []string, name, excluded string) (string, error) {
	for _, c := range setCookies {
		if !strings.Contains(c, name) || strings.Contains(c, excluded) {
			continue
		}
		_, rest, ok := strings.Cut(c, name+"=")
		if !ok {
			return "", ErrTokenNotFound
		}
		token, _, _ := strings.Cut(rest, ";")
		return token, nil
	}
	return "", ErrTokenNotFound
}
