package addigy

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-addigy/internal/api"
	"github.com/tphakala/go-addigy/internal/auth"
)

func (a SessionAuth) session() auth.Session {
	return auth.Session{
		OrgID: a.OrgID,
		Token: a.AuthToken,
		Email: a.EmailAddress,
	}
}

// cookieHeaders returns the `Cookie: auth_token=<token>;` header set.
func (a SessionAuth) cookieHeaders() http.Header {
	return a.session().Headers()
}

// identityHeaders returns the cookie plus email and orgid headers.
func (a SessionAuth) identityHeaders() http.Header {
	return a.session().IdentityHeaders()
}

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login signs in with the admin credentials and returns a SessionAuth for the
// account's own organization.
//
// It returns ErrNoAdminCredentials without sending anything when the admin
// username or password was not configured.
func (c *Client) Login(ctx context.Context, opts ...RequestOption) (SessionAuth, error) {
	if c.admin.username == "" || c.admin.password == "" {
		return SessionAuth{}, ErrNoAdminCredentials
	}

	c.svc.logger.WithField("username", c.admin.username).Debug("signing in to Addigy console")

	body, err := c.svc.do(ctx, &call{
		method: http.MethodPost,
		url:    c.svc.siteURL("/signin/"),
		body: signinRequest{
			Username: c.admin.username,
			Password: c.admin.password,
		},
		encoding: api.EncodingJSON,
		mode:     decodeStrict,
	}, opts...)
	if err != nil {
		return SessionAuth{}, err
	}

	var session SessionAuth
	if err := json.Unmarshal(body, &session); err != nil {
		return SessionAuth{}, errors.Wrap(err, "decoding signin response")
	}

	c.svc.logger.WithFields(logrus.Fields{
		"org_id": session.OrgID,
		"email":  session.EmailAddress,
	}).Debug("signed in")

	return session, nil
}

// Impersonate switches an existing session to the organization orgID.
//
// Addigy answers by setting a new auth_token cookie next to an
// original_auth_token cookie that points back to the caller's own session;
// the former is returned. The email address is carried over unchanged.
func (c *Client) Impersonate(ctx context.Context, session SessionAuth, orgID string, opts ...RequestOption) (SessionAuth, error) {
	logger := c.svc.logger.WithField("org_id", orgID)
	logger.Debug("impersonating organization")

	resp, err := c.svc.send(ctx, &call{
		method:   http.MethodGet,
		url:      c.svc.siteURL("/impersonate_org/"),
		headers:  session.cookieHeaders(),
		body:     map[string]string{"orgid": orgID},
		encoding: api.EncodingJSON,
	}, opts...)
	if err != nil {
		return SessionAuth{}, err
	}

	token, err := auth.ExtractToken(resp.Headers.Values("Set-Cookie"), auth.TokenCookie, auth.OriginalTokenCookie)
	if err != nil {
		return SessionAuth{}, err
	}

	logger.Debug("impersonation token issued")

	return SessionAuth{
		OrgID:        orgID,
		AuthToken:    token,
		EmailAddress: session.EmailAddress,
	}, nil
}
