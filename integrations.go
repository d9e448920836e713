package addigy

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tphakala/go-addigy/internal/api"
)

// IntegrationService manages API integrations (client ID and secret pairs).
// Internal API.
//
//go:generate mockery --name=IntegrationService --output=mocks --outpkg=mocks --filename=integration_service.go
type IntegrationService interface {
	// List returns the organization's API keys.
	List(ctx context.Context, session SessionAuth, opts ...RequestOption) (json.RawMessage, error)

	// Create creates an API key named name.
	Create(ctx context.Context, session SessionAuth, name string, opts ...RequestOption) (json.RawMessage, error)

	// Delete removes the API key with id and returns the body unchanged.
	Delete(ctx context.Context, session SessionAuth, id string, opts ...RequestOption) (json.RawMessage, error)
}

// integrationService implements IntegrationService.
type integrationService struct {
	*service
}

func (s *integrationService) List(ctx context.Context, session SessionAuth, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.siteURL("/accounts/api/keys/get/"),
		headers: session.identityHeaders(),
	}, opts...)
}

func (s *integrationService) Create(ctx context.Context, session SessionAuth, name string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:   http.MethodPost,
		url:      s.appURL("/integrations/keys"),
		headers:  session.cookieHeaders(),
		body:     map[string]string{"name": name},
		encoding: api.EncodingJSON,
		mode:     decodeLenient,
	}, opts...)
}

func (s *integrationService) Delete(ctx context.Context, session SessionAuth, id string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodDelete,
		url:     s.appURL("/integrations/keys?id=" + id),
		headers: session.cookieHeaders(),
		mode:    decodeRaw,
	}, opts...)
}
