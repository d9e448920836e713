package addigy

import (
	"context"
	"encoding/json"
	"net/http"
)

// AccountService exposes organization-level console data. Internal API.
//
//go:generate mockery --name=AccountService --output=mocks --outpkg=mocks --filename=account_service.go
type AccountService interface {
	// BillingData returns the organization's billing data.
	BillingData(ctx context.Context, session SessionAuth, opts ...RequestOption) (json.RawMessage, error)

	// FileVaultKeys returns escrowed FileVault recovery keys.
	FileVaultKeys(ctx context.Context, session SessionAuth, opts ...RequestOption) (json.RawMessage, error)

	// APNsCerts returns the mdm_app_list of APNs certificates. next and
	// previous are cursors from an earlier call and may be empty.
	APNsCerts(ctx context.Context, session SessionAuth, next, previous string, opts ...RequestOption) (json.RawMessage, error)
}

// accountService implements AccountService.
type accountService struct {
	*service
}

func (s *accountService) BillingData(ctx context.Context, session SessionAuth, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.appURL("/billing/get_chargeover_billing_data"),
		headers: session.identityHeaders(),
	}, opts...)
}

func (s *accountService) FileVaultKeys(ctx context.Context, session SessionAuth, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.siteURL("/get_org_filevault_keys/"),
		headers: session.cookieHeaders(),
	}, opts...)
}

// APNsCerts appends each cursor with its own "?", as the console does.
func (s *accountService) APNsCerts(ctx context.Context, session SessionAuth, next, previous string, opts ...RequestOption) (json.RawMessage, error) {
	u := s.appURL("/apn/user/apn/list")
	if next != "" {
		u += "?next=" + next
	}
	if previous != "" {
		u += "?previous=" + previous
	}

	body, err := s.do(ctx, &call{
		method:  http.MethodGet,
		url:     u,
		headers: session.identityHeaders(),
	}, opts...)
	if err != nil {
		return nil, err
	}
	return decodeField(body, "mdm_app_list")
}
