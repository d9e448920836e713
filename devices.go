package addigy

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"

	"github.com/tphakala/go-addigy/internal/api"
)

// DeviceService provides operations on enrolled devices.
//
//go:generate mockery --name=DeviceService --output=mocks --outpkg=mocks --filename=device_service.go
type DeviceService interface {
	// List returns all devices.
	List(ctx context.Context, opts ...RequestOption) (json.RawMessage, error)

	// ListOnline returns the devices currently online.
	ListOnline(ctx context.Context, opts ...RequestOption) (json.RawMessage, error)

	// UpdatePolicy moves the device agentID into policyID.
	UpdatePolicy(ctx context.Context, policyID, agentID string, opts ...RequestOption) (json.RawMessage, error)

	// Applications returns the applications installed across devices.
	Applications(ctx context.Context, opts ...RequestOption) (json.RawMessage, error)

	// RunCommand runs a shell command on the given agents.
	RunCommand(ctx context.Context, agentIDs []string, command string, opts ...RequestOption) (json.RawMessage, error)

	// CommandOutput returns the output of a command run on agentID.
	CommandOutput(ctx context.Context, actionID, agentID string, opts ...RequestOption) (json.RawMessage, error)

	// ScreenConnectLinks returns remote session links. An empty agentID
	// defaults to sessionID. Internal API.
	ScreenConnectLinks(ctx context.Context, session SessionAuth, sessionID, agentID string, opts ...RequestOption) (json.RawMessage, error)
}

// deviceService implements DeviceService.
type deviceService struct {
	*service
}

func (s *deviceService) List(ctx context.Context, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.publicURL("/devices"),
		headers: s.publicHeaders(),
	}, opts...)
}

func (s *deviceService) ListOnline(ctx context.Context, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.publicURL("/devices/online"),
		headers: s.publicHeaders(),
	}, opts...)
}

type devicePolicyForm struct {
	PolicyID string `url:"policy_id"`
	AgentID  string `url:"agent_id"`
}

// UpdatePolicy posts a form body with only the API key headers; this
// endpoint rejects JSON.
func (s *deviceService) UpdatePolicy(ctx context.Context, policyID, agentID string, opts ...RequestOption) (json.RawMessage, error) {
	form, err := query.Values(devicePolicyForm{PolicyID: policyID, AgentID: agentID})
	if err != nil {
		return nil, errors.Wrap(err, "encoding form body")
	}

	return s.do(ctx, &call{
		method:   http.MethodPost,
		url:      s.publicURL("/policies/devices"),
		headers:  s.creds.KeyHeaders(),
		body:     form,
		encoding: api.EncodingForm,
	}, opts...)
}

func (s *deviceService) Applications(ctx context.Context, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.publicURL("/applications"),
		headers: s.publicHeaders(),
	}, opts...)
}

type runCommandRequest struct {
	AgentIDs []string `json:"agent_ids"`
	Command  string   `json:"command"`
}

func (s *deviceService) RunCommand(ctx context.Context, agentIDs []string, command string, opts ...RequestOption) (json.RawMessage, error) {
	if agentIDs == nil {
		agentIDs = []string{}
	}
	return s.do(ctx, &call{
		method:   http.MethodPost,
		url:      s.publicURL("/devices/commands"),
		headers:  s.publicHeaders(),
		body:     runCommandRequest{AgentIDs: agentIDs, Command: command},
		encoding: api.EncodingJSON,
		mode:     decodeLenient,
	}, opts...)
}

func (s *deviceService) CommandOutput(ctx context.Context, actionID, agentID string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.publicURL("/devices/output?action_id=" + actionID + "&agentid=" + agentID),
		headers: s.publicHeaders(),
	}, opts...)
}

type screenConnectRequest struct {
	SessionID string `json:"sessionId"`
	AgentID   string `json:"agentid"`
}

func (s *deviceService) ScreenConnectLinks(ctx context.Context, session SessionAuth, sessionID, agentID string, opts ...RequestOption) (json.RawMessage, error) {
	// Agent and session IDs have matched in every observed case, but the
	// endpoint takes both.
	if agentID == "" {
		agentID = sessionID
	}
	return s.do(ctx, &call{
		method:   http.MethodPost,
		url:      s.appURL("/devices/screenconnect/links"),
		headers:  session.identityHeaders(),
		body:     screenConnectRequest{SessionID: sessionID, AgentID: agentID},
		encoding: api.EncodingJSON,
	}, opts...)
}
