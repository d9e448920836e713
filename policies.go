package addigy

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"

	"github.com/tphakala/go-addigy/internal/api"
)

// DefaultInstructionProvider is the provider used when none is given.
const DefaultInstructionProvider = "ansible-profile"

// PolicyService provides operations on policies and their instructions.
//
//go:generate mockery --name=PolicyService --output=mocks --outpkg=mocks --filename=policy_service.go
type PolicyService interface {
	// List returns all policies.
	List(ctx context.Context, opts ...RequestOption) (json.RawMessage, error)

	// Details returns policy details for a provider. An empty provider
	// means DefaultInstructionProvider.
	Details(ctx context.Context, policyID, provider string, opts ...RequestOption) (json.RawMessage, error)

	// Create creates a policy.
	Create(ctx context.Context, req *CreatePolicyRequest, opts ...RequestOption) (json.RawMessage, error)

	// Devices returns the devices assigned to policyID.
	Devices(ctx context.Context, policyID string, opts ...RequestOption) (json.RawMessage, error)

	// Instructions returns the instructions attached to policyID.
	Instructions(ctx context.Context, policyID, provider string, opts ...RequestOption) (json.RawMessage, error)

	// AddInstruction attaches instructionID to policyID.
	AddInstruction(ctx context.Context, policyID, instructionID string, opts ...RequestOption) (json.RawMessage, error)

	// RemoveInstruction detaches instructionID from policyID.
	RemoveInstruction(ctx context.Context, policyID, instructionID, provider string, opts ...RequestOption) (json.RawMessage, error)
}

// policyService implements PolicyService.
type policyService struct {
	*service
}

func providerOrDefault(provider string) string {
	if provider == "" {
		return DefaultInstructionProvider
	}
	return provider
}

func (s *policyService) List(ctx context.Context, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.publicURL("/policies"),
		headers: s.publicHeaders(),
	}, opts...)
}

func (s *policyService) Details(ctx context.Context, policyID, provider string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.publicURL("/policies/details?provider=" + providerOrDefault(provider) + "&policy_id=" + policyID),
		headers: s.publicHeaders(),
	}, opts...)
}

// Create posts a form body; optional fields are sent only when non-empty.
// The client-id and client-secret headers are added on purpose, since the
// public endpoint cannot authenticate the request without them.
func (s *policyService) Create(ctx context.Context, req *CreatePolicyRequest, opts ...RequestOption) (json.RawMessage, error) {
	if req == nil || req.Name == "" {
		return nil, errors.New("addigy: policy name is required")
	}

	form, err := query.Values(req)
	if err != nil {
		return nil, errors.Wrap(err, "encoding form body")
	}

	return s.do(ctx, &call{
		method:   http.MethodPost,
		url:      s.publicURL("/policies"),
		headers:  s.creds.KeyHeaders(),
		body:     form,
		encoding: api.EncodingForm,
	}, opts...)
}

func (s *policyService) Devices(ctx context.Context, policyID string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.publicURL("/policies/devices?policy_id=" + policyID),
		headers: s.publicHeaders(),
	}, opts...)
}

func (s *policyService) Instructions(ctx context.Context, policyID, provider string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.publicURL("/policies/instructions?provider=" + providerOrDefault(provider) + "&policy_id=" + policyID),
		headers: s.publicHeaders(),
	}, opts...)
}

type policyInstructionRequest struct {
	InstructionID string `json:"instruction_id"`
	PolicyID      string `json:"policy_id"`
}

func (s *policyService) AddInstruction(ctx context.Context, policyID, instructionID string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:   http.MethodPost,
		url:      s.publicURL("/policies/instructions"),
		headers:  s.publicHeaders(),
		body:     policyInstructionRequest{InstructionID: instructionID, PolicyID: policyID},
		encoding: api.EncodingJSON,
	}, opts...)
}

func (s *policyService) RemoveInstruction(ctx context.Context, policyID, instructionID, provider string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodDelete,
		url:     s.publicURL("/policies/instructions?policy_id=" + policyID + "&instruction_id=" + instructionID + "&provider=" + providerOrDefault(provider)),
		headers: s.publicHeaders(),
	}, opts...)
}
