package addigy

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tphakala/go-addigy/internal/api"
)

const (
	kextPayloadType       = "com.apple.syspolicy.kernel-extension-policy"
	kextAddigyPayloadType = "com.addigy.syspolicy.kernel-extension-policy." + kextPayloadType
)

// ProfileService provides operations on MDM configuration profiles.
//
//go:generate mockery --name=ProfileService --output=mocks --outpkg=mocks --filename=profile_service.go
type ProfileService interface {
	// List returns all profiles, or those of a single instruction when
	// instructionID is non-empty.
	List(ctx context.Context, instructionID string, opts ...RequestOption) (json.RawMessage, error)

	// Create creates a profile from payloads.
	Create(ctx context.Context, name string, payloads []any, opts ...RequestOption) (json.RawMessage, error)

	// Update replaces the payloads of a profile.
	Update(ctx context.Context, instructionID string, payloads []any, opts ...RequestOption) (json.RawMessage, error)

	// Delete removes a profile.
	Delete(ctx context.Context, instructionID string, opts ...RequestOption) (json.RawMessage, error)

	// CreateKernelExtensionPolicy creates a kernel extension allow-list
	// profile. Internal API.
	CreateKernelExtensionPolicy(ctx context.Context, session SessionAuth, policy *KernelExtensionPolicy, opts ...RequestOption) (json.RawMessage, error)
}

// profileService implements ProfileService.
type profileService struct {
	*service
}

func (s *profileService) List(ctx context.Context, instructionID string, opts ...RequestOption) (json.RawMessage, error) {
	u := s.publicURL("/profiles")
	if instructionID != "" {
		u += "?instruction_id=" + instructionID
	}
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     u,
		headers: s.publicHeaders(),
	}, opts...)
}

type createProfileRequest struct {
	Name     string `json:"name"`
	Payloads []any  `json:"payloads"`
}

type updateProfileRequest struct {
	InstructionID string `json:"instruction_id"`
	Payloads      []any  `json:"payloads"`
}

type deleteProfileRequest struct {
	InstructionID string `json:"instruction_id"`
}

func (s *profileService) Create(ctx context.Context, name string, payloads []any, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:   http.MethodPost,
		url:      s.publicURL("/profiles"),
		headers:  s.publicHeaders(),
		body:     createProfileRequest{Name: name, Payloads: payloads},
		encoding: api.EncodingJSON,
	}, opts...)
}

func (s *profileService) Update(ctx context.Context, instructionID string, payloads []any, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:   http.MethodPut,
		url:      s.publicURL("/profiles"),
		headers:  s.publicHeaders(),
		body:     updateProfileRequest{InstructionID: instructionID, Payloads: payloads},
		encoding: api.EncodingJSON,
	}, opts...)
}

func (s *profileService) Delete(ctx context.Context, instructionID string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:   http.MethodDelete,
		url:      s.publicURL("/profiles"),
		headers:  s.publicHeaders(),
		body:     deleteProfileRequest{InstructionID: instructionID},
		encoding: api.EncodingJSON,
	}, opts...)
}

type kextPayload struct {
	AddigyPayloadType  string `json:"addigy_payload_type"`
	PayloadType        string `json:"payload_type"`
	PayloadVersion     int    `json:"payload_version"`
	PayloadIdentifier  string `json:"payload_identifier"`
	PayloadUUID        string `json:"payload_uuid"`
	PayloadGroupID     string `json:"payload_group_id"`
	PayloadEnabled     bool   `json:"payload_enabled"`
	PayloadDisplayName string `json:"payload_display_name"`
	AllowUserOverrides bool   `json:"allow_user_overrides"`

	// Omitted only when unset; an empty list is still sent.
	AllowedTeamIdentifiers  *[]string            `json:"allowed_team_identifiers,omitempty"`
	AllowedKernelExtensions *map[string][]string `json:"allowed_kernel_extensions,omitempty"`
}

type kextRequest struct {
	Payloads []kextPayload `json:"payloads"`
}

// newKernelExtensionPayload builds the payload with fresh payload and group UUIDs.
func (s *profileService) newKernelExtensionPayload(policy *KernelExtensionPolicy) kextPayload {
	payloadUUID := s.newUUID().String()
	groupUUID := s.newUUID().String()

	payload := kextPayload{
		AddigyPayloadType:  kextAddigyPayloadType,
		PayloadType:        kextPayloadType,
		PayloadVersion:     1,
		PayloadIdentifier:  kextAddigyPayloadType + "." + groupUUID,
		PayloadUUID:        payloadUUID,
		PayloadGroupID:     groupUUID,
		PayloadEnabled:     true,
		PayloadDisplayName: policy.Name,
		AllowUserOverrides: policy.AllowUserOverrides,
	}
	if policy.TeamIDs != nil {
		payload.AllowedTeamIdentifiers = &policy.TeamIDs
	}
	if policy.KernelExtensions != nil {
		payload.AllowedKernelExtensions = &policy.KernelExtensions
	}
	return payload
}

func (s *profileService) CreateKernelExtensionPolicy(ctx context.Context, session SessionAuth, policy *KernelExtensionPolicy, opts ...RequestOption) (json.RawMessage, error) {
	if policy == nil {
		policy = &KernelExtensionPolicy{}
	}
	return s.do(ctx, &call{
		method:   http.MethodPost,
		url:      s.appURL("/mdm/user/profiles/configurations"),
		headers:  session.cookieHeaders(),
		body:     kextRequest{Payloads: []kextPayload{s.newKernelExtensionPayload(policy)}},
		encoding: api.EncodingJSON,
		mode:     decodeLenient,
	}, opts...)
}
