package addigy

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/tphakala/go-addigy/internal/api"
)

// SoftwareService provides operations on the public catalog, custom software
// and staged software instructions.
//
//go:generate mockery --name=SoftwareService --output=mocks --outpkg=mocks --filename=software_service.go
type SoftwareService interface {
	// Public returns the public software catalog.
	Public(ctx context.Context, opts ...RequestOption) (json.RawMessage, error)

	// Custom returns all custom software.
	Custom(ctx context.Context, opts ...RequestOption) (json.RawMessage, error)

	// CustomVersions returns every version of the custom software identifier.
	CustomVersions(ctx context.Context, identifier string, opts ...RequestOption) (json.RawMessage, error)

	// CustomVersion returns a single custom software version.
	CustomVersion(ctx context.Context, instructionID string, opts ...RequestOption) (json.RawMessage, error)

	// CreateCustom creates a custom software entry. Addigy may answer a
	// successful create with an empty body, which is returned as is.
	CreateCustom(ctx context.Context, req *CustomSoftwareRequest, opts ...RequestOption) (json.RawMessage, error)

	// CopyToStage copies an instruction to the staging area. Internal API.
	CopyToStage(ctx context.Context, session SessionAuth, instructionID string, opts ...RequestOption) (json.RawMessage, error)

	// UpdateStaged pushes a modified staged instruction. Internal API.
	UpdateStaged(ctx context.Context, session SessionAuth, instruction any, opts ...RequestOption) (json.RawMessage, error)

	// ConfirmStaged confirms a staged instruction. Internal API.
	ConfirmStaged(ctx context.Context, session SessionAuth, instructionID string, opts ...RequestOption) (json.RawMessage, error)

	// CreateSmart creates custom software and completes it with a
	// description, icon and profiles through the staging workflow. It
	// returns the UpdateStaged response. Internal API.
	CreateSmart(ctx context.Context, session SessionAuth, req *SmartSoftwareRequest, opts ...RequestOption) (json.RawMessage, error)
}

// softwareService implements SoftwareService.
type softwareService struct {
	*service
}

func (s *softwareService) Public(ctx context.Context, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.publicURL("/catalog/public"),
		headers: s.publicHeaders(),
	}, opts...)
}

func (s *softwareService) Custom(ctx context.Context, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.publicURL("/custom-software"),
		headers: s.publicHeaders(),
	}, opts...)
}

func (s *softwareService) CustomVersions(ctx context.Context, identifier string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.publicURL("/custom-software?identifier=" + identifier),
		headers: s.publicHeaders(),
	}, opts...)
}

func (s *softwareService) CustomVersion(ctx context.Context, instructionID string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.publicURL("/custom-software?instructionid=" + instructionID),
		headers: s.publicHeaders(),
	}, opts...)
}

func (s *softwareService) CreateCustom(ctx context.Context, req *CustomSoftwareRequest, opts ...RequestOption) (json.RawMessage, error) {
	if req == nil {
		return nil, errors.New("addigy: custom software request cannot be nil")
	}
	body := *req
	if body.Downloads == nil {
		body.Downloads = []string{}
	}

	return s.do(ctx, &call{
		method:   http.MethodPost,
		url:      s.publicURL("/custom-software"),
		headers:  s.publicHeaders(),
		body:     body,
		encoding: api.EncodingJSON,
		mode:     decodeLenient,
	}, opts...)
}

type stageRequest struct {
	InstructionID string `json:"instructionid"`
}

// CopyToStage lives on the primary host and takes the cookie without the
// trailing semicolon.
func (s *softwareService) CopyToStage(ctx context.Context, session SessionAuth, instructionID string, opts ...RequestOption) (json.RawMessage, error) {
	headers := make(http.Header)
	headers.Set("Cookie", session.session().Cookie(false))

	return s.do(ctx, &call{
		method:   http.MethodPost,
		url:      s.siteURL("/copy_instruction_to_stage/"),
		headers:  headers,
		body:     stageRequest{InstructionID: instructionID},
		encoding: api.EncodingJSON,
		mode:     decodeLenient,
	}, opts...)
}

func (s *softwareService) UpdateStaged(ctx context.Context, session SessionAuth, instruction any, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:   http.MethodPost,
		url:      s.appURL("/software/update_staged_instruction/"),
		headers:  session.cookieHeaders(),
		body:     instruction,
		encoding: api.EncodingJSON,
		mode:     decodeLenient,
	}, opts...)
}

func (s *softwareService) ConfirmStaged(ctx context.Context, session SessionAuth, instructionID string, opts ...RequestOption) (json.RawMessage, error) {
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.appURL("/software/confirm_staged_instruction?instructionid=" + instructionID),
		headers: session.cookieHeaders(),
		mode:    decodeRaw,
	}, opts...)
}

// CreateSmart runs create, copy to stage, update staged and confirm in order.
// Nothing is rolled back when a later step fails.
func (s *softwareService) CreateSmart(ctx context.Context, session SessionAuth, req *SmartSoftwareRequest, opts ...RequestOption) (json.RawMessage, error) {
	if req == nil {
		return nil, errors.New("addigy: smart software request cannot be nil")
	}

	created, err := s.CreateCustom(ctx, &req.CustomSoftwareRequest, opts...)
	if err != nil {
		return nil, err
	}

	var instruction map[string]any
	if len(created) == 0 {
		return nil, errors.New("addigy: custom software create returned an empty body")
	}
	if err := json.Unmarshal(created, &instruction); err != nil {
		return nil, errors.Wrap(err, "decoding created custom software")
	}

	instructionID, _ := instruction["instructionId"].(string)
	if instructionID == "" {
		return nil, errors.New("addigy: created custom software has no instructionId")
	}

	logger := s.logger.WithField("instruction_id", instructionID)
	logger.WithField("step", "create").Debug("custom software created")

	if _, err := s.CopyToStage(ctx, session, instructionID, opts...); err != nil {
		return nil, err
	}
	logger.WithField("step", "stage").Debug("instruction staged")

	if req.Description == "" {
		delete(instruction, "description")
	} else {
		instruction["description"] = req.Description
	}
	if req.Icon != nil {
		instruction["icon"] = req.Icon
	}
	if req.Profiles != nil {
		instruction["profiles"] = req.Profiles
	}

	updated, err := s.UpdateStaged(ctx, session, instruction, opts...)
	if err != nil {
		return nil, err
	}
	logger.WithField("step", "update").Debug("staged instruction updated")

	if _, err := s.ConfirmStaged(ctx, session, instructionID, opts...); err != nil {
		return nil, err
	}
	logger.WithField("step", "confirm").Debug("staged instruction confirmed")

	return updated, nil
}
