package addigy

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/tphakala/go-addigy/internal/api"
)

// UserService manages console users. Every call uses the internal API.
//
// Addigy addresses users by ID, so Update and Delete first fetch the full
// user list and look the user up by email on every call.
//
//go:generate mockery --name=UserService --output=mocks --outpkg=mocks --filename=user_service.go
type UserService interface {
	// List returns all users of the session's organization.
	List(ctx context.Context, session SessionAuth, opts ...RequestOption) ([]User, error)

	// Find returns the user whose email matches exactly (case-sensitive).
	// It returns a *NotFoundError when there is none.
	Find(ctx context.Context, session SessionAuth, email string, opts ...RequestOption) (*User, error)

	// Create invites a user.
	Create(ctx context.Context, session SessionAuth, req *CreateUserRequest, opts ...RequestOption) (json.RawMessage, error)

	// Update modifies the user with req.Email.
	Update(ctx context.Context, session SessionAuth, req *UpdateUserRequest, opts ...RequestOption) (json.RawMessage, error)

	// Delete removes the user with email.
	Delete(ctx context.Context, session SessionAuth, email string, opts ...RequestOption) (json.RawMessage, error)
}

// userService implements UserService.
type userService struct {
	*service
}

func (s *userService) List(ctx context.Context, session SessionAuth, opts ...RequestOption) ([]User, error) {
	body, err := s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.appURL("/account"),
		headers: session.cookieHeaders(),
	}, opts...)
	if err != nil {
		return nil, err
	}

	raw, err := decodeField(body, "users")
	if err != nil {
		return nil, err
	}

	var users []User
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &users); err != nil {
			return nil, errors.Wrap(err, "decoding users")
		}
	}
	return users, nil
}

func (s *userService) Find(ctx context.Context, session SessionAuth, email string, opts ...RequestOption) (*User, error) {
	users, err := s.List(ctx, session, opts...)
	if err != nil {
		return nil, err
	}
	return FindUserByEmail(users, email)
}

type createUserBody struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Policies []string `json:"policies"`
	Role     UserRole `json:"role"`
	Phone    string   `json:"phone,omitempty"`
}

func (s *userService) Create(ctx context.Context, session SessionAuth, req *CreateUserRequest, opts ...RequestOption) (json.RawMessage, error) {
	if req == nil {
		return nil, errors.New("addigy: create user request cannot be nil")
	}
	policies := req.Policies
	if policies == nil {
		policies = []string{}
	}

	return s.do(ctx, &call{
		method:  http.MethodPost,
		url:     s.appURL("/cloud/users/user"),
		headers: session.cookieHeaders(),
		body: createUserBody{
			Name:     req.Name,
			Email:    req.Email,
			Policies: policies,
			Role:     req.Role,
			Phone:    req.Phone,
		},
		encoding: api.EncodingJSON,
		mode:     decodeLenient,
	}, opts...)
}

// updateUserBody mirrors the console form. uid and addigy_role must be sent
// blank, and the ID appears both here and in the path.
type updateUserBody struct {
	ID                   string   `json:"id"`
	UID                  string   `json:"uid"`
	Name                 string   `json:"name"`
	AuthanvilTFAUsername string   `json:"authanvil_tfa_username"`
	Email                string   `json:"email"`
	Phone                string   `json:"phone"`
	Role                 UserRole `json:"role"`
	AddigyRole           string   `json:"addigy_role"`
	Policies             []string `json:"policies"`
}

func (s *userService) Update(ctx context.Context, session SessionAuth, req *UpdateUserRequest, opts ...RequestOption) (json.RawMessage, error) {
	if req == nil {
		return nil, errors.New("addigy: update user request cannot be nil")
	}

	user, err := s.Find(ctx, session, req.Email, opts...)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("user_id", user.ID).Debug("updating user")

	policies := req.Policies
	if policies == nil {
		policies = []string{}
	}

	return s.do(ctx, &call{
		method:  http.MethodPut,
		url:     s.appURL("/cloud/users/user/" + user.ID + "?user_email=" + escapeComponent(user.Email)),
		headers: session.cookieHeaders(),
		body: updateUserBody{
			ID:       user.ID,
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Role:     req.Role,
			Policies: policies,
		},
		encoding: api.EncodingJSON,
		mode:     decodeLenient,
	}, opts...)
}

func (s *userService) Delete(ctx context.Context, session SessionAuth, email string, opts ...RequestOption) (json.RawMessage, error) {
	user, err := s.Find(ctx, session, email, opts...)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("user_id", user.ID).Debug("deleting user")

	return s.do(ctx, &call{
		method:  http.MethodDelete,
		url:     s.appURL("/cloud/users/user/" + user.ID + "?user_email=" + escapeComponent(email)),
		headers: session.cookieHeaders(),
	}, opts...)
}
