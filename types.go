package addigy

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// AlertStatus filters alerts by state.
type AlertStatus string

const (
	AlertAcknowledged AlertStatus = "Acknowledged"
	AlertResolved     AlertStatus = "Resolved"
	AlertUnattended   AlertStatus = "Unattended"
)

// Valid reports whether s is one of the known alert statuses.
func (s AlertStatus) Valid() bool {
	switch s {
	case AlertAcknowledged, AlertResolved, AlertUnattended:
		return true
	default:
		return false
	}
}

// UserRole is the role assigned to a console user.
type UserRole string

const (
	RoleOwner UserRole = "power"
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// SessionAuth is the organization, session token and email triple required by
// internal API calls. Values are immutable snapshots and safe to share between
// goroutines; their lifetime is decided by Addigy.
type SessionAuth struct {
	OrgID        string `json:"orgid"`
	AuthToken    string `json:"authtoken"`
	EmailAddress string `json:"email"`
}

// PageOptions configures page-numbered list calls.
type PageOptions struct {
	Page    int
	PerPage int
}

const (
	defaultPage    = 1
	defaultPerPage = 10
)

func (p *PageOptions) values() (page, perPage string) {
	pg, pp := defaultPage, defaultPerPage
	if p != nil {
		if p.Page > 0 {
			pg = p.Page
		}
		if p.PerPage > 0 {
			pp = p.PerPage
		}
	}
	return strconv.Itoa(pg), strconv.Itoa(pp)
}

// User is a console user account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`

	// Raw holds the user object exactly as returned.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*u = User(p)
	u.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// FindUserByEmail returns the first user whose email equals email exactly.
// Matching is case-sensitive.
func FindUserByEmail(users []User, email string) (*User, error) {
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, &NotFoundError{ResourceType: "user", Field: "email", Value: email}
}

// CreateUserRequest contains data for creating a console user.
type CreateUserRequest struct {
	Email    string
	Name     string
	Policies []string
	Role     UserRole
	Phone    string
}

// UpdateUserRequest contains data for updating a console user. The user is
// located by Email.
type UpdateUserRequest struct {
	Email    string
	Name     string
	Policies []string
	Role     UserRole
	Phone    string
}

// CreatePolicyRequest contains data for creating a policy.
type CreatePolicyRequest struct {
	Name     string `url:"name"`
	Icon     string `url:"icon,omitempty"`
	Color    string `url:"color,omitempty"`
	ParentID string `url:"parent_id,omitempty"`
}

// CustomSoftwareRequest contains data for creating a custom software entry.
type CustomSoftwareRequest struct {
	BaseIdentifier     string   `json:"base_identifier"`
	Version            string   `json:"version"`
	Downloads          []string `json:"downloads"`
	InstallationScript string   `json:"installation_script"`
	ConditionScript    string   `json:"condition"`
	RemovalScript      string   `json:"remove_script"`
}

// SmartSoftwareRequest contains data for CreateSmart. Description replaces the
// created entry's description (an empty value removes it); Icon and Profiles
// are merged only when non-nil.
type SmartSoftwareRequest struct {
	CustomSoftwareRequest

	Description string
	Icon        any
	Profiles    any
}

// KernelExtensionPolicy describes a kernel extension allow-list profile.
type KernelExtensionPolicy struct {
	Name               string
	AllowUserOverrides bool
	// TeamIDs lists allowed team identifiers.
	TeamIDs []string
	// KernelExtensions maps team identifiers to allowed bundle identifiers.
	KernelExtensions map[string][]string
}

// decodeField extracts a single top-level field from a JSON object.
func decodeField(body json.RawMessage, field string) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, errors.Wrapf(err, "decoding response field %q", field)
	}
	return obj[field], nil
}
