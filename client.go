package addigy

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-addigy/internal/api"
	"github.com/tphakala/go-addigy/internal/auth"
)

// Default hosts and configuration values.
const (
	DefaultBaseURL        = "https://prod.addigy.com"
	DefaultAppURL         = "https://app-prod.addigy.com"
	DefaultFileManagerURL = "https://file-manager-prod.addigy.com"

	defaultTimeout = 30 * time.Second
)

// Client is the Addigy API client.
//
// Public API services authenticate with the client ID and secret. Methods that
// take a SessionAuth call the internal console API; obtain one with Login or
// Impersonate and pass it explicitly. The client never caches sessions.
type Client struct {
	// Devices provides device, command and application operations.
	Devices DeviceService
	// Policies provides policy and policy instruction operations.
	Policies PolicyService
	// Alerts provides alert operations.
	Alerts AlertService
	// Maintenance provides maintenance window operations.
	Maintenance MaintenanceService
	// Profiles provides MDM profile operations.
	Profiles ProfileService
	// Software provides software catalog and custom software operations.
	Software SoftwareService
	// Files provides file upload and metadata operations.
	Files FileService
	// Users provides console user management.
	Users UserService
	// Integrations provides API key management.
	Integrations IntegrationService
	// Account provides organization-level console data.
	Account AccountService

	svc   *service
	admin adminCredentials
}

type adminCredentials struct {
	username string
	password string
}

// service is the state shared by every endpoint group. It is read-only after
// NewClient returns.
type service struct {
	transport      *api.Transport
	creds          *auth.Credentials
	defaultHeaders http.Header
	primaryHost    string
	appHost        string
	fileHost       string
	logger         logrus.FieldLogger
	newUUID        func() uuid.UUID
}

// NewClient creates a new Addigy client with the given options.
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{
		baseURL:        DefaultBaseURL,
		appURL:         DefaultAppURL,
		fileManagerURL: DefaultFileManagerURL,
		timeout:        defaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	creds := &auth.Credentials{
		ClientID:     cfg.clientID,
		ClientSecret: cfg.clientSecret,
	}
	if !creds.Valid() {
		return nil, ErrNoCredentials
	}

	logger := cfg.logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.timeout,
		}
	}

	transport := api.NewTransport(httpClient, logger)
	if cfg.userAgent != "" {
		transport.UserAgent = cfg.userAgent
	}

	svc := &service{
		transport:      transport,
		creds:          creds,
		defaultHeaders: creds.DefaultHeaders(),
		primaryHost:    strings.TrimSuffix(cfg.baseURL, "/"),
		appHost:        strings.TrimSuffix(cfg.appURL, "/"),
		fileHost:       strings.TrimSuffix(cfg.fileManagerURL, "/"),
		logger:         logger,
		newUUID:        uuid.New,
	}

	client := &Client{
		svc: svc,
		admin: adminCredentials{
			username: cfg.adminUsername,
			password: cfg.adminPassword,
		},
	}

	// Initialize services
	client.Devices = &deviceService{svc}
	client.Policies = &policyService{svc}
	client.Alerts = &alertService{svc}
	client.Maintenance = &maintenanceService{svc}
	client.Profiles = &profileService{svc}
	client.Files = &fileService{svc}
	client.Users = &userService{svc}
	client.Integrations = &integrationService{svc}
	client.Account = &accountService{svc}
	client.Software = &softwareService{svc}

	return client, nil
}

// BaseURL returns the configured primary host.
func (c *Client) BaseURL() string {
	return c.svc.primaryHost
}

// DefaultHeaders returns a copy of the headers sent with public API calls.
func (c *Client) DefaultHeaders() http.Header {
	return c.svc.defaultHeaders.Clone()
}
