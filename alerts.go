package addigy

import (
	"context"
	"encoding/json"
	"net/http"
)

// AlertService provides operations on monitoring alerts.
//
//go:generate mockery --name=AlertService --output=mocks --outpkg=mocks --filename=alert_service.go
type AlertService interface {
	// List returns one page of alerts. An empty status returns alerts in
	// every state; a nil page means page 1 with 10 alerts.
	List(ctx context.Context, status AlertStatus, page *PageOptions, opts ...RequestOption) (json.RawMessage, error)
}

// alertService implements AlertService.
type alertService struct {
	*service
}

func (s *alertService) List(ctx context.Context, status AlertStatus, page *PageOptions, opts ...RequestOption) (json.RawMessage, error) {
	pg, perPage := page.values()
	u := s.publicURL("/alerts?page=" + pg + "&per_page=" + perPage)
	if status != "" {
		u += "&status=" + string(status)
	}

	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     u,
		headers: s.publicHeaders(),
	}, opts...)
}

// MaintenanceService provides operations on maintenance windows.
//
//go:generate mockery --name=MaintenanceService --output=mocks --outpkg=mocks --filename=maintenance_service.go
type MaintenanceService interface {
	// List returns one page of maintenance items.
	List(ctx context.Context, page *PageOptions, opts ...RequestOption) (json.RawMessage, error)
}

// maintenanceService implements MaintenanceService.
type maintenanceService struct {
	*service
}

func (s *maintenanceService) List(ctx context.Context, page *PageOptions, opts ...RequestOption) (json.RawMessage, error) {
	pg, perPage := page.values()
	return s.do(ctx, &call{
		method:  http.MethodGet,
		url:     s.publicURL("/maintenance?page=" + pg + "&per_page=" + perPage),
		headers: s.publicHeaders(),
	}, opts...)
}
