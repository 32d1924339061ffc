package ports

import (
	"context"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

// Dashboard is the read-only surface of the network-management service that
// report generation consumes. Every method is a remote GET behind the call
// envelope; paginated listings additionally return non-fatal warnings
// (e.g. cursor exhaustion) the caller must surface to operators.
type Dashboard interface {
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
	GetOrganization(ctx context.Context, orgID string) (domain.Organization, error)

	ListNetworks(ctx context.Context, orgID string) ([]domain.Network, error)

	// ListDevices walks the full device collection. nameFilter, when
	// non-empty, is applied case-insensitively after pagination completes.
	ListDevices(ctx context.Context, orgID, nameFilter string) ([]domain.Device, []string, error)
	GetDevice(ctx context.Context, serial string) (domain.Device, error)
	DeviceStatusOverview(ctx context.Context, orgID string) (domain.DeviceStatusOverview, error)

	ClientsOverview(ctx context.Context, networkID string) (domain.ClientOverview, error)
	ListNetworkClients(ctx context.Context, networkID string, perPage, timespanSec int) ([]domain.Client, error)
	ClientConnectionStats(ctx context.Context, networkID, clientID string, timespanSec int) (domain.ConnectionStats, error)

	ListAssuranceAlerts(ctx context.Context, orgID string) ([]domain.Alert, []string, error)

	LicensesOverview(ctx context.Context, orgID string) (domain.LicenseOverview, error)
	ListLicenses(ctx context.Context, orgID string) ([]domain.License, []string, error)

	ListFloorPlans(ctx context.Context, networkID string) ([]domain.FloorPlan, error)
	GetFloorPlan(ctx context.Context, networkID, floorPlanID string) (domain.FloorPlan, error)

	ListSSIDs(ctx context.Context, networkID string) ([]domain.SSID, error)
	L3FirewallRules(ctx context.Context, networkID string) ([]domain.FirewallRule, error)
	ListNetworkEvents(ctx context.Context, networkID, productType string, perPage, timespanSec int) ([]domain.NetworkEvent, error)
}

// ReportArchive persists generated report runs.
type ReportArchive interface {
	SaveRun(ctx context.Context, run domain.ReportRun) error
	GetRun(ctx context.Context, id string) (domain.ReportRun, error)
	ListRuns(ctx context.Context, limit int) ([]domain.ReportRun, error)
}

// RunNotifier receives report-run lifecycle events (e.g. for the WebSocket
// progress feed). Implementations must not block.
type RunNotifier interface {
	RunStarted(runID string, reportType domain.ReportType)
	RunFinished(run domain.ReportRun)
}
