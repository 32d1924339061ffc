package reporting

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bei612/meraki-workflows/internal/core/domain"
	"github.com/bei612/meraki-workflows/internal/core/ports"
)

// Generator assembles reports for one organization. It owns no state beyond
// configuration and a cached organization name; every report run fetches a
// fresh snapshot and discards it afterwards.
type Generator struct {
	dash        ports.Dashboard
	orgID       string
	fanoutLimit int
	now         func() time.Time
	newRunID    func() string

	orgNameOnce sync.Once
	orgName     string
}

// NewGenerator wires a Generator to a dashboard client. fanoutLimit bounds
// concurrent per-network calls; 0 selects the default.
func NewGenerator(dash ports.Dashboard, orgID string, fanoutLimit int) *Generator {
	return &Generator{
		dash:        dash,
		orgID:       orgID,
		fanoutLimit: fanoutLimit,
		now:         time.Now,
		newRunID:    func() string { return uuid.New().String() },
	}
}

// Params carries the per-report knobs a caller may set. Zero values select
// each report's default behavior.
type Params struct {
	Keyword           string `json:"keyword,omitempty"`
	FloorName         string `json:"floor_name,omitempty"`
	ClientMAC         string `json:"client_mac,omitempty"`
	ClientDescription string `json:"client_description,omitempty"`
	NetworkID         string `json:"network_id,omitempty"`
	ForecastDays      int    `json:"forecast_days,omitempty"`
}

// Generate dispatches to the named report. It returns the typed report
// result; the only errors it returns itself are an unknown report type and
// context cancellation — a canceled run yields no partial report.
func (g *Generator) Generate(ctx context.Context, t domain.ReportType, p Params) (any, error) {
	var result any

	switch t {
	case domain.ReportDeviceStatus:
		result = g.DeviceStatus(ctx)
	case domain.ReportDeviceSearch:
		result = g.DeviceSearch(ctx, p.Keyword)
	case domain.ReportClientCount:
		result = g.ClientCount(ctx)
	case domain.ReportFirmwareSummary:
		result = g.FirmwareSummary(ctx)
	case domain.ReportLicenseDetails:
		result = g.LicenseDetails(ctx)
	case domain.ReportInspection:
		result = g.DeviceInspection(ctx)
	case domain.ReportFloorPlanAPs:
		result = g.FloorPlanAPs(ctx, p.FloorName)
	case domain.ReportDeviceLocation:
		result = g.DeviceLocation(ctx, p.Keyword)
	case domain.ReportLostDevice:
		result = g.LostDeviceTrace(ctx, p.ClientMAC, p.ClientDescription)
	case domain.ReportAlertsLog:
		result = g.AlertsLog(ctx)
	case domain.ReportNetworkHealth:
		result = g.NetworkHealth(ctx)
	case domain.ReportSecurityPosture:
		result = g.SecurityPosture(ctx, p.NetworkID)
	case domain.ReportCapacityPlan:
		result = g.CapacityPlanning(ctx, p.ForecastDays)
	default:
		return nil, fmt.Errorf("unknown report type %q", t)
	}

	// All-or-nothing at the run level: a canceled run produces no partial
	// report, unlike the per-parent partial tolerance inside a completed run.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// newMeta stamps a fresh run header. A run id pinned on the context (by the
// Runner) wins over a generated one.
func (g *Generator) newMeta(ctx context.Context) domain.ReportMeta {
	runID, ok := runIDFrom(ctx)
	if !ok {
		runID = g.newRunID()
	}
	return domain.ReportMeta{
		RunID:            runID,
		OrganizationID:   g.orgID,
		OrganizationName: g.organizationName(ctx),
		QueryTime:        g.now().Format("2006-01-02 15:04:05"),
		Success:          true,
	}
}

// organizationName resolves the org's display name once per Generator.
// Failure falls back to the id; the name is cosmetic.
func (g *Generator) organizationName(ctx context.Context) string {
	g.orgNameOnce.Do(func() {
		org, err := g.dash.GetOrganization(ctx, g.orgID)
		if err != nil {
			log.Printf("reporting: could not resolve organization name: %v", err)
			g.orgName = g.orgID
			return
		}
		g.orgName = org.Name
	})
	return g.orgName
}

// fail marks a run failed. The caller returns the report as-is afterwards;
// sections already hold their zero values, which are the documented safe
// defaults.
func fail(meta *domain.ReportMeta, err error) {
	meta.Success = false
	meta.ErrorMessage = err.Error()
}

// warn attaches non-fatal warnings (e.g. pagination truncation) to a run.
func warn(meta *domain.ReportMeta, warnings []string) {
	meta.Warnings = append(meta.Warnings, warnings...)
}
