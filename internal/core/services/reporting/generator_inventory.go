package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bei612/meraki-workflows/internal/core/domain"
	"github.com/bei612/meraki-workflows/internal/core/services/engine"
)

// Truncation limits inherited from the report catalogue. Fan-out output is
// input-ordered, so these "first N" rules are deterministic.
const (
	searchListLimit    = 10 // devices listed by a keyword search
	searchDetailLimit  = 3  // devices inspected in depth
	locationLimit      = 2  // devices resolved to a floor plan
	discoveryLimit     = 5  // clients discovered by the lost-device trace
	criticalAlertLimit = 10
	eventSampleLimit   = 3
	eventTimespanSec   = 3600
	clientTimespanSec  = 86400
)

// DeviceStatus reports the organization-wide device status overview.
func (g *Generator) DeviceStatus(ctx context.Context) domain.DeviceStatusReport {
	report := domain.DeviceStatusReport{
		ReportMeta: g.newMeta(ctx),
		RawCounts:  map[string]int{},
	}

	overview, err := g.dash.DeviceStatusOverview(ctx, g.orgID)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	counts := overview.Counts.ByStatus
	total := overview.Counts.Total()
	online := counts[domain.StatusOnline]
	pct := HealthPercentage(online, total)

	report.Overview = domain.DeviceStatusBreakdown{
		TotalDevices:    total,
		OnlineDevices:   online,
		OfflineDevices:  counts[domain.StatusOffline],
		AlertingDevices: counts[domain.StatusAlerting],
		DormantDevices:  counts[domain.StatusDormant],
	}
	report.Health = domain.HealthMetrics{
		OnlinePercentage: pct,
		HealthStatus:     HealthStatus(pct),
	}
	if counts != nil {
		report.RawCounts = counts
	}
	return report
}

// DeviceSearch lists devices matching a name keyword and inspects the first
// few in depth.
func (g *Generator) DeviceSearch(ctx context.Context, keyword string) domain.DeviceSearchReport {
	report := domain.DeviceSearchReport{
		ReportMeta: g.newMeta(ctx),
		Keyword:    keyword,
		Matched:    []domain.MatchedDevice{},
		Details:    []domain.DeviceDetail{},
	}

	devices, warnings, err := g.dash.ListDevices(ctx, g.orgID, keyword)
	warn(&report.ReportMeta, warnings)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	report.TotalMatched = len(devices)
	for i, dev := range devices {
		if i >= searchListLimit {
			break
		}
		report.Matched = append(report.Matched, domain.MatchedDevice{
			Index:     i + 1,
			Name:      dev.Name,
			Model:     dev.Model,
			Serial:    dev.Serial,
			NetworkID: dev.NetworkID,
		})
	}

	selected := devices
	if len(selected) > searchDetailLimit {
		selected = selected[:searchDetailLimit]
	}
	agg, err := engine.FanOut(ctx, selected,
		func(d domain.Device) string { return d.Serial },
		func(ctx context.Context, d domain.Device) (domain.Device, error) {
			return g.dash.GetDevice(ctx, d.Serial)
		},
		g.fanoutLimit)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}
	for _, r := range agg.Results {
		if r.Failed() {
			warn(&report.ReportMeta, []string{fmt.Sprintf("device %s: %v", r.ParentID, r.Err)})
			continue
		}
		report.Details = append(report.Details, domain.DeviceDetail{Device: r.Value, Status: "unknown"})
	}
	return report
}

// ClientCount fans out one client-overview call per network and aggregates
// the organization-wide distribution. A failing network occupies its slot
// with zero counts and an error annotation; it never aborts the batch.
func (g *Generator) ClientCount(ctx context.Context) domain.ClientCountReport {
	report := domain.ClientCountReport{
		ReportMeta: g.newMeta(ctx),
		Networks:   []domain.NetworkClientBreakdown{},
		Distribution: domain.ClientDistribution{
			NetworksWithoutClients: []string{},
		},
	}

	networks, err := g.dash.ListNetworks(ctx, g.orgID)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	agg, err := engine.FanOut(ctx, networks,
		func(nw domain.Network) string { return nw.ID },
		func(ctx context.Context, nw domain.Network) (domain.ClientOverview, error) {
			return g.dash.ClientsOverview(ctx, nw.ID)
		},
		g.fanoutLimit)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	for i, r := range agg.Results {
		nw := networks[i]
		slot := domain.NetworkClientBreakdown{
			NetworkName:  nw.Name,
			NetworkID:    nw.ID,
			ProductTypes: nw.ProductTypes,
			TimeZone:     nw.TimeZone,
		}
		if r.Failed() {
			slot.Error = r.Err.Error()
		} else {
			slot.ClientCount = r.Value.Counts.Total
			slot.HeavyUsageCount = r.Value.Counts.WithHeavyUsage
		}
		report.Networks = append(report.Networks, slot)
	}

	report.Summary, report.Distribution = AnalyzeClientDistribution(report.Networks)
	return report
}

// FirmwareSummary walks the full device collection and analyzes firmware
// consistency per model.
func (g *Generator) FirmwareSummary(ctx context.Context) domain.FirmwareReport {
	report := domain.FirmwareReport{
		ReportMeta: g.newMeta(ctx),
		Models:     map[string]*domain.ModelFirmware{},
		Consistency: domain.ConsistencyAnalysis{
			ConsistentModels:   []string{},
			InconsistentModels: []string{},
		},
		Upgrade: domain.UpgradeRecommendation{
			ModelsNeedingAttention: []string{},
		},
	}

	devices, warnings, err := g.dash.ListDevices(ctx, g.orgID, "")
	warn(&report.ReportMeta, warnings)
	if err != nil {
		// The full device list is essential here: a partial one would
		// misreport consistency.
		fail(&report.ReportMeta, err)
		return report
	}

	report.Summary, report.Models, report.Consistency, report.Upgrade = AnalyzeFirmware(devices)
	return report
}

// LicenseDetails reports licensing state under either licensing model. The
// overview is essential; per-license records are optional because
// co-termination organizations do not expose them.
func (g *Generator) LicenseDetails(ctx context.Context) domain.LicenseReport {
	report := domain.LicenseReport{
		ReportMeta: g.newMeta(ctx),
		Licenses:   []domain.License{},
		Analysis: domain.LicenseAnalysis{
			Status:  "unknown",
			ByState: map[string]int{},
		},
	}

	overview, err := g.dash.LicensesOverview(ctx, g.orgID)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}
	report.Overview = overview

	licenses, warnings, err := g.dash.ListLicenses(ctx, g.orgID)
	warn(&report.ReportMeta, warnings)
	if err != nil {
		// Expected on co-termination organizations; degrade to the overview.
		licenses = nil
	}
	report.Licenses = licenses
	if report.Licenses == nil {
		report.Licenses = []domain.License{}
	}

	byState := map[string]int{}
	for _, lic := range licenses {
		state := lic.State
		if state == "" {
			state = "unknown"
		}
		byState[state]++
	}

	status := overview.Status
	if status == "" {
		status = "unknown"
	}
	report.Analysis = domain.LicenseAnalysis{
		OverviewAvailable: true,
		DetailsAvailable:  len(licenses) > 0,
		TotalLicenses:     len(licenses),
		Status:            status,
		ByState:           byState,
	}
	return report
}

// DeviceInspection combines device status, alerts and a network-event
// sample into one inspection report.
func (g *Generator) DeviceInspection(ctx context.Context) domain.InspectionReport {
	report := domain.InspectionReport{
		ReportMeta: g.newMeta(ctx),
		DeviceStatus: domain.DeviceStatusAnalysis{
			StatusDistribution: map[string]int{},
		},
		Alerts: domain.AlertsAnalysis{
			RecentCritical: []domain.Alert{},
			Categories:     []string{},
		},
		NetworkEvents: domain.NetworkEventsInfo{
			RecentEvents: []domain.NetworkEvent{},
		},
		Recommendations: domain.Recommendations{
			ImmediateActions:       []string{},
			MaintenanceSuggestions: []string{},
		},
	}

	overview, err := g.dash.DeviceStatusOverview(ctx, g.orgID)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	alerts, warnings, err := g.dash.ListAssuranceAlerts(ctx, g.orgID)
	warn(&report.ReportMeta, warnings)
	if err != nil {
		// Alerts degrade to an empty section rather than failing the run.
		warn(&report.ReportMeta, []string{"alerts unavailable: " + err.Error()})
		alerts = nil
	}

	networks, err := g.dash.ListNetworks(ctx, g.orgID)
	if err != nil {
		warn(&report.ReportMeta, []string{"networks unavailable: " + err.Error()})
		networks = nil
	}

	counts := overview.Counts.ByStatus
	total := overview.Counts.Total()
	online := counts[domain.StatusOnline]
	pct := HealthPercentage(online, total)

	report.DeviceStatus = domain.DeviceStatusAnalysis{
		DeviceStatusBreakdown: domain.DeviceStatusBreakdown{
			TotalDevices:    total,
			OnlineDevices:   online,
			OfflineDevices:  counts[domain.StatusOffline],
			AlertingDevices: counts[domain.StatusAlerting],
			DormantDevices:  counts[domain.StatusDormant],
		},
		HealthPercentage:   pct,
		StatusDistribution: counts,
	}
	if report.DeviceStatus.StatusDistribution == nil {
		report.DeviceStatus.StatusDistribution = map[string]int{}
	}

	report.Alerts = analyzeAlerts(alerts, criticalAlertLimit/2)

	report.NetworkEvents = domain.NetworkEventsInfo{
		NetworksChecked: len(networks),
		RecentEvents:    []domain.NetworkEvent{},
	}
	if len(networks) > 0 {
		report.NetworkEvents.SampleNetwork = networks[0].Name
		events, err := g.dash.ListNetworkEvents(ctx, networks[0].ID, domain.ProductWireless, eventSampleLimit, eventTimespanSec)
		if err == nil {
			if len(events) > eventSampleLimit {
				events = events[:eventSampleLimit]
			}
			report.NetworkEvents.RecentEvents = events
			report.NetworkEvents.EventsSampled = len(events)
		}
	}

	report.Health = domain.HealthAssessment{
		OverallHealth:           HealthStatus(pct),
		CriticalIssues:          report.Alerts.CriticalAlerts,
		DevicesNeedingAttention: counts[domain.StatusOffline] + counts[domain.StatusAlerting],
		NetworkStability:        NetworkStability(report.Alerts.CriticalAlerts),
	}

	if n := counts[domain.StatusOffline]; n > 0 {
		report.Recommendations.ImmediateActions = append(report.Recommendations.ImmediateActions,
			fmt.Sprintf("investigate %d offline devices", n))
	}
	if n := counts[domain.StatusAlerting]; n > 0 {
		report.Recommendations.ImmediateActions = append(report.Recommendations.ImmediateActions,
			fmt.Sprintf("address %d alerting devices", n))
	}
	if report.Alerts.CriticalAlerts > 0 {
		report.Recommendations.ImmediateActions = append(report.Recommendations.ImmediateActions,
			"prioritize open critical alerts")
	}
	return report
}

// AlertsLog lists the organization's current assurance alerts.
func (g *Generator) AlertsLog(ctx context.Context) domain.AlertsLogReport {
	report := domain.AlertsLogReport{
		ReportMeta:     g.newMeta(ctx),
		CriticalAlerts: []domain.Alert{},
		EventsSample:   []domain.NetworkEvent{},
		Categories:     []string{},
	}

	alerts, warnings, err := g.dash.ListAssuranceAlerts(ctx, g.orgID)
	warn(&report.ReportMeta, warnings)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	analysis := analyzeAlerts(alerts, criticalAlertLimit)
	report.Summary = domain.AlertsSummary{
		Total:         analysis.TotalAlerts,
		CriticalCount: analysis.CriticalAlerts,
		WarningCount:  analysis.WarningAlerts,
		InfoCount:     analysis.InfoAlerts,
	}
	for _, alert := range alerts {
		if alert.ResolvedAt == nil {
			report.Summary.UnresolvedCount++
		}
	}
	report.CriticalAlerts = analysis.RecentCritical
	report.Categories = analysis.Categories

	// Event sample is best-effort; its absence never fails the run.
	if networks, err := g.dash.ListNetworks(ctx, g.orgID); err == nil && len(networks) > 0 {
		events, err := g.dash.ListNetworkEvents(ctx, networks[0].ID, domain.ProductWireless, eventSampleLimit, eventTimespanSec)
		if err == nil {
			if len(events) > eventSampleLimit {
				events = events[:eventSampleLimit]
			}
			report.EventsSample = events
		}
	}
	return report
}

// analyzeAlerts buckets alerts by severity and collects the distinct
// categories, keeping at most limit critical alerts for display.
func analyzeAlerts(alerts []domain.Alert, limit int) domain.AlertsAnalysis {
	analysis := domain.AlertsAnalysis{
		TotalAlerts:    len(alerts),
		RecentCritical: []domain.Alert{},
		Categories:     []string{},
	}

	seen := map[string]bool{}
	for _, alert := range alerts {
		switch alert.Severity {
		case domain.SeverityCritical:
			analysis.CriticalAlerts++
			if len(analysis.RecentCritical) < limit {
				analysis.RecentCritical = append(analysis.RecentCritical, alert)
			}
		case domain.SeverityWarning:
			analysis.WarningAlerts++
		default:
			analysis.InfoAlerts++
		}

		category := alert.CategoryType
		if category == "" {
			category = "unknown"
		}
		if !seen[category] {
			seen[category] = true
			analysis.Categories = append(analysis.Categories, category)
		}
	}
	sort.Strings(analysis.Categories)
	return analysis
}

// FloorPlanAPs locates access points on a floor plan, optionally selected by
// floor name.
func (g *Generator) FloorPlanAPs(ctx context.Context, floorName string) domain.FloorPlanReport {
	report := domain.FloorPlanReport{
		ReportMeta: g.newMeta(ctx),
		Available:  []domain.FloorPlanSummary{},
		APs:        []domain.APPosition{},
	}

	networks, err := g.dash.ListNetworks(ctx, g.orgID)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	agg, err := engine.FanOut(ctx, networks,
		func(nw domain.Network) string { return nw.ID },
		func(ctx context.Context, nw domain.Network) ([]domain.FloorPlan, error) {
			return g.dash.ListFloorPlans(ctx, nw.ID)
		},
		g.fanoutLimit)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	for i, r := range agg.Results {
		if r.Failed() {
			// Networks without floor plans are routine; skip quietly.
			continue
		}
		for _, plan := range r.Value {
			report.Available = append(report.Available, domain.FloorPlanSummary{
				NetworkName: networks[i].Name,
				NetworkID:   networks[i].ID,
				FloorPlanID: plan.FloorPlanID,
				Name:        plan.Name,
				ImageURL:    plan.ImageURL,
			})
		}
	}

	selected := selectFloorPlan(report.Available, floorName)
	if selected == nil {
		return report
	}

	detail, err := g.dash.GetFloorPlan(ctx, selected.NetworkID, selected.FloorPlanID)
	if err != nil {
		warn(&report.ReportMeta, []string{"floor plan detail unavailable: " + err.Error()})
		report.Selected = *selected
		return report
	}

	report.Selected = *selected
	report.Selected.ImageURL = detail.ImageURL
	for _, dev := range detail.Devices {
		report.APs = append(report.APs, domain.APPosition{
			Name:      dev.Name,
			Serial:    dev.Serial,
			Model:     dev.Model,
			Latitude:  dev.Latitude,
			Longitude: dev.Longitude,
			LanIP:     dev.LanIP,
			Tags:      dev.Tags,
		})
	}
	return report
}

// selectFloorPlan picks the first plan matching the floor-name filter, or
// the first plan overall when no filter is given.
func selectFloorPlan(available []domain.FloorPlanSummary, floorName string) *domain.FloorPlanSummary {
	if len(available) == 0 {
		return nil
	}
	if floorName == "" {
		return &available[0]
	}
	needle := strings.ToLower(floorName)
	for i := range available {
		if strings.Contains(strings.ToLower(available[i].Name), needle) {
			return &available[i]
		}
	}
	return nil
}

// DeviceLocation resolves the placement of keyword-matched devices,
// enriching the first few with their floor-plan image. The floor-plan cache
// deduplicates lookups when matched devices share a floor.
func (g *Generator) DeviceLocation(ctx context.Context, keyword string) domain.DeviceLocationReport {
	report := domain.DeviceLocationReport{
		ReportMeta: g.newMeta(ctx),
		Keyword:    keyword,
		Matched:    []domain.MatchedDevice{},
		Locations:  []domain.DeviceLocation{},
	}

	devices, warnings, err := g.dash.ListDevices(ctx, g.orgID, keyword)
	warn(&report.ReportMeta, warnings)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	report.TotalMatched = len(devices)
	for i, dev := range devices {
		report.Matched = append(report.Matched, domain.MatchedDevice{
			Index:     i + 1,
			Name:      dev.Name,
			Model:     dev.Model,
			Serial:    dev.Serial,
			NetworkID: dev.NetworkID,
		})
	}

	cache := engine.NewFloorPlanCache()
	selected := devices
	if len(selected) > locationLimit {
		selected = selected[:locationLimit]
	}
	for _, dev := range selected {
		detail, err := g.dash.GetDevice(ctx, dev.Serial)
		if err != nil {
			warn(&report.ReportMeta, []string{fmt.Sprintf("device %s: %v", dev.Serial, err)})
			continue
		}

		location := domain.DeviceLocation{
			Name:      detail.Name,
			Serial:    detail.Serial,
			Model:     detail.Model,
			Latitude:  detail.Latitude,
			Longitude: detail.Longitude,
			Address:   detail.Address,
		}

		if detail.FloorPlanID != "" && detail.NetworkID != "" {
			plan, err := cache.Get(ctx, detail.NetworkID, detail.FloorPlanID,
				func(ctx context.Context) (domain.FloorPlan, error) {
					return g.dash.GetFloorPlan(ctx, detail.NetworkID, detail.FloorPlanID)
				})
			if err == nil {
				location.FloorPlan = domain.FloorPlanRef{
					FloorPlanID: detail.FloorPlanID,
					Name:        plan.Name,
					NetworkID:   detail.NetworkID,
				}
				location.ImageURL = plan.ImageURL
			}
		}
		report.Locations = append(report.Locations, location)
	}
	return report
}

// LostDeviceTrace discovers recently seen clients and traces the first
// one's wireless connection stats. When a MAC is supplied, discovery is
// narrowed to it.
func (g *Generator) LostDeviceTrace(ctx context.Context, clientMAC, description string) domain.LostDeviceReport {
	method := "auto-discovery"
	if clientMAC != "" {
		method = "specified MAC"
	}
	report := domain.LostDeviceReport{
		ReportMeta: g.newMeta(ctx),
		Criteria: domain.SearchCriteria{
			ClientMAC:   clientMAC,
			Description: description,
			Method:      method,
		},
		Discovered: []domain.DiscoveredClient{},
		History:    []domain.NetworkEvent{},
	}

	networks, err := g.dash.ListNetworks(ctx, g.orgID)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	agg, err := engine.FanOut(ctx, networks,
		func(nw domain.Network) string { return nw.ID },
		func(ctx context.Context, nw domain.Network) ([]domain.Client, error) {
			return g.dash.ListNetworkClients(ctx, nw.ID, discoveryLimit, clientTimespanSec)
		},
		g.fanoutLimit)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	type candidate struct {
		client  domain.Client
		network domain.Network
	}
	var first *candidate

	for i, r := range agg.Results {
		if r.Failed() {
			continue
		}
		for _, client := range r.Value {
			if clientMAC != "" && !strings.EqualFold(client.MAC, clientMAC) {
				continue
			}
			if len(report.Discovered) >= discoveryLimit {
				break
			}
			report.Discovered = append(report.Discovered, domain.DiscoveredClient{
				Index:       len(report.Discovered) + 1,
				MAC:         client.MAC,
				Description: client.Description,
				ClientID:    client.ID,
				NetworkName: networks[i].Name,
				NetworkID:   networks[i].ID,
			})
			if first == nil {
				first = &candidate{client: client, network: networks[i]}
			}
		}
	}

	if first != nil {
		report.Trace = domain.ClientTrace{
			MAC:         first.client.MAC,
			Description: first.client.Description,
			NetworkName: first.network.Name,
		}
		stats, err := g.dash.ClientConnectionStats(ctx, first.network.ID, first.client.ID, clientTimespanSec)
		if err == nil {
			report.Trace.ConnectionStats = stats
		}
	}
	return report
}
