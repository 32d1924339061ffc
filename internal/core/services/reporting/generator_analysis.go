package reporting

import (
	"context"

	"github.com/bei612/meraki-workflows/internal/core/domain"
	"github.com/bei612/meraki-workflows/internal/core/services/engine"
)

const (
	defaultForecastDays  = 7
	postureClientPerPage = 100
)

// NetworkHealth combines the device status rollup, current alerts and the
// per-network client population into one composite health score.
func (g *Generator) NetworkHealth(ctx context.Context) domain.NetworkHealthReport {
	report := domain.NetworkHealthReport{
		ReportMeta:         g.newMeta(ctx),
		StatusBreakdown:    map[string]int{},
		ClientDistribution: []domain.NetworkClientCount{},
		Charts:             []domain.Chart{},
	}

	overview, err := g.dash.DeviceStatusOverview(ctx, g.orgID)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	alerts, warnings, err := g.dash.ListAssuranceAlerts(ctx, g.orgID)
	warn(&report.ReportMeta, warnings)
	if err != nil {
		// Alerts only feed the penalty term; degrade to zero alerts.
		warn(&report.ReportMeta, []string{"alerts unavailable: " + err.Error()})
		alerts = nil
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

	totalClients := 0
	for i, r := range agg.Results {
		slot := domain.NetworkClientCount{
			NetworkName:  networks[i].Name,
			NetworkID:    networks[i].ID,
			ProductTypes: networks[i].ProductTypes,
		}
		if r.Failed() {
			slot.Error = r.Err.Error()
		} else {
			slot.ClientCount = r.Value.Counts.Total
			totalClients += r.Value.Counts.Total
		}
		report.ClientDistribution = append(report.ClientDistribution, slot)
	}

	counts := overview.Counts.ByStatus
	total := overview.Counts.Total()
	online := counts[domain.StatusOnline]
	devicePct := HealthPercentage(online, total)
	score := CompositeHealthScore(devicePct, len(alerts), totalClients)

	report.TotalDevices = total
	report.OnlineDevices = online
	report.TotalClients = totalClients
	report.TotalNetworks = len(networks)
	report.HealthScore = score
	if counts != nil {
		report.StatusBreakdown = counts
	}
	report.Performance = domain.PerformanceSummary{
		HealthScore:      score,
		UptimePercentage: devicePct,
	}

	alertsByType := map[string]int{}
	for _, alert := range alerts {
		t := alert.Type
		if t == "" {
			t = "unknown"
		}
		alertsByType[t]++
	}
	report.Charts = buildHealthCharts(report.StatusBreakdown, alertsByType, report.ClientDistribution, score)
	return report
}

// SecurityPosture evaluates one network's firewall and wireless
// configuration. An empty networkID selects the organization's first
// network. Each configuration surface degrades independently: an appliance
// network has no SSIDs, a wireless one no L3 rules.
func (g *Generator) SecurityPosture(ctx context.Context, networkID string) domain.SecurityPostureReport {
	report := domain.SecurityPostureReport{
		ReportMeta: g.newMeta(ctx),
		Firewall: domain.FirewallAnalysis{
			ByProtocol: map[string]int{},
		},
		Auth: domain.AuthAnalysis{
			BySSID: map[string]int{},
		},
		Charts: []domain.Chart{},
	}

	networks, err := g.dash.ListNetworks(ctx, g.orgID)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	var target *domain.Network
	for i := range networks {
		if networkID == "" || networks[i].ID == networkID {
			target = &networks[i]
			break
		}
	}
	if target == nil {
		fail(&report.ReportMeta, &domain.CallError{
			Class:   domain.ErrClassClient,
			Op:      "networks.resolve",
			Message: "no network matches the requested id",
		})
		return report
	}
	report.NetworkName = target.Name

	rules, err := g.dash.L3FirewallRules(ctx, target.ID)
	if err != nil {
		warn(&report.ReportMeta, []string{"firewall rules unavailable: " + err.Error()})
		rules = nil
	}
	report.Firewall = AnalyzeFirewall(rules)

	ssids, err := g.dash.ListSSIDs(ctx, target.ID)
	if err != nil {
		warn(&report.ReportMeta, []string{"ssids unavailable: " + err.Error()})
		ssids = nil
	}
	report.WirelessScore, report.EnabledSSIDs = WirelessSecurityScore(ssids)

	clients, err := g.dash.ListNetworkClients(ctx, target.ID, postureClientPerPage, clientTimespanSec)
	if err != nil {
		warn(&report.ReportMeta, []string{"clients unavailable: " + err.Error()})
		clients = nil
	}
	report.Auth = AnalyzeClientAuth(clients)

	report.Charts = buildSecurityCharts(report.Firewall, report.Auth, report.WirelessScore)
	return report
}

// CapacityPlanning extrapolates device and client growth from the current
// baseline. forecastDays bounds the synthesized trend window; 0 selects the
// default week.
func (g *Generator) CapacityPlanning(ctx context.Context, forecastDays int) domain.CapacityPlanReport {
	if forecastDays <= 0 {
		forecastDays = defaultForecastDays
	}
	report := domain.CapacityPlanReport{
		ReportMeta:  g.newMeta(ctx),
		GrowthTrend: []domain.TrendPoint{},
		Forecast: domain.CapacityForecast{
			LicenseRequirements: map[string]int{},
		},
		Charts: []domain.Chart{},
	}

	networks, err := g.dash.ListNetworks(ctx, g.orgID)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	devices, warnings, err := g.dash.ListDevices(ctx, g.orgID, "")
	warn(&report.ReportMeta, warnings)
	if err != nil {
		fail(&report.ReportMeta, err)
		return report
	}

	licenses, err := g.dash.LicensesOverview(ctx, g.orgID)
	if err != nil {
		// License counts only feed the per-type requirement projection.
		warn(&report.ReportMeta, []string{"license overview unavailable: " + err.Error()})
		licenses = domain.LicenseOverview{}
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

	totalClients := 0
	for _, r := range agg.Results {
		if !r.Failed() {
			totalClients += r.Value.Counts.Total
		}
	}

	// Orphaned devices still count toward the organization totals but are
	// excluded from the per-network density chart.
	attached, _ := SplitOrphans(devices, networks)

	report.CurrentDevices = len(devices)
	report.CurrentClients = totalClients
	report.TotalNetworks = len(networks)
	report.GrowthTrend = GrowthTrend(totalClients, forecastDays, g.now())
	report.Forecast = Forecast30d(len(devices), totalClients, licenses.LicensedDeviceCounts)
	if report.Forecast.LicenseRequirements == nil {
		report.Forecast.LicenseRequirements = map[string]int{}
	}
	report.Charts = buildCapacityCharts(report.GrowthTrend, DevicesPerNetwork(attached, networks), report.Forecast)
	return report
}
