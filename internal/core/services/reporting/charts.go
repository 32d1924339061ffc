package reporting

import (
	"sort"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

// Chart builders. Every chart carries a non-nil Data slice so the downstream
// renderer never dereferences a missing field.

// buildHealthCharts produces the four network-health descriptors: status
// pie, alert-type bar, client-distribution scatter, health gauge.
func buildHealthCharts(statusCounts map[string]int, alertsByType map[string]int, clientDist []domain.NetworkClientCount, healthScore float64) []domain.Chart {
	pie := domain.NewChart(domain.ChartPie, "Device Status Distribution")
	for _, status := range sortedKeys(statusCounts) {
		pie.Data = append(pie.Data, domain.ChartPoint{Name: status, Value: float64(statusCounts[status])})
	}

	bar := domain.NewChart(domain.ChartBar, "Alerts by Type")
	types := sortedKeysByCount(alertsByType)
	if len(types) > 8 {
		types = types[:8]
	}
	for _, t := range types {
		bar.Data = append(bar.Data, domain.ChartPoint{Name: t, Value: float64(alertsByType[t])})
	}

	scatter := domain.NewChart(domain.ChartScatter, "Clients per Network")
	dist := clientDist
	if len(dist) > 20 {
		dist = dist[:20]
	}
	for _, nw := range dist {
		scatter.Data = append(scatter.Data, domain.ChartPoint{Name: nw.NetworkName, Value: float64(nw.ClientCount)})
	}

	gauge := domain.NewChart(domain.ChartGauge, "Network Health Score")
	gauge.Data = append(gauge.Data, domain.ChartPoint{Name: "health", Value: round2(healthScore)})
	gauge.Option = map[string]any{"min": 0, "max": 100}

	return []domain.Chart{pie, bar, scatter, gauge}
}

// buildSecurityCharts produces the security-posture descriptors: a firewall
// protocol bar, an SSID auth matrix and the wireless score gauge.
func buildSecurityCharts(firewall domain.FirewallAnalysis, auth domain.AuthAnalysis, wirelessScore float64) []domain.Chart {
	protocols := domain.NewChart(domain.ChartBar, "Firewall Rules by Protocol")
	for _, p := range sortedKeys(firewall.ByProtocol) {
		protocols.Data = append(protocols.Data, domain.ChartPoint{Name: p, Value: float64(firewall.ByProtocol[p])})
	}

	matrix := domain.NewChart(domain.ChartHeatmap, "Clients by SSID")
	for _, ssid := range sortedKeys(auth.BySSID) {
		matrix.Data = append(matrix.Data, domain.ChartPoint{Name: ssid, Value: float64(auth.BySSID[ssid])})
	}

	gauge := domain.NewChart(domain.ChartGauge, "Wireless Security Score")
	gauge.Data = append(gauge.Data, domain.ChartPoint{Name: "score", Value: round2(wirelessScore)})
	gauge.Option = map[string]any{"min": 0, "max": 100}

	return []domain.Chart{protocols, matrix, gauge}
}

// buildCapacityCharts produces the capacity-planning descriptors: the trend
// line, the per-network device bar and the 30-day projection bar.
func buildCapacityCharts(trend []domain.TrendPoint, devicesPerNetwork map[string]int, forecast domain.CapacityForecast) []domain.Chart {
	line := domain.NewChart(domain.ChartLine, "Client Growth Trend")
	for _, point := range trend {
		line.Data = append(line.Data, domain.ChartPoint{Name: point.Date, Value: float64(point.ClientCount)})
	}

	density := domain.NewChart(domain.ChartBar, "Devices per Network")
	for _, name := range sortedKeys(devicesPerNetwork) {
		density.Data = append(density.Data, domain.ChartPoint{Name: name, Value: float64(devicesPerNetwork[name])})
	}

	projection := domain.NewChart(domain.ChartBar, "30-Day Growth Projection")
	projection.Data = append(projection.Data,
		domain.ChartPoint{Name: "devices", Value: float64(forecast.DeviceGrowth30d)},
		domain.ChartPoint{Name: "clients", Value: float64(forecast.ClientGrowth30d)},
	)

	return []domain.Chart{line, density, projection}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortedKeysByCount orders keys by descending count, ties alphabetical.
func sortedKeysByCount(m map[string]int) []string {
	keys := sortedKeys(m)
	sort.SliceStable(keys, func(i, j int) bool {
		return m[keys[i]] > m[keys[j]]
	})
	return keys
}
