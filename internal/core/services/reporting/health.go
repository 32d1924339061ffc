package reporting

import "math"

// Health status labels.
const (
	HealthHealthy        = "healthy"
	HealthNeedsAttention = "needs attention"
	StabilityStable      = "stable"
	StabilityUnstable    = "unstable"
)

// HealthPercentage is online devices over total devices, as a percentage
// rounded to 2 decimal places. Zero total yields zero, never a division
// error.
func HealthPercentage(online, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(online) / float64(total) * 100)
}

// HealthStatus labels a health percentage: above 95 is healthy.
func HealthStatus(pct float64) string {
	if pct > 95 {
		return HealthHealthy
	}
	return HealthNeedsAttention
}

// CompositeHealthScore adjusts the raw device health percentage with an
// alert penalty (2 points per alert, capped at 30) and a client-population
// bonus (1 point per 100 clients, capped at 10), clamped to [0, 100].
func CompositeHealthScore(deviceHealthPct float64, alertCount, totalClients int) float64 {
	penalty := math.Min(float64(alertCount)*2, 30)
	bonus := math.Min(float64(totalClients)/100, 10)
	return clamp(deviceHealthPct-penalty+bonus, 0, 100)
}

// NetworkStability labels an alert volume: fewer than 5 critical alerts is
// considered stable.
func NetworkStability(criticalAlerts int) string {
	if criticalAlerts < 5 {
		return StabilityStable
	}
	return StabilityUnstable
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
