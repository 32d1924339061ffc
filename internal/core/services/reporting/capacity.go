package reporting

import (
	"time"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

// Daily growth rates of the linear capacity model. These are explicit
// assumptions, not a statistical fit: synthesized history grows 2% per day
// toward today's baseline, the forecast extrapolates 2.5% per day forward.
const (
	historyDailyRate  = 0.02
	forecastDailyRate = 0.025
)

// 30-day growth multipliers for the headline forecast.
const (
	deviceGrowth30d  = 1.15
	clientGrowth30d  = 1.25
	licenseGrowth30d = 1.20
)

// GrowthTrend synthesizes a client-count trend around today's baseline:
// days days of history plus days days of forecast, one point per day.
// Day offset 0 is today; negative offsets are synthesized history, positive
// ones are forecast.
func GrowthTrend(totalClients, days int, now time.Time) []domain.TrendPoint {
	if days <= 0 {
		return []domain.TrendPoint{}
	}

	trend := make([]domain.TrendPoint, 0, 2*days)
	for i := 0; i < 2*days; i++ {
		dayOffset := i - days + 1

		rate := forecastDailyRate
		if dayOffset <= 0 {
			rate = historyDailyRate
		}
		growthFactor := 1 + float64(dayOffset)*rate
		count := int(float64(totalClients) * growthFactor)
		if count < 0 {
			count = 0
		}

		trend = append(trend, domain.TrendPoint{
			Date:        now.AddDate(0, 0, dayOffset).Format("2006-01-02"),
			ClientCount: count,
			IsForecast:  dayOffset > 0,
		})
	}
	return trend
}

// Forecast30d projects the 30-day device and client growth and the per-type
// license requirement from the current baseline.
func Forecast30d(totalDevices, totalClients int, licensedDeviceCounts map[string]int) domain.CapacityForecast {
	forecast := domain.CapacityForecast{
		DeviceGrowth30d:     int(float64(totalDevices) * deviceGrowth30d),
		ClientGrowth30d:     int(float64(totalClients) * clientGrowth30d),
		LicenseRequirements: make(map[string]int),
	}
	for deviceType, count := range licensedDeviceCounts {
		forecast.LicenseRequirements[deviceType] = int(float64(count) * licenseGrowth30d)
	}
	return forecast
}
