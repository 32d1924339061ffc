package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthTrend(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	trend := GrowthTrend(100, 7, now)
	require.Len(t, trend, 14)

	// Oldest synthesized point: 6 days back at -2%/day.
	assert.Equal(t, "2024-03-09", trend[0].Date)
	assert.Equal(t, 88, trend[0].ClientCount)
	assert.False(t, trend[0].IsForecast)

	// Day offset 0 is today's observed baseline.
	today := trend[6]
	assert.Equal(t, "2024-03-15", today.Date)
	assert.Equal(t, 100, today.ClientCount)
	assert.False(t, today.IsForecast)

	// First forecast day grows at 2.5%/day.
	tomorrow := trend[7]
	assert.Equal(t, "2024-03-16", tomorrow.Date)
	assert.Equal(t, 102, tomorrow.ClientCount)
	assert.True(t, tomorrow.IsForecast)

	last := trend[13]
	assert.Equal(t, "2024-03-22", last.Date)
	assert.Equal(t, 117, last.ClientCount)
	assert.True(t, last.IsForecast)
}

func TestGrowthTrendFloorsAtZero(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	// With 60 days of history the oldest offsets push the linear model
	// negative; counts clamp to zero instead.
	trend := GrowthTrend(100, 60, now)
	require.Len(t, trend, 120)
	assert.Equal(t, 0, trend[0].ClientCount)
}

func TestGrowthTrendNoWindow(t *testing.T) {
	assert.Empty(t, GrowthTrend(100, 0, time.Now()))
	assert.Empty(t, GrowthTrend(100, -3, time.Now()))
}

func TestForecast30d(t *testing.T) {
	forecast := Forecast30d(100, 200, map[string]int{"MR": 10, "MS": 4})

	assert.Equal(t, 114, forecast.DeviceGrowth30d)
	assert.Equal(t, 250, forecast.ClientGrowth30d)
	assert.Equal(t, 12, forecast.LicenseRequirements["MR"])
	assert.Equal(t, 4, forecast.LicenseRequirements["MS"])
}

func TestForecast30dEmptyLicenses(t *testing.T) {
	forecast := Forecast30d(0, 0, nil)

	assert.Zero(t, forecast.DeviceGrowth30d)
	assert.Zero(t, forecast.ClientGrowth30d)
	assert.Empty(t, forecast.LicenseRequirements)
}
