package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

func TestAnalyzeFirmware(t *testing.T) {
	devices := []domain.Device{
		{Serial: "Q2AB-0001", Model: "MR44", Firmware: "wireless-30-7"},
		{Serial: "Q2AB-0002", Model: "MR44", Firmware: "wireless-30-7"},
		{Serial: "Q2AB-0003", Model: "MR44", Firmware: "wireless-30-7"},
		{Serial: "Q2CD-0001", Model: "MR57", Firmware: "wireless-30-7"},
		{Serial: "Q2CD-0002", Model: "MR57", Firmware: "wireless-29-5"},
	}

	summary, models, consistency, upgrade := AnalyzeFirmware(devices)

	assert.Equal(t, 5, summary.TotalDevices)
	assert.Equal(t, 2, summary.TotalModels)
	assert.Equal(t, 1, summary.ConsistentModels)
	assert.Equal(t, 1, summary.InconsistentModels)

	require.Contains(t, models, "MR44")
	assert.True(t, models["MR44"].IsConsistent)
	assert.Equal(t, 3, models["MR44"].DeviceCount)
	assert.Equal(t, []string{"wireless-30-7"}, models["MR44"].FirmwareVersions)

	require.Contains(t, models, "MR57")
	assert.False(t, models["MR57"].IsConsistent)
	assert.Equal(t, 2, models["MR57"].VersionCount)

	assert.False(t, consistency.OverallConsistency)
	assert.Equal(t, []string{"MR44"}, consistency.ConsistentModels)
	assert.Equal(t, []string{"MR57"}, consistency.InconsistentModels)

	assert.Equal(t, []string{"MR57"}, upgrade.ModelsNeedingAttention)
	assert.Equal(t, 2, upgrade.DevicesNeedingUpgrade)
}

func TestAnalyzeFirmwareUnknownBuckets(t *testing.T) {
	devices := []domain.Device{
		{Serial: "Q2EF-0001", Model: "", Firmware: "switch-16-7"},
		{Serial: "Q2EF-0002", Model: "MS250-48", Firmware: ""},
	}

	summary, models, _, _ := AnalyzeFirmware(devices)

	assert.Equal(t, 2, summary.TotalDevices)
	require.Contains(t, models, "Unknown")
	assert.Equal(t, 1, models["Unknown"].DeviceCount)
	require.Contains(t, models, "MS250-48")
	assert.Equal(t, []string{"Unknown"}, models["MS250-48"].FirmwareVersions)
}

func TestAnalyzeFirmwareEmpty(t *testing.T) {
	summary, models, consistency, upgrade := AnalyzeFirmware(nil)

	assert.Zero(t, summary.TotalDevices)
	assert.Empty(t, models)
	assert.True(t, consistency.OverallConsistency)
	assert.Empty(t, consistency.InconsistentModels)
	assert.Zero(t, upgrade.DevicesNeedingUpgrade)
}
