package reporting

import (
	"sort"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

// AnalyzeFirmware groups devices by model and flags firmware drift. A model
// is consistent iff exactly one distinct firmware string was observed for
// it; a device with a missing model or firmware counts under "Unknown"
// rather than being dropped.
func AnalyzeFirmware(devices []domain.Device) (domain.FirmwareSummary, map[string]*domain.ModelFirmware, domain.ConsistencyAnalysis, domain.UpgradeRecommendation) {
	models := make(map[string]*domain.ModelFirmware)

	for _, dev := range devices {
		model := dev.Model
		if model == "" {
			model = "Unknown"
		}
		firmware := dev.Firmware
		if firmware == "" {
			firmware = "Unknown"
		}

		info, ok := models[model]
		if !ok {
			info = &domain.ModelFirmware{FirmwareVersions: []string{}}
			models[model] = info
		}
		if !containsString(info.FirmwareVersions, firmware) {
			info.FirmwareVersions = append(info.FirmwareVersions, firmware)
		}
		info.DeviceCount++
	}

	consistency := domain.ConsistencyAnalysis{
		ConsistentModels:   []string{},
		InconsistentModels: []string{},
	}
	devicesNeedingUpgrade := 0

	for _, model := range sortedModelNames(models) {
		info := models[model]
		info.VersionCount = len(info.FirmwareVersions)
		info.IsConsistent = info.VersionCount == 1

		if info.IsConsistent {
			consistency.ConsistentModels = append(consistency.ConsistentModels, model)
		} else {
			consistency.InconsistentModels = append(consistency.InconsistentModels, model)
			devicesNeedingUpgrade += info.DeviceCount
		}
	}
	consistency.OverallConsistency = len(consistency.InconsistentModels) == 0

	summary := domain.FirmwareSummary{
		TotalDevices:       len(devices),
		TotalModels:        len(models),
		ConsistentModels:   len(consistency.ConsistentModels),
		InconsistentModels: len(consistency.InconsistentModels),
	}

	upgrade := domain.UpgradeRecommendation{
		ModelsNeedingAttention: consistency.InconsistentModels,
		DevicesNeedingUpgrade:  devicesNeedingUpgrade,
	}

	return summary, models, consistency, upgrade
}

// sortedModelNames keeps consistency output deterministic across map
// iteration orders.
func sortedModelNames(models map[string]*domain.ModelFirmware) []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
