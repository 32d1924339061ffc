package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

func TestAnalyzeClientDistribution(t *testing.T) {
	breakdown := []domain.NetworkClientBreakdown{
		{NetworkID: "net-hq", NetworkName: "HQ", ClientCount: 1076, HeavyUsageCount: 12},
		{NetworkID: "net-warehouse", NetworkName: "Warehouse", ClientCount: 0},
		{NetworkID: "net-branch", NetworkName: "Branch", ClientCount: 0},
	}

	summary, distribution := AnalyzeClientDistribution(breakdown)

	assert.Equal(t, 1076, summary.TotalClients)
	assert.Equal(t, 3, summary.TotalNetworks)
	assert.Equal(t, 1, summary.NetworksWithClients)
	assert.Equal(t, 12, summary.HeavyUsageClients)
	assert.Equal(t, 358.67, summary.AvgClientsPerNetwork)

	assert.Equal(t, "HQ", distribution.MostActiveNetwork)
	assert.Equal(t, []string{"Warehouse", "Branch"}, distribution.NetworksWithoutClients)
	assert.Equal(t, 1.12, distribution.HeavyUsageRatio)
}

func TestAnalyzeClientDistributionTieGoesToFirst(t *testing.T) {
	breakdown := []domain.NetworkClientBreakdown{
		{NetworkName: "Alpha", ClientCount: 40},
		{NetworkName: "Beta", ClientCount: 40},
	}

	_, distribution := AnalyzeClientDistribution(breakdown)
	assert.Equal(t, "Alpha", distribution.MostActiveNetwork)
}

func TestAnalyzeClientDistributionFailedSlotCountsAsZero(t *testing.T) {
	breakdown := []domain.NetworkClientBreakdown{
		{NetworkName: "HQ", ClientCount: 10},
		{NetworkName: "Branch", Error: "dashboard request failed"},
	}

	summary, distribution := AnalyzeClientDistribution(breakdown)

	assert.Equal(t, 10, summary.TotalClients)
	assert.Equal(t, 2, summary.TotalNetworks)
	assert.Equal(t, []string{"Branch"}, distribution.NetworksWithoutClients)
}

func TestAnalyzeClientDistributionEmpty(t *testing.T) {
	summary, distribution := AnalyzeClientDistribution(nil)

	assert.Zero(t, summary.TotalClients)
	assert.Zero(t, summary.AvgClientsPerNetwork)
	assert.Empty(t, distribution.MostActiveNetwork)
	assert.Empty(t, distribution.NetworksWithoutClients)
}
