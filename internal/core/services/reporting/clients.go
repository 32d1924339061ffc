package reporting

import "github.com/bei612/meraki-workflows/internal/core/domain"

// AnalyzeClientDistribution derives the organization-wide client summary
// from the per-network fan-out breakdown. Networks whose overview call
// failed count as zero-client networks; ties for most active go to the
// first-seen network.
func AnalyzeClientDistribution(breakdown []domain.NetworkClientBreakdown) (domain.ClientCountSummary, domain.ClientDistribution) {
	summary := domain.ClientCountSummary{
		TotalNetworks: len(breakdown),
	}
	distribution := domain.ClientDistribution{
		NetworksWithoutClients: []string{},
	}

	maxCount := -1
	for _, nw := range breakdown {
		summary.TotalClients += nw.ClientCount
		summary.HeavyUsageClients += nw.HeavyUsageCount
		if nw.ClientCount > 0 {
			summary.NetworksWithClients++
		} else {
			distribution.NetworksWithoutClients = append(distribution.NetworksWithoutClients, nw.NetworkName)
		}
		if nw.ClientCount > maxCount {
			maxCount = nw.ClientCount
			distribution.MostActiveNetwork = nw.NetworkName
		}
	}

	if len(breakdown) > 0 {
		summary.AvgClientsPerNetwork = round2(float64(summary.TotalClients) / float64(len(breakdown)))
	}
	if summary.TotalClients > 0 {
		distribution.HeavyUsageRatio = round2(float64(summary.HeavyUsageClients) / float64(summary.TotalClients) * 100)
	}

	return summary, distribution
}
