package reporting

import "github.com/bei612/meraki-workflows/internal/core/domain"

// ssidMaxPoints is the per-SSID ceiling of the rubric: 3 for enterprise
// authentication plus 2 for strong encryption.
const ssidMaxPoints = 5

// WirelessSecurityScore scores the enabled SSIDs of a network against a
// weighted rubric: open auth earns 0, pre-shared-key 2, enterprise/RADIUS 3,
// and strong encryption adds 2. The score is points earned over the maximum
// possible, as a percentage. No enabled SSIDs yields 0.
func WirelessSecurityScore(ssids []domain.SSID) (score float64, enabled int) {
	points := 0
	for _, ssid := range ssids {
		if !ssid.Enabled {
			continue
		}
		enabled++

		switch ssid.AuthMode {
		case domain.AuthMode8021XMeraki, domain.AuthMode8021XRadius:
			points += 3
		case domain.AuthModePSK:
			points += 2
		case domain.AuthModeOpen:
			// no points
		}

		switch ssid.EncryptionMode {
		case domain.EncryptionModeWPA, domain.EncryptionModeWPAEAP:
			points += 2
		}
	}

	if enabled == 0 {
		return 0, 0
	}
	return round2(float64(points) / float64(enabled*ssidMaxPoints) * 100), enabled
}

// AnalyzeFirewall breaks down L3 firewall rules by policy and protocol.
func AnalyzeFirewall(rules []domain.FirewallRule) domain.FirewallAnalysis {
	analysis := domain.FirewallAnalysis{
		TotalRules: len(rules),
		ByProtocol: make(map[string]int),
	}
	for _, rule := range rules {
		switch rule.Policy {
		case "allow":
			analysis.AllowRules++
		case "deny":
			analysis.DenyRules++
		}
		protocol := rule.Protocol
		if protocol == "" {
			protocol = "any"
		}
		analysis.ByProtocol[protocol]++
	}
	return analysis
}

// AnalyzeClientAuth breaks down clients by SSID and by whether they carry
// an authenticated user identity.
func AnalyzeClientAuth(clients []domain.Client) domain.AuthAnalysis {
	analysis := domain.AuthAnalysis{
		TotalClients: len(clients),
		BySSID:       make(map[string]int),
	}
	for _, client := range clients {
		ssid := client.SSID
		if ssid == "" {
			ssid = "unknown"
		}
		analysis.BySSID[ssid]++
		if client.User != "" {
			analysis.Authenticated++
		} else {
			analysis.Guest++
		}
	}
	return analysis
}
