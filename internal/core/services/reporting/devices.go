package reporting

import "github.com/bei612/meraki-workflows/internal/core/domain"

// SplitOrphans partitions devices by whether their network was part of the
// same fetch. Orphans (devices referencing an unknown or empty network)
// still count toward organization-wide totals but are excluded from
// network-scoped aggregates.
func SplitOrphans(devices []domain.Device, networks []domain.Network) (attached, orphans []domain.Device) {
	known := make(map[string]bool, len(networks))
	for _, nw := range networks {
		known[nw.ID] = true
	}
	for _, dev := range devices {
		if known[dev.NetworkID] {
			attached = append(attached, dev)
		} else {
			orphans = append(orphans, dev)
		}
	}
	return attached, orphans
}

// DevicesPerNetwork counts attached devices by network name.
func DevicesPerNetwork(attached []domain.Device, networks []domain.Network) map[string]int {
	names := make(map[string]string, len(networks))
	for _, nw := range networks {
		names[nw.ID] = nw.Name
	}
	counts := make(map[string]int)
	for _, dev := range attached {
		counts[names[dev.NetworkID]]++
	}
	return counts
}
