package mock

import (
	"time"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

// Dataset is the fixed world the fake dashboard serves. All values are
// literals so report output is reproducible across runs.
type Dataset struct {
	Organization domain.Organization
	Networks     []domain.Network
	Devices      []domain.Device
	StatusCounts map[string]int
	Alerts       []domain.Alert
	Licenses     []domain.License
	LicenseOv    domain.LicenseOverview

	ClientOverviews map[string]domain.ClientOverview // by network id
	Clients         map[string][]domain.Client       // by network id
	ConnStats       domain.ConnectionStats

	FloorPlans map[string][]domain.FloorPlan // by network id
	SSIDs      map[string][]domain.SSID      // by network id
	Firewall   map[string][]domain.FirewallRule
	Events     map[string][]domain.NetworkEvent
}

func f64(v float64) *float64 { return &v }

// DefaultDataset builds the stock three-network organization used by mock
// mode and the integration tests.
func DefaultDataset() *Dataset {
	resolved := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	devices := []domain.Device{
		{Serial: "Q2KD-MR44-0001", MAC: "e0:cb:bc:10:00:01", Name: "MR44-Lobby", Model: "MR44", NetworkID: "net-hq", ProductType: domain.ProductWireless, Firmware: "wireless-30-7", LanIP: "10.1.0.11", Latitude: f64(40.4168), Longitude: f64(-3.7038), FloorPlanID: "fp-hq-1", Address: "1 Factory Way"},
		{Serial: "Q2KD-MR44-0002", MAC: "e0:cb:bc:10:00:02", Name: "MR44-Cafeteria", Model: "MR44", NetworkID: "net-hq", ProductType: domain.ProductWireless, Firmware: "wireless-30-7", LanIP: "10.1.0.12", Latitude: f64(40.4169), Longitude: f64(-3.7039), FloorPlanID: "fp-hq-1"},
		{Serial: "Q2KD-MR44-0003", MAC: "e0:cb:bc:10:00:03", Name: "MR44-Dock", Model: "MR44", NetworkID: "net-warehouse", ProductType: domain.ProductWireless, Firmware: "wireless-30-7", LanIP: "10.2.0.11"},
		{Serial: "Q2KD-MR57-0001", MAC: "e0:cb:bc:20:00:01", Name: "MR57-Engineering", Model: "MR57", NetworkID: "net-hq", ProductType: domain.ProductWireless, Firmware: "wireless-30-7", LanIP: "10.1.0.21", FloorPlanID: "fp-hq-1"},
		{Serial: "Q2KD-MR57-0002", MAC: "e0:cb:bc:20:00:02", Name: "MR57-Sales", Model: "MR57", NetworkID: "net-hq", ProductType: domain.ProductWireless, Firmware: "wireless-29-5", LanIP: "10.1.0.22"},
		{Serial: "Q2SW-MS250-0001", MAC: "e0:cb:bc:30:00:01", Name: "MS250-Core", Model: "MS250-48", NetworkID: "net-hq", ProductType: domain.ProductSwitch, Firmware: "switch-15-21", LanIP: "10.1.0.2"},
		{Serial: "Q2SW-MS250-0002", MAC: "e0:cb:bc:30:00:02", Name: "MS250-Warehouse", Model: "MS250-48", NetworkID: "net-warehouse", ProductType: domain.ProductSwitch, Firmware: "switch-15-21", LanIP: "10.2.0.2"},
		{Serial: "Q2MX-MX84-0001", MAC: "e0:cb:bc:40:00:01", Name: "MX84-Edge", Model: "MX84", NetworkID: "net-hq", ProductType: domain.ProductAppliance, Firmware: "appliance-18-2", LanIP: "10.1.0.1"},
		{Serial: "Q2MX-MX68-0001", MAC: "e0:cb:bc:40:00:02", Name: "MX68-Branch", Model: "MX68", NetworkID: "net-branch", ProductType: domain.ProductAppliance, Firmware: "appliance-18-2", LanIP: "10.3.0.1"},
		// Device left behind after its network was deleted.
		{Serial: "Q2KD-MR33-9999", MAC: "e0:cb:bc:99:00:01", Name: "MR33-Storage", Model: "MR33", NetworkID: "net-gone", ProductType: domain.ProductWireless, Firmware: "wireless-28-1", LanIP: ""},
	}

	return &Dataset{
		Organization: domain.Organization{ID: "org-100", Name: "Acme Industrial", URL: "https://dashboard.example.com/o/org-100"},
		Networks: []domain.Network{
			{ID: "net-hq", OrganizationID: "org-100", Name: "HQ Campus", ProductTypes: []string{domain.ProductWireless, domain.ProductSwitch, domain.ProductAppliance}, TimeZone: "Europe/Madrid"},
			{ID: "net-warehouse", OrganizationID: "org-100", Name: "Warehouse", ProductTypes: []string{domain.ProductWireless, domain.ProductSwitch}, TimeZone: "Europe/Madrid"},
			{ID: "net-branch", OrganizationID: "org-100", Name: "Branch Office", ProductTypes: []string{domain.ProductAppliance}, TimeZone: "Europe/Lisbon"},
		},
		Devices: devices,
		StatusCounts: map[string]int{
			domain.StatusOnline:   8,
			domain.StatusOffline:  1,
			domain.StatusAlerting: 1,
			domain.StatusDormant:  0,
		},
		Alerts: []domain.Alert{
			{ID: "alert-1", Type: "device_down", Severity: domain.SeverityCritical, CategoryType: "connectivity", Title: "MR57-Sales went offline", StartedAt: time.Date(2026, 2, 11, 4, 12, 0, 0, time.UTC), Scope: domain.AlertScope{Devices: []domain.AlertDevice{{Serial: "Q2KD-MR57-0002", Name: "MR57-Sales"}}}},
			{ID: "alert-2", Type: "high_channel_utilization", Severity: domain.SeverityWarning, CategoryType: "performance", Title: "Channel utilization above 80%", StartedAt: time.Date(2026, 2, 11, 6, 45, 0, 0, time.UTC)},
			{ID: "alert-3", Type: "firmware_update_available", Severity: domain.SeverityInfo, CategoryType: "maintenance", Title: "Firmware update available", StartedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC), ResolvedAt: &resolved},
		},
		Licenses: []domain.License{
			{ID: "lic-1", LicenseKey: "Z2AA-BBBB-CCCC", LicenseType: "ENT", DeviceSerial: "Q2KD-MR44-0001", NetworkID: "net-hq", State: "active", ExpirationDate: "2027-03-01"},
			{ID: "lic-2", LicenseKey: "Z2DD-EEEE-FFFF", LicenseType: "ENT", DeviceSerial: "Q2KD-MR57-0001", NetworkID: "net-hq", State: "active", ExpirationDate: "2027-03-01"},
			{ID: "lic-3", LicenseKey: "Z2GG-HHHH-IIII", LicenseType: "SEC", DeviceSerial: "Q2MX-MX84-0001", NetworkID: "net-hq", State: "expiring", ExpirationDate: "2026-09-15"},
		},
		LicenseOv: domain.LicenseOverview{
			Status:         "OK",
			ExpirationDate: "Mar 1, 2027 UTC",
			LicensedDeviceCounts: map[string]int{
				"MR": 6,
				"MS": 2,
				"MX": 2,
			},
		},
		ClientOverviews: map[string]domain.ClientOverview{
			"net-hq":        {Counts: domain.ClientCounts{Total: 42, WithHeavyUsage: 3}},
			"net-warehouse": {Counts: domain.ClientCounts{Total: 7, WithHeavyUsage: 0}},
			"net-branch":    {Counts: domain.ClientCounts{Total: 0, WithHeavyUsage: 0}},
		},
		Clients: map[string][]domain.Client{
			"net-hq": {
				{ID: "k1000001", MAC: "aa:bb:cc:00:00:01", Description: "laptop-ines", IP: "10.1.20.31", User: "ines", SSID: "Acme Corp", Status: "Online", Usage: domain.ClientUsage{Sent: 120_000, Recv: 880_000}},
				{ID: "k1000002", MAC: "aa:bb:cc:00:00:02", Description: "scanner-07", IP: "10.1.20.44", SSID: "Acme IoT", Status: "Online", Usage: domain.ClientUsage{Sent: 4_000, Recv: 9_000}},
				{ID: "k1000003", MAC: "aa:bb:cc:00:00:03", Description: "visitor-phone", IP: "10.1.30.12", SSID: "Acme Guest", Status: "Online"},
			},
			"net-warehouse": {
				{ID: "k2000001", MAC: "aa:bb:cc:10:00:01", Description: "forklift-tablet", IP: "10.2.20.8", User: "ops", SSID: "Acme Corp", Status: "Online"},
			},
		},
		ConnStats: domain.ConnectionStats{Assoc: 4, Auth: 2, DHCP: 1, DNS: 0, Success: 57},
		FloorPlans: map[string][]domain.FloorPlan{
			"net-hq": {
				{FloorPlanID: "fp-hq-1", Name: "HQ Floor 1", ImageURL: "https://dashboard.example.com/fp/fp-hq-1.png", Devices: []domain.Device{devices[0], devices[1], devices[3]}},
				{FloorPlanID: "fp-hq-2", Name: "HQ Floor 2", ImageURL: "https://dashboard.example.com/fp/fp-hq-2.png"},
			},
		},
		SSIDs: map[string][]domain.SSID{
			"net-hq": {
				{Number: 0, Name: "Acme Corp", Enabled: true, AuthMode: domain.AuthMode8021XRadius, EncryptionMode: domain.EncryptionModeWPAEAP},
				{Number: 1, Name: "Acme IoT", Enabled: true, AuthMode: domain.AuthModePSK, EncryptionMode: domain.EncryptionModeWPA},
				{Number: 2, Name: "Acme Guest", Enabled: true, AuthMode: domain.AuthModeOpen},
				{Number: 3, Name: "Legacy", Enabled: false, AuthMode: domain.AuthModePSK},
			},
			"net-warehouse": {
				{Number: 0, Name: "Acme Corp", Enabled: true, AuthMode: domain.AuthMode8021XRadius, EncryptionMode: domain.EncryptionModeWPAEAP},
			},
		},
		Firewall: map[string][]domain.FirewallRule{
			"net-hq": {
				{Comment: "Block guest to corp", Policy: "deny", Protocol: "any", SrcCidr: "10.1.30.0/24", DestCidr: "10.1.0.0/16"},
				{Comment: "Allow DNS", Policy: "allow", Protocol: "udp", SrcCidr: "any", DestCidr: "10.1.0.53/32", DestPort: "53"},
				{Comment: "Default rule", Policy: "allow", Protocol: "any", SrcCidr: "any", DestCidr: "any"},
			},
			"net-branch": {
				{Comment: "Default rule", Policy: "allow", Protocol: "any", SrcCidr: "any", DestCidr: "any"},
			},
		},
		Events: map[string][]domain.NetworkEvent{
			"net-hq": {
				{OccurredAt: time.Date(2026, 2, 11, 7, 2, 11, 0, time.UTC), Type: "association", Description: "802.11 association", ClientMAC: "aa:bb:cc:00:00:01", DeviceSerial: "Q2KD-MR44-0001"},
				{OccurredAt: time.Date(2026, 2, 11, 7, 2, 12, 0, time.UTC), Type: "wpa_auth", Description: "WPA authentication", ClientMAC: "aa:bb:cc:00:00:01", DeviceSerial: "Q2KD-MR44-0001"},
				{OccurredAt: time.Date(2026, 2, 11, 7, 14, 3, 0, time.UTC), Type: "disassociation", Description: "802.11 disassociation", ClientMAC: "aa:bb:cc:00:00:03", DeviceSerial: "Q2KD-MR44-0002"},
			},
			"net-warehouse": {
				{OccurredAt: time.Date(2026, 2, 11, 6, 40, 0, 0, time.UTC), Type: "association", Description: "802.11 association", ClientMAC: "aa:bb:cc:10:00:01", DeviceSerial: "Q2KD-MR44-0003"},
			},
		},
	}
}
