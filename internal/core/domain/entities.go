package domain

import "time"

// Organization is the top-level tenant scope. Immutable for the duration of
// a report run.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Network groups devices and clients under an organization, tagged with the
// product capabilities deployed in it.
type Network struct {
	ID             string   `json:"id"`
	OrganizationID string   `json:"organizationId"`
	Name           string   `json:"name"`
	ProductTypes   []string `json:"productTypes"`
	TimeZone       string   `json:"timeZone"`
	Tags           []string `json:"tags,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// Product types reported in Network.ProductTypes and Device.ProductType.
const (
	ProductWireless        = "wireless"
	ProductAppliance       = "appliance"
	ProductSwitch          = "switch"
	ProductCamera          = "camera"
	ProductSensor          = "sensor"
	ProductCellularGateway = "cellularGateway"
)

// Device is a managed hardware unit. Serial is the stable identity.
// A device belongs to exactly one network at a time; a device whose
// NetworkID does not match any network fetched in the same scan is orphaned
// and excluded from network-scoped aggregates.
type Device struct {
	Serial      string   `json:"serial"`
	MAC         string   `json:"mac"`
	Name        string   `json:"name"`
	Model       string   `json:"model"`
	NetworkID   string   `json:"networkId"`
	ProductType string   `json:"productType"`
	Firmware    string   `json:"firmware"`
	LanIP       string   `json:"lanIp"`
	Address     string   `json:"address,omitempty"`
	Latitude    *float64 `json:"lat,omitempty"`
	Longitude   *float64 `json:"lng,omitempty"`
	FloorPlanID string   `json:"floorPlanId,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// DeviceStatusOverview is the organization-wide device status rollup.
type DeviceStatusOverview struct {
	Counts DeviceStatusCounts `json:"counts"`
}

// DeviceStatusCounts buckets devices by reported status.
type DeviceStatusCounts struct {
	ByStatus map[string]int `json:"byStatus"`
}

// Total sums all status buckets.
func (c DeviceStatusCounts) Total() int {
	total := 0
	for _, n := range c.ByStatus {
		total += n
	}
	return total
}

// Device status bucket names.
const (
	StatusOnline   = "online"
	StatusOffline  = "offline"
	StatusAlerting = "alerting"
	StatusDormant  = "dormant"
)

// Client is a transient endpoint associated to a network.
type Client struct {
	ID          string      `json:"id"`
	MAC         string      `json:"mac"`
	Description string      `json:"description"`
	IP          string      `json:"ip"`
	User        string      `json:"user,omitempty"`
	SSID        string      `json:"ssid,omitempty"`
	Switchport  string      `json:"switchport,omitempty"`
	Status      string      `json:"status,omitempty"`
	Usage       ClientUsage `json:"usage"`
}

// ClientUsage carries the client's traffic counters in bytes.
type ClientUsage struct {
	Sent int64 `json:"sent"`
	Recv int64 `json:"recv"`
}

// ClientOverview is a network's client-count summary.
type ClientOverview struct {
	Counts ClientCounts `json:"counts"`
}

// ClientCounts holds client totals for a network.
type ClientCounts struct {
	Total          int `json:"total"`
	WithHeavyUsage int `json:"withHeavyUsage"`
}

// ConnectionStats summarizes a wireless client's connection attempts by
// failure stage.
type ConnectionStats struct {
	Assoc   int `json:"assoc"`
	Auth    int `json:"auth"`
	DHCP    int `json:"dhcp"`
	DNS     int `json:"dns"`
	Success int `json:"success"`
}

// Alert is an organization-scoped assurance alert. ResolvedAt is nil while
// the alert is still open.
type Alert struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	Severity     string     `json:"severity"`
	CategoryType string     `json:"categoryType"`
	Title        string     `json:"title,omitempty"`
	Scope        AlertScope `json:"scope"`
	StartedAt    time.Time  `json:"startedAt"`
	ResolvedAt   *time.Time `json:"resolvedAt,omitempty"`
}

// AlertScope names the entities an alert affects.
type AlertScope struct {
	Devices  []AlertDevice  `json:"devices,omitempty"`
	Networks []AlertNetwork `json:"networks,omitempty"`
}

// AlertDevice identifies a device inside an alert scope.
type AlertDevice struct {
	Serial string `json:"serial"`
	Name   string `json:"name,omitempty"`
}

// AlertNetwork identifies a network inside an alert scope.
type AlertNetwork struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Alert severities.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "informational"
)

// License is a per-device license record. Organizations on co-termination
// licensing expose no per-license records, only a LicenseOverview.
type License struct {
	ID             string `json:"id"`
	LicenseKey     string `json:"licenseKey"`
	LicenseType    string `json:"licenseType"`
	OrderNumber    string `json:"orderNumber,omitempty"`
	DeviceSerial   string `json:"deviceSerial,omitempty"`
	NetworkID      string `json:"networkId,omitempty"`
	State          string `json:"state"`
	SeatLimit      int    `json:"seatLimit,omitempty"`
	DurationInDays int    `json:"durationInDays,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

// LicenseOverview is the co-termination licensing summary. For per-device
// organizations LicensedDeviceCounts is still populated.
type LicenseOverview struct {
	Status               string         `json:"status"`
	ExpirationDate       string         `json:"expirationDate,omitempty"`
	LicensedDeviceCounts map[string]int `json:"licensedDeviceCounts,omitempty"`
}

// FloorPlan is a building-floor map with placed devices. Cached per run
// because multiple devices may reference the same plan.
type FloorPlan struct {
	FloorPlanID string   `json:"floorPlanId"`
	Name        string   `json:"name"`
	ImageURL    string   `json:"imageUrl"`
	Devices     []Device `json:"devices,omitempty"`
}

// SSID is a wireless network configuration entry.
type SSID struct {
	Number         int    `json:"number"`
	Name           string `json:"name"`
	Enabled        bool   `json:"enabled"`
	AuthMode       string `json:"authMode"`
	EncryptionMode string `json:"encryptionMode,omitempty"`
}

// SSID authentication modes relevant to the security rubric.
const (
	AuthModeOpen           = "open"
	AuthModePSK            = "psk"
	AuthMode8021XMeraki    = "8021x-meraki"
	AuthMode8021XRadius    = "8021x-radius"
	EncryptionModeWPA      = "wpa"
	EncryptionModeWPAEAP   = "wpa-eap"
)

// FirewallRule is one L3 firewall rule of an appliance network.
type FirewallRule struct {
	Comment  string `json:"comment,omitempty"`
	Policy   string `json:"policy"`
	Protocol string `json:"protocol"`
	SrcCidr  string `json:"srcCidr,omitempty"`
	DestCidr string `json:"destCidr,omitempty"`
	DestPort string `json:"destPort,omitempty"`
}

// NetworkEvent is one entry of a network's event log.
type NetworkEvent struct {
	OccurredAt   time.Time `json:"occurredAt"`
	Type         string    `json:"type"`
	Description  string    `json:"description,omitempty"`
	ClientMAC    string    `json:"clientMac,omitempty"`
	DeviceSerial string    `json:"deviceSerial,omitempty"`
	SSIDNumber   *int      `json:"ssidNumber,omitempty"`
}
