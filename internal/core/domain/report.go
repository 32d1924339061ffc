package domain

import "time"

// ReportType names one of the report generators.
type ReportType string

const (
	ReportDeviceStatus    ReportType = "device_status"
	ReportDeviceSearch    ReportType = "device_search"
	ReportClientCount     ReportType = "client_count"
	ReportFirmwareSummary ReportType = "firmware_summary"
	ReportLicenseDetails  ReportType = "license_details"
	ReportInspection      ReportType = "device_inspection"
	ReportFloorPlanAPs    ReportType = "floorplan_aps"
	ReportDeviceLocation  ReportType = "device_location"
	ReportLostDevice      ReportType = "lost_device_trace"
	ReportAlertsLog       ReportType = "alerts_log"
	ReportNetworkHealth   ReportType = "network_health"
	ReportSecurityPosture ReportType = "security_posture"
	ReportCapacityPlan    ReportType = "capacity_planning"
)

// ReportMeta is embedded in every report result. The field set is identical
// for success and failure; on failure the sections hold safe defaults and
// ErrorMessage explains what went wrong.
type ReportMeta struct {
	RunID            string   `json:"run_id"`
	OrganizationID   string   `json:"organization_id"`
	OrganizationName string   `json:"organization_name"`
	QueryTime        string   `json:"query_time"`
	Success          bool     `json:"success"`
	ErrorMessage     string   `json:"error_message,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
}

// ReportRun is the archived record of one report generation.
type ReportRun struct {
	ID             string
	Type           ReportType
	OrganizationID string
	Success        bool
	ErrorMessage   string
	GeneratedAt    time.Time
	Duration       time.Duration
	Payload        []byte // JSON snapshot of the report result
}

// ---- 1. Device status ----

// DeviceStatusReport answers "how are my devices doing overall".
type DeviceStatusReport struct {
	ReportMeta
	Overview  DeviceStatusBreakdown `json:"device_status_overview"`
	Health    HealthMetrics         `json:"health_metrics"`
	RawCounts map[string]int        `json:"raw_counts"`
}

// DeviceStatusBreakdown counts devices per status bucket.
type DeviceStatusBreakdown struct {
	TotalDevices    int `json:"total_devices"`
	OnlineDevices   int `json:"online_devices"`
	OfflineDevices  int `json:"offline_devices"`
	AlertingDevices int `json:"alerting_devices"`
	DormantDevices  int `json:"dormant_devices"`
}

// HealthMetrics is the headline health summary.
type HealthMetrics struct {
	OnlinePercentage float64 `json:"online_percentage"`
	HealthStatus     string  `json:"health_status"`
}

// ---- 2. Device search ----

// DeviceSearchReport lists devices matching a name keyword, with the first
// few inspected in depth.
type DeviceSearchReport struct {
	ReportMeta
	Keyword      string          `json:"query_keyword"`
	TotalMatched int             `json:"total_matched"`
	Matched      []MatchedDevice `json:"matched_devices"`
	Details      []DeviceDetail  `json:"selected_devices_details"`
}

// MatchedDevice is one row of a keyword search result.
type MatchedDevice struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Model     string `json:"model"`
	Serial    string `json:"serial"`
	NetworkID string `json:"network_id"`
}

// DeviceDetail is a per-device drill-down.
type DeviceDetail struct {
	Device
	Status string `json:"status"`
}

// ---- 3. Client count ----

// ClientCountReport summarizes client population across all networks.
type ClientCountReport struct {
	ReportMeta
	Summary      ClientCountSummary       `json:"query_summary"`
	Networks     []NetworkClientBreakdown `json:"networks_breakdown"`
	Distribution ClientDistribution       `json:"client_distribution_analysis"`
}

// ClientCountSummary holds organization-wide client totals.
type ClientCountSummary struct {
	TotalClients         int     `json:"total_clients_in_org"`
	TotalNetworks        int     `json:"total_networks"`
	NetworksWithClients  int     `json:"networks_with_clients"`
	HeavyUsageClients    int     `json:"total_heavy_usage_clients"`
	AvgClientsPerNetwork float64 `json:"avg_clients_per_network"`
}

// NetworkClientBreakdown is the per-network slot of the client fan-out.
// Error is set instead of counts when the network's overview call failed.
type NetworkClientBreakdown struct {
	NetworkName     string   `json:"network_name"`
	NetworkID       string   `json:"network_id"`
	ClientCount     int      `json:"client_count"`
	HeavyUsageCount int      `json:"heavy_usage_count"`
	ProductTypes    []string `json:"product_types"`
	TimeZone        string   `json:"timezone"`
	Error           string   `json:"error,omitempty"`
}

// ClientDistribution is the derived distribution analysis.
type ClientDistribution struct {
	MostActiveNetwork      string   `json:"most_active_network"`
	NetworksWithoutClients []string `json:"networks_without_clients"`
	HeavyUsageRatio        float64  `json:"heavy_usage_ratio"`
}

// ---- 4. Firmware summary ----

// FirmwareReport groups devices by model and flags firmware drift.
type FirmwareReport struct {
	ReportMeta
	Summary     FirmwareSummary           `json:"firmware_summary"`
	Models      map[string]*ModelFirmware `json:"model_firmware_breakdown"`
	Consistency ConsistencyAnalysis       `json:"consistency_analysis"`
	Upgrade     UpgradeRecommendation     `json:"firmware_upgrade_recommendations"`
}

// FirmwareSummary holds firmware rollup counts.
type FirmwareSummary struct {
	TotalDevices       int `json:"total_devices"`
	TotalModels        int `json:"total_models"`
	ConsistentModels   int `json:"models_with_consistent_firmware"`
	InconsistentModels int `json:"models_with_inconsistent_firmware"`
}

// ModelFirmware is the firmware state of one device model.
type ModelFirmware struct {
	FirmwareVersions []string `json:"firmware_versions"`
	DeviceCount      int      `json:"device_count"`
	VersionCount     int      `json:"version_count"`
	IsConsistent     bool     `json:"is_consistent"`
}

// ConsistencyAnalysis partitions models by firmware consistency. A model is
// consistent iff exactly one distinct firmware string was observed for it.
type ConsistencyAnalysis struct {
	ConsistentModels   []string `json:"consistent_models"`
	InconsistentModels []string `json:"inconsistent_models"`
	OverallConsistency bool     `json:"overall_consistency"`
}

// UpgradeRecommendation counts the devices on inconsistent models.
type UpgradeRecommendation struct {
	ModelsNeedingAttention []string `json:"models_needing_attention"`
	DevicesNeedingUpgrade  int      `json:"total_devices_needing_upgrade"`
}

// ---- 5. License details ----

// LicenseReport carries both licensing models: the overview is always
// fetched; per-device records are optional (co-termination orgs have none).
type LicenseReport struct {
	ReportMeta
	Overview LicenseOverview `json:"license_overview"`
	Licenses []License       `json:"license_details"`
	Analysis LicenseAnalysis `json:"license_analysis"`
}

// LicenseAnalysis summarizes which licensing data was obtainable.
type LicenseAnalysis struct {
	OverviewAvailable bool           `json:"overview_available"`
	DetailsAvailable  bool           `json:"details_available"`
	TotalLicenses     int            `json:"total_licenses"`
	Status            string         `json:"status"`
	ByState           map[string]int `json:"by_state"`
}

// ---- 6. Device inspection ----

// InspectionReport is the combined periodic inspection of device status,
// alerts and network events.
type InspectionReport struct {
	ReportMeta
	DeviceStatus    DeviceStatusAnalysis `json:"device_status_analysis"`
	Alerts          AlertsAnalysis       `json:"alerts_analysis"`
	NetworkEvents   NetworkEventsInfo    `json:"network_events_analysis"`
	Health          HealthAssessment     `json:"health_assessment"`
	Recommendations Recommendations      `json:"recommendations"`
}

// DeviceStatusAnalysis extends the status breakdown with the health ratio.
type DeviceStatusAnalysis struct {
	DeviceStatusBreakdown
	HealthPercentage   float64        `json:"health_percentage"`
	StatusDistribution map[string]int `json:"status_distribution"`
}

// AlertsAnalysis summarizes organization alerts by severity.
type AlertsAnalysis struct {
	TotalAlerts    int      `json:"total_alerts"`
	CriticalAlerts int      `json:"critical_alerts"`
	WarningAlerts  int      `json:"warning_alerts"`
	InfoAlerts     int      `json:"info_alerts"`
	RecentCritical []Alert  `json:"recent_critical_alerts"`
	Categories     []string `json:"alert_categories"`
}

// NetworkEventsInfo is the sampled network event section.
type NetworkEventsInfo struct {
	EventsSampled   int            `json:"events_sampled"`
	NetworksChecked int            `json:"networks_checked"`
	SampleNetwork   string         `json:"sample_network"`
	RecentEvents    []NetworkEvent `json:"recent_events"`
}

// HealthAssessment is the inspection verdict.
type HealthAssessment struct {
	OverallHealth           string `json:"overall_health"`
	CriticalIssues          int    `json:"critical_issues"`
	DevicesNeedingAttention int    `json:"devices_needing_attention"`
	NetworkStability        string `json:"network_stability"`
}

// Recommendations carries suggested operator actions.
type Recommendations struct {
	ImmediateActions       []string `json:"immediate_actions"`
	MaintenanceSuggestions []string `json:"maintenance_suggestions"`
}

// ---- 7. Floor plan APs ----

// FloorPlanReport locates access points on a selected floor plan.
type FloorPlanReport struct {
	ReportMeta
	Available []FloorPlanSummary `json:"available_floorplans"`
	Selected  FloorPlanSummary   `json:"selected_floorplan"`
	APs       []APPosition       `json:"ap_distribution"`
}

// FloorPlanSummary identifies a floor plan and its owning network.
type FloorPlanSummary struct {
	NetworkName string `json:"network_name"`
	NetworkID   string `json:"network_id"`
	FloorPlanID string `json:"floorplan_id"`
	Name        string `json:"floorplan_name"`
	ImageURL    string `json:"image_url"`
}

// APPosition is one device placed on a floor plan.
type APPosition struct {
	Name      string   `json:"name"`
	Serial    string   `json:"serial"`
	Model     string   `json:"model"`
	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lng,omitempty"`
	LanIP     string   `json:"lan_ip"`
	Tags      []string `json:"tags,omitempty"`
}

// ---- 8. Device location ----

// DeviceLocationReport resolves the physical placement of named devices.
type DeviceLocationReport struct {
	ReportMeta
	Keyword      string           `json:"search_keyword"`
	TotalMatched int              `json:"total_matched"`
	Matched      []MatchedDevice  `json:"matched_devices"`
	Locations    []DeviceLocation `json:"selected_device_locations"`
}

// DeviceLocation is a device's coordinates plus its floor plan, when known.
type DeviceLocation struct {
	Name      string       `json:"name"`
	Serial    string       `json:"serial"`
	Model     string       `json:"model"`
	Latitude  *float64     `json:"lat,omitempty"`
	Longitude *float64     `json:"lng,omitempty"`
	Address   string       `json:"address"`
	FloorPlan FloorPlanRef `json:"floorplan_info"`
	ImageURL  string       `json:"image_url"`
}

// FloorPlanRef is a lightweight floor plan reference.
type FloorPlanRef struct {
	FloorPlanID string `json:"floorplan_id,omitempty"`
	Name        string `json:"name,omitempty"`
	NetworkID   string `json:"network_id,omitempty"`
}

// ---- 9. Lost device trace ----

// LostDeviceReport discovers recently seen clients and traces the first one.
type LostDeviceReport struct {
	ReportMeta
	Criteria   SearchCriteria     `json:"search_criteria"`
	Discovered []DiscoveredClient `json:"discovered_clients"`
	Trace      ClientTrace        `json:"selected_client_trace"`
	History    []NetworkEvent     `json:"connection_history"`
}

// SearchCriteria records how the client was looked up.
type SearchCriteria struct {
	ClientMAC   string `json:"client_mac"`
	Description string `json:"client_description"`
	Method      string `json:"search_method"`
}

// DiscoveredClient is one client seen during discovery.
type DiscoveredClient struct {
	Index       int    `json:"index"`
	MAC         string `json:"mac"`
	Description string `json:"description"`
	ClientID    string `json:"client_id"`
	NetworkName string `json:"network_name"`
	NetworkID   string `json:"network_id"`
}

// ClientTrace is the traced client's connection summary.
type ClientTrace struct {
	MAC             string          `json:"mac"`
	Description     string          `json:"description"`
	NetworkName     string          `json:"network_name"`
	ConnectionStats ConnectionStats `json:"connection_stats"`
}

// ---- 10. Alerts log ----

// AlertsLogReport lists current organization alerts.
type AlertsLogReport struct {
	ReportMeta
	Summary        AlertsSummary  `json:"alerts_summary"`
	CriticalAlerts []Alert        `json:"critical_alerts"`
	EventsSample   []NetworkEvent `json:"network_events_sample"`
	Categories     []string       `json:"alert_categories"`
}

// AlertsSummary counts alerts by severity and resolution state.
type AlertsSummary struct {
	Total           int `json:"total_alerts"`
	CriticalCount   int `json:"critical_count"`
	WarningCount    int `json:"warning_count"`
	InfoCount       int `json:"info_count"`
	UnresolvedCount int `json:"unresolved_count"`
}

// ---- 11. Network health ----

// NetworkHealthReport combines device, alert and client signals into one
// composite score with chart descriptors for the dashboard.
type NetworkHealthReport struct {
	ReportMeta
	TotalDevices       int                  `json:"total_devices"`
	OnlineDevices      int                  `json:"online_devices"`
	TotalClients       int                  `json:"total_clients"`
	TotalNetworks      int                  `json:"total_networks"`
	HealthScore        float64              `json:"health_score"`
	StatusBreakdown    map[string]int       `json:"device_status_breakdown"`
	ClientDistribution []NetworkClientCount `json:"client_distribution"`
	Performance        PerformanceSummary   `json:"network_performance"`
	Charts             []Chart              `json:"charts"`
}

// NetworkClientCount is the per-network client count used by health and
// capacity reports.
type NetworkClientCount struct {
	NetworkName  string   `json:"network_name"`
	NetworkID    string   `json:"network_id"`
	ClientCount  int      `json:"client_count"`
	ProductTypes []string `json:"product_types"`
	Error        string   `json:"error,omitempty"`
}

// PerformanceSummary is the health report's performance section.
type PerformanceSummary struct {
	HealthScore      float64 `json:"health_score"`
	UptimePercentage float64 `json:"uptime_percentage"`
}

// ---- 12. Security posture ----

// SecurityPostureReport evaluates firewall and wireless configuration.
type SecurityPostureReport struct {
	ReportMeta
	NetworkName   string           `json:"network_name"`
	Firewall      FirewallAnalysis `json:"firewall_analysis"`
	WirelessScore float64          `json:"wireless_security_score"`
	EnabledSSIDs  int              `json:"enabled_ssids"`
	Auth          AuthAnalysis     `json:"auth_analysis"`
	Charts        []Chart          `json:"charts"`
}

// FirewallAnalysis breaks down L3 firewall rules.
type FirewallAnalysis struct {
	TotalRules int            `json:"total_rules"`
	AllowRules int            `json:"allow_rules"`
	DenyRules  int            `json:"deny_rules"`
	ByProtocol map[string]int `json:"by_protocol"`
}

// AuthAnalysis breaks down client authentication.
type AuthAnalysis struct {
	TotalClients  int            `json:"total_clients"`
	Authenticated int            `json:"authenticated"`
	Guest         int            `json:"guest"`
	BySSID        map[string]int `json:"by_ssid"`
}

// ---- 13. Capacity planning ----

// CapacityPlanReport extrapolates growth from the current baseline. The
// trend is an explicit linear model, not a statistical fit.
type CapacityPlanReport struct {
	ReportMeta
	CurrentDevices int              `json:"current_devices"`
	CurrentClients int              `json:"current_clients"`
	TotalNetworks  int              `json:"total_networks"`
	GrowthTrend    []TrendPoint     `json:"client_growth_trend"`
	Forecast       CapacityForecast `json:"capacity_forecast"`
	Charts         []Chart          `json:"charts"`
}

// TrendPoint is one day of the synthesized client trend.
type TrendPoint struct {
	Date        string `json:"date"`
	ClientCount int    `json:"client_count"`
	IsForecast  bool   `json:"is_forecast"`
}

// CapacityForecast is the 30-day growth projection.
type CapacityForecast struct {
	DeviceGrowth30d     int            `json:"device_growth_30d"`
	ClientGrowth30d     int            `json:"client_growth_30d"`
	LicenseRequirements map[string]int `json:"license_requirements"`
}
