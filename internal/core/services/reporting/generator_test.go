package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

// mockDashboard is a testify mock of the ports.Dashboard surface.
type mockDashboard struct {
	mock.Mock
}

func (m *mockDashboard) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *mockDashboard) GetOrganization(ctx context.Context, orgID string) (domain.Organization, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(domain.Organization), args.Error(1)
}

func (m *mockDashboard) ListNetworks(ctx context.Context, orgID string) ([]domain.Network, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Network), args.Error(1)
}

func (m *mockDashboard) ListDevices(ctx context.Context, orgID, nameFilter string) ([]domain.Device, []string, error) {
	args := m.Called(ctx, orgID, nameFilter)
	return args.Get(0).([]domain.Device), args.Get(1).([]string), args.Error(2)
}

func (m *mockDashboard) GetDevice(ctx context.Context, serial string) (domain.Device, error) {
	args := m.Called(ctx, serial)
	return args.Get(0).(domain.Device), args.Error(1)
}

func (m *mockDashboard) DeviceStatusOverview(ctx context.Context, orgID string) (domain.DeviceStatusOverview, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(domain.DeviceStatusOverview), args.Error(1)
}

func (m *mockDashboard) ClientsOverview(ctx context.Context, networkID string) (domain.ClientOverview, error) {
	args := m.Called(ctx, networkID)
	return args.Get(0).(domain.ClientOverview), args.Error(1)
}

func (m *mockDashboard) ListNetworkClients(ctx context.Context, networkID string, perPage, timespanSec int) ([]domain.Client, error) {
	args := m.Called(ctx, networkID, perPage, timespanSec)
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *mockDashboard) ClientConnectionStats(ctx context.Context, networkID, clientID string, timespanSec int) (domain.ConnectionStats, error) {
	args := m.Called(ctx, networkID, clientID, timespanSec)
	return args.Get(0).(domain.ConnectionStats), args.Error(1)
}

func (m *mockDashboard) ListAssuranceAlerts(ctx context.Context, orgID string) ([]domain.Alert, []string, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Alert), args.Get(1).([]string), args.Error(2)
}

func (m *mockDashboard) LicensesOverview(ctx context.Context, orgID string) (domain.LicenseOverview, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(domain.LicenseOverview), args.Error(1)
}

func (m *mockDashboard) ListLicenses(ctx context.Context, orgID string) ([]domain.License, []string, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.License), args.Get(1).([]string), args.Error(2)
}

func (m *mockDashboard) ListFloorPlans(ctx context.Context, networkID string) ([]domain.FloorPlan, error) {
	args := m.Called(ctx, networkID)
	return args.Get(0).([]domain.FloorPlan), args.Error(1)
}

func (m *mockDashboard) GetFloorPlan(ctx context.Context, networkID, floorPlanID string) (domain.FloorPlan, error) {
	args := m.Called(ctx, networkID, floorPlanID)
	return args.Get(0).(domain.FloorPlan), args.Error(1)
}

func (m *mockDashboard) ListSSIDs(ctx context.Context, networkID string) ([]domain.SSID, error) {
	args := m.Called(ctx, networkID)
	return args.Get(0).([]domain.SSID), args.Error(1)
}

func (m *mockDashboard) L3FirewallRules(ctx context.Context, networkID string) ([]domain.FirewallRule, error) {
	args := m.Called(ctx, networkID)
	return args.Get(0).([]domain.FirewallRule), args.Error(1)
}

func (m *mockDashboard) ListNetworkEvents(ctx context.Context, networkID, productType string, perPage, timespanSec int) ([]domain.NetworkEvent, error) {
	args := m.Called(ctx, networkID, productType, perPage, timespanSec)
	return args.Get(0).([]domain.NetworkEvent), args.Error(1)
}

func newTestGenerator(dash *mockDashboard) *Generator {
	dash.On("GetOrganization", mock.Anything, "org-100").
		Return(domain.Organization{ID: "org-100", Name: "Acme Industrial"}, nil).Maybe()

	gen := NewGenerator(dash, "org-100", 2)
	gen.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	gen.newRunID = func() string { return "run-test" }
	return gen
}

func TestDeviceStatusReport(t *testing.T) {
	dash := new(mockDashboard)
	dash.On("DeviceStatusOverview", mock.Anything, "org-100").Return(domain.DeviceStatusOverview{
		Counts: domain.DeviceStatusCounts{ByStatus: map[string]int{
			"online": 8, "offline": 1, "alerting": 1, "dormant": 0,
		}},
	}, nil)

	report := newTestGenerator(dash).DeviceStatus(context.Background())

	assert.True(t, report.Success)
	assert.Equal(t, "run-test", report.RunID)
	assert.Equal(t, "Acme Industrial", report.OrganizationName)
	assert.Equal(t, 10, report.Overview.TotalDevices)
	assert.Equal(t, 8, report.Overview.OnlineDevices)
	assert.Equal(t, 80.0, report.Health.OnlinePercentage)
	assert.Equal(t, HealthNeedsAttention, report.Health.HealthStatus)
	assert.Equal(t, 1, report.RawCounts["offline"])
}

func TestDeviceStatusReportFailure(t *testing.T) {
	dash := new(mockDashboard)
	dash.On("DeviceStatusOverview", mock.Anything, "org-100").Return(domain.DeviceStatusOverview{},
		&domain.CallError{Class: domain.ErrClassTransient, Op: "devices.statusOverview", Status: 502, Message: "upstream down"})

	report := newTestGenerator(dash).DeviceStatus(context.Background())

	assert.False(t, report.Success)
	assert.Contains(t, report.ErrorMessage, "upstream down")
	assert.Zero(t, report.Overview.TotalDevices)
	assert.Empty(t, report.RawCounts)
}

func TestClientCountIsolatesNetworkFailures(t *testing.T) {
	dash := new(mockDashboard)
	dash.On("ListNetworks", mock.Anything, "org-100").Return([]domain.Network{
		{ID: "net-hq", Name: "HQ"},
		{ID: "net-warehouse", Name: "Warehouse"},
		{ID: "net-branch", Name: "Branch"},
	}, nil)
	dash.On("ClientsOverview", mock.Anything, "net-hq").Return(domain.ClientOverview{
		Counts: domain.ClientCounts{Total: 1076, WithHeavyUsage: 12},
	}, nil)
	dash.On("ClientsOverview", mock.Anything, "net-warehouse").Return(domain.ClientOverview{},
		&domain.CallError{Class: domain.ErrClassClient, Op: "clients.overview", Status: 404, Message: "Network not found"})
	dash.On("ClientsOverview", mock.Anything, "net-branch").Return(domain.ClientOverview{}, nil)

	report := newTestGenerator(dash).ClientCount(context.Background())

	require.True(t, report.Success)
	require.Len(t, report.Networks, 3)

	assert.Equal(t, 1076, report.Networks[0].ClientCount)
	assert.Empty(t, report.Networks[0].Error)

	// The failed network keeps its slot, annotated and counted as zero.
	assert.Contains(t, report.Networks[1].Error, "Network not found")
	assert.Zero(t, report.Networks[1].ClientCount)

	assert.Equal(t, 1076, report.Summary.TotalClients)
	assert.Equal(t, 358.67, report.Summary.AvgClientsPerNetwork)
	assert.Equal(t, "HQ", report.Distribution.MostActiveNetwork)
	assert.Equal(t, []string{"Warehouse", "Branch"}, report.Distribution.NetworksWithoutClients)
}

func TestClientCountAuthFailureAbortsRun(t *testing.T) {
	dash := new(mockDashboard)
	dash.On("ListNetworks", mock.Anything, "org-100").Return([]domain.Network{
		{ID: "net-hq", Name: "HQ"},
		{ID: "net-branch", Name: "Branch"},
	}, nil)
	dash.On("ClientsOverview", mock.Anything, mock.Anything).Return(domain.ClientOverview{},
		&domain.CallError{Class: domain.ErrClassAuth, Op: "clients.overview", Status: 401, Message: "Invalid API key"})

	report := newTestGenerator(dash).ClientCount(context.Background())

	assert.False(t, report.Success)
	assert.Contains(t, report.ErrorMessage, "Invalid API key")
	assert.Empty(t, report.Networks)
}

func TestFirmwareSummaryReport(t *testing.T) {
	dash := new(mockDashboard)
	dash.On("ListDevices", mock.Anything, "org-100", "").Return([]domain.Device{
		{Serial: "Q2AB-0001", Model: "MR44", Firmware: "wireless-30-7"},
		{Serial: "Q2AB-0002", Model: "MR44", Firmware: "wireless-30-7"},
		{Serial: "Q2AB-0003", Model: "MR44", Firmware: "wireless-30-7"},
		{Serial: "Q2CD-0001", Model: "MR57", Firmware: "wireless-30-7"},
		{Serial: "Q2CD-0002", Model: "MR57", Firmware: "wireless-29-5"},
	}, []string{"pagination halted: no cursor field on last item; results may be incomplete"}, nil)

	report := newTestGenerator(dash).FirmwareSummary(context.Background())

	assert.True(t, report.Success)
	assert.Equal(t, []string{"pagination halted: no cursor field on last item; results may be incomplete"}, report.Warnings)
	assert.False(t, report.Consistency.OverallConsistency)
	assert.Equal(t, []string{"MR57"}, report.Upgrade.ModelsNeedingAttention)
	assert.Equal(t, 2, report.Upgrade.DevicesNeedingUpgrade)
}

func TestDeviceSearchDetailFailuresBecomeWarnings(t *testing.T) {
	dash := new(mockDashboard)
	dash.On("ListDevices", mock.Anything, "org-100", "mr").Return([]domain.Device{
		{Serial: "Q2AB-0001", Name: "MR44-Lobby", Model: "MR44"},
		{Serial: "Q2AB-0002", Name: "MR44-Cafe", Model: "MR44"},
	}, []string{}, nil)
	dash.On("GetDevice", mock.Anything, "Q2AB-0001").Return(domain.Device{Serial: "Q2AB-0001", Name: "MR44-Lobby"}, nil)
	dash.On("GetDevice", mock.Anything, "Q2AB-0002").Return(domain.Device{},
		&domain.CallError{Class: domain.ErrClassClient, Op: "devices.get", Status: 404, Message: "Device not found"})

	report := newTestGenerator(dash).DeviceSearch(context.Background(), "mr")

	assert.True(t, report.Success)
	assert.Equal(t, 2, report.TotalMatched)
	require.Len(t, report.Matched, 2)
	assert.Equal(t, 1, report.Matched[0].Index)

	require.Len(t, report.Details, 1)
	assert.Equal(t, "Q2AB-0001", report.Details[0].Device.Serial)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "Q2AB-0002")
}

func TestGenerateUnknownType(t *testing.T) {
	gen := newTestGenerator(new(mockDashboard))

	_, err := gen.Generate(context.Background(), domain.ReportType("bogus"), Params{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report type")
}

func TestGenerateCanceledRunYieldsNoReport(t *testing.T) {
	dash := new(mockDashboard)
	dash.On("DeviceStatusOverview", mock.Anything, "org-100").Return(domain.DeviceStatusOverview{}, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newTestGenerator(dash).Generate(ctx, domain.ReportDeviceStatus, Params{})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}
