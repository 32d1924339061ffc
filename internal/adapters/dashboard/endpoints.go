package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

// Typed endpoint methods implementing ports.Dashboard. Paths mirror the
// dashboard REST endpoint family rooted at an organization or network id.

func (c *Client) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	raw, err := c.get(ctx, "organizations.list", "/organizations", nil, classMeta)
	if err != nil {
		return nil, err
	}
	var orgs []domain.Organization
	if err := decodeInto("organizations.list", raw, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (c *Client) GetOrganization(ctx context.Context, orgID string) (domain.Organization, error) {
	raw, err := c.get(ctx, "organizations.get", "/organizations/"+orgID, nil, classMeta)
	if err != nil {
		return domain.Organization{}, err
	}
	var org domain.Organization
	if err := decodeInto("organizations.get", raw, &org); err != nil {
		return domain.Organization{}, err
	}
	return org, nil
}

func (c *Client) ListNetworks(ctx context.Context, orgID string) ([]domain.Network, error) {
	path := fmt.Sprintf("/organizations/%s/networks", orgID)
	raw, err := c.get(ctx, "networks.list", path, nil, classMeta)
	if err != nil {
		return nil, err
	}
	var networks []domain.Network
	if err := decodeInto("networks.list", raw, &networks); err != nil {
		return nil, err
	}
	return networks, nil
}

func (c *Client) ListDevices(ctx context.Context, orgID, nameFilter string) ([]domain.Device, []string, error) {
	path := fmt.Sprintf("/organizations/%s/devices", orgID)
	items, warnings, err := c.fetchAll(ctx, "devices.list", path, nil, MaxPerPage)
	if err != nil {
		return decodeItems[domain.Device]("devices.list", items), warnings, err
	}
	items = filterByName(items, nameFilter)
	return decodeItems[domain.Device]("devices.list", items), warnings, nil
}

func (c *Client) GetDevice(ctx context.Context, serial string) (domain.Device, error) {
	raw, err := c.get(ctx, "devices.get", "/devices/"+serial, nil, classMeta)
	if err != nil {
		return domain.Device{}, err
	}
	var dev domain.Device
	if err := decodeInto("devices.get", raw, &dev); err != nil {
		return domain.Device{}, err
	}
	return dev, nil
}

func (c *Client) DeviceStatusOverview(ctx context.Context, orgID string) (domain.DeviceStatusOverview, error) {
	path := fmt.Sprintf("/organizations/%s/devices/statuses/overview", orgID)
	raw, err := c.get(ctx, "devices.statusOverview", path, nil, classMeta)
	if err != nil {
		return domain.DeviceStatusOverview{}, err
	}
	var overview domain.DeviceStatusOverview
	if err := decodeInto("devices.statusOverview", raw, &overview); err != nil {
		return domain.DeviceStatusOverview{}, err
	}
	return overview, nil
}

func (c *Client) ClientsOverview(ctx context.Context, networkID string) (domain.ClientOverview, error) {
	path := fmt.Sprintf("/networks/%s/clients/overview", networkID)
	raw, err := c.get(ctx, "clients.overview", path, nil, classMeta)
	if err != nil {
		return domain.ClientOverview{}, err
	}
	var overview domain.ClientOverview
	if err := decodeInto("clients.overview", raw, &overview); err != nil {
		return domain.ClientOverview{}, err
	}
	return overview, nil
}

func (c *Client) ListNetworkClients(ctx context.Context, networkID string, perPage, timespanSec int) ([]domain.Client, error) {
	path := fmt.Sprintf("/networks/%s/clients", networkID)
	query := url.Values{}
	if perPage > 0 {
		query.Set("perPage", strconv.Itoa(perPage))
	}
	if timespanSec > 0 {
		query.Set("timespan", strconv.Itoa(timespanSec))
	}
	raw, err := c.get(ctx, "clients.list", path, query, classList)
	if err != nil {
		return nil, err
	}
	coll, err := unwrapCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("clients.list: %w", err)
	}
	return decodeItems[domain.Client]("clients.list", coll.items), nil
}

func (c *Client) ClientConnectionStats(ctx context.Context, networkID, clientID string, timespanSec int) (domain.ConnectionStats, error) {
	path := fmt.Sprintf("/networks/%s/wireless/clients/%s/connectionStats", networkID, clientID)
	query := url.Values{}
	if timespanSec > 0 {
		query.Set("timespan", strconv.Itoa(timespanSec))
	}
	raw, err := c.get(ctx, "clients.connectionStats", path, query, classMeta)
	if err != nil {
		return domain.ConnectionStats{}, err
	}
	var payload struct {
		ConnectionStats domain.ConnectionStats `json:"connectionStats"`
	}
	if err := decodeInto("clients.connectionStats", raw, &payload); err != nil {
		return domain.ConnectionStats{}, err
	}
	return payload.ConnectionStats, nil
}

func (c *Client) ListAssuranceAlerts(ctx context.Context, orgID string) ([]domain.Alert, []string, error) {
	path := fmt.Sprintf("/organizations/%s/assurance/alerts", orgID)
	items, warnings, err := c.fetchAll(ctx, "alerts.list", path, nil, MaxPerPage)
	if err != nil {
		return decodeItems[domain.Alert]("alerts.list", items), warnings, err
	}
	return decodeItems[domain.Alert]("alerts.list", items), warnings, nil
}

func (c *Client) LicensesOverview(ctx context.Context, orgID string) (domain.LicenseOverview, error) {
	path := fmt.Sprintf("/organizations/%s/licenses/overview", orgID)
	raw, err := c.get(ctx, "licenses.overview", path, nil, classMeta)
	if err != nil {
		return domain.LicenseOverview{}, err
	}
	var overview domain.LicenseOverview
	if err := decodeInto("licenses.overview", raw, &overview); err != nil {
		return domain.LicenseOverview{}, err
	}
	return overview, nil
}

func (c *Client) ListLicenses(ctx context.Context, orgID string) ([]domain.License, []string, error) {
	path := fmt.Sprintf("/organizations/%s/licenses", orgID)
	items, warnings, err := c.fetchAll(ctx, "licenses.list", path, nil, MaxPerPage)
	if err != nil {
		return decodeItems[domain.License]("licenses.list", items), warnings, err
	}
	return decodeItems[domain.License]("licenses.list", items), warnings, nil
}

func (c *Client) ListFloorPlans(ctx context.Context, networkID string) ([]domain.FloorPlan, error) {
	path := fmt.Sprintf("/networks/%s/floorPlans", networkID)
	raw, err := c.get(ctx, "floorPlans.list", path, nil, classMeta)
	if err != nil {
		return nil, err
	}
	var plans []domain.FloorPlan
	if err := decodeInto("floorPlans.list", raw, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *Client) GetFloorPlan(ctx context.Context, networkID, floorPlanID string) (domain.FloorPlan, error) {
	path := fmt.Sprintf("/networks/%s/floorPlans/%s", networkID, floorPlanID)
	raw, err := c.get(ctx, "floorPlans.get", path, nil, classMeta)
	if err != nil {
		return domain.FloorPlan{}, err
	}
	var plan domain.FloorPlan
	if err := decodeInto("floorPlans.get", raw, &plan); err != nil {
		return domain.FloorPlan{}, err
	}
	return plan, nil
}

func (c *Client) ListSSIDs(ctx context.Context, networkID string) ([]domain.SSID, error) {
	path := fmt.Sprintf("/networks/%s/wireless/ssids", networkID)
	raw, err := c.get(ctx, "ssids.list", path, nil, classMeta)
	if err != nil {
		return nil, err
	}
	var ssids []domain.SSID
	if err := decodeInto("ssids.list", raw, &ssids); err != nil {
		return nil, err
	}
	return ssids, nil
}

func (c *Client) L3FirewallRules(ctx context.Context, networkID string) ([]domain.FirewallRule, error) {
	path := fmt.Sprintf("/networks/%s/appliance/firewall/l3FirewallRules", networkID)
	raw, err := c.get(ctx, "firewall.l3Rules", path, nil, classMeta)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Rules []domain.FirewallRule `json:"rules"`
	}
	if err := decodeInto("firewall.l3Rules", raw, &payload); err != nil {
		return nil, err
	}
	return payload.Rules, nil
}

func (c *Client) ListNetworkEvents(ctx context.Context, networkID, productType string, perPage, timespanSec int) ([]domain.NetworkEvent, error) {
	path := fmt.Sprintf("/networks/%s/events", networkID)
	query := url.Values{}
	if productType != "" {
		query.Set("productType", productType)
	}
	if perPage > 0 {
		query.Set("perPage", strconv.Itoa(perPage))
	}
	if timespanSec > 0 {
		query.Set("timespan", strconv.Itoa(timespanSec))
	}
	raw, err := c.get(ctx, "events.list", path, query, classMeta)
	if err != nil {
		return nil, err
	}
	// Events arrive wrapped in an envelope with the list under "events".
	var payload struct {
		Events []domain.NetworkEvent `json:"events"`
	}
	if err := decodeInto("events.list", raw, &payload); err != nil {
		return nil, err
	}
	return payload.Events, nil
}
