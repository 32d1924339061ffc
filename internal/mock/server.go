package mock

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

// Server is an in-process fake of the dashboard REST API, close enough for
// mock deployments and integration tests: bearer auth, cursor pagination and
// the same envelope quirks as the real service.
type Server struct {
	Dataset *Dataset
	// APIKey, when non-empty, is the only accepted bearer token.
	APIKey string

	srv *http.Server
	ln  net.Listener
}

func NewServer(d *Dataset) *Server {
	if d == nil {
		d = DefaultDataset()
	}
	return &Server{Dataset: d}
}

// Start serves the API on a random loopback port and returns the base URL
// (including the /api/v1 prefix).
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	s.ln = ln
	s.srv = &http.Server{Handler: s.Handler()}
	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("mock: serve: %v", err)
		}
	}()
	return "http://" + ln.Addr().String() + "/api/v1", nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Handler builds the routing table. Exposed separately so tests can mount it
// on httptest servers.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.checkAuth)

	api.HandleFunc("/organizations", s.handleOrganizations)
	api.HandleFunc("/organizations/{orgID}", s.handleOrganization)
	api.HandleFunc("/organizations/{orgID}/networks", s.handleNetworks)
	api.HandleFunc("/organizations/{orgID}/devices", s.handleDevices)
	api.HandleFunc("/organizations/{orgID}/devices/statuses/overview", s.handleStatusOverview)
	api.HandleFunc("/organizations/{orgID}/assurance/alerts", s.handleAlerts)
	api.HandleFunc("/organizations/{orgID}/licenses", s.handleLicenses)
	api.HandleFunc("/organizations/{orgID}/licenses/overview", s.handleLicensesOverview)
	api.HandleFunc("/devices/{serial}", s.handleDevice)
	api.HandleFunc("/networks/{networkID}/clients", s.handleClients)
	api.HandleFunc("/networks/{networkID}/clients/overview", s.handleClientsOverview)
	api.HandleFunc("/networks/{networkID}/wireless/clients/{clientID}/connectionStats", s.handleConnectionStats)
	api.HandleFunc("/networks/{networkID}/floorPlans", s.handleFloorPlans)
	api.HandleFunc("/networks/{networkID}/floorPlans/{floorPlanID}", s.handleFloorPlan)
	api.HandleFunc("/networks/{networkID}/wireless/ssids", s.handleSSIDs)
	api.HandleFunc("/networks/{networkID}/appliance/firewall/l3FirewallRules", s.handleFirewallRules)
	api.HandleFunc("/networks/{networkID}/events", s.handleEvents)

	return r
}

func (s *Server) checkAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.APIKey == "" {
			next.ServeHTTP(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		if header != "Bearer "+s.APIKey {
			writeErrors(w, http.StatusUnauthorized, "Invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleOrganizations(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, []domain.Organization{s.Dataset.Organization})
}

func (s *Server) handleOrganization(w http.ResponseWriter, r *http.Request) {
	if mux.Vars(r)["orgID"] != s.Dataset.Organization.ID {
		writeErrors(w, http.StatusNotFound, "Organization not found")
		return
	}
	writeOK(w, s.Dataset.Organization)
}

func (s *Server) handleNetworks(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, s.Dataset.Networks)
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	page := paginate(s.Dataset.Devices, func(d domain.Device) string { return d.Serial }, r.URL.Query())
	writeOK(w, page)
}

func (s *Server) handleDevice(w http.ResponseWriter, r *http.Request) {
	serial := mux.Vars(r)["serial"]
	for _, d := range s.Dataset.Devices {
		if d.Serial == serial {
			writeOK(w, d)
			return
		}
	}
	writeErrors(w, http.StatusNotFound, "Device not found")
}

func (s *Server) handleStatusOverview(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, domain.DeviceStatusOverview{Counts: domain.DeviceStatusCounts{ByStatus: s.Dataset.StatusCounts}})
}

// Alerts arrive wrapped in an items envelope, unlike most collections.
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	page := paginate(s.Dataset.Alerts, func(a domain.Alert) string { return a.ID }, r.URL.Query())
	writeOK(w, map[string]any{"items": page})
}

func (s *Server) handleLicenses(w http.ResponseWriter, r *http.Request) {
	page := paginate(s.Dataset.Licenses, func(l domain.License) string { return l.ID }, r.URL.Query())
	writeOK(w, page)
}

func (s *Server) handleLicensesOverview(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, s.Dataset.LicenseOv)
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	clients := s.Dataset.Clients[mux.Vars(r)["networkID"]]
	if n, _ := strconv.Atoi(r.URL.Query().Get("perPage")); n > 0 && n < len(clients) {
		clients = clients[:n]
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	writeOK(w, clients)
}

func (s *Server) handleClientsOverview(w http.ResponseWriter, r *http.Request) {
	overview, ok := s.Dataset.ClientOverviews[mux.Vars(r)["networkID"]]
	if !ok {
		writeErrors(w, http.StatusNotFound, "Network not found")
		return
	}
	writeOK(w, overview)
}

func (s *Server) handleConnectionStats(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, map[string]any{"connectionStats": s.Dataset.ConnStats})
}

func (s *Server) handleFloorPlans(w http.ResponseWriter, r *http.Request) {
	plans := s.Dataset.FloorPlans[mux.Vars(r)["networkID"]]
	if plans == nil {
		plans = []domain.FloorPlan{}
	}
	// Listings omit the per-plan device placement; only the detail carries it.
	summaries := make([]domain.FloorPlan, len(plans))
	for i, p := range plans {
		p.Devices = nil
		summaries[i] = p
	}
	writeOK(w, summaries)
}

func (s *Server) handleFloorPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	for _, p := range s.Dataset.FloorPlans[vars["networkID"]] {
		if p.FloorPlanID == vars["floorPlanID"] {
			writeOK(w, p)
			return
		}
	}
	writeErrors(w, http.StatusNotFound, "Floor plan not found")
}

func (s *Server) handleSSIDs(w http.ResponseWriter, r *http.Request) {
	ssids, ok := s.Dataset.SSIDs[mux.Vars(r)["networkID"]]
	if !ok {
		writeErrors(w, http.StatusBadRequest, "Network does not support wireless")
		return
	}
	writeOK(w, ssids)
}

func (s *Server) handleFirewallRules(w http.ResponseWriter, r *http.Request) {
	rules, ok := s.Dataset.Firewall[mux.Vars(r)["networkID"]]
	if !ok {
		writeErrors(w, http.StatusBadRequest, "Network does not support appliance")
		return
	}
	writeOK(w, map[string]any{"rules": rules})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events := s.Dataset.Events[mux.Vars(r)["networkID"]]
	if n, _ := strconv.Atoi(r.URL.Query().Get("perPage")); n > 0 && n < len(events) {
		events = events[:n]
	}
	if events == nil {
		events = []domain.NetworkEvent{}
	}
	writeOK(w, map[string]any{"events": events})
}

// paginate applies the dashboard's cursor scheme: startingAfter names the
// last key of the previous page, perPage caps the page size.
func paginate[T any](items []T, key func(T) string, q url.Values) []T {
	start := 0
	if after := q.Get("startingAfter"); after != "" {
		for i, item := range items {
			if key(item) == after {
				start = i + 1
				break
			}
		}
	}

	perPage := len(items)
	if n, err := strconv.Atoi(q.Get("perPage")); err == nil && n > 0 {
		perPage = n
	}

	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	if start >= len(items) {
		return []T{}
	}
	return items[start:end]
}

func writeOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("mock: encode: %v", err)
	}
}

func writeErrors(w http.ResponseWriter, status int, msgs ...string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body, _ := json.Marshal(map[string][]string{"errors": msgs})
	w.Write(body)
}
