package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bei612/meraki-workflows/internal/adapters/archive"
	"github.com/bei612/meraki-workflows/internal/adapters/dashboard"
	"github.com/bei612/meraki-workflows/internal/adapters/export"
	"github.com/bei612/meraki-workflows/internal/core/services/reporting"
	"github.com/bei612/meraki-workflows/internal/mock"
)

// newTestAPI wires the full request path against the embedded fake
// dashboard: router -> runner -> dashboard client -> mock server.
func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	fake := mock.NewServer(nil)
	fake.APIKey = "test-key"
	baseURL, err := fake.Start()
	require.NoError(t, err)
	t.Cleanup(func() { fake.Shutdown(context.Background()) })

	dash := dashboard.NewClient(dashboard.Options{
		BaseURL: baseURL,
		APIKey:  "test-key",
	})

	store, err := archive.NewSQLiteArchive(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	gen := reporting.NewGenerator(dash, fake.Dataset.Organization.ID, 0)
	hub := NewHub()
	runner := reporting.NewRunner(gen, store, hub)
	reports := NewReportHandler(runner, store, export.NewPDFExporter())

	srv := httptest.NewServer(SetupRoutes(NewServer(":0", "", reports, hub)))
	t.Cleanup(srv.Close)
	return srv
}

func postReport(t *testing.T, srv *httptest.Server, reportType string, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/reports/"+reportType, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func TestGenerateDeviceStatusEndToEnd(t *testing.T) {
	srv := newTestAPI(t)

	resp, payload := postReport(t, srv, "device_status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		RunID   string `json:"run_id"`
		Success bool   `json:"success"`
		Health  struct {
			OnlinePercentage float64 `json:"online_percentage"`
		} `json:"health_metrics"`
	}
	require.NoError(t, json.Unmarshal(payload, &report))
	assert.True(t, report.Success)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 80.0, report.Health.OnlinePercentage)
}

func TestGenerateUnknownReportType(t *testing.T) {
	srv := newTestAPI(t)

	resp, _ := postReport(t, srv, "bogus", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateRejectsMalformedBody(t *testing.T) {
	srv := newTestAPI(t)

	resp, _ := postReport(t, srv, "device_status", "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRunArchiveRoundTrip(t *testing.T) {
	srv := newTestAPI(t)

	resp, payload := postReport(t, srv, "client_count", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(payload, &report))
	require.NotEmpty(t, report.RunID)

	// The run shows up in the listing.
	listResp, err := http.Get(srv.URL + "/api/runs")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var summaries []struct {
		ID      string `json:"id"`
		Type    string `json:"type"`
		Success bool   `json:"success"`
	}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, report.RunID, summaries[0].ID)
	assert.Equal(t, "client_count", summaries[0].Type)
	assert.True(t, summaries[0].Success)

	// The archived payload is the report JSON itself.
	runResp, err := http.Get(srv.URL + "/api/runs/" + report.RunID)
	require.NoError(t, err)
	defer runResp.Body.Close()
	require.Equal(t, http.StatusOK, runResp.StatusCode)

	var archived struct {
		RunID   string `json:"run_id"`
		Summary struct {
			TotalNetworks int `json:"total_networks"`
		} `json:"query_summary"`
	}
	require.NoError(t, json.NewDecoder(runResp.Body).Decode(&archived))
	assert.Equal(t, report.RunID, archived.RunID)
	assert.Equal(t, 3, archived.Summary.TotalNetworks)
}

func TestGetRunNotFound(t *testing.T) {
	srv := newTestAPI(t)

	resp, err := http.Get(srv.URL + "/api/runs/run-missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInspectionPDFExport(t *testing.T) {
	srv := newTestAPI(t)

	resp, payload := postReport(t, srv, "device_inspection", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(payload, &report))

	pdfResp, err := http.Get(srv.URL + "/api/runs/" + report.RunID + "/pdf")
	require.NoError(t, err)
	defer pdfResp.Body.Close()
	require.Equal(t, http.StatusOK, pdfResp.StatusCode)
	assert.Equal(t, "application/pdf", pdfResp.Header.Get("Content-Type"))

	pdf, err := io.ReadAll(pdfResp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestInspectionPDFOnlyForInspectionRuns(t *testing.T) {
	srv := newTestAPI(t)

	resp, payload := postReport(t, srv, "device_status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(payload, &report))

	pdfResp, err := http.Get(srv.URL + "/api/runs/" + report.RunID + "/pdf")
	require.NoError(t, err)
	defer pdfResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, pdfResp.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv := newTestAPI(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}
