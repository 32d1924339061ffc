package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bei612/meraki-workflows/internal/adapters/export"
	"github.com/bei612/meraki-workflows/internal/core/domain"
	"github.com/bei612/meraki-workflows/internal/core/ports"
	"github.com/bei612/meraki-workflows/internal/core/services/reporting"
)

// validReportTypes gates the {type} path segment before it reaches the
// generator.
var validReportTypes = map[domain.ReportType]bool{
	domain.ReportDeviceStatus:    true,
	domain.ReportDeviceSearch:    true,
	domain.ReportClientCount:     true,
	domain.ReportFirmwareSummary: true,
	domain.ReportLicenseDetails:  true,
	domain.ReportInspection:      true,
	domain.ReportFloorPlanAPs:    true,
	domain.ReportDeviceLocation:  true,
	domain.ReportLostDevice:      true,
	domain.ReportAlertsLog:       true,
	domain.ReportNetworkHealth:   true,
	domain.ReportSecurityPosture: true,
	domain.ReportCapacityPlan:    true,
}

// ReportHandler serves report generation and the run archive.
type ReportHandler struct {
	runner   *reporting.Runner
	archive  ports.ReportArchive
	exporter *export.PDFExporter
}

func NewReportHandler(runner *reporting.Runner, archive ports.ReportArchive, exporter *export.PDFExporter) *ReportHandler {
	return &ReportHandler{
		runner:   runner,
		archive:  archive,
		exporter: exporter,
	}
}

// HandleGenerate runs one report synchronously and returns its JSON result.
// POST /api/reports/{type}
func (h *ReportHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	t := domain.ReportType(mux.Vars(r)["type"])
	if !validReportTypes[t] {
		http.Error(w, fmt.Sprintf("unknown report type %q", t), http.StatusBadRequest)
		return
	}

	var params reporting.Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	_, result, err := h.runner.Run(r.Context(), t, params)
	if err != nil {
		log.Printf("web: report %s failed: %v", t, err)
		status := http.StatusInternalServerError
		if domain.IsAuthError(err) {
			// Our credential was rejected upstream, not the caller's.
			status = http.StatusBadGateway
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// runSummary is the archive listing row; the payload stays out of listings.
type runSummary struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	OrganizationID string `json:"organization_id"`
	Success        bool   `json:"success"`
	ErrorMessage   string `json:"error_message,omitempty"`
	GeneratedAt    string `json:"generated_at"`
	DurationMS     int64  `json:"duration_ms"`
}

// HandleListRuns lists archived runs, newest first.
// GET /api/runs?limit=N
func (h *ReportHandler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := h.archive.ListRuns(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	summaries := make([]runSummary, len(runs))
	for i, run := range runs {
		summaries[i] = runSummary{
			ID:             run.ID,
			Type:           string(run.Type),
			OrganizationID: run.OrganizationID,
			Success:        run.Success,
			ErrorMessage:   run.ErrorMessage,
			GeneratedAt:    run.GeneratedAt.Format("2006-01-02 15:04:05"),
			DurationMS:     run.Duration.Milliseconds(),
		}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// HandleGetRun returns the archived JSON payload of one run.
// GET /api/runs/{id}
func (h *ReportHandler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.archive.GetRun(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(run.Payload)
}

// HandleInspectionPDF renders an archived inspection run as PDF.
// GET /api/runs/{id}/pdf
func (h *ReportHandler) HandleInspectionPDF(w http.ResponseWriter, r *http.Request) {
	run, err := h.archive.GetRun(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if run.Type != domain.ReportInspection {
		http.Error(w, "PDF export is only available for device_inspection runs", http.StatusBadRequest)
		return
	}

	var report domain.InspectionReport
	if err := json.Unmarshal(run.Payload, &report); err != nil {
		http.Error(w, "corrupt archived payload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	pdf, err := h.exporter.ExportInspection(&report)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id := run.ID
	if len(id) > 8 {
		id = id[:8]
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=inspection-%s.pdf", id))
	w.Write(pdf)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: encode response: %v", err)
	}
}
