package reporting

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bei612/meraki-workflows/internal/core/domain"
	"github.com/bei612/meraki-workflows/internal/core/ports"
	"github.com/bei612/meraki-workflows/internal/telemetry"
)

// runIDKey carries a caller-assigned run id through the generation context,
// so lifecycle notifications and the archived record share one id.
type runIDKey struct{}

// WithRunID returns a context that pins the run id of any report generated
// under it.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

func runIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

// Runner drives one report generation end to end: notify start, generate,
// archive, notify finish. Archival failures are logged, not fatal — the
// caller still gets the generated report.
type Runner struct {
	gen      *Generator
	archive  ports.ReportArchive
	notifier ports.RunNotifier
	now      func() time.Time
	newRunID func() string
}

// NewRunner wires a Runner. archive and notifier may be nil; the respective
// steps are skipped.
func NewRunner(gen *Generator, archive ports.ReportArchive, notifier ports.RunNotifier) *Runner {
	return &Runner{
		gen:      gen,
		archive:  archive,
		notifier: notifier,
		now:      time.Now,
		newRunID: func() string { return uuid.New().String() },
	}
}

// Run generates one report and archives the outcome. The returned run record
// carries the JSON payload that was archived.
func (r *Runner) Run(ctx context.Context, t domain.ReportType, p Params) (domain.ReportRun, any, error) {
	started := r.now()
	runID := r.newRunID()
	ctx = WithRunID(ctx, runID)

	if r.notifier != nil {
		r.notifier.RunStarted(runID, t)
	}

	result, err := r.gen.Generate(ctx, t, p)
	if err != nil {
		return domain.ReportRun{}, nil, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return domain.ReportRun{}, nil, err
	}

	meta := extractMeta(result)
	run := domain.ReportRun{
		ID:             runID,
		Type:           t,
		OrganizationID: meta.OrganizationID,
		Success:        meta.Success,
		ErrorMessage:   meta.ErrorMessage,
		GeneratedAt:    started,
		Duration:       r.now().Sub(started),
		Payload:        payload,
	}

	outcome := "success"
	if !run.Success {
		outcome = "failure"
	}
	telemetry.ReportsGenerated.WithLabelValues(string(t), outcome).Inc()

	if r.archive != nil {
		if err := r.archive.SaveRun(ctx, run); err != nil {
			log.Printf("reporting: archive run %s: %v", run.ID, err)
		}
	}
	if r.notifier != nil {
		r.notifier.RunFinished(run)
	}
	return run, result, nil
}

// extractMeta pulls the embedded ReportMeta out of a typed report result.
func extractMeta(result any) domain.ReportMeta {
	switch v := result.(type) {
	case domain.DeviceStatusReport:
		return v.ReportMeta
	case domain.DeviceSearchReport:
		return v.ReportMeta
	case domain.ClientCountReport:
		return v.ReportMeta
	case domain.FirmwareReport:
		return v.ReportMeta
	case domain.LicenseReport:
		return v.ReportMeta
	case domain.InspectionReport:
		return v.ReportMeta
	case domain.FloorPlanReport:
		return v.ReportMeta
	case domain.DeviceLocationReport:
		return v.ReportMeta
	case domain.LostDeviceReport:
		return v.ReportMeta
	case domain.AlertsLogReport:
		return v.ReportMeta
	case domain.NetworkHealthReport:
		return v.ReportMeta
	case domain.SecurityPostureReport:
		return v.ReportMeta
	case domain.CapacityPlanReport:
		return v.ReportMeta
	default:
		return domain.ReportMeta{}
	}
}
