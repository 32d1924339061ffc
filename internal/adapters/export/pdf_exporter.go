package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

// PDFExporter renders inspection reports to PDF format
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportInspection generates a printable PDF from a device inspection report
func (e *PDFExporter) ExportInspection(report *domain.InspectionReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addHealthVerdict(pdf, report)
	e.addStatusGrid(pdf, report)
	e.addCriticalAlerts(pdf, report)
	e.addRecommendations(pdf, report)
	e.addFooter(pdf, report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// addHeader adds the report title block
func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report *domain.InspectionReport) {
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	pdf.CellFormat(0, 15, "Device Inspection Report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if report.OrganizationName != "" {
		pdf.SetFont("Arial", "", 14)
		pdf.SetTextColor(100, 100, 100) // Gray
		pdf.CellFormat(0, 8, report.OrganizationName, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", report.QueryTime), "", 1, "L", false, 0, "")
	pdf.Ln(8)
}

// addHealthVerdict adds the prominent health banner
func (e *PDFExporter) addHealthVerdict(pdf *gofpdf.Fpdf, report *domain.InspectionReport) {
	r, g, b := e.getHealthColor(report.DeviceStatus.HealthPercentage)

	pdf.SetFillColor(r, g, b)
	pdf.Rect(20, pdf.GetY(), 170, 30, "F")

	y := pdf.GetY()

	pdf.SetFont("Arial", "B", 36)
	pdf.SetTextColor(255, 255, 255) // White
	pdf.SetXY(25, y+5)
	pdf.CellFormat(80, 20, fmt.Sprintf("%.1f%%", report.DeviceStatus.HealthPercentage), "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 18)
	pdf.SetXY(110, y+8)
	pdf.CellFormat(80, 14, report.Health.OverallHealth, "", 0, "L", false, 0, "")

	pdf.SetY(y + 35)
	pdf.Ln(5)
}

// getHealthColor returns RGB color based on the device health percentage
func (e *PDFExporter) getHealthColor(pct float64) (r, g, b int) {
	switch {
	case pct > 95:
		return 52, 199, 89 // Green
	case pct > 80:
		return 255, 204, 0 // Yellow
	case pct > 50:
		return 255, 149, 0 // Orange
	default:
		return 220, 53, 69 // Red
	}
}

// addStatusGrid adds the device status statistics
func (e *PDFExporter) addStatusGrid(pdf *gofpdf.Fpdf, report *domain.InspectionReport) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Device Status Overview", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	status := report.DeviceStatus
	stats := []struct {
		label string
		value string
		color []int
	}{
		{"Total Devices", fmt.Sprintf("%d", status.TotalDevices), []int{0, 102, 204}},
		{"Online", fmt.Sprintf("%d", status.OnlineDevices), []int{52, 199, 89}},
		{"Offline", fmt.Sprintf("%d", status.OfflineDevices), []int{220, 53, 69}},
		{"Alerting", fmt.Sprintf("%d", status.AlertingDevices), []int{255, 149, 0}},
		{"Dormant", fmt.Sprintf("%d", status.DormantDevices), []int{150, 150, 150}},
		{"Critical Alerts", fmt.Sprintf("%d", report.Alerts.CriticalAlerts), []int{220, 53, 69}},
		{"Warning Alerts", fmt.Sprintf("%d", report.Alerts.WarningAlerts), []int{255, 204, 0}},
		{"Network Stability", report.Health.NetworkStability, []int{0, 102, 204}},
	}

	colWidth := 85.0
	for i, stat := range stats {
		x := 20.0
		if i%2 == 1 {
			x = 105.0
		}

		pdf.SetXY(x, pdf.GetY())

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(50, 7, stat.label+":", "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(stat.color[0], stat.color[1], stat.color[2])
		pdf.CellFormat(colWidth-50, 7, stat.value, "", 0, "R", false, 0, "")

		if i%2 == 1 {
			pdf.Ln(7)
		}
	}

	pdf.Ln(10)
}

// addCriticalAlerts adds the critical alerts table
func (e *PDFExporter) addCriticalAlerts(pdf *gofpdf.Fpdf, report *domain.InspectionReport) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Critical Alerts", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(report.Alerts.RecentCritical) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No open critical alerts", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)

	pdf.CellFormat(45, 8, "Type", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Category", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Started", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 8, "Title", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, alert := range report.Alerts.RecentCritical {
		pdf.SetTextColor(220, 53, 69)
		pdf.CellFormat(45, 7, alert.Type, "1", 0, "L", false, 0, "")

		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(35, 7, alert.CategoryType, "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, alert.StartedAt.Format("2006-01-02"), "1", 0, "C", false, 0, "")

		title := alert.Title
		if len(title) > 36 {
			title = title[:33] + "..."
		}
		pdf.CellFormat(55, 7, title, "1", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
}

// addRecommendations adds the recommended operator actions
func (e *PDFExporter) addRecommendations(pdf *gofpdf.Fpdf, report *domain.InspectionReport) {
	actions := report.Recommendations.ImmediateActions
	if len(actions) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Immediate Actions", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(60, 60, 60)
	for _, action := range actions {
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
		pdf.CellFormat(5, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, "- "+action, "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

// addFooter adds the report footer
func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, report *domain.InspectionReport) {
	pdf.SetY(-20)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(3)

	runID := report.RunID
	if len(runID) > 8 {
		runID = runID[:8]
	}
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated by merakid | Run ID: %s", runID), "", 1, "C", false, 0, "")
}
