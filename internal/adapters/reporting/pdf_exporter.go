// Package reporting implements ports.ReportExporter as a PDF renderer over
// a session's ReportData, adapted from the teacher's executive-summary PDF
// exporter to this system's handshake/attack-centric report shape.
package reporting

import (
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"spyfi/internal/core/domain"
	"spyfi/internal/core/ports"
)

// PDFExporter renders a ReportData as a single-session PDF.
type PDFExporter struct{}

// NewPDFExporter returns a ready-to-use PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Export renders report and writes it to path.
func (e *PDFExporter) Export(report domain.ReportData, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addStatistics(pdf, report)
	e.addNetworks(pdf, report)
	e.addAuditLog(pdf, report)
	e.addFooter(pdf)

	return pdf.OutputFileAndClose(path)
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report domain.ReportData) {
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 14, "Session Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, fmt.Sprintf("Report ID: %s", report.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Interface: %s", report.Interface), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Duration: %s", report.Duration.Round(1e9)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")), "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func (e *PDFExporter) addStatistics(pdf *gofpdf.Fpdf, report domain.ReportData) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Summary", "", 1, "L", false, 0, "")

	stats := []struct {
		label string
		value string
	}{
		{"Networks Observed", fmt.Sprintf("%d", report.Stats.NetworksObserved)},
		{"Handshakes Captured", fmt.Sprintf("%d", report.Stats.HandshakesCaptured)},
		{"Passwords Cracked", fmt.Sprintf("%d", report.Stats.PasswordsCracked)},
		{"Deauth Frames Sent", fmt.Sprintf("%d", report.Stats.DeauthFramesSent)},
	}

	pdf.SetFont("Arial", "", 11)
	for _, s := range stats {
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(60, 7, s.label+":", "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 102, 204)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, s.value, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
	}
	pdf.Ln(6)
}

func (e *PDFExporter) addNetworks(pdf *gofpdf.Fpdf, report domain.ReportData) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Networks", "", 1, "L", false, 0, "")

	if len(report.Networks) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No networks observed", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	networks := make([]domain.NetworkSummary, len(report.Networks))
	copy(networks, report.Networks)
	sort.Slice(networks, func(i, j int) bool { return networks[i].Ssid < networks[j].Ssid })

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(45, 8, "BSSID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "SSID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(18, 8, "Ch", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 8, "Protocol", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 8, "Handshake", "1", 0, "C", true, 0, "")
	pdf.CellFormat(0, 8, "Password", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, n := range networks {
		if pdf.GetY() > 270 {
			pdf.AddPage()
		}
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(45, 7, n.Bssid.String(), "1", 0, "L", false, 0, "")
		ssid := n.Ssid
		if ssid == "" {
			ssid = "<hidden>"
		}
		pdf.CellFormat(40, 7, ssid, "1", 0, "L", false, 0, "")
		pdf.CellFormat(18, 7, fmt.Sprintf("%d", n.Channel), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, string(n.Protocol), "1", 0, "C", false, 0, "")

		if n.HasHandshake {
			pdf.SetTextColor(52, 199, 89)
			pdf.CellFormat(25, 7, "yes", "1", 0, "C", false, 0, "")
		} else {
			pdf.SetTextColor(150, 150, 150)
			pdf.CellFormat(25, 7, "no", "1", 0, "C", false, 0, "")
		}

		pdf.SetTextColor(60, 60, 60)
		if n.Password != nil {
			pdf.SetTextColor(220, 53, 69)
			pdf.CellFormat(0, 7, *n.Password, "1", 1, "L", false, 0, "")
		} else {
			pdf.CellFormat(0, 7, "-", "1", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(6)
}

func (e *PDFExporter) addAuditLog(pdf *gofpdf.Fpdf, report domain.ReportData) {
	if len(report.AuditLogs) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Audit Log", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	for _, l := range report.AuditLogs {
		if pdf.GetY() > 275 {
			pdf.AddPage()
		}
		pdf.SetTextColor(100, 100, 100)
		line := fmt.Sprintf("%s  %-22s  %-18s  %s",
			l.Timestamp.Format("15:04:05"), l.Action, l.Target, l.Details)
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}
}

func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf) {
	pdf.SetY(-15)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(3)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "Generated by spyfi", "", 1, "C", false, 0, "")
}

var _ ports.ReportExporter = (*PDFExporter)(nil)
