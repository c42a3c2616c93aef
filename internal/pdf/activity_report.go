package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"workledger/internal/models"
)

// Generator renders activity reports (SAL). Deterministic in its inputs,
// so handlers can stream the result directly.
type Generator interface {
	ActivityReport(data ReportData) ([]byte, error)
}

type ReportData struct {
	OwnerEmail string
	OwnerName  string
	From       time.Time
	To         time.Time
	Tasks      []models.Task
}

const vatRate = 0.22 // Italian VAT

type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// formatAmount renders a number the Italian way: dot for thousands,
// comma for decimals.
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	out := b.String() + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// sanitize strips control characters the core fonts cannot render.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, s)
}

// truncate shortens s to at most max runes, not bytes, so accented
// titles never lose half a character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func (g *ReportGenerator) ActivityReport(data ReportData) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Stato Avanzamento Lavori", false)
	pdf.SetAuthor(data.OwnerEmail, false)
	pdf.SetMargins(12, 14, 12)
	pdf.SetAutoPageBreak(true, 16)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "Stato Avanzamento Lavori", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	sub := fmt.Sprintf("Periodo %s - %s", formatDate(data.From), formatDate(data.To))
	pdf.CellFormat(0, 6, sub, "", 1, "C", false, 0, "")
	owner := data.OwnerName
	if owner == "" {
		owner = data.OwnerEmail
	}
	pdf.CellFormat(0, 6, sanitize(owner), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Table header
	type column struct {
		title string
		width float64
	}
	columns := []column{
		{"Data", 24},
		{"Ticket", 34},
		{"Attivita", 108},
		{"Tipo", 28},
		{"Ore", 18},
		{"Tariffa", 28},
		{"Importo", 32},
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range columns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// Rows
	pdf.SetFont("Helvetica", "", 9)
	var totalHours, totalAmount float64
	currency := ""
	for _, t := range data.Tasks {
		amount := t.HoursWorked * t.RateUsed
		totalHours += t.HoursWorked
		totalAmount += amount
		if currency == "" {
			currency = t.Currency
		}

		title := truncate(sanitize(t.Title), 70)
		pdf.CellFormat(columns[0].width, 6, formatDate(t.StartDate), "1", 0, "C", false, 0, "")
		pdf.CellFormat(columns[1].width, 6, sanitize(t.TicketID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(columns[2].width, 6, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(columns[3].width, 6, sanitize(t.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(columns[4].width, 6, formatAmount(t.HoursWorked), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columns[5].width, 6, formatAmount(t.RateUsed), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columns[6].width, 6, formatAmount(amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	// Totals
	vat := totalAmount * vatRate
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 10)
	g.totalLine(pdf, "Totale ore", formatAmount(totalHours))
	g.totalLine(pdf, fmt.Sprintf("Imponibile (%s)", currency), formatAmount(totalAmount))
	g.totalLine(pdf, "IVA 22%", formatAmount(vat))
	g.totalLine(pdf, fmt.Sprintf("Totale (%s)", currency), formatAmount(totalAmount+vat))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render activity report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) totalLine(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(240, 6, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(32, 6, value, "", 1, "R", false, 0, "")
}
