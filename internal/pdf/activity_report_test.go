package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"workledger/internal/models"
)

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{0, "0,00"},
		{4.5, "4,50"},
		{1234.5, "1.234,50"},
		{1234567.89, "1.234.567,89"},
		{-1234.5, "-1.234,50"},
	}
	for _, tc := range cases {
		if got := formatAmount(tc.in); got != tc.want {
			t.Fatalf("formatAmount(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestTruncate_RuneSafe(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("attività ", 10) // 90 runes, multi-byte à
	got := truncate(long, 70)
	if utf8.RuneCountInString(got) != 70 {
		t.Fatalf("expected 70 runes, got %d", utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}

	if got := truncate("breve", 70); got != "breve" {
		t.Fatalf("short titles must pass through, got %q", got)
	}
}

func TestActivityReport_ProducesPDF(t *testing.T) {
	t.Parallel()

	g := NewReportGenerator()
	data := ReportData{
		OwnerEmail: "dev@example.com",
		From:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Tasks: []models.Task{
			{
				TicketID:    "TSK-2025-AB12CD",
				Title:       "fix login redirect",
				Type:        "CORRETTIVA",
				StartDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				HoursWorked: 4,
				RateUsed:    50,
				Currency:    "EUR",
			},
			{
				TicketID:    "TSK-2025-EF34GH",
				Title:       "migrate invoice export\nto async worker",
				Type:        "EVOLUTIVA",
				StartDate:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
				HoursWorked: 6.5,
				RateUsed:    50,
				Currency:    "EUR",
			},
		},
	}

	out, err := g.ActivityReport(data)
	if err != nil {
		t.Fatalf("ActivityReport returned error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty output")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: %q", out[:8])
	}
}

func TestActivityReport_EmptyPeriod(t *testing.T) {
	t.Parallel()

	g := NewReportGenerator()
	out, err := g.ActivityReport(ReportData{
		OwnerEmail: "dev@example.com",
		From:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("ActivityReport returned error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("empty period must still render a valid document")
	}
}
