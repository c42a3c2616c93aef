package mirror

import (
	"strconv"
	"time"

	"workledger/internal/models"
)

// Column layout of the mirror sheet, A through K. The ticket id lives in
// column C and is the row key used by UpsertRow/DeleteRow.
const (
	ticketIDColumn = 2
	rowWidth       = 11
)

const dateLayout = "2006-01-02"

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// TaskRow renders a task as the 11 ordered string cells of its mirror
// row. Nil values become empty strings.
func TaskRow(t models.Task) []string {
	invoiceID := ""
	if t.InvoiceID != nil {
		invoiceID = *t.InvoiceID
	}
	start := t.StartDate
	return []string{
		formatDate(&start),
		formatDate(t.EndDate),
		t.TicketID,
		t.Title,
		t.ProjectName,
		strconv.FormatFloat(t.HoursWorked, 'f', -1, 64),
		strconv.FormatBool(t.IsBilled),
		strconv.FormatBool(t.IsPaid),
		formatDate(t.BillingDate),
		formatDate(t.PaymentDate),
		invoiceID,
	}
}
