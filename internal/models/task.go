package models

import "time"

// Task type tags, mirroring the Italian billing convention the ledger
// was built for.
const (
	TaskTypeCorrective = "CORRETTIVA"
	TaskTypeEvolutive  = "EVOLUTIVA"
)

// Task represents a single billable unit of work recorded against a project.
type Task struct {
	ID               int64      `json:"id"`
	ProjectID        int64      `json:"projectId"`
	ProjectName      string     `json:"projectName,omitempty"`
	TicketID         string     `json:"ticketId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	HoursWorked      float64    `json:"hoursWorked"`
	RateUsed         float64    `json:"rateUsed"`
	Type             string     `json:"type"`
	Currency         string     `json:"currency"`
	IsBilled         bool       `json:"isBilled"`
	IsPaid           bool       `json:"isPaid"`
	BillingDate      *time.Time `json:"billingDate,omitempty"`
	PaymentDate      *time.Time `json:"paymentDate,omitempty"`
	InvoiceID        *string    `json:"invoiceId,omitempty"`
	ReferencedTaskID string     `json:"referencedTaskId,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	OwnerEmail       string     `json:"userEmail"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// TaskQuery defines the available parameters for filtering a user's tasks.
// ProjectID and Search are pushed down to the store; Type, IsBilled and
// IsPaid are applied in memory by the service when present.
type TaskQuery struct {
	ProjectID *int64
	Type      *string
	IsBilled  *bool
	IsPaid    *bool
	Search    string
}

// HasPostFilters reports whether the query carries predicates the store
// cannot express combined with the native ones.
func (q TaskQuery) HasPostFilters() bool {
	return q.IsBilled != nil || q.IsPaid != nil || (q.Type != nil && *q.Type != "")
}

// BillingStatusUpdate is one item of a bulk billing transition.
type BillingStatusUpdate struct {
	TaskID      int64      `json:"taskId" binding:"required"`
	IsBilled    bool       `json:"isBilled"`
	BillingDate *time.Time `json:"billingDate"`
	InvoiceID   *string    `json:"invoiceId"`
}

// PaymentStatusUpdate is one item of a bulk payment transition.
type PaymentStatusUpdate struct {
	TaskID      int64      `json:"taskId" binding:"required"`
	IsPaid      bool       `json:"isPaid"`
	PaymentDate *time.Time `json:"paymentDate"`
}

// ProjectMonthlyCost is the total recorded cost of one project in one
// calendar month (hours worked times the rate used).
type ProjectMonthlyCost struct {
	ProjectName string  `json:"projectName"`
	Month       string  `json:"month"` // yyyy-MM
	TotalCost   float64 `json:"totalCost"`
}

// CompanyTaskStats aggregates recorded work for one company.
type CompanyTaskStats struct {
	CompanyID    int64   `json:"companyId"`
	CompanyName  string  `json:"companyName"`
	ProjectCount int64   `json:"projectCount"`
	TaskCount    int64   `json:"taskCount"`
	TotalHours   float64 `json:"totalHours"`
	TotalAmount  float64 `json:"totalAmount"`
}
