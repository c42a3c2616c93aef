package models

import "time"

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
)

// Project groups tasks under a company engagement.
type Project struct {
	ID             int64         `json:"id"`
	CompanyID      int64         `json:"companyId"`
	CompanyName    string        `json:"companyName,omitempty"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	DailyRate      float64       `json:"dailyRate"`
	HourlyRate     float64       `json:"hourlyRate"`
	Currency       string        `json:"currency"`
	StartDate      *time.Time    `json:"startDate,omitempty"`
	EndDate        *time.Time    `json:"endDate,omitempty"`
	EstimatedHours float64       `json:"estimatedHours"`
	Status         ProjectStatus `json:"status"`
	OwnerEmail     string        `json:"userEmail"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
