package models

import "time"

type CompanyStatus string

const (
	CompanyActive   CompanyStatus = "ACTIVE"
	CompanyInactive CompanyStatus = "INACTIVE"
)

type Company struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email,omitempty"`
	TaxID      string        `json:"taxId,omitempty"`
	Address    string        `json:"address,omitempty"`
	Status     CompanyStatus `json:"status"`
	OwnerEmail string        `json:"userEmail"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}
