// AngelaMos | 2026
// dto.go

package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=1000"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	TimeEntryID *string         `json:"timeEntryId" validate:"omitempty,uuid"`
}

type CreateInvoiceRequest struct {
	ClientID  string           `json:"clientId"  validate:"required,uuid"`
	CaseID    *string          `json:"caseId"    validate:"omitempty,uuid"`
	IssueDate *time.Time       `json:"issueDate"`
	DueDate   *time.Time       `json:"dueDate"`
	TaxRate   *decimal.Decimal `json:"taxRate"`
	Notes     *string          `json:"notes"     validate:"omitempty,max=10000"`
	Items     []ItemRequest    `json:"items"     validate:"required,min=1,max=500,dive"`
}

type GenerateInvoiceRequest struct {
	ClientID string           `json:"clientId" validate:"required,uuid"`
	CaseID   *string          `json:"caseId"   validate:"omitempty,uuid"`
	DueDate  *time.Time       `json:"dueDate"`
	TaxRate  *decimal.Decimal `json:"taxRate"`
	Notes    *string          `json:"notes"    validate:"omitempty,max=10000"`
}

type UpdateInvoiceRequest struct {
	CaseID    *string    `json:"caseId"    validate:"omitempty,uuid"`
	IssueDate *time.Time `json:"issueDate"`
	DueDate   *time.Time `json:"dueDate"`
	Notes     *string    `json:"notes"     validate:"omitempty,max=10000"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid overdue cancelled"`
}

type ListParams struct {
	ClientID string
	CaseID   string
	Status   string
	Search   string
}
