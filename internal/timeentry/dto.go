// AngelaMos | 2026
// dto.go

package timeentry

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTimeEntryRequest struct {
	CaseID      string           `json:"caseId"      validate:"required,uuid"`
	AttorneyID  *string          `json:"attorneyId"  validate:"omitempty,uuid"`
	Activity    string           `json:"activity"    validate:"required,min=1,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=10000"`
	UTBMSCode   *string          `json:"utbmsCode"   validate:"omitempty,max=10"`
	StartTime   *time.Time       `json:"startTime"`
	EndTime     *time.Time       `json:"endTime"`
	HourlyRate  *decimal.Decimal `json:"hourlyRate"`
	Billable    *bool            `json:"billable"`
}

type UpdateTimeEntryRequest struct {
	CaseID      *string          `json:"caseId"      validate:"omitempty,uuid"`
	Activity    *string          `json:"activity"    validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=10000"`
	UTBMSCode   *string          `json:"utbmsCode"   validate:"omitempty,max=10"`
	StartTime   *time.Time       `json:"startTime"`
	EndTime     *time.Time       `json:"endTime"`
	HourlyRate  *decimal.Decimal `json:"hourlyRate"`
	Billable    *bool            `json:"billable"`
}

type BatchStatusRequest struct {
	IDs    []string `json:"ids"    validate:"required,min=1,max=500,dive,uuid"`
	Status string   `json:"status" validate:"required,oneof=draft ready_to_bill invoiced paid"`
}

type BatchStatusResponse struct {
	Updated int         `json:"updated"`
	Entries []TimeEntry `json:"entries"`
}

type ListParams struct {
	CaseID     string
	AttorneyID string
	Status     string
	InvoiceID  string
	Billable   *bool
	From       *time.Time
	To         *time.Time
}
