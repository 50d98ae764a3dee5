// AngelaMos | 2026
// dto.go

package compliance

import (
	"time"
)

type CreateDeadlineRequest struct {
	Title        string    `json:"title"        validate:"required,min=1,max=255"`
	Description  *string   `json:"description"  validate:"omitempty,max=5000"`
	DueDate      time.Time `json:"dueDate"      validate:"required"`
	DeadlineType string    `json:"deadlineType" validate:"required,oneof=bar_requirement court_filing ethics continuing_education"`
	Status       string    `json:"status"       validate:"omitempty,oneof=pending completed overdue"`
	CaseID       *string   `json:"caseId"       validate:"omitempty,uuid"`
	AttorneyID   *string   `json:"attorneyId"   validate:"omitempty,uuid"`
}

type UpdateDeadlineRequest struct {
	Title        *string    `json:"title"        validate:"omitempty,min=1,max=255"`
	Description  *string    `json:"description"  validate:"omitempty,max=5000"`
	DueDate      *time.Time `json:"dueDate"`
	DeadlineType *string    `json:"deadlineType" validate:"omitempty,oneof=bar_requirement court_filing ethics continuing_education"`
	Status       *string    `json:"status"       validate:"omitempty,oneof=pending completed overdue"`
	CaseID       *string    `json:"caseId"       validate:"omitempty,uuid"`
	AttorneyID   *string    `json:"attorneyId"   validate:"omitempty,uuid"`
}

type ListParams struct {
	Status       string
	DeadlineType string
	CaseID       string
	AttorneyID   string
	// DueBefore limits the list to open deadlines due before this instant.
	DueBefore *time.Time
}
