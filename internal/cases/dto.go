// AngelaMos | 2026
// dto.go

package cases

import (
	"time"
)

type CreateCaseRequest struct {
	CaseNumber         *string    `json:"caseNumber"         validate:"omitempty,min=1,max=50"`
	Title              string     `json:"title"              validate:"required,min=1,max=255"`
	Description        *string    `json:"description"        validate:"omitempty,max=10000"`
	CaseType           string     `json:"caseType"           validate:"required,min=1,max=100"`
	Status             string     `json:"status"             validate:"omitempty,oneof=active pending closed archived"`
	Priority           string     `json:"priority"           validate:"omitempty,oneof=low medium high urgent"`
	Progress           *int       `json:"progress"           validate:"omitempty,gte=0,lte=100"`
	ClientID           string     `json:"clientId"           validate:"required,uuid"`
	AssignedAttorneyID *string    `json:"assignedAttorneyId" validate:"omitempty,uuid"`
	StartDate          *time.Time `json:"startDate"`
	CloseDate          *time.Time `json:"closeDate"`
}

type UpdateCaseRequest struct {
	Title              *string    `json:"title"              validate:"omitempty,min=1,max=255"`
	Description        *string    `json:"description"        validate:"omitempty,max=10000"`
	CaseType           *string    `json:"caseType"           validate:"omitempty,min=1,max=100"`
	Status             *string    `json:"status"             validate:"omitempty,oneof=active pending closed archived"`
	Priority           *string    `json:"priority"           validate:"omitempty,oneof=low medium high urgent"`
	Progress           *int       `json:"progress"           validate:"omitempty,gte=0,lte=100"`
	ClientID           *string    `json:"clientId"           validate:"omitempty,uuid"`
	AssignedAttorneyID *string    `json:"assignedAttorneyId" validate:"omitempty,uuid"`
	StartDate          *time.Time `json:"startDate"`
	CloseDate          *time.Time `json:"closeDate"`
}

type ListParams struct {
	Search     string
	Status     string
	Priority   string
	ClientID   string
	AttorneyID string
}
