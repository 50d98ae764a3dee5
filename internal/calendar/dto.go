// AngelaMos | 2026
// dto.go

package calendar

import (
	"time"
)

type CreateEventRequest struct {
	Title       string    `json:"title"       validate:"required,min=1,max=255"`
	Description *string   `json:"description" validate:"omitempty,max=10000"`
	StartTime   time.Time `json:"startTime"   validate:"required"`
	EndTime     time.Time `json:"endTime"     validate:"required,gtefield=StartTime"`
	Location    *string   `json:"location"    validate:"omitempty,max=255"`
	EventType   string    `json:"eventType"   validate:"required,oneof=court_date meeting deadline consultation"`
	Status      string    `json:"status"      validate:"omitempty,oneof=scheduled confirmed cancelled completed"`
	CaseID      *string   `json:"caseId"      validate:"omitempty,uuid"`
	ClientID    *string   `json:"clientId"    validate:"omitempty,uuid"`
	AttorneyID  *string   `json:"attorneyId"  validate:"omitempty,uuid"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=10000"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Location    *string    `json:"location"    validate:"omitempty,max=255"`
	EventType   *string    `json:"eventType"   validate:"omitempty,oneof=court_date meeting deadline consultation"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=scheduled confirmed cancelled completed"`
	CaseID      *string    `json:"caseId"      validate:"omitempty,uuid"`
	ClientID    *string    `json:"clientId"    validate:"omitempty,uuid"`
	AttorneyID  *string    `json:"attorneyId"  validate:"omitempty,uuid"`
}

type ListParams struct {
	From       *time.Time
	To         *time.Time
	EventType  string
	Status     string
	CaseID     string
	ClientID   string
	AttorneyID string
}
