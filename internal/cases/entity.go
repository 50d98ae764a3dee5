// AngelaMos | 2026
// entity.go

package cases

import (
	"time"
)

const (
	StatusActive   = "active"
	StatusPending  = "pending"
	StatusClosed   = "closed"
	StatusArchived = "archived"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type Case struct {
	ID                 string     `db:"id"                   json:"id"`
	CaseNumber         string     `db:"case_number"          json:"caseNumber"`
	Title              string     `db:"title"                json:"title"`
	Description        *string    `db:"description"          json:"description"`
	CaseType           string     `db:"case_type"            json:"caseType"`
	Status             string     `db:"status"               json:"status"`
	Priority           string     `db:"priority"             json:"priority"`
	Progress           int        `db:"progress"             json:"progress"`
	ClientID           string     `db:"client_id"            json:"clientId"`
	AssignedAttorneyID *string    `db:"assigned_attorney_id" json:"assignedAttorneyId"`
	StartDate          *time.Time `db:"start_date"           json:"startDate"`
	CloseDate          *time.Time `db:"close_date"           json:"closeDate"`
	CreatedAt          time.Time  `db:"created_at"           json:"createdAt"`
	UpdatedAt          time.Time  `db:"updated_at"           json:"updatedAt"`
}
