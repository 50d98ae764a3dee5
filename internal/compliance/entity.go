// AngelaMos | 2026
// entity.go

package compliance

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusOverdue   = "overdue"
)

const (
	TypeBarRequirement      = "bar_requirement"
	TypeCourtFiling         = "court_filing"
	TypeEthics              = "ethics"
	TypeContinuingEducation = "continuing_education"
)

type Deadline struct {
	ID           string     `db:"id"            json:"id"`
	Title        string     `db:"title"         json:"title"`
	Description  *string    `db:"description"   json:"description"`
	DueDate      time.Time  `db:"due_date"      json:"dueDate"`
	DeadlineType string     `db:"deadline_type" json:"deadlineType"`
	Status       string     `db:"status"        json:"status"`
	CaseID       *string    `db:"case_id"       json:"caseId"`
	AttorneyID   *string    `db:"attorney_id"   json:"attorneyId"`
	CompletedAt  *time.Time `db:"completed_at"  json:"completedAt"`
	CreatedAt    time.Time  `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at"    json:"updatedAt"`
}
