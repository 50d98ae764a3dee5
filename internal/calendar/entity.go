// AngelaMos | 2026
// entity.go

package calendar

import (
	"time"
)

const (
	TypeCourtDate    = "court_date"
	TypeMeeting      = "meeting"
	TypeDeadline     = "deadline"
	TypeConsultation = "consultation"
)

const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// SourceTimeEntry marks events recorded automatically when a timer stops.
const SourceTimeEntry = "time_entry"

type Event struct {
	ID          string    `db:"id"          json:"id"`
	Title       string    `db:"title"       json:"title"`
	Description *string   `db:"description" json:"description"`
	StartTime   time.Time `db:"start_time"  json:"startTime"`
	EndTime     time.Time `db:"end_time"    json:"endTime"`
	Location    *string   `db:"location"    json:"location"`
	EventType   string    `db:"event_type"  json:"eventType"`
	Status      string    `db:"status"      json:"status"`
	SourceType  *string   `db:"source_type" json:"sourceType"`
	SourceID    *string   `db:"source_id"   json:"sourceId"`
	CaseID      *string   `db:"case_id"     json:"caseId"`
	ClientID    *string   `db:"client_id"   json:"clientId"`
	AttorneyID  *string   `db:"attorney_id" json:"attorneyId"`
	CreatedAt   time.Time `db:"created_at"  json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updatedAt"`
}
