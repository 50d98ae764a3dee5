// AngelaMos | 2026
// entity.go

package timeentry

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusDraft       = "draft"
	StatusReadyToBill = "ready_to_bill"
	StatusInvoiced    = "invoiced"
	StatusPaid        = "paid"
)

const (
	TimerRunning = "running"
	TimerPaused  = "paused"
	TimerStopped = "stopped"
)

type TimeEntry struct {
	ID              string          `db:"id"                json:"id"`
	CaseID          string          `db:"case_id"           json:"caseId"`
	AttorneyID      string          `db:"attorney_id"       json:"attorneyId"`
	Activity        string          `db:"activity"          json:"activity"`
	Description     *string         `db:"description"       json:"description"`
	UTBMSCode       *string         `db:"utbms_code"        json:"utbmsCode"`
	StartTime       time.Time       `db:"start_time"        json:"startTime"`
	EndTime         *time.Time      `db:"end_time"          json:"endTime"`
	IsPaused        bool            `db:"is_paused"         json:"isPaused"`
	PausedAt        *time.Time      `db:"paused_at"         json:"pausedAt"`
	PausedDuration  int             `db:"paused_duration"   json:"pausedDuration"`
	Duration        *int            `db:"duration"          json:"duration"`
	RoundedDuration *int            `db:"rounded_duration"  json:"roundedDuration"`
	HourlyRate      decimal.Decimal `db:"hourly_rate"       json:"hourlyRate"`
	Billable        bool            `db:"billable"          json:"billable"`
	Status          string          `db:"status"            json:"status"`
	InvoiceID       *string         `db:"invoice_id"        json:"invoiceId"`
	CalendarEventID *string         `db:"calendar_event_id" json:"calendarEventId"`
	CreatedAt       time.Time       `db:"created_at"        json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at"        json:"updatedAt"`
}

func (e *TimeEntry) TimerState() string {
	switch {
	case e.EndTime != nil:
		return TimerStopped
	case e.IsPaused:
		return TimerPaused
	default:
		return TimerRunning
	}
}

// statusOrder is the billing chain. An entry moves one step forward or
// one step back at a time.
var statusOrder = map[string]int{
	StatusDraft:       0,
	StatusReadyToBill: 1,
	StatusInvoiced:    2,
	StatusPaid:        3,
}

func ValidStatus(status string) bool {
	_, ok := statusOrder[status]
	return ok
}

// CanTransition reports whether from may move to to. Staying put is
// allowed and is a no-op for callers.
func CanTransition(from, to string) bool {
	f, ok := statusOrder[from]
	if !ok {
		return false
	}
	t, ok := statusOrder[to]
	if !ok {
		return false
	}
	d := t - f
	return d >= -1 && d <= 1
}
