// AngelaMos | 2026
// entity.go

package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

type Invoice struct {
	ID            string          `db:"id"             json:"id"`
	InvoiceNumber string          `db:"invoice_number" json:"invoiceNumber"`
	ClientID      string          `db:"client_id"      json:"clientId"`
	CaseID        *string         `db:"case_id"        json:"caseId"`
	IssueDate     time.Time       `db:"issue_date"     json:"issueDate"`
	DueDate       time.Time       `db:"due_date"       json:"dueDate"`
	Subtotal      decimal.Decimal `db:"subtotal"       json:"subtotal"`
	TaxRate       decimal.Decimal `db:"tax_rate"       json:"taxRate"`
	TaxAmount     decimal.Decimal `db:"tax_amount"     json:"taxAmount"`
	Total         decimal.Decimal `db:"total"          json:"total"`
	Status        string          `db:"status"         json:"status"`
	PaidAt        *time.Time      `db:"paid_at"        json:"paidAt"`
	Notes         *string         `db:"notes"          json:"notes"`
	CreatedAt     time.Time       `db:"created_at"     json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at"     json:"updatedAt"`
	Items         []Item          `db:"-"              json:"items"`
}

type Item struct {
	ID          string          `db:"id"            json:"id"`
	InvoiceID   string          `db:"invoice_id"    json:"invoiceId"`
	TimeEntryID *string         `db:"time_entry_id" json:"timeEntryId"`
	Description string          `db:"description"   json:"description"`
	Quantity    decimal.Decimal `db:"quantity"      json:"quantity"`
	Rate        decimal.Decimal `db:"rate"          json:"rate"`
	Amount      decimal.Decimal `db:"amount"        json:"amount"`
	CreatedAt   time.Time       `db:"created_at"    json:"createdAt"`
}

// BillableEntry is the slice of a time entry an invoice line is built from.
type BillableEntry struct {
	ID              string          `db:"id"`
	CaseID          string          `db:"case_id"`
	Activity        string          `db:"activity"`
	Description     *string         `db:"description"`
	StartTime       time.Time       `db:"start_time"`
	RoundedDuration int             `db:"rounded_duration"`
	HourlyRate      decimal.Decimal `db:"hourly_rate"`
}

var transitions = map[string][]string{
	StatusDraft:     {StatusSent, StatusCancelled},
	StatusSent:      {StatusDraft, StatusPaid, StatusOverdue, StatusCancelled},
	StatusOverdue:   {StatusSent, StatusPaid, StatusCancelled},
	StatusPaid:      {StatusSent},
	StatusCancelled: {StatusDraft},
}

func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Deletable invoices have no payment history worth keeping.
func (inv *Invoice) Deletable() bool {
	return inv.Status == StatusDraft || inv.Status == StatusCancelled
}
