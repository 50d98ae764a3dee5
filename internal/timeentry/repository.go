// AngelaMos | 2026
// repository.go

package timeentry

import (
	"context"
	"fmt"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Repository interface {
	Create(ctx context.Context, e *TimeEntry) error
	GetByID(ctx context.Context, id string) (*TimeEntry, error)
	GetForUpdate(ctx context.Context, id string) (*TimeEntry, error)
	Update(ctx context.Context, e *TimeEntry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams, page core.PageParams) ([]TimeEntry, int, error)
	Active(ctx context.Context, attorneyID string) (*TimeEntry, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const entryColumns = `id, case_id, attorney_id, activity, description,
	utbms_code, start_time, end_time, is_paused, paused_at, paused_duration,
	duration, rounded_duration, hourly_rate, billable, status, invoice_id,
	calendar_event_id, created_at, updated_at`

func (r *repository) Create(ctx context.Context, e *TimeEntry) error {
	query := `
		INSERT INTO time_entries (id, case_id, attorney_id, activity,
		                          description, utbms_code, start_time,
		                          end_time, duration, rounded_duration,
		                          hourly_rate, billable, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, e, query,
		e.ID, e.CaseID, e.AttorneyID, e.Activity, e.Description,
		e.UTBMSCode, e.StartTime, e.EndTime, e.Duration,
		e.RoundedDuration, e.HourlyRate, e.Billable, e.Status,
	)
	return core.TranslateError("create time entry", err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.GetContext(ctx, &e,
		`SELECT `+entryColumns+` FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return nil, core.TranslateError("get time entry", err)
	}
	return &e, nil
}

// GetForUpdate locks the row for the rest of the surrounding transaction.
func (r *repository) GetForUpdate(ctx context.Context, id string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.GetContext(ctx, &e,
		`SELECT `+entryColumns+` FROM time_entries WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, core.TranslateError("lock time entry", err)
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *TimeEntry) error {
	query := `
		UPDATE time_entries
		SET case_id = $2, activity = $3, description = $4, utbms_code = $5,
		    start_time = $6, end_time = $7, is_paused = $8, paused_at = $9,
		    paused_duration = $10, duration = $11, rounded_duration = $12,
		    hourly_rate = $13, billable = $14, status = $15,
		    invoice_id = $16, calendar_event_id = $17, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &e.UpdatedAt, query,
		e.ID, e.CaseID, e.Activity, e.Description, e.UTBMSCode,
		e.StartTime, e.EndTime, e.IsPaused, e.PausedAt,
		e.PausedDuration, e.Duration, e.RoundedDuration,
		e.HourlyRate, e.Billable, e.Status,
		e.InvoiceID, e.CalendarEventID,
	)
	return core.TranslateError("update time entry", err)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return core.TranslateDeleteError("delete time entry", err)
	}
	return core.ExpectRows("delete time entry", result)
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]TimeEntry, int, error) {
	var f core.Filter
	f.Eq("case_id", params.CaseID)
	f.Eq("attorney_id", params.AttorneyID)
	f.Eq("status", params.Status)
	f.Eq("invoice_id", params.InvoiceID)
	if params.Billable != nil {
		f.Add("billable = $%d", *params.Billable)
	}
	if params.From != nil {
		f.Add("start_time >= $%d", *params.From)
	}
	if params.To != nil {
		f.Add("start_time < $%d", *params.To)
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM time_entries WHERE `+f.Where(), f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count time entries: %w", err)
	}

	limit, args := f.PageClause(page)
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE ` + f.Where() +
		` ORDER BY start_time DESC, id ` + limit

	rows := []TimeEntry{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list time entries: %w", err)
	}
	return rows, total, nil
}

// Active returns the attorney's most recent unstopped timer.
func (r *repository) Active(ctx context.Context, attorneyID string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.GetContext(ctx, &e, `
		SELECT `+entryColumns+`
		FROM time_entries
		WHERE attorney_id = $1 AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1`, attorneyID)
	if err != nil {
		return nil, core.TranslateError("active time entry", err)
	}
	return &e, nil
}
