// AngelaMos | 2026
// repository.go

package calendar

import (
	"context"
	"fmt"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams, page core.PageParams) ([]Event, int, error)
}

type repository struct {
	db core.DBTX
}

// NewRepository accepts a *sqlx.DB or a *sqlx.Tx, so time entries can
// record their events inside the stop transaction.
func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const eventColumns = `id, title, description, start_time, end_time, location,
	event_type, status, source_type, source_id, case_id, client_id,
	attorney_id, created_at, updated_at`

func (r *repository) Create(ctx context.Context, e *Event) error {
	query := `
		INSERT INTO calendar_events (id, title, description, start_time,
		                             end_time, location, event_type, status,
		                             source_type, source_id, case_id,
		                             client_id, attorney_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, e, query,
		e.ID, e.Title, e.Description, e.StartTime, e.EndTime, e.Location,
		e.EventType, e.Status, e.SourceType, e.SourceID, e.CaseID,
		e.ClientID, e.AttorneyID,
	)
	return core.TranslateError("create calendar event", err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Event, error) {
	var e Event
	err := r.db.GetContext(ctx, &e,
		`SELECT `+eventColumns+` FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return nil, core.TranslateError("get calendar event", err)
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Event) error {
	query := `
		UPDATE calendar_events
		SET title = $2, description = $3, start_time = $4, end_time = $5,
		    location = $6, event_type = $7, status = $8, case_id = $9,
		    client_id = $10, attorney_id = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &e.UpdatedAt, query,
		e.ID, e.Title, e.Description, e.StartTime, e.EndTime, e.Location,
		e.EventType, e.Status, e.CaseID, e.ClientID, e.AttorneyID,
	)
	return core.TranslateError("update calendar event", err)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return core.TranslateDeleteError("delete calendar event", err)
	}
	return core.ExpectRows("delete calendar event", result)
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]Event, int, error) {
	var f core.Filter
	f.Eq("event_type", params.EventType)
	f.Eq("status", params.Status)
	f.Eq("case_id", params.CaseID)
	f.Eq("client_id", params.ClientID)
	f.Eq("attorney_id", params.AttorneyID)
	if params.From != nil {
		f.Add("end_time >= $%d", *params.From)
	}
	if params.To != nil {
		f.Add("start_time < $%d", *params.To)
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM calendar_events WHERE `+f.Where(), f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count calendar events: %w", err)
	}

	limit, args := f.PageClause(page)
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE ` + f.Where() +
		` ORDER BY start_time, id ` + limit

	rows := []Event{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list calendar events: %w", err)
	}
	return rows, total, nil
}
