// AngelaMos | 2026
// repository.go

package compliance

import (
	"context"
	"fmt"
	"time"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Repository interface {
	Create(ctx context.Context, d *Deadline) error
	GetByID(ctx context.Context, id string) (*Deadline, error)
	Update(ctx context.Context, d *Deadline) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams, page core.PageParams) ([]Deadline, int, error)
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const deadlineColumns = `id, title, description, due_date, deadline_type, status,
	case_id, attorney_id, completed_at, created_at, updated_at`

func (r *repository) Create(ctx context.Context, d *Deadline) error {
	query := `
		INSERT INTO compliance_deadlines (id, title, description, due_date, deadline_type,
		                                  status, case_id, attorney_id, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, d, query,
		d.ID, d.Title, d.Description, d.DueDate, d.DeadlineType,
		d.Status, d.CaseID, d.AttorneyID, d.CompletedAt,
	)
	return core.TranslateError("create compliance deadline", err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Deadline, error) {
	var d Deadline
	err := r.db.GetContext(ctx, &d,
		`SELECT `+deadlineColumns+` FROM compliance_deadlines WHERE id = $1`, id)
	if err != nil {
		return nil, core.TranslateError("get compliance deadline", err)
	}
	return &d, nil
}

func (r *repository) Update(ctx context.Context, d *Deadline) error {
	query := `
		UPDATE compliance_deadlines
		SET title = $2, description = $3, due_date = $4, deadline_type = $5,
		    status = $6, case_id = $7, attorney_id = $8, completed_at = $9,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &d.UpdatedAt, query,
		d.ID, d.Title, d.Description, d.DueDate, d.DeadlineType,
		d.Status, d.CaseID, d.AttorneyID, d.CompletedAt,
	)
	return core.TranslateError("update compliance deadline", err)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM compliance_deadlines WHERE id = $1`, id)
	if err != nil {
		return core.TranslateDeleteError("delete compliance deadline", err)
	}
	return core.ExpectRows("delete compliance deadline", result)
}

func (r *repository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE compliance_deadlines
		SET status = 'overdue', updated_at = NOW()
		WHERE status = 'pending' AND due_date < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("mark overdue deadlines: %w", err)
	}
	return result.RowsAffected()
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]Deadline, int, error) {
	var f core.Filter
	f.Eq("status", params.Status)
	f.Eq("deadline_type", params.DeadlineType)
	f.Eq("case_id", params.CaseID)
	f.Eq("attorney_id", params.AttorneyID)
	if params.DueBefore != nil {
		f.Add("due_date < $%d AND status <> 'completed'", *params.DueBefore)
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM compliance_deadlines WHERE `+f.Where(), f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count compliance deadlines: %w", err)
	}

	limit, args := f.PageClause(page)
	query := `SELECT ` + deadlineColumns + ` FROM compliance_deadlines WHERE ` + f.Where() +
		` ORDER BY due_date, id ` + limit

	deadlines := []Deadline{}
	if err := r.db.SelectContext(ctx, &deadlines, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list compliance deadlines: %w", err)
	}
	return deadlines, total, nil
}
