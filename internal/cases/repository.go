// AngelaMos | 2026
// repository.go

package cases

import (
	"context"
	"fmt"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Case) error
	GetByID(ctx context.Context, id string) (*Case, error)
	Update(ctx context.Context, c *Case) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams, page core.PageParams) ([]Case, int, error)
	NextNumber(ctx context.Context, pattern string) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const caseColumns = `id, case_number, title, description, case_type, status,
	priority, progress, client_id, assigned_attorney_id, start_date,
	close_date, created_at, updated_at`

func (r *repository) Create(ctx context.Context, c *Case) error {
	query := `
		INSERT INTO cases (id, case_number, title, description, case_type,
		                   status, priority, progress, client_id,
		                   assigned_attorney_id, start_date, close_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, c, query,
		c.ID, c.CaseNumber, c.Title, c.Description, c.CaseType,
		c.Status, c.Priority, c.Progress, c.ClientID,
		c.AssignedAttorneyID, c.StartDate, c.CloseDate,
	)
	return core.TranslateError("create case", err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Case, error) {
	var c Case
	err := r.db.GetContext(ctx, &c,
		`SELECT `+caseColumns+` FROM cases WHERE id = $1`, id)
	if err != nil {
		return nil, core.TranslateError("get case", err)
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Case) error {
	query := `
		UPDATE cases
		SET title = $2, description = $3, case_type = $4, status = $5,
		    priority = $6, progress = $7, client_id = $8,
		    assigned_attorney_id = $9, start_date = $10, close_date = $11,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &c.UpdatedAt, query,
		c.ID, c.Title, c.Description, c.CaseType, c.Status,
		c.Priority, c.Progress, c.ClientID,
		c.AssignedAttorneyID, c.StartDate, c.CloseDate,
	)
	return core.TranslateError("update case", err)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cases WHERE id = $1`, id)
	if err != nil {
		return core.TranslateDeleteError("delete case", err)
	}
	return core.ExpectRows("delete case", result)
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]Case, int, error) {
	var f core.Filter
	f.Eq("status", params.Status)
	f.Eq("priority", params.Priority)
	f.Eq("client_id", params.ClientID)
	f.Eq("assigned_attorney_id", params.AttorneyID)
	f.Search(params.Search, "case_number", "title", "case_type")

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM cases WHERE `+f.Where(), f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count cases: %w", err)
	}

	limit, args := f.PageClause(page)
	query := `SELECT ` + caseColumns + ` FROM cases WHERE ` + f.Where() +
		` ORDER BY created_at DESC, id ` + limit

	rows := []Case{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list cases: %w", err)
	}
	return rows, total, nil
}

func (r *repository) NextNumber(ctx context.Context, pattern string) (int, error) {
	return core.NextSequence(ctx, r.db, "cases", "case_number", pattern)
}
