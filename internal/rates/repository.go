// AngelaMos | 2026
// repository.go

package rates

import (
	"context"
	"fmt"
	"time"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Repository interface {
	CreateTable(ctx context.Context, rt *RateTable) error
	GetTable(ctx context.Context, id string) (*RateTable, error)
	UpdateTable(ctx context.Context, rt *RateTable) error
	DeleteTable(ctx context.Context, id string) error
	ListTables(ctx context.Context, params ListTablesParams, page core.PageParams) ([]RateTable, int, error)
	Candidates(ctx context.Context, q ResolveQuery, at time.Time) ([]RateTable, error)
	ClientForCase(ctx context.Context, caseID string) (string, error)

	CreateTemplate(ctx context.Context, t *ActivityTemplate) error
	GetTemplate(ctx context.Context, id string) (*ActivityTemplate, error)
	UpdateTemplate(ctx context.Context, t *ActivityTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
	ListTemplates(ctx context.Context, params ListTemplatesParams, page core.PageParams) ([]ActivityTemplate, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const tableColumns = `id, name, attorney_id, client_id, activity_type,
	hourly_rate, is_default, effective_from, created_at, updated_at`

// CreateTable clears any previous default in the same statement when the
// new row is the default.
func (r *repository) CreateTable(ctx context.Context, rt *RateTable) error {
	query := `
		WITH cleared AS (
			UPDATE rate_tables SET is_default = FALSE, updated_at = NOW()
			WHERE is_default AND $7
		)
		INSERT INTO rate_tables (id, name, attorney_id, client_id,
		                         activity_type, hourly_rate, is_default,
		                         effective_from)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, rt, query,
		rt.ID, rt.Name, rt.AttorneyID, rt.ClientID, rt.ActivityType,
		rt.HourlyRate, rt.IsDefault, rt.EffectiveFrom,
	)
	return core.TranslateError("create rate table", err)
}

func (r *repository) GetTable(ctx context.Context, id string) (*RateTable, error) {
	var rt RateTable
	err := r.db.GetContext(ctx, &rt,
		`SELECT `+tableColumns+` FROM rate_tables WHERE id = $1`, id)
	if err != nil {
		return nil, core.TranslateError("get rate table", err)
	}
	return &rt, nil
}

func (r *repository) UpdateTable(ctx context.Context, rt *RateTable) error {
	query := `
		WITH cleared AS (
			UPDATE rate_tables SET is_default = FALSE, updated_at = NOW()
			WHERE is_default AND id <> $1 AND $7
		)
		UPDATE rate_tables
		SET name = $2, attorney_id = $3, client_id = $4, activity_type = $5,
		    hourly_rate = $6, is_default = $7, effective_from = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &rt.UpdatedAt, query,
		rt.ID, rt.Name, rt.AttorneyID, rt.ClientID, rt.ActivityType,
		rt.HourlyRate, rt.IsDefault, rt.EffectiveFrom,
	)
	return core.TranslateError("update rate table", err)
}

func (r *repository) DeleteTable(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rate_tables WHERE id = $1`, id)
	if err != nil {
		return core.TranslateDeleteError("delete rate table", err)
	}
	return core.ExpectRows("delete rate table", result)
}

func (r *repository) ListTables(
	ctx context.Context,
	params ListTablesParams,
	page core.PageParams,
) ([]RateTable, int, error) {
	var f core.Filter
	f.Eq("attorney_id", params.AttorneyID)
	f.Eq("client_id", params.ClientID)

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM rate_tables WHERE `+f.Where(), f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count rate tables: %w", err)
	}

	limit, args := f.PageClause(page)
	query := `SELECT ` + tableColumns + ` FROM rate_tables WHERE ` + f.Where() +
		` ORDER BY name, effective_from DESC ` + limit

	rows := []RateTable{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list rate tables: %w", err)
	}
	return rows, total, nil
}

// Candidates returns every effective row that could apply to q, newest
// first. Ranking happens in the service.
func (r *repository) Candidates(
	ctx context.Context,
	q ResolveQuery,
	at time.Time,
) ([]RateTable, error) {
	query := `
		SELECT ` + tableColumns + `
		FROM rate_tables
		WHERE effective_from <= $1
		  AND (attorney_id IS NULL OR attorney_id::text = $2)
		  AND (client_id IS NULL OR client_id::text = $3)
		  AND (activity_type IS NULL OR activity_type = $4)
		ORDER BY effective_from DESC, created_at DESC`

	rows := []RateTable{}
	if err := r.db.SelectContext(ctx, &rows, query,
		at, q.AttorneyID, q.ClientID, q.Activity); err != nil {
		return nil, fmt.Errorf("rate candidates: %w", err)
	}
	return rows, nil
}

func (r *repository) ClientForCase(ctx context.Context, caseID string) (string, error) {
	var clientID string
	err := r.db.GetContext(ctx, &clientID,
		`SELECT client_id FROM cases WHERE id = $1`, caseID)
	if err != nil {
		return "", core.TranslateError("case client", err)
	}
	return clientID, nil
}

const templateColumns = `id, name, activity, description, utbms_code,
	default_duration, hourly_rate, attorney_id, is_active, created_at,
	updated_at`

func (r *repository) CreateTemplate(ctx context.Context, t *ActivityTemplate) error {
	query := `
		INSERT INTO activity_templates (id, name, activity, description,
		                                utbms_code, default_duration,
		                                hourly_rate, attorney_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, t, query,
		t.ID, t.Name, t.Activity, t.Description, t.UTBMSCode,
		t.DefaultDuration, t.HourlyRate, t.AttorneyID, t.IsActive,
	)
	return core.TranslateError("create activity template", err)
}

func (r *repository) GetTemplate(ctx context.Context, id string) (*ActivityTemplate, error) {
	var t ActivityTemplate
	err := r.db.GetContext(ctx, &t,
		`SELECT `+templateColumns+` FROM activity_templates WHERE id = $1`, id)
	if err != nil {
		return nil, core.TranslateError("get activity template", err)
	}
	return &t, nil
}

func (r *repository) UpdateTemplate(ctx context.Context, t *ActivityTemplate) error {
	query := `
		UPDATE activity_templates
		SET name = $2, activity = $3, description = $4, utbms_code = $5,
		    default_duration = $6, hourly_rate = $7, attorney_id = $8,
		    is_active = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &t.UpdatedAt, query,
		t.ID, t.Name, t.Activity, t.Description, t.UTBMSCode,
		t.DefaultDuration, t.HourlyRate, t.AttorneyID, t.IsActive,
	)
	return core.TranslateError("update activity template", err)
}

func (r *repository) DeleteTemplate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activity_templates WHERE id = $1`, id)
	if err != nil {
		return core.TranslateDeleteError("delete activity template", err)
	}
	return core.ExpectRows("delete activity template", result)
}

func (r *repository) ListTemplates(
	ctx context.Context,
	params ListTemplatesParams,
	page core.PageParams,
) ([]ActivityTemplate, int, error) {
	var f core.Filter
	if params.AttorneyID != "" {
		f.Add("(attorney_id IS NULL OR attorney_id = $%d)", params.AttorneyID)
	}
	if params.ActiveOnly {
		f.Add("is_active = $%d", true)
	}
	f.Search(params.Search, "name", "activity", "utbms_code")

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM activity_templates WHERE `+f.Where(), f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count activity templates: %w", err)
	}

	limit, args := f.PageClause(page)
	query := `SELECT ` + templateColumns + ` FROM activity_templates WHERE ` + f.Where() +
		` ORDER BY name, id ` + limit

	rows := []ActivityTemplate{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list activity templates: %w", err)
	}
	return rows, total, nil
}
