// AngelaMos | 2026
// repository.go

package client

import (
	"context"
	"fmt"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams, page core.PageParams) ([]Client, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const clientColumns = `id, first_name, last_name, company, email, phone, address,
	city, state, zip_code, notes, status, created_at, updated_at`

func (r *repository) Create(ctx context.Context, c *Client) error {
	query := `
		INSERT INTO clients (id, first_name, last_name, company, email, phone,
		                     address, city, state, zip_code, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, c, query,
		c.ID, c.FirstName, c.LastName, c.Company, c.Email, c.Phone,
		c.Address, c.City, c.State, c.ZipCode, c.Notes, c.Status,
	)
	return core.TranslateError("create client", err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Client, error) {
	var c Client
	err := r.db.GetContext(ctx, &c,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	if err != nil {
		return nil, core.TranslateError("get client", err)
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Client) error {
	query := `
		UPDATE clients
		SET first_name = $2, last_name = $3, company = $4, email = $5,
		    phone = $6, address = $7, city = $8, state = $9, zip_code = $10,
		    notes = $11, status = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &c.UpdatedAt, query,
		c.ID, c.FirstName, c.LastName, c.Company, c.Email, c.Phone,
		c.Address, c.City, c.State, c.ZipCode, c.Notes, c.Status,
	)
	return core.TranslateError("update client", err)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return core.TranslateDeleteError("delete client", err)
	}
	return core.ExpectRows("delete client", result)
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]Client, int, error) {
	var f core.Filter
	f.Eq("status", params.Status)
	f.Search(params.Search, "first_name", "last_name", "company", "email")

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM clients WHERE `+f.Where(), f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	limit, args := f.PageClause(page)
	query := `SELECT ` + clientColumns + ` FROM clients WHERE ` + f.Where() +
		` ORDER BY last_name, first_name, id ` + limit

	clients := []Client{}
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	return clients, total, nil
}
