// AngelaMos | 2026
// repository.go

package invoice

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id string) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	SetStatus(ctx context.Context, inv *Invoice, previous string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams, page core.PageParams) ([]Invoice, int, error)
	NextNumber(ctx context.Context, pattern string) (int, error)
	BillableEntries(ctx context.Context, clientID string, caseID *string) ([]BillableEntry, error)
}

type repository struct {
	db core.TxDB
}

func NewRepository(db core.TxDB) Repository {
	return &repository{db: db}
}

const invoiceColumns = `id, invoice_number, client_id, case_id, issue_date,
	due_date, subtotal, tax_rate, tax_amount, total, status, paid_at, notes,
	created_at, updated_at`

const itemColumns = `id, invoice_id, time_entry_id, description, quantity,
	rate, amount, created_at`

// Create inserts the invoice with its items and moves every referenced time
// entry from ready_to_bill to invoiced. An entry that is no longer
// ready_to_bill fails the whole insert with ErrConflict.
func (r *repository) Create(ctx context.Context, inv *Invoice) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, inv, `
			INSERT INTO invoices (id, invoice_number, client_id, case_id,
			                      issue_date, due_date, subtotal, tax_rate,
			                      tax_amount, total, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING created_at, updated_at`,
			inv.ID, inv.InvoiceNumber, inv.ClientID, inv.CaseID,
			inv.IssueDate, inv.DueDate, inv.Subtotal, inv.TaxRate,
			inv.TaxAmount, inv.Total, inv.Status, inv.Notes,
		)
		if err != nil {
			return core.TranslateError("create invoice", err)
		}

		var entryIDs []string
		for i := range inv.Items {
			item := &inv.Items[i]
			item.InvoiceID = inv.ID
			err := tx.GetContext(ctx, &item.CreatedAt, `
				INSERT INTO invoice_items (id, invoice_id, time_entry_id,
				                           description, quantity, rate, amount)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING created_at`,
				item.ID, item.InvoiceID, item.TimeEntryID, item.Description,
				item.Quantity, item.Rate, item.Amount,
			)
			if err != nil {
				return core.TranslateError("create invoice item", err)
			}
			if item.TimeEntryID != nil {
				entryIDs = append(entryIDs, *item.TimeEntryID)
			}
		}

		if len(entryIDs) == 0 {
			return nil
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE time_entries
			SET status = 'invoiced', invoice_id = $1, updated_at = NOW()
			WHERE id = ANY($2) AND status = 'ready_to_bill'`,
			inv.ID, entryIDs,
		)
		if err != nil {
			return fmt.Errorf("mark time entries invoiced: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("mark time entries invoiced: %w", err)
		}
		if int(n) != len(entryIDs) {
			return fmt.Errorf("%d of %d time entries no longer ready to bill: %w",
				len(entryIDs)-int(n), len(entryIDs), core.ErrConflict)
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id string) (*Invoice, error) {
	var inv Invoice
	err := r.db.GetContext(ctx, &inv,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	if err != nil {
		return nil, core.TranslateError("get invoice", err)
	}

	inv.Items = []Item{}
	if err := r.db.SelectContext(ctx, &inv.Items,
		`SELECT `+itemColumns+` FROM invoice_items WHERE invoice_id = $1 ORDER BY created_at, id`,
		id,
	); err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	return &inv, nil
}

func (r *repository) Update(ctx context.Context, inv *Invoice) error {
	err := r.db.GetContext(ctx, &inv.UpdatedAt, `
		UPDATE invoices
		SET case_id = $2, issue_date = $3, due_date = $4, notes = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		inv.ID, inv.CaseID, inv.IssueDate, inv.DueDate, inv.Notes,
	)
	return core.TranslateError("update invoice", err)
}

// SetStatus persists inv.Status and inv.PaidAt and carries linked time
// entries along: paid invoices pay their entries, a reversed payment puts
// them back to invoiced and cancellation releases them for rebilling.
func (r *repository) SetStatus(ctx context.Context, inv *Invoice, previous string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &inv.UpdatedAt, `
			UPDATE invoices
			SET status = $2, paid_at = $3, updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at`,
			inv.ID, inv.Status, inv.PaidAt,
		)
		if err != nil {
			return core.TranslateError("update invoice status", err)
		}

		var query string
		switch {
		case inv.Status == StatusPaid:
			query = `UPDATE time_entries SET status = 'paid', updated_at = NOW()
				WHERE invoice_id = $1`
		case previous == StatusPaid:
			query = `UPDATE time_entries SET status = 'invoiced', updated_at = NOW()
				WHERE invoice_id = $1`
		case inv.Status == StatusCancelled:
			query = releaseEntries
		default:
			return nil
		}

		if _, err := tx.ExecContext(ctx, query, inv.ID); err != nil {
			return fmt.Errorf("sync time entries: %w", err)
		}
		return nil
	})
}

const releaseEntries = `
	UPDATE time_entries
	SET status = 'ready_to_bill', invoice_id = NULL, updated_at = NOW()
	WHERE invoice_id = $1`

func (r *repository) Delete(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, releaseEntries, id); err != nil {
			return fmt.Errorf("release time entries: %w", err)
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
		if err != nil {
			return core.TranslateDeleteError("delete invoice", err)
		}
		return core.ExpectRows("delete invoice", result)
	})
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]Invoice, int, error) {
	var f core.Filter
	f.Eq("client_id", params.ClientID)
	f.Eq("case_id", params.CaseID)
	f.Eq("status", params.Status)
	f.Search(params.Search, "invoice_number", "notes")

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM invoices WHERE `+f.Where(), f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	limit, args := f.PageClause(page)
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + f.Where() +
		` ORDER BY issue_date DESC, invoice_number DESC ` + limit

	rows := []Invoice{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	return rows, total, nil
}

func (r *repository) NextNumber(ctx context.Context, pattern string) (int, error) {
	return core.NextSequence(ctx, r.db, "invoices", "invoice_number", pattern)
}

// BillableEntries lists stopped, billable, ready_to_bill entries on the
// client's cases, optionally narrowed to one case.
func (r *repository) BillableEntries(
	ctx context.Context,
	clientID string,
	caseID *string,
) ([]BillableEntry, error) {
	var f core.Filter
	f.Add("c.client_id = $%d", clientID)
	f.Add("te.status = $%d", "ready_to_bill")
	f.Add("te.billable = $%d", true)
	f.Add("te.end_time IS NOT NULL AND te.rounded_duration IS NOT NULL")
	if caseID != nil {
		f.Add("te.case_id = $%d", *caseID)
	}

	query := `
		SELECT te.id, te.case_id, te.activity, te.description, te.start_time,
		       te.rounded_duration, te.hourly_rate
		FROM time_entries te
		JOIN cases c ON c.id = te.case_id
		WHERE ` + f.Where() + `
		ORDER BY te.start_time, te.id`

	rows := []BillableEntry{}
	if err := r.db.SelectContext(ctx, &rows, query, f.Args()...); err != nil {
		return nil, fmt.Errorf("billable time entries: %w", err)
	}
	return rows, nil
}
