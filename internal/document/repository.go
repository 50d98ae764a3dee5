// AngelaMos | 2026
// repository.go

package document

import (
	"context"
	"fmt"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	Update(ctx context.Context, d *Document) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams, page core.PageParams) ([]Document, int, error)
	ObjectClientIDs(ctx context.Context, key string) ([]string, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const documentColumns = `id, name, file_path, file_size, mime_type,
	document_type, version, tags, case_id, client_id, uploaded_by,
	created_at, updated_at`

// documentOwner resolves the client a document belongs to: its own
// client_id, else the client of its case.
const documentOwner = `COALESCE(documents.client_id,
	(SELECT cases.client_id FROM cases WHERE cases.id = documents.case_id))`

func (r *repository) Create(ctx context.Context, d *Document) error {
	query := `
		INSERT INTO documents (id, name, file_path, file_size, mime_type,
		                       document_type, version, tags, case_id,
		                       client_id, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, d, query,
		d.ID, d.Name, d.FilePath, d.FileSize, d.MimeType,
		d.DocumentType, d.Version, d.Tags, d.CaseID,
		d.ClientID, d.UploadedBy,
	)
	return core.TranslateError("create document", err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Document, error) {
	var d Document
	err := r.db.GetContext(ctx, &d,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	if err != nil {
		return nil, core.TranslateError("get document", err)
	}
	return &d, nil
}

func (r *repository) Update(ctx context.Context, d *Document) error {
	query := `
		UPDATE documents
		SET name = $2, file_path = $3, file_size = $4, mime_type = $5,
		    document_type = $6, version = $7, tags = $8, case_id = $9,
		    client_id = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &d.UpdatedAt, query,
		d.ID, d.Name, d.FilePath, d.FileSize, d.MimeType,
		d.DocumentType, d.Version, d.Tags, d.CaseID, d.ClientID,
	)
	return core.TranslateError("update document", err)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return core.TranslateDeleteError("delete document", err)
	}
	return core.ExpectRows("delete document", result)
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]Document, int, error) {
	var f core.Filter
	f.Eq("case_id", params.CaseID)
	f.Eq("document_type", params.DocumentType)
	if params.ClientID != "" {
		f.Add(documentOwner+" = $%d", params.ClientID)
	}
	if params.Tag != "" {
		f.Add("tags ? $%d", params.Tag)
	}
	f.Search(params.Search, "name")

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM documents WHERE `+f.Where(), f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	limit, args := f.PageClause(page)
	query := `SELECT ` + documentColumns + ` FROM documents WHERE ` + f.Where() +
		` ORDER BY created_at DESC, id ` + limit

	rows := []Document{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	return rows, total, nil
}

// ObjectClientIDs lists the clients owning documents stored at key. It
// uses the same ownership rule as a client-scoped List.
func (r *repository) ObjectClientIDs(ctx context.Context, key string) ([]string, error) {
	ids := []string{}
	err := r.db.SelectContext(ctx, &ids, `
		SELECT DISTINCT (`+documentOwner+`)::text
		FROM documents
		WHERE file_path = $1 AND `+documentOwner+` IS NOT NULL`, key)
	if err != nil {
		return nil, fmt.Errorf("object owners: %w", err)
	}
	return ids, nil
}
