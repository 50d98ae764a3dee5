// AngelaMos | 2026
// repository.go

package message

import (
	"context"
	"fmt"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id string) (*Message, error)
	Update(ctx context.Context, m *Message) error
	MarkRead(ctx context.Context, id string) (*Message, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams, page core.PageParams) ([]Message, int, error)
	CaseClientID(ctx context.Context, caseID string) (string, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const messageColumns = `id, subject, content, sender_id, sender_portal_user_id,
	recipient_email, recipient_portal_user_id, case_id, client_id,
	message_type, is_read, read_at, created_at, updated_at`

func (r *repository) Create(ctx context.Context, m *Message) error {
	query := `
		INSERT INTO messages (id, subject, content, sender_id, sender_portal_user_id,
		                      recipient_email, recipient_portal_user_id, case_id,
		                      client_id, message_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING is_read, read_at, created_at, updated_at`

	err := r.db.GetContext(ctx, m, query,
		m.ID, m.Subject, m.Content, m.SenderID, m.SenderPortalUserID,
		m.RecipientEmail, m.RecipientPortalUserID, m.CaseID, m.ClientID, m.MessageType,
	)
	return core.TranslateError("create message", err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Message, error) {
	var m Message
	err := r.db.GetContext(ctx, &m,
		`SELECT `+messageColumns+` FROM messages WHERE id = $1`, id)
	if err != nil {
		return nil, core.TranslateError("get message", err)
	}
	return &m, nil
}

func (r *repository) Update(ctx context.Context, m *Message) error {
	query := `
		UPDATE messages
		SET subject = $2, content = $3, is_read = $4, read_at = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &m.UpdatedAt, query,
		m.ID, m.Subject, m.Content, m.IsRead, m.ReadAt)
	return core.TranslateError("update message", err)
}

// MarkRead keeps the first read_at when a message is read twice.
func (r *repository) MarkRead(ctx context.Context, id string) (*Message, error) {
	query := `
		UPDATE messages
		SET is_read = TRUE, read_at = COALESCE(read_at, NOW()), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + messageColumns

	var m Message
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		return nil, core.TranslateError("mark message read", err)
	}
	return &m, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return core.TranslateDeleteError("delete message", err)
	}
	return core.ExpectRows("delete message", result)
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]Message, int, error) {
	var f core.Filter
	f.Eq("case_id", params.CaseID)
	f.Eq("client_id", params.ClientID)
	f.Eq("message_type", params.MessageType)
	if params.IsRead != nil {
		f.Add("is_read = $%d", *params.IsRead)
	}
	f.Search(params.Search, "subject", "content", "recipient_email")
	if params.PortalUserID != "" {
		f.Add(`message_type IN ('portal', 'email')
			AND (recipient_portal_user_id IS NULL OR recipient_portal_user_id = $%d)`,
			params.PortalUserID)
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM messages WHERE `+f.Where(), f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}

	limit, args := f.PageClause(page)
	query := `SELECT ` + messageColumns + ` FROM messages WHERE ` + f.Where() +
		` ORDER BY created_at DESC, id ` + limit

	messages := []Message{}
	if err := r.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}
	return messages, total, nil
}

func (r *repository) CaseClientID(ctx context.Context, caseID string) (string, error) {
	var clientID string
	err := r.db.GetContext(ctx, &clientID,
		`SELECT client_id::text FROM cases WHERE id = $1`, caseID)
	if err != nil {
		return "", core.TranslateError("get message case", err)
	}
	return clientID, nil
}
