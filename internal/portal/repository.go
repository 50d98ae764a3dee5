// AngelaMos | 2026
// repository.go

package portal

import (
	"context"
	"fmt"
	"time"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByTokenHash(ctx context.Context, hash string) (*User, error)
	SetInvitation(ctx context.Context, id, hash string, expiresAt time.Time) error
	Activate(ctx context.Context, id, tokenHash, passwordHash string) error
	SetActive(ctx context.Context, id string, active bool) error
	TouchLastLogin(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams, page core.PageParams) ([]User, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, client_id, email, password_hash, invitation_token_hash,
	invitation_expires_at, is_active, last_login_at, created_at, updated_at`

func (r *repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO portal_users (id, client_id, email, invitation_token_hash,
		                          invitation_expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, u, query,
		u.ID, u.ClientID, u.Email, u.InvitationTokenHash, u.InvitationExpiresAt, u.IsActive)
	return core.TranslateError("create portal user", err)
}

func (r *repository) get(ctx context.Context, op, where string, arg any) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u,
		`SELECT `+userColumns+` FROM portal_users WHERE `+where, arg)
	if err != nil {
		return nil, core.TranslateError(op, err)
	}
	return &u, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.get(ctx, "get portal user", "id = $1", id)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.get(ctx, "get portal user by email", "LOWER(email) = LOWER($1)", email)
}

func (r *repository) GetByTokenHash(ctx context.Context, hash string) (*User, error) {
	return r.get(ctx, "get portal user by invitation", "invitation_token_hash = $1", hash)
}

func (r *repository) SetInvitation(ctx context.Context, id, hash string, expiresAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE portal_users
		SET invitation_token_hash = $2, invitation_expires_at = $3, updated_at = NOW()
		WHERE id = $1 AND NOT is_active`, id, hash, expiresAt)
	if err != nil {
		return core.TranslateError("reissue invitation", err)
	}
	return core.ExpectRows("reissue invitation", result)
}

// Activate consumes the invitation. The token hash in the WHERE clause
// makes a second accept with the same token match nothing.
func (r *repository) Activate(ctx context.Context, id, tokenHash, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE portal_users
		SET password_hash = $3, is_active = TRUE,
		    invitation_token_hash = NULL, invitation_expires_at = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND invitation_token_hash = $2`, id, tokenHash, passwordHash)
	if err != nil {
		return fmt.Errorf("activate portal user: %w", err)
	}
	return core.ExpectRows("activate portal user", result)
}

func (r *repository) SetActive(ctx context.Context, id string, active bool) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE portal_users SET is_active = $2, updated_at = NOW()
		WHERE id = $1 AND password_hash IS NOT NULL`, id, active)
	if err != nil {
		return fmt.Errorf("set portal user active: %w", err)
	}
	return core.ExpectRows("set portal user active", result)
}

func (r *repository) TouchLastLogin(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE portal_users SET last_login_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch portal login: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM portal_users WHERE id = $1`, id)
	if err != nil {
		return core.TranslateDeleteError("delete portal user", err)
	}
	return core.ExpectRows("delete portal user", result)
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]User, int, error) {
	var f core.Filter
	f.Eq("client_id", params.ClientID)
	f.Search(params.Search, "email")

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM portal_users WHERE `+f.Where(), f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count portal users: %w", err)
	}

	limit, args := f.PageClause(page)
	query := `SELECT ` + userColumns + ` FROM portal_users WHERE ` + f.Where() +
		` ORDER BY created_at DESC, id ` + limit

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list portal users: %w", err)
	}
	return users, total, nil
}
