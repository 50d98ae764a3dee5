// AngelaMos | 2026
// entity.go

package portal

import (
	"time"
)

const (
	StateInvited  = "invited"
	StateExpired  = "expired"
	StateActive   = "active"
	StateDisabled = "disabled"
)

type User struct {
	ID                  string     `db:"id"`
	ClientID            string     `db:"client_id"`
	Email               string     `db:"email"`
	PasswordHash        *string    `db:"password_hash"`
	InvitationTokenHash *string    `db:"invitation_token_hash"`
	InvitationExpiresAt *time.Time `db:"invitation_expires_at"`
	IsActive            bool       `db:"is_active"`
	LastLoginAt         *time.Time `db:"last_login_at"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

// State reports where the account sits in invited -> (expired | active).
// An account deactivated by staff after activation is disabled.
func (u *User) State(now time.Time) string {
	switch {
	case u.IsActive:
		return StateActive
	case u.InvitationTokenHash == nil:
		return StateDisabled
	case u.InvitationExpiresAt != nil && !now.Before(*u.InvitationExpiresAt):
		return StateExpired
	default:
		return StateInvited
	}
}
