// AngelaMos | 2026
// dto.go

package portal

import (
	"time"
)

type InviteRequest struct {
	ClientID string `json:"clientId" validate:"required,uuid"`
	Email    string `json:"email"    validate:"required,email,max=255"`
}

type UpdateUserRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type AcceptInvitationRequest struct {
	Token    string `json:"token"    validate:"required,max=256"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type UserResponse struct {
	ID                  string     `json:"id"`
	ClientID            string     `json:"clientId"`
	Email               string     `json:"email"`
	State               string     `json:"state"`
	IsActive            bool       `json:"isActive"`
	InvitationExpiresAt *time.Time `json:"invitationExpiresAt"`
	LastLoginAt         *time.Time `json:"lastLoginAt"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// InvitationResponse goes back to staff. AcceptURL carries the raw token
// so it can be passed on by hand when email is not configured.
type InvitationResponse struct {
	User      UserResponse `json:"user"`
	AcceptURL string       `json:"acceptUrl"`
	ExpiresAt time.Time    `json:"expiresAt"`
	EmailSent bool         `json:"emailSent"`
}

type InvitationStatus struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LoginResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

type ListParams struct {
	ClientID string
	Search   string
}

func toResponse(u *User, now time.Time) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		ClientID:            u.ClientID,
		Email:               u.Email,
		State:               u.State(now),
		IsActive:            u.IsActive,
		InvitationExpiresAt: u.InvitationExpiresAt,
		LastLoginAt:         u.LastLoginAt,
		CreatedAt:           u.CreatedAt,
	}
}
