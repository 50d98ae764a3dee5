// AngelaMos | 2026
// entity.go

package message

import (
	"time"
)

const (
	TypeEmail    = "email"
	TypeSMS      = "sms"
	TypeInternal = "internal"
	TypePortal   = "portal"
)

type Message struct {
	ID                    string     `db:"id"                       json:"id"`
	Subject               *string    `db:"subject"                  json:"subject"`
	Content               string     `db:"content"                  json:"content"`
	SenderID              *string    `db:"sender_id"                json:"senderId"`
	SenderPortalUserID    *string    `db:"sender_portal_user_id"    json:"senderPortalUserId"`
	RecipientEmail        *string    `db:"recipient_email"          json:"recipientEmail"`
	RecipientPortalUserID *string    `db:"recipient_portal_user_id" json:"recipientPortalUserId"`
	CaseID                *string    `db:"case_id"                  json:"caseId"`
	ClientID              *string    `db:"client_id"                json:"clientId"`
	MessageType           string     `db:"message_type"             json:"messageType"`
	IsRead                bool       `db:"is_read"                  json:"isRead"`
	ReadAt                *time.Time `db:"read_at"                  json:"readAt"`
	CreatedAt             time.Time  `db:"created_at"               json:"createdAt"`
	UpdatedAt             time.Time  `db:"updated_at"               json:"updatedAt"`
}
