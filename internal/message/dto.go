// AngelaMos | 2026
// dto.go

package message

type CreateMessageRequest struct {
	Subject               *string `json:"subject"               validate:"omitempty,max=255"`
	Content               string  `json:"content"               validate:"required,min=1,max=20000"`
	RecipientEmail        *string `json:"recipientEmail"        validate:"required_if=MessageType email,omitempty,email,max=255"`
	RecipientPortalUserID *string `json:"recipientPortalUserId" validate:"omitempty,uuid"`
	CaseID                *string `json:"caseId"                validate:"omitempty,uuid"`
	ClientID              *string `json:"clientId"              validate:"omitempty,uuid"`
	MessageType           string  `json:"messageType"           validate:"omitempty,oneof=email sms internal portal"`
}

type UpdateMessageRequest struct {
	Subject *string `json:"subject" validate:"omitempty,max=255"`
	Content *string `json:"content" validate:"omitempty,min=1,max=20000"`
	IsRead  *bool   `json:"isRead"`
}

// PortalMessageRequest is what a client sends from the portal. Sender and
// client come from the session.
type PortalMessageRequest struct {
	Subject *string `json:"subject" validate:"omitempty,max=255"`
	Content string  `json:"content" validate:"required,min=1,max=20000"`
	CaseID  *string `json:"caseId"  validate:"omitempty,uuid"`
}

// ListParams narrows a message listing. A non-empty PortalUserID limits
// results to what that portal user may read: portal and email messages not
// addressed to another portal user.
type ListParams struct {
	CaseID       string
	ClientID     string
	MessageType  string
	IsRead       *bool
	Search       string
	PortalUserID string
}
