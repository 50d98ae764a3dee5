// AngelaMos | 2026
// email_test.go

package email

import (
	"context"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/config"
)

type captured struct {
	addr string
	from string
	to   []string
	msg  string
}

func newCapturing(cfg config.SMTPConfig) (*Service, *captured) {
	c := &captured{}
	svc := New(cfg).WithSendFunc(func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		c.addr = addr
		c.from = from
		c.to = to
		c.msg = string(msg)
		return nil
	})
	return svc, c
}

func TestSendRequiresConfiguration(t *testing.T) {
	svc, c := newCapturing(config.SMTPConfig{})

	err := svc.Send(context.Background(), Message{To: []string{"a@example.com"}, Text: "hi"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, c.addr)

	var nilSvc *Service
	assert.False(t, nilSvc.IsConfigured())
}

func TestSendPlainText(t *testing.T) {
	svc, c := newCapturing(config.SMTPConfig{
		Host: "smtp.example.com", Port: 587, From: "office@firm.example", FromName: "Santos Law",
	})

	err := svc.Send(context.Background(), Message{
		To:      []string{"client@example.com"},
		Subject: "Hearing moved\r\nBcc: evil@example.com",
		Text:    "The hearing is now on Friday.",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", c.addr)
	assert.Equal(t, "office@firm.example", c.from)
	assert.Equal(t, []string{"client@example.com"}, c.to)
	assert.Contains(t, c.msg, "From: Santos Law <office@firm.example>\r\n")
	assert.Contains(t, c.msg, "Subject: Hearing moved  Bcc: evil@example.com\r\n")
	assert.Contains(t, c.msg, "Content-Type: text/plain")
	assert.Contains(t, c.msg, "The hearing is now on Friday.")
}

func TestSendInvitation(t *testing.T) {
	svc, c := newCapturing(config.SMTPConfig{Host: "smtp.example.com", Port: 25, From: "portal@firm.example"})

	err := svc.SendInvitation(context.Background(), InvitationData{
		FirmName:  "LawCRM",
		Email:     "maria@example.com",
		AcceptURL: "https://crm.example.com/portal/accept?token=abc",
		ExpiresAt: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"maria@example.com"}, c.to)
	assert.Contains(t, c.msg, "multipart/alternative")
	assert.Contains(t, c.msg, "https://crm.example.com/portal/accept?token=abc")
	assert.Contains(t, c.msg, "March 8, 2026")
}
