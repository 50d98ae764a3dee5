// AngelaMos | 2026
// service_test.go

package message

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/email"
)

type memoryRepo struct {
	Repository
	rows       map[string]*Message
	caseOwners map[string]string
}

func (m *memoryRepo) CaseClientID(_ context.Context, caseID string) (string, error) {
	owner, ok := m.caseOwners[caseID]
	if !ok {
		return "", core.ErrNotFound
	}
	return owner, nil
}

func (m *memoryRepo) Create(_ context.Context, msg *Message) error {
	cp := *msg
	m.rows[msg.ID] = &cp
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*Message, error) {
	msg, ok := m.rows[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *msg
	return &cp, nil
}

func (m *memoryRepo) Update(_ context.Context, msg *Message) error {
	cp := *msg
	m.rows[msg.ID] = &cp
	return nil
}

type fakeMailer struct {
	sent []email.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg email.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type counter map[string]int

func (c counter) Record(event string) { c[event]++ }

func newTestService(mailer Mailer) (*Service, *memoryRepo, counter) {
	repo := &memoryRepo{
		rows:       map[string]*Message{},
		caseOwners: map[string]string{"case-1": "client-1"},
	}
	events := counter{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, mailer, events, logger), repo, events
}

func strPtr(s string) *string { return &s }

func TestCreateDefaultsToInternal(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _, _ := newTestService(mailer)

	m, err := svc.Create(context.Background(), "user-1", CreateMessageRequest{Content: "Call the clerk"})
	require.NoError(t, err)

	assert.Equal(t, TypeInternal, m.MessageType)
	require.NotNil(t, m.SenderID)
	assert.Equal(t, "user-1", *m.SenderID)
	assert.Empty(t, mailer.sent)
}

func TestEmailMessageIsDelivered(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _, events := newTestService(mailer)

	_, err := svc.Create(context.Background(), "user-1", CreateMessageRequest{
		Subject:        strPtr("Deposition schedule"),
		Content:        "Your deposition is set for May 4.",
		RecipientEmail: strPtr("maria@example.com"),
		MessageType:    TypeEmail,
	})
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"maria@example.com"}, mailer.sent[0].To)
	assert.Equal(t, "Deposition schedule", mailer.sent[0].Subject)
	assert.Equal(t, 1, events["email_sent"])
}

func TestDeliveryFailureKeepsMessage(t *testing.T) {
	for name, mailer := range map[string]Mailer{
		"unconfigured": nil,
		"smtp error":   &fakeMailer{err: errors.New("connection refused")},
	} {
		t.Run(name, func(t *testing.T) {
			svc, repo, events := newTestService(mailer)

			m, err := svc.Create(context.Background(), "", CreateMessageRequest{
				Content:        "Invoice attached",
				RecipientEmail: strPtr("maria@example.com"),
				MessageType:    TypeEmail,
			})
			require.NoError(t, err)
			assert.Contains(t, repo.rows, m.ID)
			assert.Zero(t, events["email_sent"])
		})
	}
}

func TestPortalMessageCarriesSession(t *testing.T) {
	svc, _, _ := newTestService(nil)

	m, err := svc.CreateFromPortal(context.Background(), "portal-1", "client-1", PortalMessageRequest{
		Content: "When is my next hearing?",
	})
	require.NoError(t, err)

	assert.Equal(t, TypePortal, m.MessageType)
	assert.Equal(t, "portal-1", *m.SenderPortalUserID)
	assert.Equal(t, "client-1", *m.ClientID)
	assert.Nil(t, m.SenderID)
}

func TestUpdateReadFlag(t *testing.T) {
	svc, _, _ := newTestService(nil)
	ctx := context.Background()

	m, err := svc.Create(ctx, "", CreateMessageRequest{Content: "hello"})
	require.NoError(t, err)

	read := true
	m, err = svc.Update(ctx, m.ID, UpdateMessageRequest{IsRead: &read})
	require.NoError(t, err)
	assert.True(t, m.IsRead)
	require.NotNil(t, m.ReadAt)

	unread := false
	m, err = svc.Update(ctx, m.ID, UpdateMessageRequest{IsRead: &unread})
	require.NoError(t, err)
	assert.False(t, m.IsRead)
	assert.Nil(t, m.ReadAt)
}

func TestCaseMessageMustMatchClient(t *testing.T) {
	svc, repo, _ := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", CreateMessageRequest{
		Content:  "Settlement offer received",
		CaseID:   strPtr("case-1"),
		ClientID: strPtr("client-2"),
	})
	require.ErrorIs(t, err, ErrCaseClientMismatch)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, repo.rows)

	_, err = svc.Create(ctx, "user-1", CreateMessageRequest{
		Content: "Settlement offer received",
		CaseID:  strPtr("case-9"),
	})
	require.ErrorIs(t, err, core.ErrInvalidReference)

	m, err := svc.Create(ctx, "user-1", CreateMessageRequest{
		Content: "Settlement offer received",
		CaseID:  strPtr("case-1"),
	})
	require.NoError(t, err)
	require.NotNil(t, m.ClientID)
	assert.Equal(t, "client-1", *m.ClientID)
}
