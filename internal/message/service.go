// AngelaMos | 2026
// service.go

package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/email"
)

type Mailer interface {
	Send(ctx context.Context, msg email.Message) error
}

type Recorder interface {
	Record(event string)
}

type Service struct {
	repo     Repository
	mailer   Mailer
	recorder Recorder
	logger   *slog.Logger
}

func NewService(repo Repository, mailer Mailer, recorder Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, mailer: mailer, recorder: recorder, logger: logger}
}

// ErrCaseClientMismatch rejects a message filed under a case that belongs
// to a different client than the one it names.
var ErrCaseClientMismatch = fmt.Errorf("case belongs to another client: %w", core.ErrInvalidInput)

// Create stores a staff message. Email messages are then handed to the
// mailer; a delivery failure is logged and the stored message stands.
// A message filed under a case takes the case's client when none is given.
func (s *Service) Create(ctx context.Context, senderID string, req CreateMessageRequest) (*Message, error) {
	if req.CaseID != nil {
		owner, err := s.repo.CaseClientID(ctx, *req.CaseID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, fmt.Errorf("case %s: %w", *req.CaseID, core.ErrInvalidReference)
			}
			return nil, err
		}
		if req.ClientID == nil {
			req.ClientID = &owner
		} else if *req.ClientID != owner {
			return nil, ErrCaseClientMismatch
		}
	}

	m := &Message{
		ID:                    uuid.New().String(),
		Subject:               req.Subject,
		Content:               req.Content,
		RecipientEmail:        req.RecipientEmail,
		RecipientPortalUserID: req.RecipientPortalUserID,
		CaseID:                req.CaseID,
		ClientID:              req.ClientID,
		MessageType:           req.MessageType,
	}
	if m.MessageType == "" {
		m.MessageType = TypeInternal
	}
	if senderID != "" {
		m.SenderID = &senderID
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	if m.MessageType == TypeEmail && m.RecipientEmail != nil {
		s.deliver(ctx, m)
	}
	return m, nil
}

// CreateFromPortal stores a message written by a client in the portal.
func (s *Service) CreateFromPortal(
	ctx context.Context,
	portalUserID, clientID string,
	req PortalMessageRequest,
) (*Message, error) {
	m := &Message{
		ID:                 uuid.New().String(),
		Subject:            req.Subject,
		Content:            req.Content,
		SenderPortalUserID: &portalUserID,
		CaseID:             req.CaseID,
		ClientID:           &clientID,
		MessageType:        TypePortal,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) deliver(ctx context.Context, m *Message) {
	subject := "Message from your legal team"
	if m.Subject != nil && *m.Subject != "" {
		subject = *m.Subject
	}

	var err error
	if s.mailer == nil {
		err = email.ErrNotConfigured
	} else {
		err = s.mailer.Send(ctx, email.Message{
			To:      []string{*m.RecipientEmail},
			Subject: subject,
			Text:    m.Content,
		})
	}

	if err != nil {
		level := slog.LevelError
		if errors.Is(err, email.ErrNotConfigured) {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "message email not delivered",
			"message_id", m.ID,
			"error", err,
		)
		return
	}

	if s.recorder != nil {
		s.recorder.Record("email_sent")
	}
}

func (s *Service) Get(ctx context.Context, id string) (*Message, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]Message, int, error) {
	return s.repo.List(ctx, params, page)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateMessageRequest) (*Message, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Subject != nil {
		m.Subject = req.Subject
	}
	if req.Content != nil {
		m.Content = *req.Content
	}
	if req.IsRead != nil && *req.IsRead != m.IsRead {
		m.IsRead = *req.IsRead
		if m.IsRead {
			now := time.Now().UTC()
			m.ReadAt = &now
		} else {
			m.ReadAt = nil
		}
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) (*Message, error) {
	return s.repo.MarkRead(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
