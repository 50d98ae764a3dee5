// AngelaMos | 2026
// service.go

package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/email"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/middleware"
)

const (
	InvitationTTL   = 7 * 24 * time.Hour
	invitationBytes = 32
	acceptPath      = "/portal/accept-invitation"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvitationInvalid  = errors.New("invitation invalid")
	ErrInvitationExpired  = errors.New("invitation expired")
	ErrAlreadyActivated   = fmt.Errorf("portal account already activated: %w", core.ErrConflict)
	ErrNotActivated       = fmt.Errorf("portal invitation not yet accepted: %w", core.ErrConflict)
)

type TokenSigner interface {
	Sign(claims middleware.Claims) (string, time.Time, error)
}

type InvitationSender interface {
	SendInvitation(ctx context.Context, data email.InvitationData) error
}

type Recorder interface {
	Record(event string)
}

type Settings struct {
	BaseURL  string
	FirmName string
}

type Session struct {
	User      UserResponse
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	repo     Repository
	signer   TokenSigner
	mailer   InvitationSender
	recorder Recorder
	settings Settings
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(
	repo Repository,
	signer TokenSigner,
	mailer InvitationSender,
	recorder Recorder,
	settings Settings,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		signer:   signer,
		mailer:   mailer,
		recorder: recorder,
		settings: settings,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) record(event string) {
	if s.recorder != nil {
		s.recorder.Record(event)
	}
}

func (s *Service) Invite(ctx context.Context, req InviteRequest) (*InvitationResponse, error) {
	token, hash, err := newInvitationToken()
	if err != nil {
		return nil, err
	}
	expiresAt := s.now().Add(InvitationTTL)

	u := &User{
		ID:                  uuid.New().String(),
		ClientID:            req.ClientID,
		Email:               strings.ToLower(strings.TrimSpace(req.Email)),
		InvitationTokenHash: &hash,
		InvitationExpiresAt: &expiresAt,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.record("portal_invited")
	return s.dispatch(ctx, u, token, expiresAt), nil
}

// Resend replaces the outstanding token, so earlier links stop working.
func (s *Service) Resend(ctx context.Context, id string) (*InvitationResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.IsActive || u.PasswordHash != nil {
		return nil, ErrAlreadyActivated
	}

	token, hash, err := newInvitationToken()
	if err != nil {
		return nil, err
	}
	expiresAt := s.now().Add(InvitationTTL)

	if err := s.repo.SetInvitation(ctx, u.ID, hash, expiresAt); err != nil {
		return nil, err
	}
	u.InvitationTokenHash = &hash
	u.InvitationExpiresAt = &expiresAt

	return s.dispatch(ctx, u, token, expiresAt), nil
}

func (s *Service) dispatch(ctx context.Context, u *User, token string, expiresAt time.Time) *InvitationResponse {
	resp := &InvitationResponse{
		User:      toResponse(u, s.now()),
		AcceptURL: s.acceptURL(token),
		ExpiresAt: expiresAt,
	}

	if s.mailer == nil {
		s.logger.WarnContext(ctx, "invitation email skipped, smtp not configured",
			"portal_user_id", u.ID)
		return resp
	}

	err := s.mailer.SendInvitation(ctx, email.InvitationData{
		FirmName:  s.settings.FirmName,
		Email:     u.Email,
		AcceptURL: resp.AcceptURL,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "invitation email failed",
			"portal_user_id", u.ID,
			"error", err,
		)
		return resp
	}

	resp.EmailSent = true
	return resp
}

func (s *Service) acceptURL(token string) string {
	base := strings.TrimRight(s.settings.BaseURL, "/")
	return base + acceptPath + "?token=" + url.QueryEscape(token)
}

func (s *Service) lookupInvitation(ctx context.Context, token string) (*User, error) {
	u, err := s.repo.GetByTokenHash(ctx, core.HashToken(token))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrInvitationInvalid
		}
		return nil, err
	}

	switch u.State(s.now()) {
	case StateInvited:
		return u, nil
	case StateExpired:
		return nil, ErrInvitationExpired
	default:
		return nil, ErrInvitationInvalid
	}
}

func (s *Service) VerifyInvitation(ctx context.Context, token string) (*InvitationStatus, error) {
	u, err := s.lookupInvitation(ctx, token)
	if err != nil {
		return nil, err
	}
	return &InvitationStatus{Email: u.Email, ExpiresAt: *u.InvitationExpiresAt}, nil
}

// AcceptInvitation sets the password, activates the account, consumes the
// token and opens a session.
func (s *Service) AcceptInvitation(ctx context.Context, req AcceptInvitationRequest) (*Session, error) {
	u, err := s.lookupInvitation(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Activate(ctx, u.ID, *u.InvitationTokenHash, hash); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrInvitationInvalid
		}
		return nil, err
	}

	u.PasswordHash = &hash
	u.IsActive = true
	u.InvitationTokenHash = nil
	u.InvitationExpiresAt = nil

	s.record("portal_activated")
	return s.open(ctx, u)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get portal user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.open(ctx, u)
}

func (s *Service) open(ctx context.Context, u *User) (*Session, error) {
	token, expiresAt, err := s.signer.Sign(middleware.Claims{
		Subject:  u.ID,
		ClientID: u.ClientID,
	})
	if err != nil {
		return nil, fmt.Errorf("issue portal session: %w", err)
	}

	if err := s.repo.TouchLastLogin(ctx, u.ID); err != nil {
		s.logger.WarnContext(ctx, "failed to record portal login", "portal_user_id", u.ID, "error", err)
	}

	return &Session{
		User:      toResponse(u, s.now()),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) CurrentUser(ctx context.Context, id string) (*UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}

	resp := toResponse(u, s.now())
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(u, s.now())
	return &resp, nil
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]UserResponse, int, error) {
	users, total, err := s.repo.List(ctx, params, page)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = toResponse(&users[i], now)
	}
	return out, total, nil
}

// SetActive toggles an activated account. Pending invitations cannot be
// switched on this way.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == nil {
		return nil, ErrNotActivated
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func newInvitationToken() (token, hash string, err error) {
	token, err = core.GenerateSecureToken(invitationBytes)
	if err != nil {
		return "", "", fmt.Errorf("generate invitation token: %w", err)
	}
	return token, core.HashToken(token), nil
}
