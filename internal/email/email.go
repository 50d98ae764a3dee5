// AngelaMos | 2026
// email.go

package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/config"
)

var ErrNotConfigured = errors.New("email not configured")

type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Service struct {
	cfg    config.SMTPConfig
	server string
	auth   smtp.Auth
	send   SendFunc
}

func New(cfg config.SMTPConfig) *Service {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &Service{
		cfg:    cfg,
		server: cfg.Host + ":" + strconv.Itoa(cfg.Port),
		auth:   auth,
		send:   smtp.SendMail,
	}
}

// WithSendFunc swaps the transport, mostly for tests.
func (s *Service) WithSendFunc(fn SendFunc) *Service {
	s.send = fn
	return s
}

func (s *Service) IsConfigured() bool {
	return s != nil && s.cfg.Enabled()
}

func (s *Service) Send(ctx context.Context, msg Message) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("send email: no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	raw := s.compose(msg)
	if err := s.send(s.server, s.auth, s.cfg.From, msg.To, raw); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func (s *Service) compose(msg Message) []byte {
	from := s.cfg.From
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.From)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "Subject: %s\r\n", sanitizeHeader(msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")

	if msg.HTML == "" {
		fmt.Fprintf(&buf, "Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		buf.WriteString(msg.Text)
		return buf.Bytes()
	}

	boundary := "lawcrm-" + uuid.NewString()
	text := msg.Text
	if text == "" {
		text = "Please view this email in an HTML-capable email client."
	}

	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", text)
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", msg.HTML)
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return buf.Bytes()
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

type InvitationData struct {
	FirmName  string
	Email     string
	AcceptURL string
	ExpiresAt time.Time
}

func (s *Service) SendInvitation(ctx context.Context, data InvitationData) error {
	html, err := render(invitationTemplate, data)
	if err != nil {
		return fmt.Errorf("render invitation template: %w", err)
	}

	return s.Send(ctx, Message{
		To:      []string{data.Email},
		Subject: fmt.Sprintf("You're invited to the %s client portal", data.FirmName),
		Text: fmt.Sprintf(
			"Accept your invitation before %s:\n\n%s\n",
			data.ExpiresAt.Format("January 2, 2006"),
			data.AcceptURL,
		),
		HTML: html,
	})
}

var invitationTemplate = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.FirmName}} client portal</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .button { display: inline-block; padding: 12px 24px; background: #1f3a5f; color: white; text-decoration: none; border-radius: 4px; margin: 20px 0; }
        .link { word-break: break-all; color: #1f3a5f; }
        .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <h2>Your client portal is ready</h2>

    <p>{{.FirmName}} has invited {{.Email}} to its secure client portal, where you can follow your cases, view invoices and exchange messages with your legal team.</p>

    <p><a href="{{.AcceptURL}}" class="button">Set up your account</a></p>

    <p>Or copy and paste this link into your browser:</p>
    <p class="link">{{.AcceptURL}}</p>

    <div class="footer">
        <p>This invitation expires on {{.ExpiresAt.Format "January 2, 2006"}}. If you were not expecting it, you can ignore this email.</p>
    </div>
</body>
</html>`))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
