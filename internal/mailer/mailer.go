// AngelaMos | 2026
// mailer.go

package mailer

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/config"
)

// Mailer is the outbound notification capability. Delivery failures surface as
// errors; the caller decides whether the enclosing operation is a partial
// success (registration) or a hard failure.
type Mailer interface {
	SendVerification(ctx context.Context, to, name, link string) error
	SendPasswordReset(ctx context.Context, to, name, link string) error
}

type SMTP struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTP(cfg config.EmailConfig) *SMTP {
	return &SMTP{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

func (m *SMTP) SendVerification(ctx context.Context, to, name, link string) error {
	body, err := renderVerification(name, link)
	if err != nil {
		return fmt.Errorf("render verification email: %w", err)
	}
	return m.send(ctx, to, "Verify your account", body)
}

func (m *SMTP) SendPasswordReset(ctx context.Context, to, name, link string) error {
	body, err := renderPasswordReset(name, link)
	if err != nil {
		return fmt.Errorf("render password reset email: %w", err)
	}
	return m.send(ctx, to, "Reset your password", body)
}

func (m *SMTP) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	// gomail has no context support; honor cancellation before dialing.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

var _ Mailer = (*SMTP)(nil)
