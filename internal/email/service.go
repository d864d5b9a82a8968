package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/vaxtrack/booking-api/internal/config"
)

// Service relays notification messages over email.
type Service interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPService builds a gomail-backed service from SMTP config.
func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) Send(_ context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type noopService struct{}

// NewNoopService is used when no SMTP relay is configured; notifications
// then exist only as database rows.
func NewNoopService() Service {
	return noopService{}
}

func (noopService) Send(context.Context, string, string, string) error {
	return nil
}
