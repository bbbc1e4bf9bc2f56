package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/hotelops/hotel-api/internal/config"
	"github.com/hotelops/hotel-api/pkg/logger"
)

// Service sends transactional email. Delivery is best effort; callers
// must never fail a request because an email could not be sent.
type Service interface {
	SendWelcome(ctx context.Context, to string, name string) error
	SendNotification(ctx context.Context, to string, subject string, body string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
	logger *logger.Logger
}

func NewSMTPService(cfg config.EmailConfig, log *logger.Logger) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: log,
	}
}

func (s *smtpService) SendWelcome(ctx context.Context, to string, name string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour hotel account is ready. You can sign in with this email address.", name)
	return s.send(to, "Welcome", body)
}

func (s *smtpService) SendNotification(ctx context.Context, to string, subject string, body string) error {
	return s.send(to, subject, body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error(err, "failed to send email", "to", to, "subject", subject)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NoopService discards all mail. Used when SMTP is not configured.
type NoopService struct{}

func (NoopService) SendWelcome(ctx context.Context, to string, name string) error { return nil }

func (NoopService) SendNotification(ctx context.Context, to string, subject string, body string) error {
	return nil
}
