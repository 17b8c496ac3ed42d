// Package email delivers outbound mail. Delivery is best-effort and sits
// outside the persistence core; callers treat failures as non-fatal.
package email

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

type Service interface {
	SendWelcome(ctx context.Context, to string, name string) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}

type Config struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// NewService returns an SMTP-backed sender, or a no-op one when disabled.
func NewService(cfg Config) Service {
	if !cfg.Enabled {
		return &noopService{}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func (s *smtpService) SendWelcome(ctx context.Context, to string, name string) error {
	body := fmt.Sprintf("Hi %s,\n\nWelcome to Hostelmate. Your account is ready.\n", name)
	return s.SendCustom(ctx, to, "Welcome to Hostelmate", body)
}

func (s *smtpService) SendCustom(_ context.Context, to string, subject string, content string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

type noopService struct{}

func (*noopService) SendWelcome(context.Context, string, string) error        { return nil }
func (*noopService) SendCustom(context.Context, string, string, string) error { return nil }
