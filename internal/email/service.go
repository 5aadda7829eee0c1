package email

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/gomail.v2"
)

// Service sends transactional mail. Sends are single-shot: a failure is
// returned to the caller, never retried.
type Service interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPConfig is read from the environment
type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" required:"true"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM" required:"true"`
	FromName string `envconfig:"SMTP_FROM_NAME" default:"The Live Cure"`
}

// LoadSMTPConfig reads SMTP settings from the environment
func LoadSMTPConfig() (*SMTPConfig, error) {
	var cfg SMTPConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load smtp config: %w", err)
	}
	return &cfg, nil
}

type smtpService struct {
	cfg    *SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPService(cfg *SMTPConfig) Service {
	return &smtpService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *smtpService) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// NoopService discards mail, used in tests and local development
type NoopService struct{}

func (NoopService) Send(ctx context.Context, to, subject, htmlBody string) error {
	return nil
}
