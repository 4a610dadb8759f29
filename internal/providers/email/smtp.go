package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"

	"github.com/talleraustral/taller/internal/sysconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the SMTP sender.
var Module = fx.Module("email.provider",
	fx.Provide(NewSMTP),
)

var ErrNotConfigured = errors.New("smtp_not_configured")

type Sender interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Settings sysconfig.Service
}

// SMTPProvider reads its connection settings from the smtp_settings blob
// in system_configuration on every send, so an operator can repoint the
// relay without a restart.
type SMTPProvider struct {
	log      *zap.Logger
	settings sysconfig.Service
}

func NewSMTP(p Params) Sender {
	return &SMTPProvider{
		log:      p.Log.Named("email.smtp"),
		settings: p.Settings,
	}
}

func (p *SMTPProvider) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	cfg, err := p.settings.SMTPSettings(ctx)
	if err != nil {
		return ErrNotConfigured
	}
	if cfg.Host == "" || cfg.From == "" {
		return ErrNotConfigured
	}

	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n%s\r\n%s", to[0], subject, mime, body))

	if err := smtp.SendMail(addr, auth, cfg.From, to, msg); err != nil {
		p.log.Warn("smtp send failed", zap.String("host", cfg.Host), zap.Error(err))
		return err
	}
	return nil
}
