package email

import (
	"context"

	"ecoleta/platform/config"
)

// PointConfirmation describes the mail sent to a point's contact after it was registered.
type PointConfirmation struct {
	PointID  int64
	Name     string
	City     string
	UF       string
	Items    []string
	PointURL string
}

type Sender interface {
	SendPointConfirmationEmail(ctx context.Context, toEmail string, data PointConfirmation) error
}

type NoopSender struct{}

func (NoopSender) SendPointConfirmationEmail(ctx context.Context, toEmail string, data PointConfirmation) error {
	return nil
}

// NewSender returns an SMTP sender, or NoopSender when e-mail is disabled.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}

	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
