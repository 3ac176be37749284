package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/staffport/attendance-backend-go/internal/config"
	"github.com/staffport/attendance-backend-go/internal/domain/notification"
)

// Mailer delivers notifications over SMTP. It implements
// notification.DeliveryChannel.
type Mailer struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) *Mailer {
	if cfg.Host == "" {
		slog.Warn("SMTP not configured, email deliveries will fail")
	}
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Kind() notification.Channel {
	return notification.ChannelEmail
}

func (m *Mailer) Send(ctx context.Context, to notification.Recipient, subject, body string) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("email channel not configured")
	}

	headers := fmt.Sprintf("From: %s <%s>\r\n", m.cfg.FromName, m.cfg.From)
	headers += fmt.Sprintf("To: %s\r\n", to.Address)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/plain; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + body)

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	type result struct{ err error }
	done := make(chan result, 1)
	go func() {
		done <- result{err: smtp.SendMail(addr, auth, m.cfg.From, []string{to.Address}, message)}
	}()

	// net/smtp has no context support; honor cancellation here so a hung
	// SMTP server cannot block the caller past its deadline.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-done:
		if res.err != nil {
			return fmt.Errorf("smtp send to %s: %w", to.Address, res.err)
		}
		slog.Info("Email sent", "to", to.Address, "subject", subject)
		return nil
	}
}
