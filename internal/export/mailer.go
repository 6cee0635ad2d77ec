package export

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/hard-gainer/buurtstemming/internal/config"
)

// ErrMailerDisabled is returned when no SMTP host is configured
var ErrMailerDisabled = errors.New("mail export is not configured")

// Message is a mail handed to the SMTP server
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Mailer delivers the summary by SMTP
type Mailer struct {
	cfg config.SMTPConfig
	// not nil in tests only
	sendOverride chan Message
}

// NewMailer creates a mailer, it is disabled when the SMTP host is empty
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// NewTestMailer creates a mailer that hands messages to the channel instead of dialing
func NewTestMailer(cfg config.SMTPConfig, messages chan Message) *Mailer {
	return &Mailer{cfg: cfg, sendOverride: messages}
}

// Enabled reports whether the mailer can send
func (m *Mailer) Enabled() bool {
	return m != nil && m.cfg.SMTPHost != "" && m.cfg.MailTo != ""
}

// Send mails the summary to the configured recipient
func (m *Mailer) Send(subject, body string) error {
	if !m.Enabled() {
		return ErrMailerDisabled
	}

	msg := mail.NewMsg()
	msg.Subject(subject)
	if err := msg.From(m.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(m.cfg.MailTo); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.SetCharset(mail.CharsetUTF8)
	msg.SetBodyString(mail.TypeTextPlain, body)

	slog.Info("Sending summary mail", "to", m.cfg.MailTo, "host", m.cfg.SMTPHost)

	if m.sendOverride != nil {
		m.sendOverride <- Message{
			From:    m.cfg.SMTPFrom,
			To:      m.cfg.MailTo,
			Subject: subject,
			Body:    body,
		}
		return nil
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.SMTPUser),
			mail.WithPassword(m.cfg.SMTPPass),
		)
	}

	client, err := mail.NewClient(m.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	slog.Info("Summary mail sent", "to", m.cfg.MailTo)
	return nil
}
