package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/aokana/reportform/config"
)

// Mailer delivers outbound invitation messages. Delivery mechanics are an
// external concern; the user service only knows this interface.
type Mailer interface {
	SendInvitation(toEmail, token, name, password string) error
}

// NewMailer returns an SMTP-backed mailer when a host is configured, and a
// log-only mailer otherwise so development setups work without a relay.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.Mail.Host == "" {
		log.Warn().Msg("MAIL_HOST not configured; invitation mails will only be logged")
		return &logMailer{}
	}
	return &smtpMailer{
		addr:     fmt.Sprintf("%s:%s", cfg.Mail.Host, cfg.Mail.Port),
		host:     cfg.Mail.Host,
		from:     cfg.Mail.From,
		username: cfg.Mail.Username,
		password: cfg.Mail.Password,
		baseURL:  cfg.Server.BaseURL,
	}
}

type smtpMailer struct {
	addr     string
	host     string
	from     string
	username string
	password string
	baseURL  string
}

func (m *smtpMailer) SendInvitation(toEmail, token, name, password string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", toEmail)
	fmt.Fprintf(&b, "Subject: You have been invited\r\n")
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", name)
	b.WriteString("An account has been created for you.\r\n\r\n")
	fmt.Fprintf(&b, "Accept the invitation: %s/invitation/accept?invitation_token=%s\r\n", m.baseURL, token)
	fmt.Fprintf(&b, "Temporary password: %s\r\n", password)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := smtp.SendMail(m.addr, auth, m.from, []string{toEmail}, []byte(b.String())); err != nil {
		return fmt.Errorf("sending invitation mail to %s: %w", toEmail, err)
	}
	return nil
}

type logMailer struct{}

func (m *logMailer) SendInvitation(toEmail, token, name, password string) error {
	log.Info().Str("to", toEmail).Str("name", name).Str("token", token).
		Msg("Invitation mail (log only)")
	return nil
}
