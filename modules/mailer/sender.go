package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Sender delivers a single message to a single recipient.
type Sender interface {
	Send(to, subject, body string) error
}

// smtpSender delivers mail through an SMTP relay using the standard
// library client.
type smtpSender struct {
	host string
	port int
	user string
	pass string
	from string
}

// newSMTPSender creates a Sender backed by an SMTP relay.
func newSMTPSender(host string, port int, user, pass, from string) *smtpSender {
	return &smtpSender{
		host: host,
		port: port,
		user: user,
		pass: pass,
		from: from,
	}
}

// Send delivers one message. Auth is skipped when no user is configured
// (local relays in development).
func (s *smtpSender) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.pass, s.host)
	}

	msg := buildMessage(s.from, to, subject, body)
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}

// logSender writes outgoing mail to the process log instead of sending
// it. Used when no SMTP host is configured.
type logSender struct {
	from string
}

func newLogSender(from string) *logSender {
	return &logSender{from: from}
}

func (s *logSender) Send(to, subject, body string) error {
	log.Printf("[mailer] (log delivery) to=%s subject=%q body=%q", to, subject, body)
	return nil
}

// buildMessage assembles a minimal RFC 5322 message.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
