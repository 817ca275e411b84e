package email

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/hearthside/hearthside-api/pkg/logger"
	"github.com/hearthside/hearthside-api/pkg/metrics"
	"go.uber.org/zap"
)

// Sender delivers one rendered message to one recipient.
type Sender interface {
	Send(ctx context.Context, to string, content models.EmailContent) error
}

// Config holds SMTP relay settings. Username/Password stay empty for a
// local Mailhog relay in development.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPSender sends multipart/alternative (text + HTML) mail over SMTP.
type SMTPSender struct {
	config Config
}

// NewSMTPSender creates an SMTP-backed Sender.
func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{config: cfg}
}

// Send delivers the message. The context is accepted for interface
// symmetry; net/smtp has no context support, so the relay's own timeouts
// bound the call.
func (s *SMTPSender) Send(ctx context.Context, to string, content models.EmailContent) error {
	start := time.Now()
	operation := "send"

	msg := s.buildMessage(to, content)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.Username != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	err := smtp.SendMail(addr, auth, s.config.From, []string{to}, msg)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		logger.LogAPICall("smtp", operation, "error", duration,
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", content.Subject),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.LogAPICall("smtp", operation, "success", duration,
		zap.String("to", to),
		zap.String("subject", content.Subject),
	)
	return nil
}

// buildMessage constructs the raw RFC 2045 multipart/alternative message.
func (s *SMTPSender) buildMessage(to string, content models.EmailContent) []byte {
	var buf bytes.Buffer

	fromHeader := fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)
	boundary := "===============HEARTHSIDE_BOUNDARY==============="

	fmt.Fprintf(&buf, "From: %s\r\n", fromHeader)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", content.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary)
	buf.WriteString("\r\n")

	// Plain text part first so HTML-capable clients prefer the HTML part
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(content.Text)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(content.HTML)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return buf.Bytes()
}

var _ Sender = (*SMTPSender)(nil)
