package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/PANDASANG1231/risk-model-tool/pkg/logger"
)

// ErrTimeout indicates a send that did not finish within the configured timeout.
var ErrTimeout = errors.New("mail send timed out")

// Message is the content of one mail.
type Message struct {
	// Subject overrides the configured subject when set.
	Subject string
	// Body is the plain-text part; optional.
	Body string
	// HTML is the HTML part; sent as an alternative to Body when both are set.
	HTML string
	// Attachments are file paths attached to the mail.
	Attachments []string
	// Embeds are image paths referenced from HTML as cid:<file name>.
	Embeds []string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dialer is the SMTP transport used by SMTPSender; *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends mails through an SMTP server. No retry is attempted.
type SMTPSender struct {
	cfg    Config
	dialer Dialer
}

// Option configures an SMTPSender.
type Option func(*SMTPSender)

// WithDialer replaces the SMTP transport.
func WithDialer(d Dialer) Option {
	return func(s *SMTPSender) {
		s.dialer = d
	}
}

// NewSMTPSender validates cfg and returns a sender for it.
func NewSMTPSender(cfg Config, opts ...Option) (*SMTPSender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &SMTPSender{cfg: cfg.withDefaults()}
	for _, opt := range opts {
		opt(s)
	}
	if s.dialer == nil {
		s.dialer = newDialer(s.cfg)
	}
	return s, nil
}

func newDialer(cfg Config) *gomail.Dialer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	switch cfg.Security {
	case SecuritySSL:
		d.SSL = true
	case SecurityStartTLS:
		d.SSL = false
		d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	case SecurityNone:
		d.SSL = false
		d.TLSConfig = nil
	}
	return d
}

// Build assembles the gomail message for msg.
func (s *SMTPSender) Build(msg Message) (*gomail.Message, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", s.cfg.To...)
	if len(s.cfg.Cc) > 0 {
		m.SetHeader("Cc", s.cfg.Cc...)
	}
	subject := msg.Subject
	if subject == "" {
		subject = s.cfg.Subject
	}
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), s.cfg.Host))
	m.SetDateHeader("Date", time.Now())

	switch {
	case msg.HTML != "" && msg.Body != "":
		m.SetBody("text/plain", msg.Body)
		m.AddAlternative("text/html", msg.HTML)
	case msg.HTML != "":
		m.SetBody("text/html", msg.HTML)
	default:
		m.SetBody("text/plain", msg.Body)
	}

	for _, path := range msg.Attachments {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("attachment: %w", err)
		}
		m.Attach(path)
	}
	for _, path := range msg.Embeds {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("embedded image: %w", err)
		}
		m.Embed(path)
	}
	return m, nil
}

// Send delivers msg to the configured recipients. It returns when the
// transport finishes, the timeout passes or ctx is done, whichever is first.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.Build(msg)
	if err != nil {
		return err
	}

	log := logger.Get(ctx).With(
		zap.String("host", s.cfg.Host),
		zap.Int("port", s.cfg.Port),
		zap.Strings("to", s.cfg.To),
	)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	timer := time.NewTimer(s.cfg.Timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			log.Error("mail send failed", zap.Error(err))
			return fmt.Errorf("send mail via %s:%d: %w", s.cfg.Host, s.cfg.Port, err)
		}
		log.Info("mail sent", zap.Strings("subject", m.GetHeader("Subject")))
		return nil
	case <-timer.C:
		log.Error("mail send timed out", zap.Duration("timeout", s.cfg.Timeout))
		return fmt.Errorf("%w after %s", ErrTimeout, s.cfg.Timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}
