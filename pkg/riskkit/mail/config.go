// Package mail sends report mails over SMTP.
package mail

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig indicates a mail configuration that fails validation.
var ErrInvalidConfig = errors.New("invalid mail config")

// Security selects how the SMTP connection is protected.
type Security string

const (
	// SecurityAuto uses implicit TLS on port 465 and STARTTLS when offered otherwise.
	SecurityAuto Security = ""
	// SecurityNone never starts implicit TLS.
	SecurityNone Security = "none"
	// SecuritySSL uses implicit TLS from the first byte.
	SecuritySSL Security = "ssl"
	// SecurityStartTLS upgrades a plain connection and verifies the host name.
	SecurityStartTLS Security = "starttls"
)

const (
	DefaultPort    = 25
	DefaultTimeout = 30 * time.Second
)

// Config is the flat SMTP connection and addressing record.
type Config struct {
	// Host is the SMTP server name or address.
	Host string `env:"MAIL_HOST" yaml:"host" validate:"required,hostname|ip"`
	// Port is the SMTP server port.
	Port int `env:"MAIL_PORT" env-default:"25" yaml:"port" validate:"gte=0,lte=65535"`
	// User and Password authenticate against the server; both empty skips AUTH.
	User     string `env:"MAIL_USER" yaml:"user"`
	Password string `env:"MAIL_PASSWORD" yaml:"password"`
	// From defaults to User.
	From string `env:"MAIL_FROM" yaml:"from" validate:"omitempty,email"`
	// Subject is used when a message has none.
	Subject string   `env:"MAIL_SUBJECT" yaml:"subject"`
	To      []string `env:"MAIL_TO" env-separator:"," yaml:"to" validate:"required,min=1,dive,email"`
	Cc      []string `env:"MAIL_CC" env-separator:"," yaml:"cc" validate:"dive,email"`
	// Timeout bounds one send, dial included.
	Timeout  time.Duration `env:"MAIL_TIMEOUT" env-default:"30s" yaml:"timeout" validate:"gte=0"`
	Security Security      `env:"MAIL_SECURITY" yaml:"security" validate:"omitempty,oneof=none ssl starttls"`
}

var validate = validator.New() //nolint: gochecknoglobals

// withDefaults fills the zero fields that have a default.
func (c Config) withDefaults() Config {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.From == "" {
		c.From = c.User
	}
	return c
}

// Validate applies defaults and checks the configuration.
func (c Config) Validate() error {
	c = c.withDefaults()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.From == "" {
		return fmt.Errorf("%w: no sender address (set from or user)", ErrInvalidConfig)
	}
	if err := validate.Var(c.From, "email"); err != nil {
		return fmt.Errorf("%w: sender %q is not an address", ErrInvalidConfig, c.From)
	}
	return nil
}
