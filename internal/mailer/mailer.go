// Package mailer delivers contact-form messages to the site owner.
package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/portfolio"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("SMTP credentials not configured")

// Message is a contact-form submission.
type Message struct {
	Name    string `form:"fullName" json:"fullName" validate:"required,max=100"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Message string `form:"message" json:"message" validate:"required,min=10,max=5000"`
}

// Validate checks the submission's fields.
func (m Message) Validate() error {
	return portfolio.ValidateStruct(m)
}

// SendFunc has the signature of smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends Messages over SMTP. After three failures in a row it stops
// trying for a minute and fails fast with gobreaker.ErrOpenState.
type Mailer struct {
	cfg  config.SMTPConfig
	send SendFunc
	cb   *gobreaker.CircuitBreaker
	log  *zap.Logger
}

// New returns a Mailer. A nil send uses smtp.SendMail. When cfg.To is empty
// messages go to fallbackTo.
func New(cfg config.SMTPConfig, fallbackTo string, send SendFunc, log *zap.Logger) *Mailer {
	if send == nil {
		send = smtp.SendMail
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.To == "" {
		cfg.To = fallbackTo
	}
	m := &Mailer{cfg: cfg, send: send, log: log}
	m.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "smtp",
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return m
}

// Send validates m and delivers it.
func (m *Mailer) Send(msg Message) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}
	if m.cfg.User == "" || m.cfg.Pass == "" {
		return ErrNotConfigured
	}
	if m.cfg.To == "" {
		return fmt.Errorf("no recipient configured")
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	_, err := m.cb.Execute(func() (any, error) {
		return nil, m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, compose(m.cfg, msg))
	})
	if err != nil {
		m.log.Error("error sending email", zap.Error(err))
		return fmt.Errorf("sending email: %w", err)
	}

	m.log.Info("email sent", zap.String("from", msg.Name))
	return nil
}

func compose(cfg config.SMTPConfig, msg Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", oneLine(msg.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Message)

	return []byte("To: " + cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + cfg.User + "\r\n" +
		"Reply-To: " + oneLine(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// oneLine strips CR and LF so user input cannot add headers.
func oneLine(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
