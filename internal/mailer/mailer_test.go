package mailer

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/config"
)

type sent struct {
	addr string
	from string
	to   []string
	msg  string
}

func recorder(out *[]sent, err error) SendFunc {
	return func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		*out = append(*out, sent{addr, from, to, string(msg)})
		return err
	}
}

var smtpCfg = config.SMTPConfig{Host: "smtp.example.com", Port: "587", User: "me@example.com", Pass: "pw"}

var valid = Message{Name: "Ada", Email: "ada@example.com", Message: "Hello there, nice site!"}

func TestSend(t *testing.T) {
	var out []sent
	m := New(smtpCfg, "owner@example.com", recorder(&out, nil), nil)

	require.NoError(t, m.Send(valid))
	require.Len(t, out, 1)
	assert.Equal(t, "smtp.example.com:587", out[0].addr)
	assert.Equal(t, "me@example.com", out[0].from)
	assert.Equal(t, []string{"owner@example.com"}, out[0].to)
	assert.Contains(t, out[0].msg, "Subject: Portfolio Contact: Ada\r\n")
	assert.Contains(t, out[0].msg, "Reply-To: ada@example.com\r\n")
	assert.Contains(t, out[0].msg, "Hello there, nice site!")
}

func TestSendValidation(t *testing.T) {
	var out []sent
	m := New(smtpCfg, "owner@example.com", recorder(&out, nil), nil)

	bad := valid
	bad.Email = "not-an-email"
	err := m.Send(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email")

	bad = valid
	bad.Message = "hi"
	assert.Error(t, m.Send(bad))
	assert.Empty(t, out)
}

func TestSendNotConfigured(t *testing.T) {
	var out []sent
	m := New(config.SMTPConfig{Host: "h", Port: "1"}, "owner@example.com", recorder(&out, nil), nil)
	assert.True(t, errors.Is(m.Send(valid), ErrNotConfigured))
}

func TestSendFailure(t *testing.T) {
	var out []sent
	m := New(smtpCfg, "owner@example.com", recorder(&out, errors.New("boom")), nil)
	err := m.Send(valid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestHeaderInjection(t *testing.T) {
	var out []sent
	m := New(smtpCfg, "owner@example.com", recorder(&out, nil), nil)

	msg := valid
	msg.Name = "Ada\r\nBcc: victim@example.com"
	require.NoError(t, m.Send(msg))

	headers := strings.SplitN(out[0].msg, "\r\n\r\n", 2)[0]
	assert.NotContains(t, headers, "\r\nBcc:")
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	var out []sent
	m := New(smtpCfg, "owner@example.com", recorder(&out, errors.New("connection refused")), nil)

	for range 3 {
		assert.Error(t, m.Send(valid))
	}
	require.Len(t, out, 3)

	err := m.Send(valid)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Len(t, out, 3, "open breaker does not dial")
}

func TestBreakerIgnoresInvalidMessages(t *testing.T) {
	var out []sent
	m := New(smtpCfg, "owner@example.com", recorder(&out, nil), nil)

	bad := valid
	bad.Email = ""
	for range 5 {
		assert.Error(t, m.Send(bad))
	}
	require.NoError(t, m.Send(valid))
	assert.Len(t, out, 1)
}
