package email

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *captureDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

var testConfig = Config{
	Host:      "smtp.example.com",
	Port:      587,
	Username:  "mailer",
	Password:  "pw",
	FromEmail: "noreply@example.com",
}

func TestSendOTP(t *testing.T) {
	t.Run("Should render the code into the body", func(t *testing.T) {
		dialer := &captureDialer{}
		svc := NewEmailServiceWithDialer(testConfig, dialer)

		require.NoError(t, svc.SendOTP("ana@x.com", "Ana", "042917"))
		require.Len(t, dialer.sent, 1)

		msg := dialer.sent[0]
		assert.Equal(t, []string{"ana@x.com"}, msg.GetHeader("To"))

		var buf bytes.Buffer
		_, err := msg.WriteTo(&buf)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "042917")
	})

	t.Run("Should wrap dialer failures", func(t *testing.T) {
		svc := NewEmailServiceWithDialer(testConfig, &captureDialer{err: errors.New("connection refused")})
		err := svc.SendOTP("ana@x.com", "Ana", "123456")
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("Should refuse to send when unconfigured", func(t *testing.T) {
		svc := NewEmailServiceWithDialer(Config{}, &captureDialer{})
		assert.ErrorIs(t, svc.SendOTP("ana@x.com", "Ana", "123456"), ErrNotConfigured)
	})
}
