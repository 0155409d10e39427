package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tmms/config"
)

func TestMailerDisabledWithoutCredentials(t *testing.T) {
	m := New(&config.Config{})
	assert.False(t, m.Enabled())

	// Unconfigured sends are logged no-ops, not failures: registration
	// must not break in environments without an SMTP relay.
	assert.NoError(t, m.SendOTP("user@example.com", "123456", "verification"))
	assert.NoError(t, m.SendWelcome("user@example.com", "User"))
}

func TestMailerEnabledWithCredentials(t *testing.T) {
	m := New(&config.Config{
		SMTPUser: "relay-user",
		MailFrom: "noreply@example.com",
	})
	assert.True(t, m.Enabled())
}

func TestWrapContainsContentAndBranding(t *testing.T) {
	body := wrap("Email Verification", "<p>hello</p>")
	assert.Contains(t, body, "<p>hello</p>")
	assert.Contains(t, body, "TMMS")
	assert.Contains(t, body, "Email Verification")
}
