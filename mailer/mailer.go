// Package mailer delivers transactional email (one-time codes, welcome
// messages) over an SMTP relay.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tmms/config"
)

type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	fromName string
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
		fromName: cfg.MailFromName,
	}
}

// Enabled reports whether SMTP credentials were configured. When they are
// not, sends become logged no-ops so local development works without a relay.
func (m *Mailer) Enabled() bool {
	return m.username != "" && m.from != ""
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if !m.Enabled() {
		log.Warn().Str("to", to).Str("subject", subject).Msg("mailer not configured, skipping send")
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", m.fromName, m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := m.host + ":" + m.port
	authn := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, authn, m.from, []string{to}, []byte(msg.String())); err != nil {
		log.Error().Err(err).Str("to", to).Msg("smtp send failed")
		return err
	}
	return nil
}

// SendOTP mails a verification or password-reset code.
func (m *Mailer) SendOTP(to, otp, purpose string) error {
	title := "Email Verification"
	intro := "Please use the verification code below to activate your account."
	if purpose == "reset" {
		title = "Password Reset"
		intro = "You requested a password reset. Use the code below to reset your password."
	}

	body := wrap(title, fmt.Sprintf(`
		<h2>%s</h2>
		<p>Hello,</p>
		<p>%s</p>
		<div style="background:#e8f5e9;border:1px dashed #4caf50;padding:15px;text-align:center;border-radius:4px">
			<div style="font-size:12px;text-transform:uppercase;color:#666">Your Verification Code</div>
			<div style="font-size:32px;font-weight:bold;letter-spacing:5px;color:#2e7d32">%s</div>
			<div style="font-size:12px;color:#666">Valid for 10 minutes</div>
		</div>`, title, intro, otp))

	return m.send(to, "TMMS - "+title, body)
}

// SendWelcome mails the post-verification welcome message.
func (m *Mailer) SendWelcome(to, name string) error {
	body := wrap("Welcome", fmt.Sprintf(`
		<h2>Welcome to TMMS, %s!</h2>
		<p>Your email has been verified and your account is ready.</p>
		<p>You can now browse machines and spare parts, book repair services,
		and track your orders from your account.</p>`, name))

	return m.send(to, "Welcome to TMMS", body)
}

func wrap(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body style="font-family:sans-serif;color:#333;background:#f4f4f4;margin:0;padding:0">
	<div style="max-width:600px;margin:20px auto;background:#fff;border-radius:8px;overflow:hidden">
		<div style="background:#2c3e50;color:#fff;padding:20px;text-align:center"><h1 style="margin:0">TMMS</h1></div>
		<div style="padding:30px 20px">%s</div>
		<div style="background:#f8f9fa;padding:15px;text-align:center;font-size:12px;color:#6c757d">
			&copy; %d Tailoring Machine Management System. All rights reserved.
		</div>
	</div>
</body>
</html>`, title, content, time.Now().Year())
}
