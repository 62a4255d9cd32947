package mailer

import (
	"fmt"
	"log/slog"
	"net/url"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email.
type Mailer interface {
	SendPasswordReset(to, uid, token string) error
}

type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	FrontendURL string
}

type smtpMailer struct {
	dialer *gomail.Dialer
	config Config
	logger *slog.Logger
}

func NewSMTPMailer(config Config, logger *slog.Logger) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		config: config,
		logger: logger,
	}
}

func (m *smtpMailer) SendPasswordReset(to, uid, token string) error {
	link := fmt.Sprintf("%s/reset-password-confirm?uid=%s&token=%s",
		m.config.FrontendURL, url.QueryEscape(uid), url.QueryEscape(token))

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/plain", fmt.Sprintf(
		"We received a request to reset your password.\n\n"+
			"Open the link below to choose a new one. The link expires in one hour "+
			"and stops working once your password changes.\n\n%s\n\n"+
			"If you did not request this, you can ignore this email.", link))
	msg.AddAlternative("text/html", fmt.Sprintf(
		`<p>We received a request to reset your password.</p>`+
			`<p><a href="%s">Choose a new password</a></p>`+
			`<p>The link expires in one hour and stops working once your password changes. `+
			`If you did not request this, you can ignore this email.</p>`, link))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	m.logger.Info("Password reset email sent", "to", to)
	return nil
}

// logMailer writes mail to the log instead of sending it. Used in
// development when no SMTP host is configured.
type logMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) SendPasswordReset(to, uid, token string) error {
	m.logger.Info("Password reset requested (mail disabled)", "to", to, "uid", uid, "token", token)
	return nil
}
