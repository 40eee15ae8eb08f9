package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/ada-support/helpdesk/internal/config"
)

// Sender delivers outbound mail.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// SMTPSender sends mail through an authenticated SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a sender from mail configuration.
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers a single HTML message.
func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// OTPBody renders the verification email around the passcode.
func OTPBody(code string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif;">
    <div style="width: 60%%; margin: 0 auto; background-color: #f9f9f9; padding: 20px; border: 1px solid #ddd; border-radius: 10px;">
      <div style="background-color: #333; color: #fff; padding: 10px; border-radius: 10px 10px 0 0;">
        <h2>OTP Verification</h2>
      </div>
      <div style="padding: 20px;">
        <h3>Dear User,</h3>
        <p>Your OTP for verification is: <strong>%s</strong></p>
        <p>Please enter this OTP to complete the verification process.</p>
      </div>
      <div style="background-color: #333; color: #fff; padding: 10px; border-radius: 0 0 10px 10px;">
        <p>&copy; ADA Support</p>
      </div>
    </div>
  </body>
</html>`, code)
}
