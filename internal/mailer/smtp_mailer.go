package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

type SMTPMailer struct {
	Host   string
	Port   int
	From   string
	User   string
	Pass   string
	UseTLS bool
}

func NewSMTPMailer(host string, port int, from, user, pass string, useTLS bool) *SMTPMailer {
	return &SMTPMailer{
		Host:   strings.TrimSpace(host),
		Port:   port,
		From:   strings.TrimSpace(from),
		User:   strings.TrimSpace(user),
		Pass:   strings.TrimSpace(pass),
		UseTLS: useTLS,
	}
}

func (s *SMTPMailer) SendWelcomeEmail(toEmail, toName string) error {
	text := fmt.Sprintf(
		"Dear %s,\n\nWelcome to Le Mans Hotel - Your Premium Luxury Experience Awaits!\n\n"+
			"Thank you for registering with us. We're delighted to have you as part of the Le Mans Hotel family.\n\n"+
			"Best regards,\nThe Le Mans Hotel Team\nPremium Luxury Since 1890",
		toName)
	html := fmt.Sprintf(`
		<h2>Welcome to Le Mans Hotel!</h2>
		<p>Dear %s,</p>
		<p>Thank you for registering with us. We're delighted to have you as part of the Le Mans Hotel family.</p>
		<p>Best regards,<br>The Le Mans Hotel Team<br>Premium Luxury Since 1890</p>
	`, toName)

	return s.sendEmail(toEmail, welcomeSubject, text, html)
}

func (s *SMTPMailer) SendOTPEmail(toEmail, code string) error {
	text := fmt.Sprintf("Your one-time password reset code is: %s\n\nThis code will expire in 15 minutes and can be used only once.", code)
	html := fmt.Sprintf(`
		<h2>Password Reset</h2>
		<p>Your one-time password reset code is: <strong style="font-size: 24px;">%s</strong></p>
		<p>This code will expire in 15 minutes and can be used only once.</p>
	`, code)

	return s.sendEmail(toEmail, otpSubject, text, html)
}

func (s *SMTPMailer) SendBookingConfirmationEmail(toEmail, reference string, totalCost float64, checkIn, checkOut string) error {
	text := fmt.Sprintf(
		"Your booking is in!\n\nReference: %s\nStay: %s to %s\nTotal cost: %.2f\n\nWe look forward to welcoming you.\n\nBest regards,\nThe Le Mans Hotel Team",
		reference, checkIn, checkOut, totalCost)
	html := fmt.Sprintf(`
		<h2>Your booking is in!</h2>
		<p>Reference: <strong>%s</strong></p>
		<p>Stay: %s to %s</p>
		<p>Total cost: <strong>%.2f</strong></p>
		<p>Best regards,<br>The Le Mans Hotel Team</p>
	`, reference, checkIn, checkOut, totalCost)

	return s.sendEmail(toEmail, bookingSubject, text, html)
}

func (s *SMTPMailer) sendEmail(toEmail, subject, text, html string) error {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return fmt.Errorf("empty recipient email")
	}

	var buf bytes.Buffer
	boundary := "mixed-boundary"

	fmt.Fprintf(&buf, "From: %s\r\n", s.From)
	fmt.Fprintf(&buf, "To: %s\r\n", toEmail)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	// Text part
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", text)

	// HTML part
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", html)

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)

	// Mailpit or development SMTP (no auth, no TLS)
	if !s.UseTLS && s.User == "" {
		return smtp.SendMail(addr, nil, s.From, []string{toEmail}, buf.Bytes())
	}

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}

	// Try plain SMTP first (with STARTTLS if supported)
	if err := smtp.SendMail(addr, auth, s.From, []string{toEmail}, buf.Bytes()); err == nil {
		return nil
	}

	// Fallback to implicit TLS (port 465)
	if !s.UseTLS {
		return fmt.Errorf("smtp send failed for %s", addr)
	}

	tlsCfg := &tls.Config{ServerName: s.Host}
	conn, err := tls.Dial("tcp", addr, tlsCfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if s.User != "" {
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(s.From); err != nil {
		return err
	}
	if err := c.Rcpt(toEmail); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	return w.Close()
}
