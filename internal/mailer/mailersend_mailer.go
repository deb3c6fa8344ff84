package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

const (
	welcomeSubject = "Welcome to Le Mans Hotel!"
	otpSubject     = "Your Le Mans Hotel password reset code"
	bookingSubject = "Your Le Mans Hotel booking"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendWelcomeEmail(toEmail, toName string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	html := fmt.Sprintf(`
		<h2>Welcome to Le Mans Hotel!</h2>
		<p>Dear %s,</p>
		<p>Thank you for registering with us. With your account you can now:</p>
		<ul>
			<li>Browse and book our luxurious rooms</li>
			<li>Explore our fine dining options</li>
			<li>Manage your bookings effortlessly</li>
			<li>Receive exclusive offers and updates</li>
		</ul>
		<p>We look forward to serving you!</p>
		<p>Best regards,<br>The Le Mans Hotel Team<br>Premium Luxury Since 1890</p>
	`, toName)

	text := fmt.Sprintf(
		"Dear %s,\n\nWelcome to Le Mans Hotel - Your Premium Luxury Experience Awaits!\n\n"+
			"Thank you for registering with us. We're delighted to have you as part of the Le Mans Hotel family.\n\n"+
			"Best regards,\nThe Le Mans Hotel Team\nPremium Luxury Since 1890",
		toName)

	return m.sendEmail(toEmail, toName, welcomeSubject, text, html)
}

func (m *MailerSendClient) SendOTPEmail(toEmail, code string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	html := fmt.Sprintf(`
		<h2>Password Reset</h2>
		<p>Your one-time password reset code is: <strong style="font-size: 24px;">%s</strong></p>
		<p>This code will expire in 15 minutes and can be used only once.</p>
		<p>If you didn't request a password reset, please ignore this email.</p>
	`, code)

	text := fmt.Sprintf("Your one-time password reset code is: %s\n\nThis code will expire in 15 minutes and can be used only once.", code)

	return m.sendEmail(toEmail, "", otpSubject, text, html)
}

func (m *MailerSendClient) SendBookingConfirmationEmail(toEmail, reference string, totalCost float64, checkIn, checkOut string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	html := fmt.Sprintf(`
		<h2>Your booking is in!</h2>
		<p>Reference: <strong>%s</strong></p>
		<p>Stay: %s to %s</p>
		<p>Total cost: <strong>%.2f</strong></p>
		<p>We look forward to welcoming you.</p>
		<p>Best regards,<br>The Le Mans Hotel Team</p>
	`, reference, checkIn, checkOut, totalCost)

	text := fmt.Sprintf(
		"Your booking is in!\n\nReference: %s\nStay: %s to %s\nTotal cost: %.2f\n\nWe look forward to welcoming you.\n\nBest regards,\nThe Le Mans Hotel Team",
		reference, checkIn, checkOut, totalCost)

	return m.sendEmail(toEmail, "", bookingSubject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
