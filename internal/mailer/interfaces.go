package mailer

import "github.com/lemans/hotel-bookings/pkg/config"

// Service delivers the transactional mails this backend sends. All are
// best-effort from the caller's point of view: a returned error is logged
// and never fails the triggering operation.
type Service interface {
	SendWelcomeEmail(toEmail, toName string) error
	SendOTPEmail(toEmail, code string) error
	SendBookingConfirmationEmail(toEmail, reference string, totalCost float64, checkIn, checkOut string) error
}

// FromConfig picks an implementation: the dev mailer that prints to the
// logs when dev mode is on, MailerSend when an API key is set, otherwise
// SMTP.
func FromConfig(cfg config.EmailConfig) Service {
	if cfg.DevMode {
		return NewDevMailer()
	}
	if cfg.MailerSendKey != "" {
		return NewMailerSend(cfg.MailerSendKey, cfg.FromName, cfg.FromEmail)
	}
	return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPUseTLS)
}
