package mailer

import (
	"github.com/lemans/hotel-bookings/pkg/logger"
)

type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendWelcomeEmail(toEmail, toName string) error {
	logger.Info("📧 [DEV MAIL] Welcome Email",
		"to", toEmail,
		"name", toName,
		"subject", welcomeSubject,
	)
	return nil
}

func (d *DevMailer) SendOTPEmail(toEmail, code string) error {
	logger.Info("📧 [DEV MAIL] Password Reset Email",
		"to", toEmail,
		"otp", code,
		"subject", otpSubject,
	)
	return nil
}

func (d *DevMailer) SendBookingConfirmationEmail(toEmail, reference string, totalCost float64, checkIn, checkOut string) error {
	logger.Info("📧 [DEV MAIL] Booking Confirmation Email",
		"to", toEmail,
		"reference", reference,
		"total_cost", totalCost,
		"check_in", checkIn,
		"check_out", checkOut,
		"subject", bookingSubject,
	)
	return nil
}
