package notify

import (
	"encoding/json"
	"fmt"

	"github.com/lemans/hotel-bookings/internal/mailer"
	"github.com/lemans/hotel-bookings/pkg/events"
	"github.com/lemans/hotel-bookings/pkg/logger"
)

const queueGroup = "notify"

// Worker consumes booking events off the bus and turns them into mail.
// Running it in-process keeps booking creation decoupled from mail
// delivery; a slow SMTP server never holds a request open.
type Worker struct {
	bus    events.Subscriber
	mailer mailer.Service
}

func NewWorker(bus events.Subscriber, mailSvc mailer.Service) *Worker {
	return &Worker{bus: bus, mailer: mailSvc}
}

// Start subscribes the worker. Subscriptions live until the bus closes.
func (w *Worker) Start() error {
	if err := w.bus.QueueSubscribe(events.BookingCreated, queueGroup, w.handleBookingCreated); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", events.BookingCreated, err)
	}
	return nil
}

func (w *Worker) handleBookingCreated(msg *events.Message) {
	var event events.BookingCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to decode booking created event", "error", err, "subject", msg.Subject)
		return
	}

	err := w.mailer.SendBookingConfirmationEmail(
		event.UserEmail,
		event.Reference,
		event.TotalCost,
		event.CheckInDate.Format("2006-01-02"),
		event.CheckOutDate.Format("2006-01-02"),
	)
	if err != nil {
		logger.Error("Failed to send booking confirmation email",
			"error", err,
			"booking_id", event.BookingID,
			"recipient", event.UserEmail,
		)
		return
	}

	logger.Info("Booking confirmation email sent",
		"booking_id", event.BookingID,
		"reference", event.Reference,
	)
}
