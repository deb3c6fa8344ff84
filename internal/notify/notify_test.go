package notify

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/lemans/hotel-bookings/pkg/events"
)

type stubBus struct {
	handlers map[string]func(msg *events.Message)
}

func newStubBus() *stubBus {
	return &stubBus{handlers: make(map[string]func(msg *events.Message))}
}

func (s *stubBus) Subscribe(subject string, handler func(msg *events.Message)) error {
	s.handlers[subject] = handler
	return nil
}

func (s *stubBus) QueueSubscribe(subject, _ string, handler func(msg *events.Message)) error {
	s.handlers[subject] = handler
	return nil
}

func (s *stubBus) Close() error { return nil }

func (s *stubBus) deliver(t *testing.T, subject string, payload interface{}) {
	t.Helper()
	handler, ok := s.handlers[subject]
	if !ok {
		t.Fatalf("no handler subscribed for %s", subject)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	handler(&events.Message{Subject: subject, Data: data, Timestamp: time.Now()})
}

type recordingMailer struct {
	confirmTo    string
	confirmRef   string
	confirmCost  float64
	confirmErr   error
	confirmCalls int
}

func (m *recordingMailer) SendWelcomeEmail(_, _ string) error { return nil }

func (m *recordingMailer) SendOTPEmail(_, _ string) error { return nil }

func (m *recordingMailer) SendBookingConfirmationEmail(toEmail, reference string, totalCost float64, _, _ string) error {
	m.confirmCalls++
	m.confirmTo = toEmail
	m.confirmRef = reference
	m.confirmCost = totalCost
	return m.confirmErr
}

func TestWorkerSendsConfirmationOnBookingCreated(t *testing.T) {
	bus := newStubBus()
	mail := &recordingMailer{}
	w := NewWorker(bus, mail)
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	bus.deliver(t, events.BookingCreated, events.BookingCreatedEvent{
		BookingID:    1,
		Reference:    "ref-1",
		UserEmail:    "guest@example.com",
		CheckInDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		TotalCost:    240,
	})

	if mail.confirmCalls != 1 {
		t.Fatalf("expected one confirmation mail, got %d", mail.confirmCalls)
	}
	if mail.confirmTo != "guest@example.com" || mail.confirmRef != "ref-1" || mail.confirmCost != 240 {
		t.Fatalf("unexpected mail: to=%q ref=%q cost=%v", mail.confirmTo, mail.confirmRef, mail.confirmCost)
	}
}

func TestWorkerIgnoresMalformedPayload(t *testing.T) {
	bus := newStubBus()
	mail := &recordingMailer{}
	w := NewWorker(bus, mail)
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	bus.handlers[events.BookingCreated](&events.Message{
		Subject: events.BookingCreated,
		Data:    []byte("{not json"),
	})

	if mail.confirmCalls != 0 {
		t.Fatal("malformed payload must not trigger mail")
	}
}

func TestWorkerMailFailureDoesNotPanic(t *testing.T) {
	bus := newStubBus()
	mail := &recordingMailer{confirmErr: errors.New("smtp down")}
	w := NewWorker(bus, mail)
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	bus.deliver(t, events.BookingCreated, events.BookingCreatedEvent{
		BookingID: 2,
		Reference: "ref-2",
		UserEmail: "guest@example.com",
	})

	if mail.confirmCalls != 1 {
		t.Fatalf("expected the send to be attempted, got %d calls", mail.confirmCalls)
	}
}
