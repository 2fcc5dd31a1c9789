package mailer

import (
	"sync"
	"testing"
	"time"

	bookingModel "msc-booking/models/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	ok   bool
}

func (s *recordingSender) Send(msg Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.ok
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestDispatcherDeliversEnqueuedMail(t *testing.T) {
	sender := &recordingSender{ok: true}
	d := NewDispatcher(sender)
	go d.Process()
	defer d.Close()

	for i := 0; i < 5; i++ {
		d.Enqueue(Message{To: []string{"a@b.com"}, Subject: "s", Body: "b"})
	}

	require.Eventually(t, func() bool { return sender.count() == 5 }, time.Second, 10*time.Millisecond)
}

func TestDispatcherEnqueueNeverBlocks(t *testing.T) {
	// No worker draining: the channel fills up and further messages drop.
	sender := &recordingSender{ok: true}
	d := NewDispatcher(sender)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			d.Enqueue(Message{Subject: "s"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
	assert.Equal(t, 0, sender.count())
}

func TestDispatcherSendIsSynchronous(t *testing.T) {
	sender := &recordingSender{ok: true}
	d := NewDispatcher(sender)

	assert.True(t, d.Send(Message{Subject: "s"}))
	assert.Equal(t, 1, sender.count())

	sender.ok = false
	assert.False(t, d.Send(Message{Subject: "s"}))
}

func sampleBooking() *bookingModel.Booking {
	return &bookingModel.Booking{
		ID:             "MSC000042",
		Name:           "Rider",
		Phone:          "+351912345678",
		Email:          "rider@example.com",
		Passengers:     3,
		PickupLocation: "Airport",
		DropLocation:   "Old Town",
		StartDate:      "2030-10-01",
		StartTime:      "09:30",
		Status:         bookingModel.BookingStatusConfirmed,
	}
}

func TestVerificationCodeMessage(t *testing.T) {
	msg := VerificationCodeMessage("rider@example.com", "Rider", "123456")
	assert.Equal(t, []string{"rider@example.com"}, msg.To)
	assert.Contains(t, msg.Body, "123456")
	assert.Contains(t, msg.Body, "Hello Rider")

	msg = VerificationCodeMessage("rider@example.com", "", "123456")
	assert.Contains(t, msg.Body, "Hello,")
}

func TestBookingMessages(t *testing.T) {
	b := sampleBooking()

	msg := BookingConfirmationMessage(b)
	assert.Equal(t, []string{"rider@example.com"}, msg.To)
	assert.Contains(t, msg.Subject, "MSC000042")
	assert.Contains(t, msg.Body, "Airport")
	assert.Contains(t, msg.Body, "2030-10-01")

	notify := []string{"office@msctaxi.com", "boss@msctaxi.com"}
	msg = BookingNoticeMessage(notify, b)
	assert.Equal(t, notify, msg.To)
	assert.Contains(t, msg.Body, "+351912345678")
}

func TestStatusUpdateMessageCoversAllStatuses(t *testing.T) {
	b := sampleBooking()
	for _, status := range bookingModel.GetAllBookingStatuses() {
		b.Status = status
		msg := StatusUpdateMessage(b)
		assert.Equal(t, []string{"rider@example.com"}, msg.To)
		assert.Contains(t, msg.Subject, string(status))
		assert.NotContains(t, msg.Body, "\n\n\n", "missing status line for %s", status)
	}
}

func TestContactMessages(t *testing.T) {
	msg := ContactMessage([]string{"office@msctaxi.com"}, "Visitor", "v@example.com", "", "Hi there")
	assert.Contains(t, msg.Body, "Phone: -")
	assert.Contains(t, msg.Body, "Hi there")

	ack := ContactAckMessage("v@example.com", "Visitor")
	assert.Equal(t, []string{"v@example.com"}, ack.To)
	assert.Contains(t, ack.Body, "Hello Visitor")
}
