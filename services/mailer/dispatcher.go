package mailer

import (
	"fmt"

	"msc-booking/logger"
)

// Dispatcher decouples mail delivery from request handling: confirmation
// and notification mail is queued onto a buffered channel and drained by a
// single worker goroutine, so a slow relay never blocks an HTTP response.
type Dispatcher struct {
	sender  Sender
	channel chan Message
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		channel: make(chan Message, 100), // Buffered channel to hold pending mail
	}
}

// Process drains the queue. Run it in its own goroutine.
func (d *Dispatcher) Process() {
	for msg := range d.channel {
		if !d.sender.Send(msg) {
			logger.Warning(fmt.Sprintf("Dropping undeliverable email %q to %v", msg.Subject, msg.To))
		}
	}
}

// Enqueue queues a message for asynchronous delivery. When the queue is
// full the message is dropped rather than blocking the caller.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.channel <- msg:
	default:
		logger.Warning(fmt.Sprintf("Mail queue full, dropping email %q to %v", msg.Subject, msg.To))
	}
}

// Send delivers a message synchronously through the underlying sender,
// for callers that need the accept/reject outcome (verification codes).
func (d *Dispatcher) Send(msg Message) bool {
	return d.sender.Send(msg)
}

// Close stops the worker after the queue drains.
func (d *Dispatcher) Close() {
	close(d.channel)
}
