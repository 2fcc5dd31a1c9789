package mailer

import (
	"fmt"
	"time"

	"msc-booking/config"
	"msc-booking/logger"

	"gopkg.in/gomail.v2"
)

// sendTimeout bounds how long one delivery may hold a connection. A send
// that outlives it is reported as failed even if the server later accepts
// the message.
const sendTimeout = 30 * time.Second

// Message is one outbound email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender delivers a single message. It reports acceptance within the fixed
// timeout; callers must treat false as non-fatal because the triggering
// business operation has already completed.
type Sender interface {
	Send(msg Message) bool
}

// SMTPMailer sends mail through an SMTP relay via gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

// Send delivers msg, bounded by sendTimeout. gomail has no context support,
// so the dial-and-send runs in its own goroutine and the result is raced
// against a timer.
func (m *SMTPMailer) Send(msg Message) bool {
	if len(msg.To) == 0 {
		return false
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(gm)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to send email %q to %v", msg.Subject, msg.To), err)
			return false
		}
		return true
	case <-time.After(sendTimeout):
		logger.Warning(fmt.Sprintf("Email %q to %v timed out after %s", msg.Subject, msg.To, sendTimeout))
		return false
	}
}
