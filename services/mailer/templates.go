package mailer

import (
	"fmt"

	bookingModel "msc-booking/models/booking"
)

// VerificationCodeMessage carries a one-time code to the customer.
func VerificationCodeMessage(to, name, code string) Message {
	greeting := "Hello"
	if name != "" {
		greeting = "Hello " + name
	}
	return Message{
		To:      []string{to},
		Subject: "Your MSC Taxi verification code",
		Body: fmt.Sprintf(`%s,

Your verification code is: %s

The code is valid for 15 minutes. If you did not request it, you can ignore this email.

MSC Taxi & Car Rental`, greeting, code),
	}
}

// BookingConfirmationMessage acknowledges a newly created booking to the
// customer.
func BookingConfirmationMessage(b *bookingModel.Booking) Message {
	return Message{
		To:      []string{b.Email},
		Subject: fmt.Sprintf("Booking %s received", b.ID),
		Body: fmt.Sprintf(`Hello %s,

We have received your booking request.

  Booking number: %s
  Pickup:         %s
  Drop-off:       %s
  Date:           %s at %s
  Passengers:     %d

We will confirm your ride shortly. Keep the booking number for any inquiry.

MSC Taxi & Car Rental`, b.Name, b.ID, b.PickupLocation, b.DropLocation, b.StartDate, b.StartTime, b.Passengers),
	}
}

// BookingNoticeMessage alerts the internal distribution list about a new
// booking.
func BookingNoticeMessage(notify []string, b *bookingModel.Booking) Message {
	return Message{
		To:      notify,
		Subject: fmt.Sprintf("New booking %s", b.ID),
		Body: fmt.Sprintf(`New booking received.

  Booking number: %s
  Customer:       %s (%s, %s)
  Pickup:         %s
  Drop-off:       %s
  Date:           %s at %s
  Passengers:     %d`, b.ID, b.Name, b.Phone, b.Email, b.PickupLocation, b.DropLocation, b.StartDate, b.StartTime, b.Passengers),
	}
}

var statusLines = map[bookingModel.BookingStatus]string{
	bookingModel.BookingStatusPending:   "Your booking is back in the queue and awaiting review.",
	bookingModel.BookingStatusConfirmed: "Your booking is confirmed. Your driver will be there on time.",
	bookingModel.BookingStatusRejected:  "Unfortunately we cannot serve this booking. Please contact us for alternatives.",
	bookingModel.BookingStatusCompleted: "Your ride is completed. Thank you for travelling with us!",
}

// StatusUpdateMessage tells the customer about an admin-driven status
// change.
func StatusUpdateMessage(b *bookingModel.Booking) Message {
	return Message{
		To:      []string{b.Email},
		Subject: fmt.Sprintf("Booking %s %s", b.ID, b.Status),
		Body: fmt.Sprintf(`Hello %s,

%s

  Booking number: %s
  Pickup:         %s on %s at %s

MSC Taxi & Car Rental`, b.Name, statusLines[b.Status], b.ID, b.PickupLocation, b.StartDate, b.StartTime),
	}
}

// ContactMessage forwards a verified contact-form submission to the
// internal distribution list.
func ContactMessage(notify []string, name, email, phone, text string) Message {
	if phone == "" {
		phone = "-"
	}
	return Message{
		To:      notify,
		Subject: fmt.Sprintf("Contact message from %s", name),
		Body: fmt.Sprintf(`New contact message.

  Name:  %s
  Email: %s
  Phone: %s

%s`, name, email, phone, text),
	}
}

// ContactAckMessage acknowledges the sender of a contact message.
func ContactAckMessage(to, name string) Message {
	return Message{
		To:      []string{to},
		Subject: "We received your message",
		Body: fmt.Sprintf(`Hello %s,

Thanks for reaching out. Your message has been delivered to our team and we will get back to you as soon as possible.

MSC Taxi & Car Rental`, name),
	}
}
