package storage

import (
	"context"
	"errors"
	"fmt"

	adminModel "msc-booking/models/admin"
	bookingModel "msc-booking/models/booking"
)

// Errors shared by both backends so callers never branch on driver details.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// BookingIDPrefix and the zero-padded width define the public booking number
// format, e.g. "MSC000042".
const (
	BookingIDPrefix = "MSC"
	BookingIDDigits = 6
)

// FormatBookingID renders a sequence value as a booking number.
func FormatBookingID(seq int64) string {
	return fmt.Sprintf("%s%0*d", BookingIDPrefix, BookingIDDigits, seq)
}

type IStorage interface {
	Booking() IBookingStorage
	Admin() IAdminStorage
	Sequence() ISequenceStorage
	Close()
}

type IBookingStorage interface {
	// Create allocates a fresh booking id from the sequence and inserts the
	// record. On a duplicate-id race it re-draws the sequence and retries a
	// bounded number of times.
	Create(ctx context.Context, b *bookingModel.Booking) (*bookingModel.Booking, error)
	GetByID(ctx context.Context, id string) (*bookingModel.Booking, error)
	GetAll(ctx context.Context) ([]*bookingModel.Booking, error)
	UpdateStatus(ctx context.Context, id string, status bookingModel.BookingStatus) (*bookingModel.Booking, error)
}

type IAdminStorage interface {
	Create(ctx context.Context, a *adminModel.Admin) error
	GetByEmail(ctx context.Context, email string) (*adminModel.Admin, error)
	Count(ctx context.Context) (int64, error)
}

type ISequenceStorage interface {
	// Next atomically increments the named counter and returns the new value.
	Next(ctx context.Context, name string) (int64, error)
	// EnsureAtLeast raises the named counter to floor if it is lower,
	// creating it when missing. It never decreases the counter.
	EnsureAtLeast(ctx context.Context, name string, floor int64) error
}
