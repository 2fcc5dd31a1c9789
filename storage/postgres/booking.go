package postgres

import (
	"context"
	"errors"
	"fmt"

	"msc-booking/logger"
	bookingModel "msc-booking/models/booking"
	counterModel "msc-booking/models/counter"
	"msc-booking/storage"

	"gorm.io/gorm"
)

// createMaxAttempts bounds the duplicate-id retry loop.
const createMaxAttempts = 3

type bookingRepo struct {
	db  *gorm.DB
	seq storage.ISequenceStorage
}

func (r *bookingRepo) Create(ctx context.Context, b *bookingModel.Booking) (*bookingModel.Booking, error) {
	var lastErr error
	for attempt := 0; attempt < createMaxAttempts; attempt++ {
		seq, err := r.seq.Next(ctx, counterModel.BookingSeqName)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate booking sequence: %w", err)
		}
		if seq <= 0 {
			logger.Warning(fmt.Sprintf("Sequence returned non-positive value %d, falling back to 1", seq))
			seq = 1
		}

		b.ID = storage.FormatBookingID(seq)
		b.Status = bookingModel.BookingStatusPending

		err = r.db.WithContext(ctx).Create(b).Error
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// Another writer landed on the same id; draw a fresh sequence value.
		logger.Warning(fmt.Sprintf("Duplicate booking id %s, retrying allocation", b.ID))
		lastErr = storage.ErrDuplicateKey
	}
	return nil, fmt.Errorf("booking id allocation exhausted after %d attempts: %w", createMaxAttempts, lastErr)
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepo) GetAll(ctx context.Context) ([]*bookingModel.Booking, error) {
	var bookings []*bookingModel.Booking
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id string, status bookingModel.BookingStatus) (*bookingModel.Booking, error) {
	res := r.db.WithContext(ctx).Model(&bookingModel.Booking{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, storage.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
