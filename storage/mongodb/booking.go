package mongodb

import (
	"context"
	"fmt"
	"time"

	"msc-booking/logger"
	bookingModel "msc-booking/models/booking"
	counterModel "msc-booking/models/counter"
	"msc-booking/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const createMaxAttempts = 3

type bookingRepo struct {
	coll *mongo.Collection
	seq  storage.ISequenceStorage
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
		now := time.Now().UTC()
		b.CreatedAt = now
		b.UpdatedAt = now

		_, err = r.coll.InsertOne(ctx, b)
		if err == nil {
			return b, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
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
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepo) GetAll(ctx context.Context) ([]*bookingModel.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []*bookingModel.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id string, status bookingModel.BookingStatus) (*bookingModel.Booking, error) {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b bookingModel.Booking
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
