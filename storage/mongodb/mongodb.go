package mongodb

import (
	"context"
	"strconv"
	"time"

	"msc-booking/config"
	"msc-booking/logger"
	counterModel "msc-booking/models/counter"
	"msc-booking/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	bookingCollection = "bookings"
	adminCollection   = "admins"
	counterCollection = "counters"

	connectTimeout = 10 * time.Second
)

// Store is the document storage backend, backed by the official MongoDB
// driver.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB, ensures indexes and seeds the booking sequence
// from any pre-existing booking ids.
func New(cfg config.Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Error("Failed to connect to MongoDB", err)
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Error("Failed to ping MongoDB", err)
		return nil, err
	}
	logger.Success("Successfully connected to MongoDB")

	s := &Store{client: client, db: client.Database(cfg.MongoDatabase)}
	if err := s.ensureIndexes(ctx); err != nil {
		logger.Error("Failed to create MongoDB indexes", err)
		return nil, err
	}
	if err := s.seedSequence(ctx); err != nil {
		logger.Error("Failed to seed booking sequence", err)
		return nil, err
	}
	return s, nil
}

// NewWithDatabase wraps an existing database handle. Used by tests.
func NewWithDatabase(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{client: client, db: db}
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	bookingIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := s.db.Collection(bookingCollection).Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return err
	}

	adminIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := s.db.Collection(adminCollection).Indexes().CreateMany(ctx, adminIndexes)
	return err
}

// seedSequence raises the bookingSeq counter to the highest numeric suffix
// already present among booking ids, so a restart against a populated
// database never re-issues an existing id.
func (s *Store) seedSequence(ctx context.Context) error {
	pattern := "^" + storage.BookingIDPrefix + "[0-9]{" + strconv.Itoa(storage.BookingIDDigits) + "}$"
	filter := bson.M{"_id": bson.M{"$regex": pattern}}
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})

	var doc struct {
		ID string `bson:"_id"`
	}
	err := s.db.Collection(bookingCollection).FindOne(ctx, filter, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return s.Sequence().EnsureAtLeast(ctx, counterModel.BookingSeqName, 0)
	}
	if err != nil {
		return err
	}

	suffix, err := strconv.ParseInt(doc.ID[len(storage.BookingIDPrefix):], 10, 64)
	if err != nil {
		return err
	}
	return s.Sequence().EnsureAtLeast(ctx, counterModel.BookingSeqName, suffix)
}

func (s *Store) Booking() storage.IBookingStorage {
	return &bookingRepo{coll: s.db.Collection(bookingCollection), seq: s.Sequence()}
}

func (s *Store) Admin() storage.IAdminStorage {
	return &adminRepo{coll: s.db.Collection(adminCollection)}
}

func (s *Store) Sequence() storage.ISequenceStorage {
	return &sequenceRepo{coll: s.db.Collection(counterCollection)}
}

func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}
