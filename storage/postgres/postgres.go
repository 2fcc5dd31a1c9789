package postgres

import (
	"context"
	"fmt"

	"msc-booking/config"
	"msc-booking/logger"
	adminModel "msc-booking/models/admin"
	bookingModel "msc-booking/models/booking"
	counterModel "msc-booking/models/counter"
	"msc-booking/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store is the relational storage backend, backed by GORM over PostgreSQL.
type Store struct {
	db *gorm.DB
}

// New connects to PostgreSQL, runs migrations and seeds the booking
// sequence from any pre-existing booking ids.
func New(cfg config.Config) (*Store, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	if err := s.seedSequence(context.Background()); err != nil {
		logger.Error("Failed to seed booking sequence", err)
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing gorm connection. Used by tests.
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) migrate() error {
	models := []interface{}{
		&bookingModel.Booking{},
		&adminModel.Admin{},
		&counterModel.Counter{},
	}
	for _, model := range models {
		if err := s.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_bookings_email ON bookings(email)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_created_at ON bookings(created_at)",
	}
	for _, stmt := range indexes {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// seedSequence raises the bookingSeq counter to the highest numeric suffix
// already present among booking ids, so a restart against a populated
// database never re-issues an existing id.
func (s *Store) seedSequence(ctx context.Context) error {
	var maxSuffix int64
	query := fmt.Sprintf(
		"SELECT COALESCE(MAX(CAST(SUBSTRING(id FROM %d) AS BIGINT)), 0) FROM bookings WHERE id ~ '^%s[0-9]{%d}$'",
		len(storage.BookingIDPrefix)+1, storage.BookingIDPrefix, storage.BookingIDDigits)
	if err := s.db.WithContext(ctx).Raw(query).Scan(&maxSuffix).Error; err != nil {
		return err
	}
	return s.Sequence().EnsureAtLeast(ctx, counterModel.BookingSeqName, maxSuffix)
}

func (s *Store) Booking() storage.IBookingStorage {
	return &bookingRepo{db: s.db, seq: s.Sequence()}
}

func (s *Store) Admin() storage.IAdminStorage {
	return &adminRepo{db: s.db}
}

func (s *Store) Sequence() storage.ISequenceStorage {
	return &sequenceRepo{db: s.db}
}

func (s *Store) Close() {
	sqlDB, err := s.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}
