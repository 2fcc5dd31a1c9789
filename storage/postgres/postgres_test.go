package postgres

import (
	"context"
	"testing"
	"time"

	bookingModel "msc-booking/models/booking"
	counterModel "msc-booking/models/counter"
	"msc-booking/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	dialector := gormpostgres.New(gormpostgres.Config{Conn: sqlDB})
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewWithDB(db), mock
}

func TestSequenceNext(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO counters`).
		WithArgs(counterModel.BookingSeqName).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(7)))

	seq, err := store.Sequence().Next(context.Background(), counterModel.BookingSeqName)
	require.NoError(t, err)
	assert.Equal(t, int64(7), seq)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceEnsureAtLeast(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO counters`).
		WithArgs(counterModel.BookingSeqName, int64(50)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Sequence().EnsureAtLeast(context.Background(), counterModel.BookingSeqName, 50)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateRetriesOnDuplicateID(t *testing.T) {
	store, mock := newMockStore(t)

	// First draw collides with a concurrently inserted booking; the repo
	// must re-draw the sequence instead of reusing the id.
	mock.ExpectQuery(`INSERT INTO counters`).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(5)))
	mock.ExpectExec(`INSERT INTO "bookings"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectQuery(`INSERT INTO counters`).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(6)))
	mock.ExpectExec(`INSERT INTO "bookings"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := store.Booking().Create(context.Background(), testBooking())
	require.NoError(t, err)
	assert.Equal(t, "MSC000006", created.ID)
	assert.Equal(t, "pending", created.Status.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateGivesUpAfterBoundedRetries(t *testing.T) {
	store, mock := newMockStore(t)

	for seq := int64(1); seq <= createMaxAttempts; seq++ {
		mock.ExpectQuery(`INSERT INTO counters`).
			WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(seq))
		mock.ExpectExec(`INSERT INTO "bookings"`).
			WillReturnError(&pgconn.PgError{Code: "23505"})
	}

	_, err := store.Booking().Create(context.Background(), testBooking())
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateFallsBackOnMalformedSequence(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO counters`).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(-3)))
	mock.ExpectExec(`INSERT INTO "bookings"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := store.Booking().Create(context.Background(), testBooking())
	require.NoError(t, err)
	assert.Equal(t, "MSC000001", created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGetByIDNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows(bookingColumns()))

	_, err := store.Booking().GetByID(context.Background(), "MSC000099")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdateStatus(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	rows := sqlmock.NewRows(bookingColumns()).
		AddRow("MSC000042", "Rider", "+351912345678", "rider@example.com",
			2, "Airport", "Old Town", "2026-10-01", "09:30", "confirmed",
			time.Now(), time.Now())
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(rows)

	updated, err := store.Booking().UpdateStatus(context.Background(), "MSC000042", "confirmed")
	require.NoError(t, err)
	assert.Equal(t, "MSC000042", updated.ID)
	assert.Equal(t, "confirmed", updated.Status.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdateStatusNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := store.Booking().UpdateStatus(context.Background(), "MSC000099", "confirmed")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminGetByEmailNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "admins"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "created_at"}))

	_, err := store.Admin().GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func testBooking() *bookingModel.Booking {
	return &bookingModel.Booking{
		Name:           "Rider",
		Phone:          "+351912345678",
		Email:          "rider@example.com",
		Passengers:     2,
		PickupLocation: "Airport",
		DropLocation:   "Old Town",
		StartDate:      "2026-10-01",
		StartTime:      "09:30",
	}
}

func bookingColumns() []string {
	return []string{"id", "name", "phone", "email", "passengers",
		"pickup_location", "drop_location", "start_date", "start_time",
		"status", "created_at", "updated_at"}
}
