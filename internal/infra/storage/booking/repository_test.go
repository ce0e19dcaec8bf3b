package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns)
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs("9876543210", int64(1), int64(2), int64(3), sqlmock.AnyArg(), "18:00", "19:00", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))

	b, err := repo.Create(context.Background(), &domain.Booking{
		UserMobile:  "9876543210",
		LocationID:  1,
		CourtID:     2,
		SlotID:      3,
		BookingDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   types.MustTimeString("18:00"),
		EndTime:     types.MustTimeString("19:00"),
		Status:      domain.StatusBooked,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), b.ID)
	assert.Equal(t, now, b.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ConcurrentConflict(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
	}{
		{name: "unique violation", code: "23505"},
		{name: "serialization failure", code: "40001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, mock := newRepo(t)
			mock.ExpectQuery("INSERT INTO bookings").WillReturnError(&pq.Error{Code: tt.code})

			_, err := repo.Create(context.Background(), &domain.Booking{Status: domain.StatusBooked})

			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.True(t, IsConcurrentWriteConflict(err))
		})
	}
}

func TestRepository_Create_OtherErrorIsNotConflict(t *testing.T) {
	repo, _, mock := newRepo(t)
	mock.ExpectQuery("INSERT INTO bookings").WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &domain.Booking{Status: domain.StatusBooked})

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.False(t, IsConcurrentWriteConflict(err))
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepo(t)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1$").
		WithArgs(int64(7)).
		WillReturnRows(bookingRows().AddRow(
			int64(7), "9876543210", int64(1), int64(2), int64(3),
			date, "18:00:00", "19:00:00", "BOOKED", nil, now, now,
		))

	b, err := repo.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), b.ID)
	assert.Equal(t, types.TimeString("18:00"), b.StartTime)
	assert.Equal(t, types.TimeString("19:00"), b.EndTime)
	assert.Equal(t, domain.StatusBooked, b.Status)
	assert.Nil(t, b.CancelledAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_LocksRowInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id = \\$1 FOR UPDATE").
		WithArgs(int64(7)).
		WillReturnRows(bookingRows())
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	_, err = repo.GetByID(ctx, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistsOverlapping(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("overlap found", func(t *testing.T) {
		repo, _, mock := newRepo(t)
		mock.ExpectQuery("SELECT id FROM bookings WHERE court_id = \\$1 AND location_id = \\$2 AND booking_date = \\$3 AND status IN \\(\\$4\\) AND start_time < \\$5 AND end_time > \\$6 LIMIT 1").
			WithArgs(int64(2), int64(1), date, "BOOKED", "19:00", "18:00").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

		exists, err := repo.ExistsOverlapping(context.Background(), 2, 1, date, "18:00", "19:00")

		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no overlap", func(t *testing.T) {
		repo, _, mock := newRepo(t)
		mock.ExpectQuery("SELECT id FROM bookings").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		exists, err := repo.ExistsOverlapping(context.Background(), 2, 1, date, "18:00", "19:00")

		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestRepository_GetByDate_ActiveOnly(t *testing.T) {
	repo, _, mock := newRepo(t)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery("FROM bookings WHERE booking_date = \\$1 AND status IN \\(\\$2\\) ORDER BY court_id ASC, start_time ASC").
		WithArgs(date, "BOOKED").
		WillReturnRows(bookingRows().
			AddRow(int64(1), "111", int64(1), int64(1), int64(1), date, "18:00", "19:00", "BOOKED", nil, now, now).
			AddRow(int64(2), "222", int64(1), int64(2), int64(1), date, "18:00", "19:00", "BOOKED", nil, now, now))

	bookings, err := repo.GetByDate(context.Background(), date, true)

	require.NoError(t, err)
	assert.Len(t, bookings, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CancelIfBooked(t *testing.T) {
	t.Run("booked row is cancelled", func(t *testing.T) {
		repo, _, mock := newRepo(t)
		mock.ExpectExec("UPDATE bookings SET status = \\$1, cancelled_at = NOW\\(\\), updated_at = NOW\\(\\) WHERE id = \\$2 AND status = \\$3").
			WithArgs("CANCELLED", int64(7), "BOOKED").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.CancelIfBooked(context.Background(), 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo, _, mock := newRepo(t)
		mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.CancelIfBooked(context.Background(), 7), ErrCannotCancel)
	})
}

func TestRepository_SerializationFailureInsideTransaction(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	serialization := &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}

	tests := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
		call   func(ctx context.Context, repo *Repository) error
	}{
		{
			name: "GetByID row lock",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM bookings WHERE id = \\$1 FOR UPDATE").WillReturnError(serialization)
			},
			call: func(ctx context.Context, repo *Repository) error {
				_, err := repo.GetByID(ctx, 7)
				return err
			},
		},
		{
			name: "ExistsOverlapping row lock",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id FROM bookings (.+) LIMIT 1 FOR UPDATE").WillReturnError(serialization)
			},
			call: func(ctx context.Context, repo *Repository) error {
				_, err := repo.ExistsOverlapping(ctx, 2, 1, date, "18:00", "19:00")
				return err
			},
		},
		{
			name: "CancelIfBooked update",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE bookings").WillReturnError(serialization)
			},
			call: func(ctx context.Context, repo *Repository) error {
				return repo.CancelIfBooked(ctx, 7)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, db, mock := newRepo(t)
			mock.ExpectBegin()
			tt.expect(mock)
			mock.ExpectRollback()

			tx, err := db.BeginTx(context.Background(), nil)
			require.NoError(t, err)

			err = tt.call(dbmetrics.WithTx(context.Background(), tx), repo)

			assert.ErrorIs(t, err, ErrConcurrentUpdate)
			assert.True(t, IsConcurrentWriteConflict(err))
			assert.NotErrorIs(t, err, ErrScanRow)
			assert.NotErrorIs(t, err, ErrExecQuery)

			require.NoError(t, tx.Rollback())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_CountByLocation(t *testing.T) {
	repo, _, mock := newRepo(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE location_id = \\$1").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByLocation(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
