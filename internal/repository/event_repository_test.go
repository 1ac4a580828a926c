package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlovren/tourism-scheduler/internal/model"
)

func newEventMock(t *testing.T) (*EventRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEventRepo(db), mock
}

func concertEvent(t *testing.T) *model.Event {
	t.Helper()
	return &model.Event{
		Name:      "Spring Concert",
		Date:      mustDate(t, "2025-03-10"),
		Start:     mustClock(t, "10:00"),
		End:       mustClock(t, "11:00"),
		RoomID:    1,
		Organizer: "City Choir",
		Paid:      false,
		Public:    true,
	}
}

// Confirming an override commits the event and the cancellation exception in
// the same transaction.
func TestConfirmOverrideCommitsBothWrites(t *testing.T) {
	repo, mock := newEventMock(t)

	e := concertEvent(t)
	exc := model.CancellationException{
		ClassID: 7,
		Date:    e.Date,
		Reason:  "displaced by event Spring Concert",
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO events").
		WithArgs("Spring Concert", "2025-03-10", "10:00", "11:00", uint64(1), "City Choir", false, true).
		WillReturnResult(sqlmock.NewResult(99, 1))
	mock.ExpectExec("INSERT INTO cancellation_exceptions").
		WithArgs(uint64(7), "2025-03-10", "displaced by event Spring Concert").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ConfirmOverride(context.Background(), e, exc))
	assert.Equal(t, uint64(99), e.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// If the exception write fails the whole transaction rolls back; the event
// must not survive on its own.
func TestConfirmOverrideRollsBackOnExceptionFailure(t *testing.T) {
	repo, mock := newEventMock(t)

	e := concertEvent(t)
	exc := model.CancellationException{ClassID: 7, Date: e.Date, Reason: "displaced"}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO events").
		WillReturnResult(sqlmock.NewResult(99, 1))
	mock.ExpectExec("INSERT INTO cancellation_exceptions").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.ConfirmOverride(context.Background(), e, exc)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventCreateAssignsID(t *testing.T) {
	repo, mock := newEventMock(t)

	e := concertEvent(t)
	mock.ExpectExec("INSERT INTO events").
		WithArgs("Spring Concert", "2025-03-10", "10:00", "11:00", uint64(1), "City Choir", false, true).
		WillReturnResult(sqlmock.NewResult(5, 1))

	require.NoError(t, repo.Create(context.Background(), e))
	assert.Equal(t, uint64(5), e.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventListByDateRange(t *testing.T) {
	repo, mock := newEventMock(t)

	rows := sqlmock.NewRows([]string{
		"id", "name", "date", "start_time", "end_time", "room_id", "organizer", "paid", "public",
	}).
		AddRow(1, "Spring Concert", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "10:00", "11:00", 1, "City Choir", false, true).
		AddRow(2, "Wine Tasting", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), "19:00", "21:00", 2, "Vinarija", true, true)
	mock.ExpectQuery("SELECT (.+) FROM events WHERE date BETWEEN").
		WithArgs("2025-03-10", "2025-03-16").
		WillReturnRows(rows)

	got, err := repo.ListByDateRange(context.Background(), mustDate(t, "2025-03-10"), mustDate(t, "2025-03-16"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Spring Concert", got[0].Name)
	assert.Equal(t, mustDate(t, "2025-03-12"), got[1].Date)
	assert.Equal(t, mustClock(t, "19:00"), got[1].Start)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventDeleteNotFound(t *testing.T) {
	repo, mock := newEventMock(t)

	mock.ExpectExec("DELETE FROM events").
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
