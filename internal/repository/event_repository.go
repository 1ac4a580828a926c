package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mlovren/tourism-scheduler/internal/model"
)

// EventRepo manages persistence for one-off events.  It also owns the
// ConfirmOverride command, which writes an event together with the
// cancellation exception that suppresses the class occurrence it displaces,
// in a single transaction, so the schedule can never end up with the event
// saved but the class still materializing on top of it.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = `id, name, date, start_time, end_time, room_id, organizer, paid, public`

// scanEvent reads one events row.
func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	var date sql.NullTime
	var start, end string
	err := row.Scan(&e.ID, &e.Name, &date, &start, &end, &e.RoomID, &e.Organizer, &e.Paid, &e.Public)
	if err != nil {
		return e, err
	}
	if date.Valid {
		e.Date = model.DateOf(date.Time)
	}
	if e.Start, err = model.ParseTimeOfDay(start); err != nil {
		return e, err
	}
	if e.End, err = model.ParseTimeOfDay(end); err != nil {
		return e, err
	}
	return e, nil
}

// Create inserts a new event and assigns the generated ID back to the
// struct.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events (name, date, start_time, end_time, room_id, organizer, paid, public)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.Name, e.Date.String(), e.Start.String(), e.End.String(), e.RoomID, e.Organizer, e.Paid, e.Public,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// GetByID retrieves an event by its ID.  It returns ErrEventNotFound when no
// matching row exists.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListByDateRange returns all events with from <= date <= to, ordered by
// date then start time.  The schedule view calls it with the Monday and
// Sunday of the displayed week.
func (r *EventRepo) ListByDateRange(ctx context.Context, from, to model.Date) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE date BETWEEN ? AND ? ORDER BY date ASC, start_time ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites an event.  It returns ErrEventNotFound when the row does
// not exist.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	const q = `UPDATE events
               SET name = ?, date = ?, start_time = ?, end_time = ?, room_id = ?, organizer = ?, paid = ?, public = ?
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		e.Name, e.Date.String(), e.Start.String(), e.End.String(), e.RoomID, e.Organizer, e.Paid, e.Public, e.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, e.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

// Delete removes an event.  It returns ErrEventNotFound when the row does
// not exist.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// ConfirmOverride persists an event together with the cancellation exception
// suppressing the overlapping class occurrence, as one transaction.  Either
// both writes commit or neither does.  The exception insert upserts on the
// (class_id, date) key so confirming twice cannot duplicate the record.
func (r *EventRepo) ConfirmOverride(ctx context.Context, e *model.Event, exc model.CancellationException) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	const insEvent = `INSERT INTO events (name, date, start_time, end_time, room_id, organizer, paid, public)
                      VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	var res sql.Result
	res, err = tx.ExecContext(ctx, insEvent,
		e.Name, e.Date.String(), e.Start.String(), e.End.String(), e.RoomID, e.Organizer, e.Paid, e.Public,
	)
	if err != nil {
		return err
	}
	var id int64
	id, err = res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)

	const insExc = `INSERT INTO cancellation_exceptions (class_id, date, reason)
                    VALUES (?, ?, ?)
                    ON DUPLICATE KEY UPDATE reason = VALUES(reason)`
	_, err = tx.ExecContext(ctx, insExc, exc.ClassID, exc.Date.String(), exc.Reason)
	return err
}
