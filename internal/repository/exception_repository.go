package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mlovren/tourism-scheduler/internal/model"
)

// ExceptionRepo manages persistence for cancellation exceptions.  The table
// uses (class_id, date) as its primary key, which is also the exception's
// identity: there can never be two exceptions for the same class occurrence.
type ExceptionRepo struct {
	db *sql.DB
}

// NewExceptionRepo constructs an ExceptionRepo with the given DB handle.
func NewExceptionRepo(db *sql.DB) *ExceptionRepo {
	return &ExceptionRepo{db: db}
}

// Save inserts a cancellation exception, or updates the reason when one
// already exists for the (class, date) key.
func (r *ExceptionRepo) Save(ctx context.Context, x model.CancellationException) error {
	const q = `INSERT INTO cancellation_exceptions (class_id, date, reason)
               VALUES (?, ?, ?)
               ON DUPLICATE KEY UPDATE reason = VALUES(reason)`
	_, err := r.db.ExecContext(ctx, q, x.ClassID, x.Date.String(), x.Reason)
	return err
}

// Get retrieves the exception for a (class, date) key.  It returns
// ErrExceptionNotFound when none exists.
func (r *ExceptionRepo) Get(ctx context.Context, classID uint64, date model.Date) (*model.CancellationException, error) {
	const q = `SELECT class_id, date, reason FROM cancellation_exceptions WHERE class_id = ? AND date = ?`
	var x model.CancellationException
	var d sql.NullTime
	err := r.db.QueryRowContext(ctx, q, classID, date.String()).Scan(&x.ClassID, &d, &x.Reason)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExceptionNotFound
		}
		return nil, err
	}
	if d.Valid {
		x.Date = model.DateOf(d.Time)
	}
	return &x, nil
}

// ListByClass returns all exceptions recorded for a class, newest date
// first.  Orphaned exceptions of deleted classes are still reachable this
// way, which is intentional.
func (r *ExceptionRepo) ListByClass(ctx context.Context, classID uint64) ([]model.CancellationException, error) {
	const q = `SELECT class_id, date, reason FROM cancellation_exceptions WHERE class_id = ? ORDER BY date DESC`
	return r.list(ctx, q, classID)
}

// ListByDateRange returns all exceptions with from <= date <= to.  The
// schedule view calls it with the bounds of the displayed week.
func (r *ExceptionRepo) ListByDateRange(ctx context.Context, from, to model.Date) ([]model.CancellationException, error) {
	const q = `SELECT class_id, date, reason FROM cancellation_exceptions WHERE date BETWEEN ? AND ? ORDER BY date ASC, class_id ASC`
	return r.list(ctx, q, from.String(), to.String())
}

func (r *ExceptionRepo) list(ctx context.Context, q string, args ...any) ([]model.CancellationException, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.CancellationException
	for rows.Next() {
		var x model.CancellationException
		var d sql.NullTime
		if err := rows.Scan(&x.ClassID, &d, &x.Reason); err != nil {
			return nil, err
		}
		if d.Valid {
			x.Date = model.DateOf(d.Time)
		}
		result = append(result, x)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the exception for a (class, date) key, reinstating the
// class occurrence on that date.  It returns ErrExceptionNotFound when no
// such exception exists.
func (r *ExceptionRepo) Delete(ctx context.Context, classID uint64, date model.Date) error {
	const q = `DELETE FROM cancellation_exceptions WHERE class_id = ? AND date = ?`
	res, err := r.db.ExecContext(ctx, q, classID, date.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrExceptionNotFound
	}
	return nil
}
