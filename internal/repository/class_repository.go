package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mlovren/tourism-scheduler/internal/model"
)

// ClassRepo manages persistence for recurring classes and their weekly
// slots.  Slots live in the class_slots child table with an explicit
// position column so a save/fetch cycle reproduces the slot list in its
// original order.
type ClassRepo struct {
	db *sql.DB
}

// NewClassRepo constructs a ClassRepo with the given DB handle.
func NewClassRepo(db *sql.DB) *ClassRepo {
	return &ClassRepo{db: db}
}

const classColumns = `id, name, instructor, organizer, paid, room_id, school_year, valid_from, valid_to`

// scanClass reads one classes row.  valid_from/valid_to are nullable DATE
// columns.
func scanClass(row interface{ Scan(...any) error }) (model.RecurringClass, error) {
	var c model.RecurringClass
	var from, to sql.NullTime
	err := row.Scan(&c.ID, &c.Name, &c.Instructor, &c.Organizer, &c.Paid, &c.RoomID, &c.SchoolYear, &from, &to)
	if err != nil {
		return c, err
	}
	if from.Valid {
		d := model.DateOf(from.Time)
		c.ValidFrom = &d
	}
	if to.Valid {
		d := model.DateOf(to.Time)
		c.ValidTo = &d
	}
	return c, nil
}

// nullDate converts an optional bound into its DB value.
func nullDate(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// Create inserts a class together with its slots in one transaction and
// assigns the generated ID back to the struct.
func (r *ClassRepo) Create(ctx context.Context, c *model.RecurringClass) error {
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

	const q = `INSERT INTO classes (name, instructor, organizer, paid, room_id, school_year, valid_from, valid_to)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	var res sql.Result
	res, err = tx.ExecContext(ctx, q,
		c.Name, c.Instructor, c.Organizer, c.Paid, c.RoomID, c.SchoolYear,
		nullDate(c.ValidFrom), nullDate(c.ValidTo),
	)
	if err != nil {
		return err
	}
	var id int64
	id, err = res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	err = insertSlots(ctx, tx, c.ID, c.Slots)
	return err
}

// insertSlots writes a class's slot list with explicit positions.
func insertSlots(ctx context.Context, tx *sql.Tx, classID uint64, slots []model.Slot) error {
	const q = `INSERT INTO class_slots (class_id, position, weekday, start_time, end_time) VALUES (?, ?, ?, ?, ?)`
	for i, s := range slots {
		if _, err := tx.ExecContext(ctx, q, classID, i, int(s.Weekday), s.Start.String(), s.End.String()); err != nil {
			return err
		}
	}
	return nil
}

// loadSlots reads a class's slot list ordered by position.
func (r *ClassRepo) loadSlots(ctx context.Context, classID uint64) ([]model.Slot, error) {
	const q = `SELECT weekday, start_time, end_time FROM class_slots WHERE class_id = ? ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, q, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var slots []model.Slot
	for rows.Next() {
		var weekday int
		var start, end string
		if err := rows.Scan(&weekday, &start, &end); err != nil {
			return nil, err
		}
		s := model.Slot{Weekday: model.SlotWeekday(weekday)}
		if s.Start, err = model.ParseTimeOfDay(start); err != nil {
			return nil, err
		}
		if s.End, err = model.ParseTimeOfDay(end); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

// GetByID retrieves a class with its slots.  It returns ErrClassNotFound
// when no matching row exists.
func (r *ClassRepo) GetByID(ctx context.Context, id uint64) (*model.RecurringClass, error) {
	const q = `SELECT ` + classColumns + ` FROM classes WHERE id = ?`
	c, err := scanClass(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	if c.Slots, err = r.loadSlots(ctx, c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all classes with their slots, ordered by name.  A non-empty
// schoolYear restricts the result to that partition.
func (r *ClassRepo) List(ctx context.Context, schoolYear string) ([]model.RecurringClass, error) {
	const q = `SELECT ` + classColumns + ` FROM classes WHERE (? = '' OR school_year = ?) ORDER BY name ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, schoolYear, schoolYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.RecurringClass
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		if result[i].Slots, err = r.loadSlots(ctx, result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ListByRoom returns all classes booked into a room, ordered by ID.  The
// conflict check at event creation runs over this list, so the stable order
// makes the "first matching class" verdict deterministic.
func (r *ClassRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.RecurringClass, error) {
	const q = `SELECT ` + classColumns + ` FROM classes WHERE room_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.RecurringClass
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		if result[i].Slots, err = r.loadSlots(ctx, result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Update rewrites a class row and replaces its slot list in one transaction.
// It returns ErrClassNotFound when the class does not exist.
func (r *ClassRepo) Update(ctx context.Context, c *model.RecurringClass) error {
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

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM classes WHERE id = ?`, c.ID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrClassNotFound
		}
		return err
	}

	const q = `UPDATE classes
               SET name = ?, instructor = ?, organizer = ?, paid = ?, room_id = ?, school_year = ?, valid_from = ?, valid_to = ?
               WHERE id = ?`
	_, err = tx.ExecContext(ctx, q,
		c.Name, c.Instructor, c.Organizer, c.Paid, c.RoomID, c.SchoolYear,
		nullDate(c.ValidFrom), nullDate(c.ValidTo), c.ID,
	)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM class_slots WHERE class_id = ?`, c.ID); err != nil {
		return err
	}
	err = insertSlots(ctx, tx, c.ID, c.Slots)
	return err
}

// Delete removes a class and its slots.  Cancellation exceptions referencing
// the class are left in place on purpose; they keep the history of why past
// occurrences were suppressed.
func (r *ClassRepo) Delete(ctx context.Context, id uint64) error {
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

	if _, err = tx.ExecContext(ctx, `DELETE FROM class_slots WHERE class_id = ?`, id); err != nil {
		return err
	}
	var res sql.Result
	res, err = tx.ExecContext(ctx, `DELETE FROM classes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrClassNotFound
		return err
	}
	return nil
}
