package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mlovren/tourism-scheduler/internal/model"
)

// RoomRepo manages persistence for rooms.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// Create inserts a new room and assigns the generated ID back to the struct.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	const q = `INSERT INTO rooms (number, name) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, room.Number, room.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	return nil
}

// GetByID retrieves a room by its ID.  It returns ErrRoomNotFound when no
// matching row exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, number, name FROM rooms WHERE id = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(&room.ID, &room.Number, &room.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// List returns all rooms ordered by their number.  A non-empty locationPrefix
// restricts the result to rooms whose number starts with it, which is how the
// schedule view filters by building.
func (r *RoomRepo) List(ctx context.Context, locationPrefix string) ([]model.Room, error) {
	const q = `SELECT id, number, name FROM rooms WHERE number LIKE CONCAT(?, '%') ORDER BY number ASC`
	rows, err := r.db.QueryContext(ctx, q, locationPrefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Room
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.Number, &room.Name); err != nil {
			return nil, err
		}
		result = append(result, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites a room's number and name.  It returns ErrRoomNotFound when
// the row does not exist.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	const q = `UPDATE rooms SET number = ?, name = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, room.Number, room.Name, room.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Zero rows affected can mean "identical values"; only report not-found
	// when the row truly is missing.
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id = ?`, room.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNotFound
		}
		return err
	}
	return nil
}

// Delete removes a room unless classes or events still reference it, in
// which case ErrRoomInUse is returned and nothing is deleted.  The reference
// check and the delete run in one transaction.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
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

	var refs int
	err = tx.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM classes WHERE room_id = ?) + (SELECT COUNT(*) FROM events WHERE room_id = ?)`,
		id, id,
	).Scan(&refs)
	if err != nil {
		return err
	}
	if refs > 0 {
		err = ErrRoomInUse
		return err
	}

	var res sql.Result
	res, err = tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrRoomNotFound
		return err
	}
	return nil
}
