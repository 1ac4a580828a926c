// Package repository implements persistence for the scheduling entities over
// database/sql.  Sentinel errors defined here let handlers map failure modes
// to HTTP status codes without inspecting driver errors.
package repository

import "errors"

// ErrRoomNotFound indicates that a room was not located in the DB.
var ErrRoomNotFound = errors.New("room not found")

// ErrClassNotFound indicates that a recurring class was not located in the DB.
var ErrClassNotFound = errors.New("class not found")

// ErrEventNotFound indicates that an event was not located in the DB.
var ErrEventNotFound = errors.New("event not found")

// ErrExceptionNotFound indicates that no cancellation exception exists for a
// (class, date) key.
var ErrExceptionNotFound = errors.New("cancellation exception not found")

// ErrRoomInUse is returned when a room cannot be deleted because classes or
// events still reference it.  Handlers should translate this into an HTTP
// 409 response.
var ErrRoomInUse = errors.New("room still referenced by classes or events")
