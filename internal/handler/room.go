package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mlovren/tourism-scheduler/internal/model"
	"github.com/mlovren/tourism-scheduler/internal/queue"
	"github.com/mlovren/tourism-scheduler/internal/repository"
	"github.com/mlovren/tourism-scheduler/internal/service"
)

// RoomHandler exposes CRUD endpoints for the room registry.
type RoomHandler struct {
	RoomRepo *repository.RoomRepo
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(roomRepo *repository.RoomRepo) *RoomHandler {
	if roomRepo == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{RoomRepo: roomRepo}
}

// ListRooms handles GET /v1/rooms.  The optional ?location= query parameter
// restricts the result to rooms whose number starts with the given prefix.
func (h *RoomHandler) ListRooms(c echo.Context) error {
	prefix := strings.TrimSpace(c.QueryParam("location"))
	rooms, err := h.RoomRepo.List(c.Request().Context(), prefix)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}
	if rooms == nil {
		rooms = []model.Room{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// GetRoom handles GET /v1/rooms/:id.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.RoomRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, room)
}

// CreateRoom handles POST /v1/rooms.
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var room model.Room
	if err := c.Bind(&room); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	room.ID = 0
	room.Number = strings.TrimSpace(room.Number)
	room.Name = strings.TrimSpace(room.Name)
	if err := room.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	if err := h.RoomRepo.Create(c.Request().Context(), &room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room"})
	}
	_ = service.PublishScheduleChanged(c.Request().Context(), queue.ScheduleChangedEvent{
		Entity: queue.EntityRoom, EntityID: room.ID, Action: queue.ActionCreated,
		EntityName: room.Name, Actor: actorName(c),
	})
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom handles PUT /v1/rooms/:id.
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var room model.Room
	if err := c.Bind(&room); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	room.ID = id
	room.Number = strings.TrimSpace(room.Number)
	room.Name = strings.TrimSpace(room.Name)
	if err := room.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	if err := h.RoomRepo.Update(c.Request().Context(), &room); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update room"})
	}
	_ = service.PublishScheduleChanged(c.Request().Context(), queue.ScheduleChangedEvent{
		Entity: queue.EntityRoom, EntityID: room.ID, Action: queue.ActionUpdated,
		EntityName: room.Name, Actor: actorName(c),
	})
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /v1/rooms/:id.  Rooms still referenced by
// classes or events cannot be deleted; the handler answers 409 so the client
// can point the user at the referencing bookings.
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if err := h.RoomRepo.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrRoomInUse):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room still referenced by classes or events"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete room"})
		}
	}
	_ = service.PublishScheduleChanged(c.Request().Context(), queue.ScheduleChangedEvent{
		Entity: queue.EntityRoom, EntityID: id, Action: queue.ActionDeleted, Actor: actorName(c),
	})
	return c.NoContent(http.StatusNoContent)
}
