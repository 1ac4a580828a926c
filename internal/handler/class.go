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

// ClassHandler exposes CRUD endpoints for recurring classes.  Classes pass
// through validation before any save: a draft only becomes persistable once
// it has a name, a room and at least one well-formed weekly slot.
type ClassHandler struct {
	ClassRepo *repository.ClassRepo
	RoomRepo  *repository.RoomRepo
}

// NewClassHandler constructs a ClassHandler.
func NewClassHandler(classRepo *repository.ClassRepo, roomRepo *repository.RoomRepo) *ClassHandler {
	if classRepo == nil || roomRepo == nil {
		panic("nil repository passed to NewClassHandler")
	}
	return &ClassHandler{ClassRepo: classRepo, RoomRepo: roomRepo}
}

// ListClasses handles GET /v1/classes.  The optional ?school_year= query
// parameter restricts the result to one partition.
func (h *ClassHandler) ListClasses(c echo.Context) error {
	year := strings.TrimSpace(c.QueryParam("school_year"))
	classes, err := h.ClassRepo.List(c.Request().Context(), year)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load classes"})
	}
	if classes == nil {
		classes = []model.RecurringClass{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": classes})
}

// GetClass handles GET /v1/classes/:id.
func (h *ClassHandler) GetClass(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid class id"})
	}
	class, err := h.ClassRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, class)
}

// bindClass binds and sanity-checks a class payload shared by create and
// update.
func (h *ClassHandler) bindClass(c echo.Context) (*model.RecurringClass, error) {
	var class model.RecurringClass
	if err := c.Bind(&class); err != nil {
		return nil, errors.New("invalid request body")
	}
	class.Name = strings.TrimSpace(class.Name)
	class.Instructor = strings.TrimSpace(class.Instructor)
	class.Organizer = strings.TrimSpace(class.Organizer)
	class.SchoolYear = strings.TrimSpace(class.SchoolYear)
	if err := class.Validate(); err != nil {
		return nil, errors.New(validationMessage(err))
	}
	// Verify the referenced room exists before persisting anything.
	if _, err := h.RoomRepo.GetByID(c.Request().Context(), class.RoomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, errors.New("room not found")
		}
		return nil, errors.New("failed to verify room")
	}
	return &class, nil
}

// CreateClass handles POST /v1/classes.
func (h *ClassHandler) CreateClass(c echo.Context) error {
	class, err := h.bindClass(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	class.ID = 0
	if err := h.ClassRepo.Create(c.Request().Context(), class); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create class"})
	}
	_ = service.PublishScheduleChanged(c.Request().Context(), queue.ScheduleChangedEvent{
		Entity: queue.EntityClass, EntityID: class.ID, Action: queue.ActionCreated,
		EntityName: class.Name, Actor: actorName(c),
	})
	return c.JSON(http.StatusCreated, class)
}

// UpdateClass handles PUT /v1/classes/:id.  The slot list in the payload
// replaces the stored one wholesale; clients build it with copy-on-write
// edits so a failed update leaves their working copy intact.
func (h *ClassHandler) UpdateClass(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid class id"})
	}
	class, err := h.bindClass(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	class.ID = id
	if err := h.ClassRepo.Update(c.Request().Context(), class); err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update class"})
	}
	_ = service.PublishScheduleChanged(c.Request().Context(), queue.ScheduleChangedEvent{
		Entity: queue.EntityClass, EntityID: class.ID, Action: queue.ActionUpdated,
		EntityName: class.Name, Actor: actorName(c),
	})
	return c.JSON(http.StatusOK, class)
}

// DeleteClass handles DELETE /v1/classes/:id.  Cancellation exceptions of
// the class are not removed with it; they stay as history of suppressed
// occurrences.
func (h *ClassHandler) DeleteClass(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid class id"})
	}
	if err := h.ClassRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete class"})
	}
	_ = service.PublishScheduleChanged(c.Request().Context(), queue.ScheduleChangedEvent{
		Entity: queue.EntityClass, EntityID: id, Action: queue.ActionDeleted, Actor: actorName(c),
	})
	return c.NoContent(http.StatusNoContent)
}
