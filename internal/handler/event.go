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
	"github.com/mlovren/tourism-scheduler/internal/schedule"
	"github.com/mlovren/tourism-scheduler/internal/service"
)

// EventHandler exposes endpoints for one-off events, including the
// conflict-gated creation workflow: a save attempt first runs the conflict
// check against the recurring classes of the event's room; when a class
// occurrence is in the way the save is refused with 409 and the client must
// explicitly confirm the override, which then writes the event and the
// class's cancellation exception in one transaction.
type EventHandler struct {
	EventRepo *repository.EventRepo
	ClassRepo *repository.ClassRepo
	RoomRepo  *repository.RoomRepo
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(eventRepo *repository.EventRepo, classRepo *repository.ClassRepo, roomRepo *repository.RoomRepo) *EventHandler {
	if eventRepo == nil || classRepo == nil || roomRepo == nil {
		panic("nil repository passed to NewEventHandler")
	}
	return &EventHandler{EventRepo: eventRepo, ClassRepo: classRepo, RoomRepo: roomRepo}
}

// bindEvent binds and validates an event payload.
func (h *EventHandler) bindEvent(c echo.Context) (*model.Event, error) {
	var ev model.Event
	if err := c.Bind(&ev); err != nil {
		return nil, errors.New("invalid request body")
	}
	ev.Name = strings.TrimSpace(ev.Name)
	ev.Organizer = strings.TrimSpace(ev.Organizer)
	if err := ev.Validate(); err != nil {
		return nil, errors.New(validationMessage(err))
	}
	if _, err := h.RoomRepo.GetByID(c.Request().Context(), ev.RoomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, errors.New("room not found")
		}
		return nil, errors.New("failed to verify room")
	}
	return &ev, nil
}

// findConflict loads the room's classes and runs the pure conflict check
// over them in their stored order.
func (h *EventHandler) findConflict(c echo.Context, ev *model.Event) (*model.RecurringClass, error) {
	classes, err := h.ClassRepo.ListByRoom(c.Request().Context(), ev.RoomID)
	if err != nil {
		return nil, err
	}
	return schedule.FindConflict(*ev, classes), nil
}

// ListEvents handles GET /v1/events?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *EventHandler) ListEvents(c echo.Context) error {
	from, err := model.ParseDate(c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from date"})
	}
	to, err := model.ParseDate(c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to date"})
	}
	if to.Before(from) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must not be before from"})
	}
	events, err := h.EventRepo.ListByDateRange(c.Request().Context(), from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	if events == nil {
		events = []model.Event{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}

// GetEvent handles GET /v1/events/:id.
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ev, err := h.EventRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, ev)
}

// CreateEvent handles POST /v1/events.  When a recurring class occupies the
// room during the requested time, nothing is saved and the response is 409
// with the conflicting class, so the client can ask the user whether the
// event should displace that class occurrence (see ConfirmOverride).
func (h *EventHandler) CreateEvent(c echo.Context) error {
	ev, err := h.bindEvent(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ev.ID = 0
	conflict, err := h.findConflict(c, ev)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check for conflicts"})
	}
	if conflict != nil {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "event overlaps a recurring class occurrence",
			"conflict": conflict,
		})
	}
	if err := h.EventRepo.Create(c.Request().Context(), ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create event"})
	}
	_ = service.PublishScheduleChanged(c.Request().Context(), queue.ScheduleChangedEvent{
		Entity: queue.EntityEvent, EntityID: ev.ID, Action: queue.ActionCreated,
		EntityName: ev.Name, Actor: actorName(c),
	})
	return c.JSON(http.StatusCreated, ev)
}

// ConfirmOverride handles POST /v1/events/override.  It is the second step
// of the conflict workflow: the payload carries the event again plus the ID
// of the class the user agreed to displace and the cancellation reason.  The
// conflict is re-checked against current data (the schedule may have changed
// since the 409), then the event and the cancellation exception are written
// in a single transaction.
func (h *EventHandler) ConfirmOverride(c echo.Context) error {
	var body struct {
		Event   model.Event `json:"event"`
		ClassID uint64      `json:"class_id"`
		Reason  string      `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ev := body.Event
	ev.ID = 0
	ev.Name = strings.TrimSpace(ev.Name)
	ev.Organizer = strings.TrimSpace(ev.Organizer)
	if err := ev.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	if body.ClassID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "class_id is required"})
	}

	conflict, err := h.findConflict(c, &ev)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check for conflicts"})
	}
	if conflict == nil {
		// The class was edited or removed meanwhile; a plain create is the
		// right operation now.
		return c.JSON(http.StatusConflict, echo.Map{"error": "no conflicting class occurrence; create the event normally"})
	}
	if conflict.ID != body.ClassID {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "conflicting class changed since confirmation was requested",
			"conflict": conflict,
		})
	}

	reason := strings.TrimSpace(body.Reason)
	if reason == "" {
		reason = "displaced by event " + ev.Name
	}
	exc := model.CancellationException{ClassID: conflict.ID, Date: ev.Date, Reason: reason}
	if err := h.EventRepo.ConfirmOverride(c.Request().Context(), &ev, exc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save event and cancellation"})
	}
	_ = service.PublishScheduleChanged(c.Request().Context(), queue.ScheduleChangedEvent{
		Entity: queue.EntityEvent, EntityID: ev.ID, Action: queue.ActionOverrideConfirmed,
		EntityName: ev.Name, Actor: actorName(c),
		Detail: "cancelled class " + strconv.FormatUint(conflict.ID, 10) + " on " + ev.Date.String(),
	})
	return c.JSON(http.StatusCreated, echo.Map{"event": ev, "cancellation": exc})
}

// UpdateEvent handles PUT /v1/events/:id.  Updates run the same conflict
// check as creation, ignoring nothing: moving an event onto a class
// occurrence requires the override workflow just like creating it there.
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ev, err := h.bindEvent(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ev.ID = id
	conflict, err := h.findConflict(c, ev)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check for conflicts"})
	}
	if conflict != nil {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "event overlaps a recurring class occurrence",
			"conflict": conflict,
		})
	}
	if err := h.EventRepo.Update(c.Request().Context(), ev); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update event"})
	}
	_ = service.PublishScheduleChanged(c.Request().Context(), queue.ScheduleChangedEvent{
		Entity: queue.EntityEvent, EntityID: ev.ID, Action: queue.ActionUpdated,
		EntityName: ev.Name, Actor: actorName(c),
	})
	return c.JSON(http.StatusOK, ev)
}

// DeleteEvent handles DELETE /v1/events/:id.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.EventRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete event"})
	}
	_ = service.PublishScheduleChanged(c.Request().Context(), queue.ScheduleChangedEvent{
		Entity: queue.EntityEvent, EntityID: id, Action: queue.ActionDeleted, Actor: actorName(c),
	})
	return c.NoContent(http.StatusNoContent)
}
