package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mlovren/tourism-scheduler/internal/model"
	"github.com/mlovren/tourism-scheduler/internal/queue"
	"github.com/mlovren/tourism-scheduler/internal/repository"
	"github.com/mlovren/tourism-scheduler/internal/service"
)

// ExceptionHandler exposes cancellation exceptions directly: staff can
// cancel a single class occurrence (holiday, sick instructor) without going
// through the event-override workflow, and can undo a cancellation to
// reinstate the occurrence.
type ExceptionHandler struct {
	ExceptionRepo *repository.ExceptionRepo
	ClassRepo     *repository.ClassRepo
}

// NewExceptionHandler constructs an ExceptionHandler.
func NewExceptionHandler(exceptionRepo *repository.ExceptionRepo, classRepo *repository.ClassRepo) *ExceptionHandler {
	if exceptionRepo == nil || classRepo == nil {
		panic("nil repository passed to NewExceptionHandler")
	}
	return &ExceptionHandler{ExceptionRepo: exceptionRepo, ClassRepo: classRepo}
}

// ListByClass handles GET /v1/classes/:id/cancellations.
func (h *ExceptionHandler) ListByClass(c echo.Context) error {
	classID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || classID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid class id"})
	}
	excs, err := h.ExceptionRepo.ListByClass(c.Request().Context(), classID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cancellations"})
	}
	if excs == nil {
		excs = []model.CancellationException{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": excs})
}

// Create handles POST /v1/classes/:id/cancellations.  Saving the same
// (class, date) key again updates the reason instead of duplicating the
// record.
func (h *ExceptionHandler) Create(c echo.Context) error {
	classID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || classID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid class id"})
	}
	var exc model.CancellationException
	if err := c.Bind(&exc); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	exc.ClassID = classID
	if err := exc.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	class, err := h.ClassRepo.GetByID(c.Request().Context(), classID)
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	// Only dates on which the class actually occurs can be cancelled.
	if !class.Covers(exc.Date) || class.SlotOn(model.SlotWeekdayOf(exc.Date)) == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "class has no occurrence on that date"})
	}
	if err := h.ExceptionRepo.Save(c.Request().Context(), exc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save cancellation"})
	}
	_ = service.PublishScheduleChanged(c.Request().Context(), queue.ScheduleChangedEvent{
		Entity: queue.EntityException, EntityID: classID, Action: queue.ActionCreated,
		EntityName: class.Name, Actor: actorName(c), Detail: "cancelled " + exc.Date.String(),
	})
	return c.JSON(http.StatusCreated, exc)
}

// Delete handles DELETE /v1/classes/:id/cancellations/:date and reinstates
// the class occurrence on that date.
func (h *ExceptionHandler) Delete(c echo.Context) error {
	classID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || classID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid class id"})
	}
	date, err := model.ParseDate(c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	if err := h.ExceptionRepo.Delete(c.Request().Context(), classID, date); err != nil {
		if errors.Is(err, repository.ErrExceptionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cancellation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete cancellation"})
	}
	_ = service.PublishScheduleChanged(c.Request().Context(), queue.ScheduleChangedEvent{
		Entity: queue.EntityException, EntityID: classID, Action: queue.ActionDeleted,
		Actor: actorName(c), Detail: "reinstated " + date.String(),
	})
	return c.NoContent(http.StatusNoContent)
}
