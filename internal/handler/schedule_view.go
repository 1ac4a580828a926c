package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mlovren/tourism-scheduler/internal/model"
	"github.com/mlovren/tourism-scheduler/internal/repository"
	"github.com/mlovren/tourism-scheduler/internal/schedule"
)

// ScheduleHandler serves the weekly room schedule: it picks the week, turns
// the request's room/location filter into a room ID set, feeds classes,
// events and cancellations through the materializer, and annotates the
// result with display columns and day widths for the rendering layer.
type ScheduleHandler struct {
	RoomRepo      *repository.RoomRepo
	ClassRepo     *repository.ClassRepo
	EventRepo     *repository.EventRepo
	ExceptionRepo *repository.ExceptionRepo
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(roomRepo *repository.RoomRepo, classRepo *repository.ClassRepo, eventRepo *repository.EventRepo, exceptionRepo *repository.ExceptionRepo) *ScheduleHandler {
	if roomRepo == nil || classRepo == nil || eventRepo == nil || exceptionRepo == nil {
		panic("nil repository passed to NewScheduleHandler")
	}
	return &ScheduleHandler{RoomRepo: roomRepo, ClassRepo: classRepo, EventRepo: eventRepo, ExceptionRepo: exceptionRepo}
}

// scheduleDay is one day of the serialized week view.
type scheduleDay struct {
	Date         model.Date            `json:"date"`
	WidthPercent float64               `json:"width_percent"`
	Occurrences  []schedule.Occurrence `json:"occurrences"`
}

// GetWeek handles GET /v1/schedule.
//
// Query parameters:
//
//	date        – any date inside the wanted week (default: today); the
//	              handler normalizes it to the week's Monday
//	rooms       – comma-separated room IDs to include (default: all)
//	location    – room-number prefix filter, resolved to room IDs; combined
//	              with rooms it narrows that set further
//	school_year – restrict classes to one partition (default: all)
func (h *ScheduleHandler) GetWeek(c echo.Context) error {
	ctx := c.Request().Context()

	// Pick the week.
	day := model.DateOf(time.Now())
	if raw := strings.TrimSpace(c.QueryParam("date")); raw != "" {
		var err error
		if day, err = model.ParseDate(raw); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
		}
	}
	weekStart := schedule.WeekStart(day)
	weekEnd := schedule.DateAt(weekStart, schedule.DaysPerWeek-1)

	// Resolve the room filter.  The location prefix goes through the room
	// registry first; the core only ever sees ID sets.
	roomIDs, err := h.resolveRoomFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	classes, err := h.ClassRepo.List(ctx, strings.TrimSpace(c.QueryParam("school_year")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load classes"})
	}
	events, err := h.EventRepo.ListByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	exceptions, err := h.ExceptionRepo.ListByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cancellations"})
	}

	colors := schedule.BuildColorTable(classes)
	week := schedule.Materialize(weekStart, schedule.NewRoomFilter(roomIDs), classes, events, schedule.NewExceptionSet(exceptions), colors)
	laidOut, widths := schedule.LayoutWeek(week)

	days := make([]scheduleDay, schedule.DaysPerWeek)
	for i := range days {
		occ := laidOut.Days[i]
		if occ == nil {
			occ = []schedule.Occurrence{}
		}
		days[i] = scheduleDay{
			Date:         schedule.DateAt(weekStart, schedule.DayIndex(i)),
			WidthPercent: widths[i],
			Occurrences:  occ,
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"week_start": weekStart,
		"prev_week":  weekStart.AddDays(-schedule.DaysPerWeek),
		"next_week":  weekStart.AddDays(schedule.DaysPerWeek),
		"days":       days,
	})
}

// resolveRoomFilter combines the rooms and location query parameters into a
// list of room IDs, or nil when no filtering was requested.
func (h *ScheduleHandler) resolveRoomFilter(c echo.Context) ([]uint64, error) {
	var ids []uint64
	if raw := strings.TrimSpace(c.QueryParam("rooms")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil || id == 0 {
				return nil, &model.ValidationError{Field: "rooms", Reason: "must be comma-separated room ids"}
			}
			ids = append(ids, id)
		}
	}
	prefix := strings.TrimSpace(c.QueryParam("location"))
	if prefix == "" {
		return ids, nil
	}
	rooms, err := h.RoomRepo.List(c.Request().Context(), prefix)
	if err != nil {
		return nil, &model.ValidationError{Field: "location", Reason: "failed to resolve location"}
	}
	if len(ids) == 0 {
		for _, r := range rooms {
			ids = append(ids, r.ID)
		}
		if ids == nil {
			// The location matched nothing; an impossible ID keeps the
			// filter restrictive instead of falling back to "all rooms".
			ids = []uint64{0}
		}
		return ids, nil
	}
	inLocation := make(map[uint64]bool, len(rooms))
	for _, r := range rooms {
		inLocation[r.ID] = true
	}
	var both []uint64
	for _, id := range ids {
		if inLocation[id] {
			both = append(both, id)
		}
	}
	if both == nil {
		both = []uint64{0}
	}
	return both, nil
}
