package router // package router wires HTTP routes to their handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/mlovren/tourism-scheduler/internal/handler"
	"github.com/mlovren/tourism-scheduler/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently that is only the health check used by load balancers and
// monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the staff login endpoint and the authenticated
// identity endpoint.  Login lives outside the protected group; /v1/me sits
// behind JWTAuth like every other back-office route.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/v1/auth/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("STAFF"))
	auth.GET("/me", a.Me)
}

// Handlers bundles the scheduling handlers passed to RegisterSchedule.
type Handlers struct {
	Rooms      *handler.RoomHandler
	Classes    *handler.ClassHandler
	Events     *handler.EventHandler
	Exceptions *handler.ExceptionHandler
	Schedule   *handler.ScheduleHandler
}

// RegisterSchedule registers every scheduling route under /v1, protected by
// JWT authentication and the STAFF role.  The week view additionally runs
// through the Redis response cache when one is configured; cacheMW may be a
// pass-through.
func RegisterSchedule(e *echo.Echo, h Handlers, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("STAFF"))

	// Room registry
	g.GET("/rooms", h.Rooms.ListRooms)
	g.POST("/rooms", h.Rooms.CreateRoom)
	g.GET("/rooms/:id", h.Rooms.GetRoom)
	g.PUT("/rooms/:id", h.Rooms.UpdateRoom)
	g.DELETE("/rooms/:id", h.Rooms.DeleteRoom)

	// Recurring classes
	g.GET("/classes", h.Classes.ListClasses)
	g.POST("/classes", h.Classes.CreateClass)
	g.GET("/classes/:id", h.Classes.GetClass)
	g.PUT("/classes/:id", h.Classes.UpdateClass)
	g.DELETE("/classes/:id", h.Classes.DeleteClass)

	// Cancellation exceptions, addressed through their class
	g.GET("/classes/:id/cancellations", h.Exceptions.ListByClass)
	g.POST("/classes/:id/cancellations", h.Exceptions.Create)
	g.DELETE("/classes/:id/cancellations/:date", h.Exceptions.Delete)

	// One-off events and the conflict-override workflow
	g.GET("/events", h.Events.ListEvents)
	g.POST("/events", h.Events.CreateEvent)
	g.POST("/events/override", h.Events.ConfirmOverride)
	g.GET("/events/:id", h.Events.GetEvent)
	g.PUT("/events/:id", h.Events.UpdateEvent)
	g.DELETE("/events/:id", h.Events.DeleteEvent)

	// Weekly schedule view (materialize + layout), cached
	g.GET("/schedule", h.Schedule.GetWeek, cacheMW)
}
