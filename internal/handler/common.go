package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/mlovren/tourism-scheduler/internal/model"
)

// actorName returns the staff username JWTAuth stored in the context, or
// "unknown" when the route is reached without a session (should not happen
// on protected routes, but audit lines must never be the reason a save
// fails).
func actorName(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "unknown"
}

// validationMessage extracts a client-friendly message from a validation
// error, falling back to a generic one.
func validationMessage(err error) string {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return "invalid input"
}
