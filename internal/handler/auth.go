package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mlovren/tourism-scheduler/internal/config"
	"github.com/mlovren/tourism-scheduler/internal/utils"
)

// AuthHandler signs staff into the back office.  There is exactly one staff
// account, configured through STAFF_USER and STAFF_PASS_HASH; user
// management, registration and refresh-token rotation are deliberately out
// of scope for this service.
type AuthHandler struct {
	Cfg config.Config
}

// NewAuthHandler constructs an AuthHandler with the loaded configuration.
func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

// Login handles POST /v1/auth/login.  It verifies the configured staff
// credentials and returns a short-lived HS256 access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	username := strings.TrimSpace(body.Username)
	if username == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}
	// Identical responses for wrong user and wrong password.
	if username != h.Cfg.StaffUser || !utils.VerifyPassword(h.Cfg.StaffPassHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, username, "STAFF", h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp,
	})
}

// Me handles GET /v1/me and returns the authenticated staff identity.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"username": c.Get("user_id"),
		"role":     c.Get("role"),
	})
}
