package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Victormarshall911/NexTalk/internal/httpx"
	"github.com/Victormarshall911/NexTalk/internal/prefs"
)

type PreferenceHandler struct {
	store *prefs.Store
}

func NewPreferenceHandler(store *prefs.Store) *PreferenceHandler {
	return &PreferenceHandler{store: store}
}

// GetTheme returns the caller's persisted theme, defaulting to light.
func (h *PreferenceHandler) GetTheme(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	theme, err := h.store.Theme(userID)
	if err != nil {
		return httpx.Internal(c, "read_theme_failed")
	}

	return c.JSON(fiber.Map{"theme": theme})
}

type themeInput struct {
	Theme string `json:"theme"`
}

// SetTheme persists a theme toggle.
func (h *PreferenceHandler) SetTheme(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input themeInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	if err := h.store.SetTheme(userID, input.Theme); err != nil {
		if errors.Is(err, prefs.ErrInvalidTheme) {
			return httpx.BadRequest(c, "invalid_theme", "Theme must be \"light\" or \"dark\"")
		}
		return httpx.Internal(c, "write_theme_failed")
	}

	return c.JSON(fiber.Map{"theme": input.Theme})
}
