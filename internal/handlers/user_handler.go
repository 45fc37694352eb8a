package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Victormarshall911/NexTalk/internal/httpx"
	"github.com/Victormarshall911/NexTalk/internal/models"
	"github.com/Victormarshall911/NexTalk/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetCurrentUser gets the authenticated user's profile
func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	// ETag allows clients to re-check frequently without re-downloading.
	etag := fmt.Sprintf("W/\"u-%d-%d\"", user.ID, user.UpdatedAt.UTC().UnixNano())
	c.Set("ETag", etag)
	c.Set("Cache-Control", "private, max-age=0, must-revalidate")

	if inm := strings.TrimSpace(c.Get("If-None-Match")); inm != "" {
		inmNorm := strings.Trim(strings.TrimPrefix(inm, "W/"), "\"")
		etagNorm := strings.Trim(strings.TrimPrefix(etag, "W/"), "\"")
		if strings.Contains(inmNorm, etagNorm) {
			return c.SendStatus(fiber.StatusNotModified)
		}
	}

	return c.JSON(fiber.Map{
		"user": user.ToResponse(),
	})
}

// ListUsers returns the directory (everyone but the caller), for the
// People screen.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	limit := c.QueryInt("limit", 100)
	users, err := h.userService.ListDirectory(userID, limit)
	if err != nil {
		return httpx.Internal(c, "list_users_failed")
	}

	return c.JSON(fiber.Map{
		"users": toUserResponses(users),
		"count": len(users),
	})
}

// SearchUsers searches the directory by name or email.
func (h *UserHandler) SearchUsers(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return httpx.BadRequest(c, "missing_query", "Search query is required")
	}

	limit := c.QueryInt("limit", 20)
	users, err := h.userService.SearchUsers(query, userID, limit)
	if err != nil {
		return httpx.Internal(c, "search_users_failed")
	}

	return c.JSON(fiber.Map{
		"users": toUserResponses(users),
		"count": len(users),
	})
}

// UpdateProfile updates the caller's display name.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input service.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(userID, input)
	if err != nil {
		return httpx.BadRequest(c, "update_profile_failed", err.Error())
	}

	return c.JSON(fiber.Map{
		"user": user.ToResponse(),
	})
}

type pushTokenInput struct {
	Token string `json:"token"`
}

// RegisterPushToken stores the device token from the client's
// notification-permission flow.
func (h *UserHandler) RegisterPushToken(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input pushTokenInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if strings.TrimSpace(input.Token) == "" {
		return httpx.BadRequest(c, "missing_token", "token is required")
	}

	if err := h.userService.RegisterPushToken(userID, strings.TrimSpace(input.Token)); err != nil {
		return httpx.Internal(c, "register_push_token_failed")
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// UnregisterPushToken clears the device token, disabling push for the user.
func (h *UserHandler) UnregisterPushToken(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	if err := h.userService.RegisterPushToken(userID, ""); err != nil {
		return httpx.Internal(c, "unregister_push_token_failed")
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

func toUserResponses(users []models.User) []models.UserResponse {
	responses := make([]models.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return responses
}
