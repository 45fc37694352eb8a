package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Victormarshall911/NexTalk/internal/httpx"
	"github.com/Victormarshall911/NexTalk/internal/service"
	"github.com/Victormarshall911/NexTalk/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	if !validation.ValidateEmail(input.Email) {
		return httpx.BadRequest(c, "invalid_email", "A valid email is required")
	}
	if !validation.ValidatePassword(input.Password) {
		return httpx.BadRequest(c, "weak_password", "Password is too short")
	}

	result, err := h.authService.Register(input)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return httpx.Conflict(c, "email_taken", "Email already registered")
		}
		return httpx.Internal(c, "register_failed")
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	if input.Email == "" || input.Password == "" {
		return httpx.BadRequest(c, "missing_credentials", "Email and password are required")
	}

	result, err := h.authService.Login(input)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_credentials", "Invalid email or password")
	}

	return c.JSON(result)
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input refreshInput
	if err := c.BodyParser(&input); err != nil || input.RefreshToken == "" {
		return httpx.BadRequest(c, "missing_refresh_token", "refresh_token is required")
	}

	result, err := h.authService.Refresh(input.RefreshToken)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_refresh_token", "Invalid or expired refresh token")
	}

	return c.JSON(result)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input refreshInput
	if err := c.BodyParser(&input); err != nil || input.RefreshToken == "" {
		return httpx.BadRequest(c, "missing_refresh_token", "refresh_token is required")
	}

	if err := h.authService.Logout(input.RefreshToken); err != nil {
		return httpx.Internal(c, "logout_failed")
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// LogoutAll signs the caller out of every device by revoking all of their
// refresh tokens. Runs behind the auth guard, unlike the other auth routes.
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	if err := h.authService.LogoutAll(userID); err != nil {
		return httpx.Internal(c, "logout_all_failed")
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
