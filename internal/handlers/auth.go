package handlers

import (
	"github.com/llshivamsinghll/bank-wallet/internal/services/auth"
	"github.com/llshivamsinghll/bank-wallet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates the user and their wallet.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	user, w, err := h.authService.Register(c.UserContext(), auth.RegisterRequest{
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
	})
	if err != nil {
		return utils.Error(c, err)
	}

	return utils.Created(c, fiber.Map{
		"user":   user,
		"wallet": w,
	})
}

// Login returns a bearer token for valid credentials.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "email and password are required")
	}

	user, token, err := h.authService.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return utils.Error(c, err)
	}

	return utils.Success(c, fiber.Map{
		"access_token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
