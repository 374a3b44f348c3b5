package handlers

import (
	"github.com/llshivamsinghll/bank-wallet/internal/services/user"
	"github.com/llshivamsinghll/bank-wallet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	u, err := h.userService.GetProfile(c.UserContext(), claims.UserID)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"user": u})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		FirstName   string `json:"firstName"`
		LastName    string `json:"lastName"`
		Address     string `json:"address"`
		DateOfBirth string `json:"dateOfBirth"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	u, err := h.userService.UpdateProfile(c.UserContext(), claims.UserID, user.ProfileInput{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Address:     input.Address,
		DateOfBirth: input.DateOfBirth,
	})
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"user": u})
}
