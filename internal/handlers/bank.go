package handlers

import (
	"encoding/json"

	"github.com/llshivamsinghll/bank-wallet/internal/services/bank"
	"github.com/llshivamsinghll/bank-wallet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type BankHandler struct {
	bankService bank.Service
}

func NewBankHandler(bankService bank.Service) *BankHandler {
	return &BankHandler{bankService: bankService}
}

// CreateBank is admin only.
func (h *BankHandler) CreateBank(c *fiber.Ctx) error {
	var input struct {
		Name     string      `json:"name"`
		Code     string      `json:"code"`
		MaxLimit json.Number `json:"maxLimit"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	b, err := h.bankService.CreateBank(c.UserContext(), bank.CreateBankRequest{
		Name:     input.Name,
		Code:     input.Code,
		MaxLimit: input.MaxLimit.String(),
	})
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, fiber.Map{"bank": b})
}

func (h *BankHandler) ListBanks(c *fiber.Ctx) error {
	banks, err := h.bankService.ListBanks(c.UserContext())
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"banks": banks})
}

func (h *BankHandler) LinkAccount(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		AccountNo string `json:"accountNo"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	link, err := h.bankService.LinkAccount(c.UserContext(), claims.UserID, c.Params("bank"), input.AccountNo)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, fiber.Map{
		"id":        link.ID,
		"bankId":    link.BankID,
		"accountNo": "****" + link.Last4(),
		"isActive":  link.IsActive,
	})
}
