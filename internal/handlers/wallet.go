package handlers

import (
	"context"
	"encoding/json"

	"github.com/llshivamsinghll/bank-wallet/internal/services/query"
	"github.com/llshivamsinghll/bank-wallet/internal/services/wallet"
	"github.com/llshivamsinghll/bank-wallet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
	queryService  query.Service
}

func NewWalletHandler(walletService wallet.Service, queryService query.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		queryService:  queryService,
	}
}

// amountInput accepts the amount as a JSON number or a numeric string.
type amountInput struct {
	Amount json.Number `json:"amount"`
}

func (h *WalletHandler) CreateWallet(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Currency string `json:"currency"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.BadRequest(c, "invalid request body")
		}
	}

	w, err := h.walletService.CreateWallet(c.UserContext(), claims.UserID, input.Currency)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, fiber.Map{"wallet": w})
}

func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	balance, err := h.queryService.GetBalance(c.UserContext(), claims.UserID)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, balance)
}

func (h *WalletHandler) RecordTransaction(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount      json.Number `json:"amount"`
		Type        string      `json:"type"`
		Description string      `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	result, err := h.walletService.RecordTransaction(c.UserContext(), claims.UserID, wallet.RecordRequest{
		Amount:      input.Amount.String(),
		Type:        input.Type,
		Description: input.Description,
	})
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, result)
}

func (h *WalletHandler) Transfer(c *fiber.Ctx) error {
	return h.bankMovement(c, h.walletService.Transfer)
}

func (h *WalletHandler) TopUp(c *fiber.Ctx) error {
	return h.bankMovement(c, h.walletService.TopUp)
}

type bankOp func(ctx context.Context, userID, bankCode, amount string) (*wallet.TransferResult, error)

func (h *WalletHandler) bankMovement(c *fiber.Ctx, op bankOp) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input amountInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	result, err := op(c.UserContext(), claims.UserID, c.Params("bank"), input.Amount.String())
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, result)
}
