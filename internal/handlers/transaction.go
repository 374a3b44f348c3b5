package handlers

import (
	"time"

	"github.com/llshivamsinghll/bank-wallet/internal/services/query"
	"github.com/llshivamsinghll/bank-wallet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	queryService query.Service
	loc          *time.Location
}

// NewTransactionHandler interprets calendar dates in loc; nil means local
// time.
func NewTransactionHandler(queryService query.Service, loc *time.Location) *TransactionHandler {
	if loc == nil {
		loc = time.Local
	}
	return &TransactionHandler{queryService: queryService, loc: loc}
}

// ListTransactions handles GET /wallet/transactions with optional type,
// startDate, endDate, page and limit query parameters.
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	filter, err := query.ParseFilter(c.Query("type"), c.Query("startDate"), c.Query("endDate"), h.loc)
	if err != nil {
		return utils.Error(c, err)
	}

	p := utils.GetPagination(c, query.DefaultPage, query.DefaultPageSize)
	page, err := h.queryService.ListTransactions(c.UserContext(), claims.UserID, filter, p.Page, p.Limit)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, page)
}
