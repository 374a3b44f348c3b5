package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const MaxPageLimit = 100

// Pagination holds pagination parameters.
type Pagination struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// GetPagination extracts the page and limit from the query parameters.
// It returns a Pagination struct using defaults if parsing fails.
func GetPagination(c *fiber.Ctx, defaultPage, defaultLimit int) Pagination {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// TotalPages calculates the number of pages based on the total items and items per page.
func TotalPages(totalItems int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((totalItems + int64(limit) - 1) / int64(limit))
}
