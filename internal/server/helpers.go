// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"errors"

	"chirp/internal/models"
	"chirp/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// Time formats used in API responses.
const (
	timeOfDayFormat = "03:04:05 pm"
	fullTimeFormat  = "02/01/2006 03:04:05 pm"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	maxPaginationLimit = 100
)

// parsePagination extracts optional limit and offset query parameters.
// A zero Limit means the caller did not ask for one.
func parsePagination(c *fiber.Ctx) Pagination {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		limit = 0
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps a service-layer error onto its HTTP status.
// Unexpected failures are recorded on the active trace span.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := models.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		observability.RecordErrorInContext(c.UserContext(), err)
	}
	return models.RespondWithError(c, status, err)
}

// currentUserID returns the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
