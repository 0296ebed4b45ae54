// Package request holds the parsing shared by the fiber handlers: path ids, pagination query and the session actor.
package request

import (
	"strconv"

	"github.com/euRezerv/api-sub000/internal/middleware"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"
	"github.com/euRezerv/api-sub000/internal/pkg/pagination"
	"github.com/euRezerv/api-sub000/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	ErrInvalidPage     = apperror.Validation("page must be an integer greater than or equal to 1")
	ErrInvalidPageSize = apperror.Validation("pageSize must be an integer between 1 and 100")
	ErrUnauthorized    = apperror.Unauthorized("Unauthorized")
)

// ParamUUID parses the named path parameter.
func ParamUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := c.Params(name)
	id, ok := validation.ParseUUID(raw)
	if !ok {
		return uuid.Nil, apperror.Validation("Invalid "+name).WithDetails(map[string]string{name: raw})
	}
	return id, nil
}

// Page reads page and pageSize from the query string. Missing values take the defaults.
func Page(c *fiber.Ctx) (pagination.Params, error) {
	page, err := positiveQuery(c, "page", 0, ErrInvalidPage)
	if err != nil {
		return pagination.Params{}, err
	}
	size, err := positiveQuery(c, "pageSize", pagination.MaxPageSize, ErrInvalidPageSize)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Calculate(page, size), nil
}

// positiveQuery returns nil for a missing key and invalid for anything but an integer in [1, max].
// A zero max leaves the value unbounded.
func positiveQuery(c *fiber.Ctx, key string, max int, invalid error) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || (max > 0 && n > max) {
		return nil, invalid
	}
	return &n, nil
}

// ActorID is the logged-in user's id.
func ActorID(c *fiber.Ctx) (uuid.UUID, error) {
	u := middleware.GetUser(c)
	if u == nil || u.UserID == uuid.Nil {
		return uuid.Nil, ErrUnauthorized
	}
	return u.UserID, nil
}

// Scope is the acting user and the :companyId path parameter of a company-scoped route.
func Scope(c *fiber.Ctx) (companyID, actorID uuid.UUID, err error) {
	if actorID, err = ActorID(c); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if companyID, err = ParamUUID(c, "companyId"); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return companyID, actorID, nil
}
