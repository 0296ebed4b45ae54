package user

import (
	usersvc "github.com/euRezerv/api-sub000/internal/application/user"
	"github.com/euRezerv/api-sub000/internal/interfaces/handlers/request"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"
	"github.com/euRezerv/api-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles user handlers with dependencies.
type Handlers struct {
	Service *usersvc.Service
}

// CreateUser POST /v1/users (public registration).
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	var in usersvc.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return response.FromError(c, apperror.Validation("Invalid request body"))
	}
	u, err := h.Service.CreateUser(c.UserContext(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "User created successfully", fiber.Map{"user": u})
}

// ViewUser GET /v1/users/:userId
func (h *Handlers) ViewUser(c *fiber.Ctx) error {
	id, err := request.ParamUUID(c, "userId")
	if err != nil {
		return response.FromError(c, err)
	}
	u, err := h.Service.ViewUser(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "User retrieved successfully", fiber.Map{"user": u})
}
