package resources

import (
	ressvc "github.com/euRezerv/api-sub000/internal/application/resources"
	"github.com/euRezerv/api-sub000/internal/interfaces/handlers/request"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"
	"github.com/euRezerv/api-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles resource handlers with dependencies.
type Handlers struct {
	Service *ressvc.Service
}

// CreateResource POST /v1/companies/:companyId/resources
func (h *Handlers) CreateResource(c *fiber.Ctx) error {
	companyID, actorID, err := request.Scope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	var in ressvc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.FromError(c, apperror.Validation("Invalid request body"))
	}
	created, err := h.Service.Create(c.UserContext(), companyID, actorID, in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Resource created successfully", created)
}

// GetResource GET /v1/companies/:companyId/resources/:resourceId
func (h *Handlers) GetResource(c *fiber.Ctx) error {
	companyID, actorID, err := request.Scope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	resourceID, err := request.ParamUUID(c, "resourceId")
	if err != nil {
		return response.FromError(c, err)
	}
	r, err := h.Service.Get(c.UserContext(), companyID, resourceID, actorID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Resource retrieved successfully", r)
}

// ListResources GET /v1/companies/:companyId/resources?page&pageSize
func (h *Handlers) ListResources(c *fiber.Ctx) error {
	companyID, actorID, err := request.Scope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	page, err := request.Page(c)
	if err != nil {
		return response.FromError(c, err)
	}
	rows, meta, err := h.Service.List(c.UserContext(), companyID, actorID, page)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Resources retrieved successfully", response.Page{Items: rows, Pagination: meta})
}

