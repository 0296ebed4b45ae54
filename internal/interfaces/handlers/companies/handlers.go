package companies

import (
	compsvc "github.com/euRezerv/api-sub000/internal/application/companies"
	"github.com/euRezerv/api-sub000/internal/interfaces/handlers/request"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"
	"github.com/euRezerv/api-sub000/internal/pkg/constants"
	"github.com/euRezerv/api-sub000/internal/pkg/response"
	"github.com/euRezerv/api-sub000/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles company handlers with dependencies.
type Handlers struct {
	Service *compsvc.Service
}

// ListCompanies GET /v1/companies?page&pageSize&employeeId&role
func (h *Handlers) ListCompanies(c *fiber.Ctx) error {
	page, err := request.Page(c)
	if err != nil {
		return response.FromError(c, err)
	}
	in := compsvc.ListInput{Page: page}
	if raw := c.Query("employeeId"); raw != "" {
		id, ok := validation.ParseUUID(raw)
		if !ok {
			return response.FromError(c, apperror.Validation("employeeId must be a UUID"))
		}
		in.EmployeeID = &id
	}
	if raw := c.Query("role"); raw != "" {
		role, ok := constants.ParseRole(raw)
		if !ok {
			return response.FromError(c, apperror.Validation("role must be one of OWNER, MANAGER, REGULAR"))
		}
		in.Role = &role
	}

	rows, meta, err := h.Service.ListCompanies(c.UserContext(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Companies retrieved successfully", response.Page{Items: rows, Pagination: meta})
}

// GetCompany GET /v1/companies/:companyId
func (h *Handlers) GetCompany(c *fiber.Ctx) error {
	id, err := request.ParamUUID(c, "companyId")
	if err != nil {
		return response.FromError(c, err)
	}
	company, err := h.Service.GetCompanyByID(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Company retrieved successfully", company)
}

// CreateCompany POST /v1/companies. The caller becomes the company's OWNER.
func (h *Handlers) CreateCompany(c *fiber.Ctx) error {
	actorID, err := request.ActorID(c)
	if err != nil {
		return response.FromError(c, err)
	}
	var in compsvc.CreateCompanyInput
	if err := c.BodyParser(&in); err != nil {
		return response.FromError(c, compsvc.ErrMissingFields)
	}
	company, err := h.Service.CreateCompany(c.UserContext(), in, actorID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Company created successfully", company)
}
