package invitations

import (
	"context"

	invsvc "github.com/euRezerv/api-sub000/internal/application/invitations"
	"github.com/euRezerv/api-sub000/internal/interfaces/handlers/request"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"
	"github.com/euRezerv/api-sub000/internal/pkg/constants"
	"github.com/euRezerv/api-sub000/internal/pkg/response"
	"github.com/euRezerv/api-sub000/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles invitation handlers with dependencies.
type Handlers struct {
	Service *invsvc.Service
}

type createInvitationRequest struct {
	InvitedUserID string `json:"invitedUserId"`
	Role          string `json:"role"`
}

// CreateInvitation POST /v1/companies/:companyId/invitations
func (h *Handlers) CreateInvitation(c *fiber.Ctx) error {
	companyID, actorID, err := request.Scope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	var body createInvitationRequest
	if err := c.BodyParser(&body); err != nil {
		return response.FromError(c, apperror.Validation("Invalid request body"))
	}
	invitedID, ok := validation.ParseUUID(body.InvitedUserID)
	if !ok {
		return response.FromError(c, apperror.Validation("invitedUserId must be a UUID"))
	}
	role, ok := constants.ParseRole(body.Role)
	if !ok {
		return response.FromError(c, invsvc.ErrInvalidRole)
	}

	created, err := h.Service.Create(c.UserContext(), invsvc.CreateInput{
		CompanyID:     companyID,
		ActorUserID:   actorID,
		InvitedUserID: invitedID,
		Role:          role,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Invitation created successfully", created)
}

type transitionFunc func(ctx context.Context, companyID, invitationID, actingUserID uuid.UUID) (*invsvc.Result, error)

// AcceptInvitation PATCH /v1/companies/:companyId/invitations/:invitationId/accept
func (h *Handlers) AcceptInvitation(c *fiber.Ctx) error {
	return h.transition(c, h.Service.Accept)
}

// DeclineInvitation PATCH /v1/companies/:companyId/invitations/:invitationId/decline
func (h *Handlers) DeclineInvitation(c *fiber.Ctx) error {
	return h.transition(c, h.Service.Decline)
}

// CancelInvitation PATCH /v1/companies/:companyId/invitations/:invitationId/cancel
func (h *Handlers) CancelInvitation(c *fiber.Ctx) error {
	return h.transition(c, h.Service.Cancel)
}

// transition answers 200 for both applied and unchanged outcomes; the message tells them apart.
func (h *Handlers) transition(c *fiber.Ctx, fn transitionFunc) error {
	companyID, actorID, err := request.Scope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	invitationID, err := request.ParamUUID(c, "invitationId")
	if err != nil {
		return response.FromError(c, err)
	}
	res, err := fn(c.UserContext(), companyID, invitationID, actorID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, res.Message, res)
}

// GetInvitation GET /v1/companies/:companyId/invitations/:invitationId
func (h *Handlers) GetInvitation(c *fiber.Ctx) error {
	companyID, actorID, err := request.Scope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	invitationID, err := request.ParamUUID(c, "invitationId")
	if err != nil {
		return response.FromError(c, err)
	}
	inv, err := h.Service.Get(c.UserContext(), companyID, invitationID, actorID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Invitation retrieved successfully", inv)
}

// ListInvitations GET /v1/companies/:companyId/invitations?page&pageSize&status
func (h *Handlers) ListInvitations(c *fiber.Ctx) error {
	companyID, actorID, err := request.Scope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	page, err := request.Page(c)
	if err != nil {
		return response.FromError(c, err)
	}
	in := invsvc.ListInput{CompanyID: companyID, ActorUserID: actorID, Page: page}
	if raw := c.Query("status"); raw != "" {
		st, ok := constants.ParseInvitationStatus(raw)
		if !ok {
			return response.FromError(c, apperror.Validation("Invalid status"))
		}
		in.Status = &st
	}

	items, meta, err := h.Service.List(c.UserContext(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Invitations retrieved successfully", response.Page{Items: items, Pagination: meta})
}

