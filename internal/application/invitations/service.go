package invitations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/euRezerv/api-sub000/internal/application/policies/authorization"
	policies "github.com/euRezerv/api-sub000/internal/application/policies/invitations"
	"github.com/euRezerv/api-sub000/internal/domain"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"
	"github.com/euRezerv/api-sub000/internal/pkg/constants"
	"github.com/euRezerv/api-sub000/internal/pkg/pagination"

	"github.com/google/uuid"
)

// TTL is how long an invitation stays acceptable after creation.
const TTL = 7 * 24 * time.Hour

type Service struct {
	Store domain.Store
	Now   func() time.Time
}

func NewService(store domain.Store) *Service {
	return &Service{Store: store, Now: time.Now}
}

type CreateInput struct {
	CompanyID     uuid.UUID
	ActorUserID   uuid.UUID
	InvitedUserID uuid.UUID
	Role          constants.Role
}

// Created is the new invitation plus the TTL that produced its expiresAt.
type Created struct {
	*domain.CompanyEmployeeInvitation
	ExpiresInMs int64 `json:"expiresInMs"`
}

// Result is the answer of a transition. Changed is false when the invitation was returned as stored.
type Result struct {
	Invitation *domain.CompanyEmployeeInvitation `json:"invitation"`
	Employee   *domain.CompanyEmployee           `json:"employee,omitempty"`
	Message    string                            `json:"-"`
	Changed    bool                              `json:"-"`
}

// Summary is an invitation as seen at read time.
type Summary struct {
	domain.CompanyEmployeeInvitation
	EffectiveStatus constants.InvitationStatus `json:"effectiveStatus"`
}

type ListInput struct {
	CompanyID   uuid.UUID
	ActorUserID uuid.UUID
	Status      *constants.InvitationStatus
	Page        pagination.Params
}

// Create sends a PENDING invitation that expires after TTL. An older PENDING invitation for the
// same sender and invitee whose expiresAt has passed is stored as EXPIRED in the same transaction;
// one still in date is a conflict.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Created, error) {
	if !constants.IsValidRole(in.Role) {
		return nil, ErrInvalidRole
	}
	if err := s.requireCompany(ctx, in.CompanyID); err != nil {
		return nil, err
	}
	sender, err := s.employee(ctx, in.CompanyID, in.ActorUserID)
	if err != nil {
		return nil, err
	}
	if !authorization.CapabilitiesFor(sender.Role).CanInviteEmployeeToCompany {
		return nil, ErrCannotInvite
	}

	now := s.Now()
	stale, err := policies.ValidateInviteCreation(ctx, s.Store, sender, in.InvitedUserID, now)
	if err != nil {
		return nil, err
	}

	inv := &domain.CompanyEmployeeInvitation{
		CompanyID:     in.CompanyID,
		SenderID:      sender.ID,
		InvitedUserID: in.InvitedUserID,
		Role:          in.Role,
		Status:        constants.InvitationPending,
		ExpiresAt:     now.Add(TTL),
	}
	err = s.Store.Transaction(ctx, func(tx domain.Store) error {
		if stale != nil {
			if err := tx.Invitations().UpdateStatus(ctx, stale.ID, constants.InvitationExpired); err != nil && !errors.Is(err, domain.ErrNotPending) {
				return err
			}
		}
		return tx.Invitations().Create(ctx, inv)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &Created{CompanyEmployeeInvitation: inv, ExpiresInMs: TTL.Milliseconds()}, nil
}

// Accept makes the acting user an employee with the invitation's role.
func (s *Service) Accept(ctx context.Context, companyID, invitationID, actingUserID uuid.UUID) (*Result, error) {
	inv, err := s.load(ctx, companyID, invitationID)
	if err != nil {
		return nil, err
	}
	view := s.view(inv, actingUserID)
	if view.IsRecipient && inv.Status == constants.InvitationPending {
		_, err := s.Store.Employees().FindByCompanyAndUser(ctx, inv.CompanyID, actingUserID)
		switch {
		case err == nil:
			view.IsEmployee = true
		case !errors.Is(err, domain.ErrNotFound):
			return nil, apperror.Internal(err)
		}
	}

	d := Decide(OpAccept, view)
	if d.Outcome != Applied {
		return s.settle(inv, d)
	}

	employee := &domain.CompanyEmployee{CompanyID: inv.CompanyID, EmployeeID: actingUserID, Role: inv.Role}
	err = s.Store.Transaction(ctx, func(tx domain.Store) error {
		if err := tx.Invitations().UpdateStatus(ctx, inv.ID, d.Next); err != nil {
			return err
		}
		return tx.Employees().Create(ctx, employee)
	})
	if err != nil {
		return nil, s.writeFailed(err, inv)
	}
	inv.Status = d.Next
	return &Result{Invitation: inv, Employee: employee, Message: d.Message, Changed: true}, nil
}

func (s *Service) Decline(ctx context.Context, companyID, invitationID, actingUserID uuid.UUID) (*Result, error) {
	inv, err := s.load(ctx, companyID, invitationID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, inv, Decide(OpDecline, s.view(inv, actingUserID)))
}

// Cancel requires the actor to hold the cancel capability in the invitation's company.
func (s *Service) Cancel(ctx context.Context, companyID, invitationID, actingUserID uuid.UUID) (*Result, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}
	actor, err := s.employee(ctx, companyID, actingUserID)
	if err != nil {
		return nil, err
	}
	if !authorization.CapabilitiesFor(actor.Role).CanCancelEmployeeToCompanyInvitation {
		return nil, ErrCannotCancel
	}
	inv, err := s.find(ctx, companyID, invitationID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, inv, Decide(OpCancel, s.view(inv, actingUserID)))
}

// Get is visible to the company's employees and to the invited user.
func (s *Service) Get(ctx context.Context, companyID, invitationID, actingUserID uuid.UUID) (*Summary, error) {
	inv, err := s.load(ctx, companyID, invitationID)
	if err != nil {
		return nil, err
	}
	if inv.InvitedUserID != actingUserID {
		if _, err := s.employee(ctx, companyID, actingUserID); err != nil {
			if apperror.IsKind(err, apperror.KindAuthorization) {
				return nil, ErrNoAccess
			}
			return nil, err
		}
	}
	return &Summary{CompanyEmployeeInvitation: *inv, EffectiveStatus: inv.EffectiveStatus(s.Now())}, nil
}

// List pages through a company's invitations, newest first. Employees only.
func (s *Service) List(ctx context.Context, in ListInput) ([]Summary, pagination.Meta, error) {
	if err := s.requireCompany(ctx, in.CompanyID); err != nil {
		return nil, pagination.Meta{}, err
	}
	if _, err := s.employee(ctx, in.CompanyID, in.ActorUserID); err != nil {
		return nil, pagination.Meta{}, err
	}
	rows, total, err := s.Store.Invitations().ListByCompany(ctx, in.CompanyID, in.Status, domain.Window{Skip: in.Page.Skip, Take: in.Page.Take})
	if err != nil {
		return nil, pagination.Meta{}, apperror.Internal(err)
	}
	now := s.Now()
	items := make([]Summary, 0, len(rows))
	for _, inv := range rows {
		items = append(items, Summary{CompanyEmployeeInvitation: inv, EffectiveStatus: inv.EffectiveStatus(now)})
	}
	return items, in.Page.Meta(total), nil
}

func (s *Service) transition(ctx context.Context, inv *domain.CompanyEmployeeInvitation, d Decision) (*Result, error) {
	if d.Outcome != Applied {
		return s.settle(inv, d)
	}
	if err := s.Store.Invitations().UpdateStatus(ctx, inv.ID, d.Next); err != nil {
		return nil, s.writeFailed(err, inv)
	}
	inv.Status = d.Next
	return &Result{Invitation: inv, Message: d.Message, Changed: true}, nil
}

func (s *Service) settle(inv *domain.CompanyEmployeeInvitation, d Decision) (*Result, error) {
	if d.Outcome == Rejected {
		return nil, d.Err
	}
	return &Result{Invitation: inv, Message: d.Message}, nil
}

func (s *Service) writeFailed(err error, inv *domain.CompanyEmployeeInvitation) error {
	if errors.Is(err, domain.ErrNotPending) {
		return ErrNoLongerPending
	}
	return apperror.Internal(fmt.Errorf("invitation %s: %w", inv.ID, err))
}

func (s *Service) view(inv *domain.CompanyEmployeeInvitation, actingUserID uuid.UUID) View {
	return View{
		Status:      inv.Status,
		Expired:     inv.IsExpiredAt(s.Now()),
		IsRecipient: inv.InvitedUserID == actingUserID,
	}
}

// load is find behind a live-company check.
func (s *Service) load(ctx context.Context, companyID, invitationID uuid.UUID) (*domain.CompanyEmployeeInvitation, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}
	return s.find(ctx, companyID, invitationID)
}

// find returns the invitation only when it belongs to companyID.
func (s *Service) find(ctx context.Context, companyID, invitationID uuid.UUID) (*domain.CompanyEmployeeInvitation, error) {
	inv, err := s.Store.Invitations().FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, apperror.Internal(err)
	}
	if inv.CompanyID != companyID {
		return nil, ErrInvitationNotFound
	}
	return inv, nil
}

func (s *Service) requireCompany(ctx context.Context, companyID uuid.UUID) error {
	if _, err := s.Store.Companies().FindByID(ctx, companyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrCompanyNotFound
		}
		return apperror.Internal(err)
	}
	return nil
}

func (s *Service) employee(ctx context.Context, companyID, userID uuid.UUID) (*domain.CompanyEmployee, error) {
	e, err := s.Store.Employees().FindByCompanyAndUser(ctx, companyID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrNotAnEmployee
		}
		return nil, apperror.Internal(err)
	}
	return e, nil
}
