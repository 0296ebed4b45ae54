package policies

import (
	"context"
	"errors"
	"time"

	"github.com/euRezerv/api-sub000/internal/domain"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"

	"github.com/google/uuid"
)

// ValidateInviteCreation checks that sender may invite invitedUserID: the user exists, is not the sender,
// is not already an employee and has no live PENDING invitation from sender.
// A PENDING invitation whose expiresAt already passed does not block; it is returned so the caller can
// rewrite it to EXPIRED in the same unit of work as the new invitation.
func ValidateInviteCreation(ctx context.Context, store domain.Store, sender *domain.CompanyEmployee, invitedUserID uuid.UUID, now time.Time) (*domain.CompanyEmployeeInvitation, error) {
	if _, err := store.Users().FindByID(ctx, invitedUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvitedUserNotFound
		}
		return nil, apperror.Internal(err)
	}

	if invitedUserID == sender.EmployeeID {
		return nil, ErrCannotInviteYourself
	}

	_, err := store.Employees().FindByCompanyAndUser(ctx, sender.CompanyID, invitedUserID)
	switch {
	case err == nil:
		return nil, ErrAlreadyEmployee
	case !errors.Is(err, domain.ErrNotFound):
		return nil, apperror.Internal(err)
	}

	pending, err := store.Invitations().FindPending(ctx, sender.ID, invitedUserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, apperror.Internal(err)
	}
	if pending.IsExpiredAt(now) {
		return pending, nil
	}
	return nil, ErrPendingInvitationExists
}
