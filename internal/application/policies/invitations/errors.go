package policies

import "github.com/euRezerv/api-sub000/internal/pkg/apperror"

var (
	ErrInvitedUserNotFound     = apperror.NotFound("Invited user not found")
	ErrCannotInviteYourself    = apperror.Validation("You cannot invite yourself")
	ErrAlreadyEmployee         = apperror.Conflict("User is already an employee of this company")
	ErrPendingInvitationExists = apperror.Conflict("A pending invitation already exists for this user")
)
