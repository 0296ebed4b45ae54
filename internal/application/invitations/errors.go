package invitations

import "github.com/euRezerv/api-sub000/internal/pkg/apperror"

const (
	MsgAccepted         = "Invitation accepted"
	MsgDeclined         = "Invitation declined"
	MsgCancelled        = "Invitation cancelled"
	MsgAlreadyAccepted  = "Invitation already accepted"
	MsgAlreadyRejected  = "Invitation already rejected"
	MsgAlreadyCancelled = "Invitation already cancelled"
	MsgExpired          = "Invitation expired"
)

var (
	ErrCompanyNotFound    = apperror.NotFound("Company not found")
	ErrInvitationNotFound = apperror.NotFound("Invitation not found")
	ErrNotAnEmployee      = apperror.Forbidden("You are not an employee of this company")
	ErrCannotInvite       = apperror.Forbidden("You are not allowed to invite employees to this company")
	ErrCannotCancel       = apperror.Forbidden("You are not allowed to cancel invitations of this company")
	ErrNoAccess           = apperror.Forbidden("You do not have access to this invitation")
	ErrInvalidRole        = apperror.Validation("Invalid role")

	ErrAlreadyAccepted  = apperror.State(MsgAlreadyAccepted)
	ErrAlreadyRejected  = apperror.State(MsgAlreadyRejected)
	ErrAlreadyCancelled = apperror.State(MsgAlreadyCancelled)
	ErrExpired          = apperror.State(MsgExpired)
	ErrNotRecipient     = apperror.Forbidden("No invitation for this user")
	// ErrNoLongerPending is returned when another request moved the invitation out of PENDING first.
	ErrNoLongerPending = apperror.State("Invitation is no longer pending")
)
