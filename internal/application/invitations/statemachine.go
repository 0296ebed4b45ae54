package invitations

import (
	policies "github.com/euRezerv/api-sub000/internal/application/policies/invitations"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"
	"github.com/euRezerv/api-sub000/internal/pkg/constants"
)

// Operation is one of the mutating invitation transitions.
type Operation string

const (
	OpAccept  Operation = "accept"
	OpDecline Operation = "decline"
	OpCancel  Operation = "cancel"
)

// Outcome says what a transition does with the invitation.
type Outcome int

const (
	// Applied writes Decision.Next.
	Applied Outcome = iota
	// Unchanged is a non-error answer; the invitation is returned as stored.
	Unchanged
	// Rejected fails with Decision.Err.
	Rejected
)

// View is everything a guard may look at. Expired is the time-based check (expiresAt < now).
type View struct {
	Status      constants.InvitationStatus
	Expired     bool
	IsRecipient bool
	IsEmployee  bool
}

type Decision struct {
	Outcome Outcome
	Message string
	Err     *apperror.Error
	Next    constants.InvitationStatus
}

type guard func(View) bool

type rule struct {
	when     guard
	decision Decision
}

func status(s constants.InvitationStatus) guard {
	return func(v View) bool { return v.Status == s }
}

func expired(v View) bool      { return v.Expired }
func notRecipient(v View) bool { return !v.IsRecipient }
func isEmployee(v View) bool   { return v.IsEmployee }
func always(View) bool         { return true }

func apply(next constants.InvitationStatus, msg string) Decision {
	return Decision{Outcome: Applied, Message: msg, Next: next}
}

func unchanged(msg string) Decision {
	return Decision{Outcome: Unchanged, Message: msg}
}

func reject(err *apperror.Error) Decision {
	return Decision{Outcome: Rejected, Message: err.Message, Err: err}
}

// Rules are evaluated top to bottom; the first match wins. Accept and Decline check the
// stored ACCEPTED state and the time-based expiry in opposite orders, and Cancel answers
// already-terminal invitations without an error. Keep it that way unless product says otherwise.
var tables = map[Operation][]rule{
	OpAccept: {
		{status(constants.InvitationAccepted), unchanged(MsgAlreadyAccepted)},
		{expired, reject(ErrExpired)},
		{status(constants.InvitationDeclined), reject(ErrAlreadyRejected)},
		{status(constants.InvitationCancelled), reject(ErrAlreadyCancelled)},
		{status(constants.InvitationExpired), reject(ErrExpired)},
		{notRecipient, reject(ErrNotRecipient)},
		{isEmployee, reject(policies.ErrAlreadyEmployee)},
		{always, apply(constants.InvitationAccepted, MsgAccepted)},
	},
	OpDecline: {
		{expired, reject(ErrExpired)},
		{status(constants.InvitationAccepted), reject(ErrAlreadyAccepted)},
		{status(constants.InvitationDeclined), reject(ErrAlreadyRejected)},
		{status(constants.InvitationCancelled), reject(ErrAlreadyCancelled)},
		{status(constants.InvitationExpired), reject(ErrExpired)},
		{notRecipient, reject(ErrNotRecipient)},
		{always, apply(constants.InvitationDeclined, MsgDeclined)},
	},
	OpCancel: {
		{status(constants.InvitationDeclined), unchanged(MsgAlreadyRejected)},
		{status(constants.InvitationCancelled), unchanged(MsgAlreadyCancelled)},
		{status(constants.InvitationExpired), unchanged(MsgExpired)},
		{expired, unchanged(MsgExpired)},
		{status(constants.InvitationAccepted), reject(ErrAlreadyAccepted)},
		{always, apply(constants.InvitationCancelled, MsgCancelled)},
	},
}

// Decide runs the transition table of op against v.
func Decide(op Operation, v View) Decision {
	for _, r := range tables[op] {
		if r.when(v) {
			return r.decision
		}
	}
	// unknown operation
	return reject(apperror.Validation("Unsupported invitation operation"))
}
