package constants

import "strings"

// InvitationStatus is the stored lifecycle status of a company invitation.
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "PENDING"
	InvitationAccepted  InvitationStatus = "ACCEPTED"
	InvitationDeclined  InvitationStatus = "DECLINED"
	InvitationCancelled InvitationStatus = "CANCELLED"
	InvitationExpired   InvitationStatus = "EXPIRED"
)

var ValidInvitationStatuses = []InvitationStatus{
	InvitationPending, InvitationAccepted, InvitationDeclined, InvitationCancelled, InvitationExpired,
}

// IsTerminal reports whether no further transition is allowed from s.
func (s InvitationStatus) IsTerminal() bool {
	return s != InvitationPending
}

// ParseInvitationStatus accepts any casing and returns the canonical status.
func ParseInvitationStatus(s string) (InvitationStatus, bool) {
	st := InvitationStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range ValidInvitationStatuses {
		if v == st {
			return st, true
		}
	}
	return "", false
}
