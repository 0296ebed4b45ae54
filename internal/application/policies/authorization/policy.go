// Package authorization maps an employee role to what it may do inside its company.
package authorization

import "github.com/euRezerv/api-sub000/internal/pkg/constants"

// Capabilities is the set of elevated actions a role grants.
type Capabilities struct {
	CanInviteEmployeeToCompany           bool `json:"canInviteEmployeeToCompany"`
	CanCancelEmployeeToCompanyInvitation bool `json:"canCancelEmployeeToCompanyInvitation"`
	CanCreateResource                    bool `json:"canCreateResource"`
}

var capabilities = map[constants.Role]Capabilities{
	constants.Owner: {
		CanInviteEmployeeToCompany:           true,
		CanCancelEmployeeToCompanyInvitation: true,
		CanCreateResource:                    true,
	},
	constants.Manager: {
		CanCreateResource: true,
	},
	constants.Regular: {},
}

// CapabilitiesFor returns the capabilities of role. Unknown roles get none.
func CapabilitiesFor(role constants.Role) Capabilities {
	return capabilities[role]
}
