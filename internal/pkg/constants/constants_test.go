package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" manager ")
	assert.True(t, ok)
	assert.Equal(t, Manager, r)

	_, ok = ParseRole("superadmin")
	assert.False(t, ok)
}

func TestParseDayOfWeek_CaseInsensitive(t *testing.T) {
	for _, in := range []string{"monday", "Monday", "MONDAY"} {
		d, ok := ParseDayOfWeek(in)
		assert.True(t, ok, in)
		assert.Equal(t, Monday, d)
	}
	_, ok := ParseDayOfWeek("funday")
	assert.False(t, ok)
}

func TestParseResourceCategory_CaseInsensitive(t *testing.T) {
	c, ok := ParseResourceCategory("vehicle")
	assert.True(t, ok)
	assert.Equal(t, CategoryVehicle, c)

	_, ok = ParseResourceCategory("spaceship")
	assert.False(t, ok)
}

func TestInvitationStatus_IsTerminal(t *testing.T) {
	assert.False(t, InvitationPending.IsTerminal())
	for _, s := range []InvitationStatus{InvitationAccepted, InvitationDeclined, InvitationCancelled, InvitationExpired} {
		assert.True(t, s.IsTerminal(), s)
	}
}
