package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermAtLeast(t *testing.T) {
	assert.True(t, PermOwner.AtLeast(PermAdministrator))
	assert.True(t, PermAdministrator.AtLeast(PermAdministrator))
	assert.False(t, PermMember.AtLeast(PermAdministrator))

	// Unknown values rank below everything real.
	assert.False(t, Perm("???").AtLeast(PermMember))
}

func TestGroupConfigEncodeParams(t *testing.T) {
	params := GroupConfig{Name: "testers", MuteAll: true}.EncodeParams()
	assert.Equal(t, "testers", params["name"])
	assert.NotContains(t, params, "announcement")
	assert.Equal(t, false, params["allowMemberInvite"])
}

func TestMemberInfoEncodeParams(t *testing.T) {
	params := MemberInfo{SpecialTitle: "helper"}.EncodeParams()
	assert.Equal(t, map[string]any{"specialTitle": "helper"}, params)
}

func TestMemberString(t *testing.T) {
	m := Member{
		ID:   789,
		Name: "alice",
		Group: Group{
			ID:   111,
			Name: "testers",
		},
	}
	assert.Equal(t, "alice(789 @ testers(111))", m.String())
}
