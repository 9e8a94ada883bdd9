package access

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtLeastFollowsTotalOrder(t *testing.T) {
	roles := Roles()
	for i, actual := range roles {
		for j, required := range roles {
			assert.Equal(t, i >= j, AtLeast(actual, required), "%s >= %s", actual, required)
		}
	}
}

func TestAtLeastTreatsOutOfRangeAsPublic(t *testing.T) {
	assert.False(t, AtLeast(Role(42), RoleUser))
	assert.True(t, AtLeast(Role(-1), RolePublic))
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"public":    RolePublic,
		"user":      RoleUser,
		" Employee": RoleEmployee,
		"ADMIN":     RoleAdmin,
		"":          RolePublic,
		"superuser": RolePublic,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseRole(in), in)
	}
}

func TestRoleJSONUsesLowercaseName(t *testing.T) {
	raw, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{RoleEmployee})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"employee"}`, string(raw))

	var decoded struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"nobody"}`), &decoded))
	assert.Equal(t, RolePublic, decoded.Role)
}
