package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRoleIsCaseInsensitive(t *testing.T) {
	names := []string{"Red", "NIR", "Blue", "Green"}

	idx, ok := ResolveRole(names, RoleNIR)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = ResolveRole(names, Role("NiR"))
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = ResolveRole(names, RoleGreen)
	assert.True(t, ok)
	assert.Equal(t, 3, idx)
}

func TestResolveRoleLastDuplicateWins(t *testing.T) {
	idx, ok := ResolveRole([]string{"red", "RED", "x"}, RoleRed)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestResolveRolePositionalFallback(t *testing.T) {
	names := []string{"Band 1", "Band 2", "Band 3", "Band 4"}
	m := NewBandRoleMap(names)

	for role, want := range map[Role]int{RoleRed: 0, RoleGreen: 1, RoleBlue: 2, RoleNIR: 3} {
		idx, ok := m.Resolve(role)
		assert.True(t, ok, role)
		assert.Equal(t, want, idx, role)
	}

	_, ok := m.Resolve(RoleSWIR)
	assert.False(t, ok, "swir needs a fifth band")
}

func TestResolveRoleUnavailable(t *testing.T) {
	_, ok := ResolveRole([]string{"a", "b", "c"}, RoleNIR)
	assert.False(t, ok)

	_, ok = ResolveRole([]string{"a", "b"}, RoleBlue)
	assert.False(t, ok)

	idx, ok := ResolveRole([]string{"a", "b", "c", "d", "e"}, RoleSWIR)
	assert.True(t, ok)
	assert.Equal(t, 4, idx)
}
