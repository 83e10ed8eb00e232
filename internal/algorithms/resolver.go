// Semantic band role lookup by name with positional fallback
package algorithms

import "strings"

// Role is a semantic band role used by the spectral filters.
type Role string

const (
	RoleRed   Role = "red"
	RoleGreen Role = "green"
	RoleBlue  Role = "blue"
	RoleNIR   Role = "nir"
	RoleSWIR  Role = "swir"
)

// roleFallback is the positional index tried when no band carries the role's name.
var roleFallback = map[Role]int{
	RoleRed:   0,
	RoleGreen: 1,
	RoleBlue:  2,
	RoleNIR:   3,
	RoleSWIR:  4,
}

// BandRoleMap maps lower-cased band names to band indices.
type BandRoleMap struct {
	byName    map[string]int
	bandCount int
}

// NewBandRoleMap indexes names case-insensitively. When a name repeats, the
// last occurrence wins.
func NewBandRoleMap(names []string) BandRoleMap {
	m := BandRoleMap{byName: make(map[string]int, len(names)), bandCount: len(names)}
	for i, name := range names {
		m.byName[strings.ToLower(name)] = i
	}
	return m
}

// Resolve returns the band index for role, or false if neither a named band
// nor the positional fallback exists.
func (m BandRoleMap) Resolve(role Role) (int, bool) {
	if idx, ok := m.byName[strings.ToLower(string(role))]; ok && idx < m.bandCount {
		return idx, true
	}
	idx, ok := roleFallback[role]
	if !ok || idx >= m.bandCount {
		return 0, false
	}
	return idx, true
}

// ResolveRole is a one-shot Resolve over a band name list.
func ResolveRole(names []string, role Role) (int, bool) {
	return NewBandRoleMap(names).Resolve(role)
}
