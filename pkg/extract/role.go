package extract

import (
	"strings"
)

// RoleKind enumerates what a capture group's text becomes in a
// rank-segment tuple. The set is closed: dispatch happens once,
// at extraction time.
type RoleKind int

const (
	// DiscardRole drops the captured text.
	DiscardRole RoleKind = iota
	// NameRole assigns the captured text to the taxon name.
	// Exactly one capture group per tuple carries this role.
	NameRole
	// RankRole assigns the captured text to the taxon rank.
	RankRole
	// InfoRole assigns the captured text to a named info field.
	InfoRole
)

// Role binds a capture group to its function during extraction.
// Field is only meaningful for InfoRole.
type Role struct {
	Kind  RoleKind
	Field string
}

// Name returns the role for the taxon name capture group.
func Name() Role {
	return Role{Kind: NameRole}
}

// Rank returns the role for the taxon rank capture group.
func Rank() Role {
	return Role{Kind: RankRole}
}

// Info returns the role for a named info field capture group.
func Info(field string) Role {
	return Role{Kind: InfoRole, Field: field}
}

// Discard returns the role for an ignored capture group.
func Discard() Role {
	return Role{Kind: DiscardRole}
}

// ParseRole converts a CLI/YAML role string into a Role.
// Accepted forms: "name", "rank", "info:<field>", "discard".
func ParseRole(s string) (Role, error) {
	val := strings.ToLower(strings.TrimSpace(s))
	switch {
	case val == "name":
		return Name(), nil
	case val == "rank":
		return Rank(), nil
	case val == "discard":
		return Discard(), nil
	case strings.HasPrefix(val, "info:"):
		field := strings.TrimSpace(strings.TrimPrefix(val, "info:"))
		if field == "" {
			return Role{}, UnknownRoleError(s)
		}
		return Info(field), nil
	default:
		return Role{}, UnknownRoleError(s)
	}
}

// ParseRoles converts a list of role strings, preserving order.
func ParseRoles(ss []string) ([]Role, error) {
	res := make([]Role, len(ss))
	for i, s := range ss {
		role, err := ParseRole(s)
		if err != nil {
			return nil, err
		}
		res[i] = role
	}
	return res, nil
}

func (r Role) String() string {
	switch r.Kind {
	case NameRole:
		return "name"
	case RankRole:
		return "rank"
	case InfoRole:
		return "info:" + r.Field
	default:
		return "discard"
	}
}
