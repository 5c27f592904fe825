package extract

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntax/pkg/errcode"
)

// UnknownRoleError creates an error for a role string outside the
// closed set.
func UnknownRoleError(role string) error {
	msg := `Unknown capture group role

<em>Role:</em> %s

<em>Valid roles:</em>
  * name
  * rank
  * info:<field>
  * discard`

	return &gn.Error{
		Code: errcode.ExtractUnknownRoleError,
		Msg:  msg,
		Vars: []any{role},
		Err:  fmt.Errorf("unknown role %q", role),
	}
}

// RoleCountError creates an error for a mismatch between the number
// of capture groups and the number of declared roles.
func RoleCountError(groups, roles int) error {
	msg := `Capture group count does not match role list

<em>Capture groups:</em> %d
<em>Roles declared:</em> %d

Each capture group of the extraction pattern needs exactly one role.`

	return &gn.Error{
		Code: errcode.ExtractRoleCountError,
		Msg:  msg,
		Vars: []any{groups, roles},
		Err: fmt.Errorf(
			"%d capture groups, %d roles", groups, roles,
		),
	}
}

// NoNameRoleError creates an error for a role list without a taxon
// name role.
func NoNameRoleError() error {
	msg := `No capture group carries the taxon name

Exactly one role in the list must be 'name'.`

	return &gn.Error{
		Code: errcode.ExtractNoNameRoleError,
		Msg:  msg,
		Err:  fmt.Errorf("no name role declared"),
	}
}

// DuplicateNameRoleError creates an error for a role list with more
// than one taxon name role.
func DuplicateNameRoleError() error {
	msg := `More than one capture group carries the taxon name

Exactly one role in the list must be 'name'.`

	return &gn.Error{
		Code: errcode.ExtractDuplicateNameRoleError,
		Msg:  msg,
		Err:  fmt.Errorf("duplicate name role"),
	}
}

// BadRegexpError creates an error for a pattern that does not compile.
func BadRegexpError(pattern string, err error) error {
	msg := `Cannot compile extraction pattern

<em>Pattern:</em> %s
<em>Problem:</em> %v`

	return &gn.Error{
		Code: errcode.ExtractBadRegexError,
		Msg:  msg,
		Vars: []any{pattern, err},
		Err:  fmt.Errorf("bad pattern %q: %w", pattern, err),
	}
}
