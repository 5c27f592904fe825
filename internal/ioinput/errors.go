package ioinput

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntax/pkg/errcode"
)

// ReadError creates an error for an unreadable or malformed input
// file.
func ReadError(path string, err error) error {
	msg := `Cannot read input file

<em>File:</em> %s
<em>Problem:</em> %v`

	return &gn.Error{
		Code: errcode.InputReadError,
		Msg:  msg,
		Vars: []any{path, err},
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

// EmptyError creates an error for an input file with no records.
func EmptyError(path string) error {
	msg := `Input file has no records

<em>File:</em> %s`

	return &gn.Error{
		Code: errcode.InputEmptyError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("no records in %s", path),
	}
}

// MissingColumnError creates an error for a configured column the
// input file does not have.
func MissingColumnError(path, column string) error {
	msg := `Input file has no such column

<em>File:</em> %s
<em>Column:</em> %s

Check the column flags against the file's header row.`

	return &gn.Error{
		Code: errcode.ExtractMissingColumnError,
		Msg:  msg,
		Vars: []any{path, column},
		Err: fmt.Errorf(
			"input %s: no column %q", path, column,
		),
	}
}
