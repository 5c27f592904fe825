package dataset

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntax/pkg/errcode"
)

// RowWidthError creates an error for a row whose value count differs
// from the column count.
func RowWidthError(name string, row, columns, values int) error {
	msg := `Dataset row does not match its columns

<em>Dataset:</em> %s
<em>Row:</em> %d
<em>Columns:</em> %d
<em>Values:</em> %d`

	return &gn.Error{
		Code: errcode.MappingRowWidthError,
		Msg:  msg,
		Vars: []any{name, row, columns, values},
		Err: fmt.Errorf(
			"dataset %q row %d: %d values for %d columns",
			name, row, values, columns,
		),
	}
}

// NoRulesError creates an error for an attachment without mapping
// rules.
func NoRulesError(name string) error {
	msg := `No mapping rules for dataset

<em>Dataset:</em> %s

At least one (source, destination) rule is required to locate the
dataset's rows against the primary records.`

	return &gn.Error{
		Code: errcode.MappingNoRulesError,
		Msg:  msg,
		Vars: []any{name},
		Err:  fmt.Errorf("dataset %q: no mapping rules", name),
	}
}

// BadSelectorError creates an error for a malformed mapping rule.
func BadSelectorError(name string, rule Rule, reason string) error {
	msg := `Bad mapping rule for dataset

<em>Dataset:</em> %s
<em>Rule:</em> (%s -> %s)
<em>Problem:</em> %s`

	return &gn.Error{
		Code: errcode.MappingBadSelectorError,
		Msg:  msg,
		Vars: []any{name, rule.Source, rule.Destination, reason},
		Err: fmt.Errorf(
			"dataset %q rule (%s -> %s): %s",
			name, rule.Source, rule.Destination, reason,
		),
	}
}

// MissingColumnError creates an error for a rule referencing a column
// the dataset does not have.
func MissingColumnError(name, column string) error {
	msg := `Mapping rule references a missing column

<em>Dataset:</em> %s
<em>Column:</em> %s`

	return &gn.Error{
		Code: errcode.MappingMissingColumnError,
		Msg:  msg,
		Vars: []any{name, column},
		Err: fmt.Errorf(
			"dataset %q: no column %q", name, column,
		),
	}
}

// LengthMismatchError creates an error for positional mapping between
// collections of different lengths.
func LengthMismatchError(name string, rows, records int) error {
	msg := `Positional mapping requires equal lengths

<em>Dataset:</em> %s
<em>Dataset rows:</em> %d
<em>Primary records:</em> %d

The {{index}} destination aligns rows with records one to one.`

	return &gn.Error{
		Code: errcode.MappingLengthMismatchError,
		Msg:  msg,
		Vars: []any{name, rows, records},
		Err: fmt.Errorf(
			"dataset %q: %d rows vs %d records", name, rows, records,
		),
	}
}

// AmbiguousMatchError creates an error for a row matching several
// primary records under the strict ambiguity policy.
func AmbiguousMatchError(name string, row, count int) error {
	msg := `Dataset row matches several primary records

<em>Dataset:</em> %s
<em>Row:</em> %d
<em>Matches:</em> %d

The ambiguity policy is 'strict'. Switch to 'first' to take the
earliest match in record order.`

	return &gn.Error{
		Code: errcode.MappingAmbiguousMatchError,
		Msg:  msg,
		Vars: []any{name, row, count},
		Err: fmt.Errorf(
			"dataset %q row %d: %d matches", name, row, count,
		),
	}
}
