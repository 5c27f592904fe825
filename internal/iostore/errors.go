package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntax/pkg/errcode"
)

// OpenError creates an error for a taxonomy file that cannot be
// opened.
func OpenError(path string, err error) error {
	msg := `Cannot open taxonomy file

<em>File:</em> %s
<em>Problem:</em> %v`

	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: []any{path, err},
		Err:  fmt.Errorf("cannot open %s: %w", path, err),
	}
}

// SchemaError creates an error for a failed schema initialization.
func SchemaError(err error) error {
	msg := "Cannot initialize taxonomy schema"

	return &gn.Error{
		Code: errcode.StoreSchemaError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot init schema: %w", err),
	}
}

// SaveError creates an error for a failed write of an entity.
func SaveError(entity string, err error) error {
	msg := `Cannot save <em>%s</em> to taxonomy file`

	return &gn.Error{
		Code: errcode.StoreSaveError,
		Msg:  msg,
		Vars: []any{entity},
		Err:  fmt.Errorf("cannot save %s: %w", entity, err),
	}
}

// LoadError creates an error for a failed read of an entity.
func LoadError(entity string, err error) error {
	msg := `Cannot load <em>%s</em> from taxonomy file`

	return &gn.Error{
		Code: errcode.StoreLoadError,
		Msg:  msg,
		Vars: []any{entity},
		Err:  fmt.Errorf("cannot load %s: %w", entity, err),
	}
}

// NotFoundError creates an error for a dataset missing from the
// taxonomy file.
func NotFoundError(name string) error {
	msg := `No such dataset in taxonomy file

<em>Dataset:</em> %s

Use 'gntax query datasets' to list attached datasets.`

	return &gn.Error{
		Code: errcode.StoreNotFoundError,
		Msg:  msg,
		Vars: []any{name},
		Err:  fmt.Errorf("no dataset %q", name),
	}
}
