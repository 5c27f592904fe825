package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Extractor configuration errors
	ExtractRoleCountError
	ExtractNoNameRoleError
	ExtractDuplicateNameRoleError
	ExtractUnknownRoleError
	ExtractBadRegexError
	ExtractMissingColumnError

	// Dataset mapping errors
	MappingRowWidthError
	MappingNoRulesError
	MappingBadSelectorError
	MappingLengthMismatchError
	MappingMissingColumnError
	MappingAmbiguousMatchError

	// Input errors
	InputReadError
	InputEmptyError

	// Store errors
	StoreOpenError
	StoreSchemaError
	StoreSaveError
	StoreLoadError
	StoreNotFoundError
)
