// Package importer implements the bulk-upload pipeline: parse an uploaded
// CSV/XLSX file into raw rows, map source headers onto canonical fields,
// then validate and materialize each row. Parse and mapping failures abort
// the import; row-level validation never does — every row comes back with
// its own error map so the caller can render inline errors.
package importer

import (
	"fmt"
	"strings"
)

// ParseError reports a file that could not be decoded at all: unsupported
// extension, malformed CSV quoting, corrupt XLSX archive. Fatal to the
// import attempt; no partial rows are returned.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// MappingError reports required canonical fields with no resolved source
// column. Fatal to the import attempt; validation never runs.
type MappingError struct {
	Missing []string
}

func (e *MappingError) Error() string {
	return "unmapped required fields: " + strings.Join(e.Missing, ", ")
}
