package grid

import (
	"errors"
	"fmt"
)

// ErrIsDirectory is the cause of a MissingFileError for an input path that
// names a directory.
var ErrIsDirectory = errors.New("is a directory")

// MissingFileError reports an input table that could not be opened or read.
type MissingFileError struct {
	Path string
	Err  error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("open input %s: %v", e.Path, e.Err)
}

func (e *MissingFileError) Unwrap() error { return e.Err }

// ParseError reports a segment field that had to be an integer and was not.
// Field is the column name (count, start_row, start_col, end_row, end_col).
type ParseError struct {
	Field string
	Value string
	Line  int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("segment table line %d: %s %q is not an integer", e.Line, e.Field, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }
