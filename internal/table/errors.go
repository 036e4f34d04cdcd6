package table

import (
	"errors"
	"fmt"
)

// ErrNoHeader is returned by SkipHeader when the segment table is empty.
var ErrNoHeader = errors.New("segment table has no header row")

// MalformedRowError reports a row whose field count does not match its table.
type MalformedRowError struct {
	Table string
	Line  int
	Got   int
	Want  int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s table line %d: got %d fields, want %d", e.Table, e.Line, e.Got, e.Want)
}
