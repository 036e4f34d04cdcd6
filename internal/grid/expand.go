// Package grid expands straight segments of a grid layout into the
// individual cells they cover.
package grid

import (
	"errors"
	"math/big"
	"strconv"
	"strings"

	"github.com/banshee-data/gridcells/internal/table"
)

// Cell is one emitted grid cell. Row and Col hold the text written to the
// output: the fixed axis keeps the segment's original spelling (so "05"
// stays "05") and the varying axis is a decimal integer.
type Cell struct {
	Row string
	Col string
	ID  string
}

// String formats the cell as "<row>,<col>,<id>".
func (c Cell) String() string {
	return c.Row + "," + c.Col + "," + c.ID
}

// Orientation classifies what the expander did with a segment.
type Orientation int

const (
	// NotCounted is a segment whose count is zero or negative.
	NotCounted Orientation = iota
	// Horizontal is a segment with equal start and end rows.
	Horizontal
	// Vertical is a segment with equal start and end columns.
	Vertical
	// Diagonal is a counted segment that is neither horizontal nor vertical.
	// It is dropped without error.
	Diagonal
)

func (o Orientation) String() string {
	switch o {
	case NotCounted:
		return "not-counted"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Diagonal:
		return "diagonal"
	default:
		return "unknown"
	}
}

// Expand returns every cell covered by seg, in emission order. Segments
// with a non-positive count or a diagonal shape expand to nothing.
func Expand(seg table.Segment) ([]Cell, error) {
	var cells []Cell
	_, err := walk(seg, func(c Cell) error {
		cells = append(cells, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cells, nil
}

// walk parses what seg needs and calls fn for each covered cell. All parsing
// happens before the first call, so a bad loop bound emits nothing.
func walk(seg table.Segment, fn func(Cell) error) (Orientation, error) {
	count, err := parseCount(seg)
	if err != nil {
		return NotCounted, err
	}
	if count <= 0 {
		return NotCounted, nil
	}

	// Orientation is decided on the raw text, rows first.
	switch {
	case seg.StartRow == seg.EndRow:
		from, to, err := bounds(seg, "start_col", seg.StartCol, "end_col", seg.EndCol)
		if err != nil {
			return Horizontal, err
		}
		return Horizontal, span(from, to, func(j int) error {
			return fn(Cell{Row: seg.StartRow, Col: strconv.Itoa(j), ID: seg.ID})
		})

	case seg.StartCol == seg.EndCol:
		from, to, err := bounds(seg, "start_row", seg.StartRow, "end_row", seg.EndRow)
		if err != nil {
			return Vertical, err
		}
		return Vertical, span(from, to, func(j int) error {
			return fn(Cell{Row: strconv.Itoa(j), Col: seg.StartCol, ID: seg.ID})
		})
	}

	return Diagonal, nil
}

// span calls fn for every integer in [from, to]. An inverted range is empty.
func span(from, to int, fn func(int) error) error {
	if from > to {
		return nil
	}
	for j := from; ; j++ {
		if err := fn(j); err != nil {
			return err
		}
		if j == to {
			return nil
		}
	}
}

func bounds(seg table.Segment, fromName, fromText, toName, toText string) (int, int, error) {
	from, err := parseInt(fromName, fromText, seg.Line)
	if err != nil {
		return 0, 0, err
	}
	to, err := parseInt(toName, toText, seg.Line)
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

// parseCount parses the count field. Only its sign matters, so a count
// too large for an int is reduced to its sign instead of failing.
func parseCount(seg table.Segment) (int, error) {
	n, err := parseInt("count", seg.Count, seg.Line)
	if err == nil || !errors.Is(err, strconv.ErrRange) {
		return n, err
	}
	var b big.Int
	if _, ok := b.SetString(strings.TrimSpace(seg.Count), 10); !ok {
		return 0, err
	}
	return b.Sign(), nil
}

// parseInt accepts an optional sign and surrounding whitespace.
func parseInt(field, value string, line int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &ParseError{Field: field, Value: value, Line: line, Err: err}
	}
	return n, nil
}
