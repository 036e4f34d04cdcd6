// Package table reads the two CSV inputs of a gridcells run: the segment
// table and the pin table. Every field is kept as text; interpreting the
// values is the expander's job.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
)

const (
	segmentFields = 7
	pinFields     = 3
)

// Segment is one row of the segment table.
type Segment struct {
	ID       string
	Sign     string
	StartRow string
	StartCol string
	EndRow   string
	EndCol   string
	Count    string

	// Line is the 1-based line the row started on.
	Line int
}

// Pin is one row of the pin table. Pins are read in step with segments but
// none of their fields take part in the expansion.
type Pin struct {
	Row string
	Col string
	Pin string

	Line int
}

// rowReader wraps csv.Reader with a fixed field count check. The count is
// checked by hand rather than through FieldsPerRecord so that the segment
// header can have any shape.
//
// csv.Reader drops empty lines. rowReader puts them back as rows with no
// fields, so a blank line takes up a step like any other row and fails the
// field count check.
type rowReader struct {
	name  string
	want  int
	csv   *csv.Reader
	lines *lineIndex

	// nextLine is the line the next row starts on.
	nextLine int
	// pending is a record already read from csv that starts after one or
	// more blank lines.
	pending *record
}

type record struct {
	fields []string
	line   int
	// next is the line following the record.
	next int
}

func newRowReader(name string, want int, r io.Reader) *rowReader {
	lines := &lineIndex{r: r}
	cr := csv.NewReader(lines)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &rowReader{name: name, want: want, csv: cr, lines: lines, nextLine: 1}
}

// read returns the next row and its starting line. A blank line is a row
// with no fields.
func (r *rowReader) read() ([]string, int, error) {
	if r.pending == nil {
		fields, err := r.csv.Read()
		if err == io.EOF {
			if r.nextLine <= r.lines.count() {
				line := r.nextLine
				r.nextLine++
				return []string{}, line, nil
			}
			return nil, 0, io.EOF
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read %s table: %w", r.name, err)
		}
		line, _ := r.csv.FieldPos(0)
		r.pending = &record{
			fields: fields,
			line:   line,
			next:   r.lines.before(r.csv.InputOffset()) + 1,
		}
	}

	if r.pending.line > r.nextLine {
		line := r.nextLine
		r.nextLine++
		return []string{}, line, nil
	}
	rec := r.pending
	r.pending = nil
	r.nextLine = rec.next
	return rec.fields, rec.line, nil
}

// next returns the next row, checking its field count when check is set.
func (r *rowReader) next(check bool) ([]string, int, error) {
	fields, line, err := r.read()
	if err != nil {
		return nil, line, err
	}
	if check && len(fields) != r.want {
		return nil, line, &MalformedRowError{Table: r.name, Line: line, Got: len(fields), Want: r.want}
	}
	return fields, line, nil
}

// lineIndex records the offset of every newline that passes through it.
type lineIndex struct {
	r        io.Reader
	off      int64
	newlines []int64
}

func (l *lineIndex) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	for i, b := range p[:n] {
		if b == '\n' {
			l.newlines = append(l.newlines, l.off+int64(i))
		}
	}
	l.off += int64(n)
	return n, err
}

// before returns the number of newlines ahead of offset.
func (l *lineIndex) before(offset int64) int {
	i, _ := slices.BinarySearch(l.newlines, offset)
	return i
}

// count returns the number of newline-terminated lines seen so far.
func (l *lineIndex) count() int {
	return len(l.newlines)
}

// SegmentReader reads segment rows.
type SegmentReader struct {
	rows *rowReader
}

// NewSegmentReader returns a reader for a segment table.
func NewSegmentReader(r io.Reader) *SegmentReader {
	return &SegmentReader{rows: newRowReader("segment", segmentFields, r)}
}

// SkipHeader discards the first row whatever its shape, including a blank
// one. It must be called once before the first Next.
func (s *SegmentReader) SkipHeader() error {
	_, _, err := s.rows.next(false)
	if err == io.EOF {
		return ErrNoHeader
	}
	return err
}

// Next returns the next segment, or io.EOF when the table is exhausted.
func (s *SegmentReader) Next() (Segment, error) {
	rec, line, err := s.rows.next(true)
	if err != nil {
		return Segment{}, err
	}
	return Segment{
		ID:       rec[0],
		Sign:     rec[1],
		StartRow: rec[2],
		StartCol: rec[3],
		EndRow:   rec[4],
		EndCol:   rec[5],
		Count:    rec[6],
		Line:     line,
	}, nil
}

// PinReader reads pin rows.
type PinReader struct {
	rows *rowReader
}

// NewPinReader returns a reader for a pin table.
func NewPinReader(r io.Reader) *PinReader {
	return &PinReader{rows: newRowReader("pin", pinFields, r)}
}

// Next returns the next pin, or io.EOF when the table is exhausted.
func (p *PinReader) Next() (Pin, error) {
	rec, line, err := p.rows.next(true)
	if err != nil {
		return Pin{}, err
	}
	return Pin{Row: rec[0], Col: rec[1], Pin: rec[2], Line: line}, nil
}
