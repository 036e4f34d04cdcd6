package table

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const segmentFixture = `id,sign,startr,startc,endr,endc,count
A,+,5,2,5,4,3
B,-,1,9,3,9,1
`

func TestSegmentReader(t *testing.T) {
	r := NewSegmentReader(strings.NewReader(segmentFixture))
	require.NoError(t, r.SkipHeader())

	var got []Segment
	for {
		seg, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, seg)
	}

	want := []Segment{
		{ID: "A", Sign: "+", StartRow: "5", StartCol: "2", EndRow: "5", EndCol: "4", Count: "3", Line: 2},
		{ID: "B", Sign: "-", StartRow: "1", StartCol: "9", EndRow: "3", EndCol: "9", Count: "1", Line: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentReader_FieldsStayText(t *testing.T) {
	r := NewSegmentReader(strings.NewReader("h\nS1, ,05,2,5, 4,abc\n"))
	require.NoError(t, r.SkipHeader())

	seg, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "05", seg.StartRow)
	assert.Equal(t, " 4", seg.EndCol)
	assert.Equal(t, "abc", seg.Count)
}

func TestSegmentReader_HeaderOfAnyShape(t *testing.T) {
	r := NewSegmentReader(strings.NewReader("just one header field\nA,+,1,1,1,1,1\n"))
	require.NoError(t, r.SkipHeader())

	seg, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "A", seg.ID)
}

func TestSegmentReader_EmptyTable(t *testing.T) {
	r := NewSegmentReader(strings.NewReader(""))
	assert.ErrorIs(t, r.SkipHeader(), ErrNoHeader)
}

func TestSegmentReader_HeaderOnly(t *testing.T) {
	r := NewSegmentReader(strings.NewReader("id,sign,startr,startc,endr,endc,count\n"))
	require.NoError(t, r.SkipHeader())

	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestSegmentReader_Malformed(t *testing.T) {
	tests := []struct {
		name string
		row  string
		got  int
	}{
		{name: "too few fields", row: "A,+,5,2,5,4", got: 6},
		{name: "too many fields", row: "A,+,5,2,5,4,3,extra", got: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSegmentReader(strings.NewReader("header\n" + tt.row + "\n"))
			require.NoError(t, r.SkipHeader())

			_, err := r.Next()
			var mre *MalformedRowError
			require.True(t, errors.As(err, &mre), "expected MalformedRowError, got %v", err)
			assert.Equal(t, "segment", mre.Table)
			assert.Equal(t, 2, mre.Line)
			assert.Equal(t, tt.got, mre.Got)
			assert.Equal(t, 7, mre.Want)
			assert.Contains(t, mre.Error(), "segment table line 2")
		})
	}
}

func TestPinReader(t *testing.T) {
	r := NewPinReader(strings.NewReader("row,col,pin\n3,4,P7\n"))

	// The pin table has no header skip: the first row is a pin like any other.
	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, Pin{Row: "row", Col: "col", Pin: "pin", Line: 1}, first)

	second, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, Pin{Row: "3", Col: "4", Pin: "P7", Line: 2}, second)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestPinReader_Malformed(t *testing.T) {
	r := NewPinReader(strings.NewReader("1,2\n"))

	_, err := r.Next()
	var mre *MalformedRowError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, "pin", mre.Table)
	assert.Equal(t, 2, mre.Got)
	assert.Equal(t, 3, mre.Want)
}

func TestReader_LazyQuotes(t *testing.T) {
	r := NewPinReader(strings.NewReader("1,2,P\"1\n"))

	pin, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, `P"1`, pin.Pin)
}

// readAllSegments drains a segment table, returning the rows read before the first error.
func readAllSegments(t *testing.T, input string) ([]Segment, error) {
	t.Helper()
	r := NewSegmentReader(strings.NewReader(input))
	require.NoError(t, r.SkipHeader())

	var got []Segment
	for {
		seg, err := r.Next()
		if err == io.EOF {
			return got, nil
		}
		if err != nil {
			return got, err
		}
		got = append(got, seg)
	}
}

func TestSegmentReader_BlankLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRows int
		wantLine int
	}{
		{name: "between rows", input: "h\nA,+,5,2,5,3,1\n\nB,+,1,1,1,2,1\n", wantRows: 1, wantLine: 3},
		{name: "after last row", input: "h\nA,+,5,2,5,3,1\n\n", wantRows: 1, wantLine: 3},
		{name: "crlf after last row", input: "h\r\nA,+,5,2,5,3,1\r\n\r\n", wantRows: 1, wantLine: 3},
		{name: "first data row", input: "h\n\nA,+,5,2,5,3,1\n", wantRows: 0, wantLine: 2},
		{name: "after quoted multi-line field", input: "h\n\"A\nA\",+,5,2,5,3,1\n\nB,+,1,1,1,2,1\n", wantRows: 1, wantLine: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readAllSegments(t, tt.input)
			assert.Len(t, got, tt.wantRows)

			var mre *MalformedRowError
			require.ErrorAs(t, err, &mre)
			assert.Equal(t, "segment", mre.Table)
			assert.Equal(t, tt.wantLine, mre.Line)
			assert.Equal(t, 0, mre.Got)
			assert.Equal(t, 7, mre.Want)
		})
	}
}

func TestSegmentReader_NoTrailingNewline(t *testing.T) {
	got, err := readAllSegments(t, "h\nA,+,5,2,5,3,1\nB,+,1,1,1,2,1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[1].Line)
}

func TestSegmentReader_BlankHeader(t *testing.T) {
	// A blank first line is the header; the next line is the first row.
	got, err := readAllSegments(t, "\nA,+,5,2,5,3,1\n")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Line)
}

func TestPinReader_BlankLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPins int
		wantLine int
	}{
		{name: "between rows", input: "1,1,P1\n\n2,2,P2\n", wantPins: 1, wantLine: 2},
		{name: "after last row", input: "1,1,P1\n\n", wantPins: 1, wantLine: 2},
		{name: "only line", input: "\n", wantPins: 0, wantLine: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewPinReader(strings.NewReader(tt.input))

			pins := 0
			var err error
			for {
				if _, err = r.Next(); err != nil {
					break
				}
				pins++
			}
			assert.Equal(t, tt.wantPins, pins)

			var mre *MalformedRowError
			require.ErrorAs(t, err, &mre)
			assert.Equal(t, "pin", mre.Table)
			assert.Equal(t, tt.wantLine, mre.Line)
			assert.Equal(t, 0, mre.Got)
		})
	}
}
