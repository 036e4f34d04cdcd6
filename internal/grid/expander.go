package grid

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/banshee-data/gridcells/internal/fsutil"
	"github.com/banshee-data/gridcells/internal/monitoring"
	"github.com/banshee-data/gridcells/internal/table"
)

// Expander walks the segment and pin tables in lockstep and emits the cells
// of every counted straight segment to Sink.
//
// One pin row is consumed for every segment row. The pin fields are never
// used, but the pin table still bounds the run: expansion stops as soon as
// either table runs out.
type Expander struct {
	FS           fsutil.FileSystem
	SegmentTable string
	PinTable     string
	Sink         Sink
}

// NewExpander returns an Expander reading both tables from fsys.
func NewExpander(fsys fsutil.FileSystem, segmentTable, pinTable string, sink Sink) *Expander {
	return &Expander{
		FS:           fsys,
		SegmentTable: segmentTable,
		PinTable:     pinTable,
		Sink:         sink,
	}
}

// Run performs one pass over the tables. Any error ends the run at once;
// cells emitted before the failing row are not retracted. The returned
// Summary covers the rows processed up to that point.
func (e *Expander) Run() (Summary, error) {
	var t tally

	segFile, err := e.openInput(e.SegmentTable)
	if err != nil {
		return t.summary(), err
	}
	defer segFile.Close()

	segments := table.NewSegmentReader(segFile)
	if err := segments.SkipHeader(); err != nil {
		return t.summary(), readError(e.SegmentTable, err)
	}

	pinFile, err := e.openInput(e.PinTable)
	if err != nil {
		return t.summary(), err
	}
	defer pinFile.Close()

	pins := table.NewPinReader(pinFile)

	for {
		if _, err := pins.Next(); err == io.EOF {
			monitoring.Logf("pin table %s exhausted after %d rows", e.PinTable, t.PinsRead)
			break
		} else if err != nil {
			return t.summary(), readError(e.PinTable, err)
		}
		t.PinsRead++

		seg, err := segments.Next()
		if err == io.EOF {
			monitoring.Logf("segment table %s exhausted after %d rows", e.SegmentTable, t.SegmentsRead)
			break
		} else if err != nil {
			return t.summary(), readError(e.SegmentTable, err)
		}
		t.SegmentsRead++

		emitted := 0
		orientation, err := walk(seg, func(c Cell) error {
			if err := e.Sink.Emit(c); err != nil {
				return fmt.Errorf("emit %s: %w", c, err)
			}
			emitted++
			t.CellsEmitted++
			return nil
		})
		if err != nil {
			return t.summary(), err
		}
		t.record(orientation, emitted)

		if orientation == Diagonal || orientation == NotCounted {
			monitoring.Logf("segment %s (line %d) skipped: %s", seg.ID, seg.Line, orientation)
		}
	}

	s := t.summary()
	monitoring.Logf("expansion complete: %s", s)
	return s, nil
}

// openInput opens one of the input tables. Paths that do not exist, cannot
// be opened or name a directory all become a MissingFileError.
func (e *Expander) openInput(path string) (fs.File, error) {
	info, err := e.FS.Stat(path)
	if err != nil {
		return nil, &MissingFileError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &MissingFileError{Path: path, Err: ErrIsDirectory}
	}
	f, err := e.FS.Open(path)
	if err != nil {
		return nil, &MissingFileError{Path: path, Err: err}
	}
	return f, nil
}

// readError classifies an error from reading an input table. Failures of
// the file itself become a MissingFileError; row errors pass through with
// the path attached.
func readError(path string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return &MissingFileError{Path: path, Err: err}
	}
	return fmt.Errorf("%s: %w", path, err)
}
