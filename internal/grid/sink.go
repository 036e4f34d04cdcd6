package grid

import (
	"fmt"
	"io"

	"github.com/banshee-data/gridcells/internal/fsutil"
)

// Sink receives emitted cells in order.
type Sink interface {
	Emit(c Cell) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(c Cell) error

// Emit calls f(c).
func (f SinkFunc) Emit(c Cell) error { return f(c) }

// AppendFileSink appends one line per cell to a file. The file is opened,
// written and closed again for every cell, so a run that fails part way
// leaves the lines emitted so far on disk and nothing else.
type AppendFileSink struct {
	FS   fsutil.FileSystem
	Path string
}

// NewAppendFileSink returns an AppendFileSink writing to path on fsys.
func NewAppendFileSink(fsys fsutil.FileSystem, path string) *AppendFileSink {
	return &AppendFileSink{FS: fsys, Path: path}
}

// Emit appends "<row>,<col>,<id>\n" to the file.
func (s *AppendFileSink) Emit(c Cell) error {
	if err := s.FS.Append(s.Path, []byte(c.String()+"\n")); err != nil {
		return fmt.Errorf("append to %s: %w", s.Path, err)
	}
	return nil
}

// DisplaySink echoes cells to a console stream.
type DisplaySink struct {
	W io.Writer
}

// Emit writes the cell on its own line.
func (s DisplaySink) Emit(c Cell) error {
	_, err := fmt.Fprintln(s.W, c.String())
	return err
}

// Recorder keeps every emitted cell in memory.
type Recorder struct {
	Cells []Cell
}

// Emit records c.
func (r *Recorder) Emit(c Cell) error {
	r.Cells = append(r.Cells, c)
	return nil
}

// MultiSink emits to each sink in order and stops at the first error.
type MultiSink []Sink

// Emit forwards c to every sink.
func (m MultiSink) Emit(c Cell) error {
	for _, s := range m {
		if err := s.Emit(c); err != nil {
			return err
		}
	}
	return nil
}
