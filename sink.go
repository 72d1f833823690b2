package gowebmlib

import (
	"io"
)

// Sink is the byte destination of a Segment.
// Implementations are expected to honor the io.Writer contract: a short
// write must return a non-nil error.
type Sink interface {
	io.Writer

	// Position returns the absolute offset of the next byte to be
	// written. It must be cheap and must not fail.
	Position() int64
}

// SeekableSink is a Sink that additionally supports absolute
// repositioning. When the sink of a Segment implements it, cluster and
// segment sizes, the duration and the seeking index are patched during
// finalization; otherwise the output is a valid streaming WebM with
// unknown sizes.
type SeekableSink interface {
	Sink

	// SetPosition moves the write position to an absolute offset.
	SetPosition(pos int64) error
}

// ElementStartNotifier can be implemented by a Sink in order to receive
// the absolute offset of every element that gets written, including
// elements that are rewritten in place during finalization.
type ElementStartNotifier interface {
	// OnElementStart is called right before the first byte of an
	// element lands on the sink. It must not fail.
	OnElementStart(id uint64, pos int64)
}

type sinkWriter struct {
	w     io.Writer
	count int64
}

func (s *sinkWriter) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.count += int64(n)
	return n, err
}

func (s *sinkWriter) Position() int64 {
	return s.count
}

// NewSink wraps an io.Writer into a Sink, deriving the position by
// counting written bytes. Segments over it run in streaming mode.
func NewSink(w io.Writer) Sink {
	return &sinkWriter{w: w}
}

type seekableSinkWriter struct {
	ws  io.WriteSeeker
	pos int64
}

func (s *seekableSinkWriter) Write(p []byte) (int, error) {
	n, err := s.ws.Write(p)
	s.pos += int64(n)
	return n, err
}

func (s *seekableSinkWriter) Position() int64 {
	return s.pos
}

func (s *seekableSinkWriter) SetPosition(pos int64) error {
	_, err := s.ws.Seek(pos, io.SeekStart)
	if err != nil {
		return err
	}
	s.pos = pos
	return nil
}

// NewSeekableSink wraps an io.WriteSeeker into a SeekableSink. The
// write-seeker must be positioned at the start of the output.
func NewSeekableSink(ws io.WriteSeeker) SeekableSink {
	return &seekableSinkWriter{ws: ws}
}
