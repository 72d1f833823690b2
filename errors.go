package gowebmlib

import (
	"errors"
)

// ErrNotInitialized is returned when a segment is used before
// Initialize has been called.
var ErrNotInitialized = errors.New("segment not initialized")

// ErrAlreadyInitialized is returned when Initialize is called more than
// once.
var ErrAlreadyInitialized = errors.New("segment already initialized")

// ErrFinalized is returned when a segment is used after Finalize.
var ErrFinalized = errors.New("segment already finalized")

// ErrHeaderWritten is returned when a structural mutation (tracks,
// codec private, colour, writing app) arrives after the segment header
// has been written to the sink.
var ErrHeaderWritten = errors.New("segment header already written")

// ErrInvalidTrack is returned when a track handle was not created by
// the segment it is used on.
var ErrInvalidTrack = errors.New("invalid track handle")
