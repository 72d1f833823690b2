package matroska

import (
	"github.com/bluenviron/gowebmlib/pkg/ebml"
)

// positions are written with a fixed width so that the size of a
// SeekHead does not depend on their values.
const seekPositionWidth = 8

// SeekEntry maps a top-level element ID to its offset inside the
// segment payload.
type SeekEntry struct {
	ID       uint64
	Position uint64
}

func (e SeekEntry) marshalSize() int {
	n := ebml.ElementSize(IDSeekID, ebml.IDWidth(e.ID))
	n += ebml.ElementSize(IDSeekPosition, seekPositionWidth)
	return n
}

func (e SeekEntry) marshal(w *ebml.Writer) error {
	if err := w.WriteMasterStart(IDSeek, e.marshalSize()); err != nil {
		return err
	}

	buf := make([]byte, ebml.IDWidth(e.ID))
	id := e.ID
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte(id)
		id >>= 8
	}
	if err := w.WriteBinary(IDSeekID, buf); err != nil {
		return err
	}

	return w.WriteUIntWidth(IDSeekPosition, e.Position, seekPositionWidth)
}

// SeekHead is the index of the top-level elements of a segment.
type SeekHead struct {
	Entries []SeekEntry
}

func (h SeekHead) marshalSize() int {
	n := 0
	for _, e := range h.Entries {
		n += ebml.ElementSize(IDSeek, e.marshalSize())
	}
	return n
}

// MarshalSize returns the on-wire size of the whole element, ID and
// size field included.
func (h SeekHead) MarshalSize() int {
	return ebml.ElementSize(IDSeekHead, h.marshalSize())
}

// Marshal writes the element.
func (h SeekHead) Marshal(w *ebml.Writer) error {
	if err := w.WriteMasterStart(IDSeekHead, h.marshalSize()); err != nil {
		return err
	}
	for _, e := range h.Entries {
		if err := e.marshal(w); err != nil {
			return err
		}
	}
	return nil
}
