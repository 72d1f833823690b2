package matroska

import (
	"fmt"

	"github.com/bluenviron/gowebmlib/pkg/ebml"
)

const simpleBlockHeaderSize = 4

// SimpleBlock is an encoded frame wrapped for storage inside a cluster.
// Specification: https://www.matroska.org/technical/basics.html#simpleblock-structure
type SimpleBlock struct {
	// TrackNumber must fit in a single-byte VINT (1 to 126).
	TrackNumber uint64

	// Timecode relative to the enclosing cluster, in timecode scale
	// units.
	Timecode int16

	Keyframe bool
	Payload  []byte
}

// Marshal writes the element.
func (b SimpleBlock) Marshal(w *ebml.Writer) error {
	if b.TrackNumber < 1 || b.TrackNumber > 126 {
		return fmt.Errorf("track number out of range: %d", b.TrackNumber)
	}

	if err := w.WriteID(IDSimpleBlock); err != nil {
		return err
	}
	if err := w.WriteSize(uint64(simpleBlockHeaderSize + len(b.Payload))); err != nil {
		return err
	}

	head := make([]byte, simpleBlockHeaderSize)
	head[0] = 0x80 | byte(b.TrackNumber)
	head[1] = byte(uint16(b.Timecode) >> 8)
	head[2] = byte(uint16(b.Timecode))
	if b.Keyframe {
		head[3] = 0x80
	}
	if _, err := w.Write(head); err != nil {
		return err
	}

	if len(b.Payload) == 0 {
		return nil
	}
	_, err := w.Write(b.Payload)
	return err
}
