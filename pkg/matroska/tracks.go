package matroska

import (
	"github.com/bluenviron/gowebmlib/pkg/ebml"
)

// Tracks is the element that lists all the tracks of a segment.
type Tracks struct {
	Entries []*TrackEntry
}

func (ts Tracks) marshalSize() int {
	n := 0
	for _, e := range ts.Entries {
		n += ebml.ElementSize(IDTrackEntry, e.marshalSize())
	}
	return n
}

// Marshal writes the element.
func (ts Tracks) Marshal(w *ebml.Writer) error {
	if err := w.WriteMasterStart(IDTracks, ts.marshalSize()); err != nil {
		return err
	}
	for _, e := range ts.Entries {
		if err := e.marshal(w); err != nil {
			return err
		}
	}
	return nil
}
