package matroska

import (
	"github.com/bluenviron/gowebmlib/pkg/ebml"
)

// CuePoint indexes the cluster that holds the first block at a given
// time.
type CuePoint struct {
	Time            uint64
	Track           uint64
	ClusterPosition uint64
}

func (p CuePoint) positionsSize() int {
	n := ebml.ElementSize(IDCueTrack, ebml.UIntWidth(p.Track))
	n += ebml.ElementSize(IDCueClusterPosition, ebml.UIntWidth(p.ClusterPosition))
	return n
}

func (p CuePoint) marshalSize() int {
	n := ebml.ElementSize(IDCueTime, ebml.UIntWidth(p.Time))
	n += ebml.ElementSize(IDCueTrackPositions, p.positionsSize())
	return n
}

func (p CuePoint) marshal(w *ebml.Writer) error {
	if err := w.WriteMasterStart(IDCuePoint, p.marshalSize()); err != nil {
		return err
	}
	if err := w.WriteUInt(IDCueTime, p.Time); err != nil {
		return err
	}
	if err := w.WriteMasterStart(IDCueTrackPositions, p.positionsSize()); err != nil {
		return err
	}
	if err := w.WriteUInt(IDCueTrack, p.Track); err != nil {
		return err
	}
	return w.WriteUInt(IDCueClusterPosition, p.ClusterPosition)
}

// Cues is the seeking index of a segment.
type Cues struct {
	Points []CuePoint
}

func (c Cues) marshalSize() int {
	n := 0
	for _, p := range c.Points {
		n += ebml.ElementSize(IDCuePoint, p.marshalSize())
	}
	return n
}

// Marshal writes the element.
func (c Cues) Marshal(w *ebml.Writer) error {
	if err := w.WriteMasterStart(IDCues, c.marshalSize()); err != nil {
		return err
	}
	for _, p := range c.Points {
		if err := p.marshal(w); err != nil {
			return err
		}
	}
	return nil
}
