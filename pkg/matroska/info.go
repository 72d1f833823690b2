package matroska

import (
	"github.com/bluenviron/gowebmlib/pkg/ebml"
)

// Info is the SegmentInfo element, carrying the global metadata of a
// segment.
type Info struct {
	TimecodeScale uint64
	MuxingApp     string
	WritingApp    string

	// Duration of the stream. When present, the element is written
	// with a fixed 8-byte float so that it can be rewritten in place
	// once the real duration is known.
	Duration *float64
}

func (i Info) marshalSize() int {
	n := ebml.ElementSize(IDTimecodeScale, ebml.UIntWidth(i.TimecodeScale))
	if i.Duration != nil {
		n += ebml.ElementSize(IDDuration, 8)
	}
	n += ebml.ElementSize(IDMuxingApp, len(i.MuxingApp))
	n += ebml.ElementSize(IDWritingApp, len(i.WritingApp))
	return n
}

// Marshal writes the element. When Duration is present, it also returns
// the absolute offset of the Duration child, otherwise -1.
func (i Info) Marshal(w *ebml.Writer) (int64, error) {
	if err := w.WriteMasterStart(IDInfo, i.marshalSize()); err != nil {
		return 0, err
	}
	if err := w.WriteUInt(IDTimecodeScale, i.TimecodeScale); err != nil {
		return 0, err
	}

	durationPos := int64(-1)
	if i.Duration != nil {
		durationPos = w.Position()
		if err := w.WriteFloat(IDDuration, *i.Duration); err != nil {
			return 0, err
		}
	}

	if err := w.WriteString(IDMuxingApp, i.MuxingApp); err != nil {
		return 0, err
	}
	if err := w.WriteString(IDWritingApp, i.WritingApp); err != nil {
		return 0, err
	}
	return durationPos, nil
}
