package matroska

import (
	"github.com/bluenviron/gowebmlib/pkg/ebml"
)

// TrackType is the type of a track.
type TrackType uint64

// track types.
const (
	TrackTypeVideo TrackType = 1
	TrackTypeAudio TrackType = 2
)

// Colour is the colour metadata of a video track.
type Colour struct {
	BitsPerChannel        uint64
	ChromaSubsamplingHorz uint64
	ChromaSubsamplingVert uint64
	Range                 uint64
}

func (c Colour) marshalSize() int {
	n := ebml.ElementSize(IDBitsPerChannel, ebml.UIntWidth(c.BitsPerChannel))
	n += ebml.ElementSize(IDChromaSubsamplingHorz, ebml.UIntWidth(c.ChromaSubsamplingHorz))
	n += ebml.ElementSize(IDChromaSubsamplingVert, ebml.UIntWidth(c.ChromaSubsamplingVert))
	n += ebml.ElementSize(IDRange, ebml.UIntWidth(c.Range))
	return n
}

func (c Colour) marshal(w *ebml.Writer) error {
	if err := w.WriteMasterStart(IDColour, c.marshalSize()); err != nil {
		return err
	}
	if err := w.WriteUInt(IDBitsPerChannel, c.BitsPerChannel); err != nil {
		return err
	}
	if err := w.WriteUInt(IDChromaSubsamplingHorz, c.ChromaSubsamplingHorz); err != nil {
		return err
	}
	if err := w.WriteUInt(IDChromaSubsamplingVert, c.ChromaSubsamplingVert); err != nil {
		return err
	}
	return w.WriteUInt(IDRange, c.Range)
}

// Video holds the video properties of a track.
type Video struct {
	PixelWidth  uint64
	PixelHeight uint64
	Colour      *Colour
}

func (v Video) marshalSize() int {
	n := ebml.ElementSize(IDPixelWidth, ebml.UIntWidth(v.PixelWidth))
	n += ebml.ElementSize(IDPixelHeight, ebml.UIntWidth(v.PixelHeight))
	if v.Colour != nil {
		n += ebml.ElementSize(IDColour, v.Colour.marshalSize())
	}
	return n
}

func (v Video) marshal(w *ebml.Writer) error {
	if err := w.WriteMasterStart(IDVideo, v.marshalSize()); err != nil {
		return err
	}
	if err := w.WriteUInt(IDPixelWidth, v.PixelWidth); err != nil {
		return err
	}
	if err := w.WriteUInt(IDPixelHeight, v.PixelHeight); err != nil {
		return err
	}
	if v.Colour != nil {
		return v.Colour.marshal(w)
	}
	return nil
}

// Audio holds the audio properties of a track.
type Audio struct {
	SamplingFrequency float64
	Channels          uint64
}

func (a Audio) marshalSize() int {
	n := ebml.ElementSize(IDSamplingFrequency, 8)
	n += ebml.ElementSize(IDChannels, ebml.UIntWidth(a.Channels))
	return n
}

func (a Audio) marshal(w *ebml.Writer) error {
	if err := w.WriteMasterStart(IDAudio, a.marshalSize()); err != nil {
		return err
	}
	if err := w.WriteFloat(IDSamplingFrequency, a.SamplingFrequency); err != nil {
		return err
	}
	return w.WriteUInt(IDChannels, a.Channels)
}

// TrackEntry describes a single track.
type TrackEntry struct {
	Number       uint64
	UID          uint64
	Type         TrackType
	CodecID      string
	CodecPrivate []byte
	Video        *Video
	Audio        *Audio
}

func (e *TrackEntry) marshalSize() int {
	n := ebml.ElementSize(IDTrackNumber, ebml.UIntWidth(e.Number))
	n += ebml.ElementSize(IDTrackUID, ebml.UIntWidth(e.UID))
	n += ebml.ElementSize(IDTrackType, ebml.UIntWidth(uint64(e.Type)))
	n += ebml.ElementSize(IDFlagLacing, 1)
	n += ebml.ElementSize(IDCodecID, len(e.CodecID))
	if e.CodecPrivate != nil {
		n += ebml.ElementSize(IDCodecPrivate, len(e.CodecPrivate))
	}
	if e.Video != nil {
		n += ebml.ElementSize(IDVideo, e.Video.marshalSize())
	}
	if e.Audio != nil {
		n += ebml.ElementSize(IDAudio, e.Audio.marshalSize())
	}
	return n
}

func (e *TrackEntry) marshal(w *ebml.Writer) error {
	if err := w.WriteMasterStart(IDTrackEntry, e.marshalSize()); err != nil {
		return err
	}
	if err := w.WriteUInt(IDTrackNumber, e.Number); err != nil {
		return err
	}
	if err := w.WriteUInt(IDTrackUID, e.UID); err != nil {
		return err
	}
	if err := w.WriteUInt(IDTrackType, uint64(e.Type)); err != nil {
		return err
	}

	// lacing is never used, frames are stored one per block.
	if err := w.WriteUInt(IDFlagLacing, 0); err != nil {
		return err
	}

	if err := w.WriteString(IDCodecID, e.CodecID); err != nil {
		return err
	}
	if e.CodecPrivate != nil {
		if err := w.WriteBinary(IDCodecPrivate, e.CodecPrivate); err != nil {
			return err
		}
	}
	if e.Video != nil {
		if err := e.Video.marshal(w); err != nil {
			return err
		}
	}
	if e.Audio != nil {
		if err := e.Audio.marshal(w); err != nil {
			return err
		}
	}
	return nil
}
