package gowebmlib

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bluenviron/gowebmlib/pkg/matroska"
)

// VideoCodec is a video codec supported by WebM.
type VideoCodec int

// video codecs.
const (
	VideoCodecVP8 VideoCodec = 0
	VideoCodecVP9 VideoCodec = 1
	VideoCodecAV1 VideoCodec = 2
)

// String implements fmt.Stringer.
func (c VideoCodec) String() string {
	switch c {
	case VideoCodecVP8:
		return "VP8"
	case VideoCodecVP9:
		return "VP9"
	case VideoCodecAV1:
		return "AV1"
	}
	return "unknown"
}

func (c VideoCodec) codecID() string {
	switch c {
	case VideoCodecVP8:
		return "V_VP8"
	case VideoCodecVP9:
		return "V_VP9"
	case VideoCodecAV1:
		return "V_AV1"
	}
	return ""
}

// AudioCodec is an audio codec supported by WebM.
type AudioCodec int

// audio codecs.
const (
	AudioCodecOpus   AudioCodec = 0
	AudioCodecVorbis AudioCodec = 1
)

// String implements fmt.Stringer.
func (c AudioCodec) String() string {
	switch c {
	case AudioCodecOpus:
		return "Opus"
	case AudioCodecVorbis:
		return "Vorbis"
	}
	return "unknown"
}

func (c AudioCodec) codecID() string {
	switch c {
	case AudioCodecOpus:
		return "A_OPUS"
	case AudioCodecVorbis:
		return "A_VORBIS"
	}
	return ""
}

// ColourRange is the clipping range of colour values.
type ColourRange int

// colour ranges.
const (
	ColourRangeUnspecified ColourRange = 0
	ColourRangeBroadcast   ColourRange = 1
	ColourRangeFull        ColourRange = 2
)

// Colour is the colour metadata of a video track. Values are written as
// given; zero members are written as zeroes, which Matroska defines as
// "unspecified".
type Colour struct {
	BitsPerChannel        int
	ChromaSubsamplingHorz int
	ChromaSubsamplingVert int
	Range                 ColourRange
}

// Track is a handle on a track registered in a Segment. Handles are
// created by AddVideoTrack and AddAudioTrack only; a zero Track is not
// usable.
type Track struct {
	s            *Segment
	number       int
	uid          uint64
	typ          matroska.TrackType
	codecID      string
	codecPrivate []byte
}

// Number returns the track number used inside the container.
func (t *Track) Number() int {
	return t.number
}

// SetCodecPrivate attaches the codec initialization blob that is
// written inside the track header, for instance an Opus identification
// header. The blob is copied. It must be called before the first frame
// of the segment is written.
func (t *Track) SetCodecPrivate(data []byte) error {
	if t.s == nil {
		return ErrInvalidTrack
	}

	switch {
	case t.s.finalized:
		return ErrFinalized
	case !t.s.initialized:
		return ErrNotInitialized
	case t.s.headerWritten:
		return ErrHeaderWritten
	}

	if len(data) == 0 {
		return fmt.Errorf("codec private data is empty")
	}

	t.codecPrivate = append([]byte(nil), data...)
	return nil
}

// WriteFrame submits an encoded frame. data is not retained after the
// call returns; an empty payload is legal. timestamp must not be
// negative; per-track timestamp ordering is the caller's responsibility
// and frames are stored in submission order.
func (t *Track) WriteFrame(data []byte, timestamp time.Duration, keyframe bool) error {
	if t.s == nil {
		return ErrInvalidTrack
	}
	return t.s.writeFrame(t, data, timestamp, keyframe)
}

func (t *Track) base() *Track {
	return t
}

func (t *Track) entry() *matroska.TrackEntry {
	return &matroska.TrackEntry{
		Number:       uint64(t.number),
		UID:          t.uid,
		Type:         t.typ,
		CodecID:      t.codecID,
		CodecPrivate: t.codecPrivate,
	}
}

// track is the registry view of a typed handle.
type track interface {
	base() *Track
	marshalEntry() *matroska.TrackEntry
}

// VideoTrack is the handle of a video track.
type VideoTrack struct {
	Track
	width  int
	height int
	colour *Colour
}

// SetColour sets the colour metadata written inside the track header.
// The descriptor is copied. It must be called before the first frame of
// the segment is written.
func (t *VideoTrack) SetColour(c *Colour) error {
	if t.s == nil {
		return ErrInvalidTrack
	}

	switch {
	case t.s.finalized:
		return ErrFinalized
	case !t.s.initialized:
		return ErrNotInitialized
	case t.s.headerWritten:
		return ErrHeaderWritten
	}

	if c == nil {
		return fmt.Errorf("colour is nil")
	}

	v := *c
	t.colour = &v
	return nil
}

func (t *VideoTrack) marshalEntry() *matroska.TrackEntry {
	e := t.entry()
	e.Video = &matroska.Video{
		PixelWidth:  uint64(t.width),
		PixelHeight: uint64(t.height),
	}
	if t.colour != nil {
		e.Video.Colour = &matroska.Colour{
			BitsPerChannel:        uint64(t.colour.BitsPerChannel),
			ChromaSubsamplingHorz: uint64(t.colour.ChromaSubsamplingHorz),
			ChromaSubsamplingVert: uint64(t.colour.ChromaSubsamplingVert),
			Range:                 uint64(t.colour.Range),
		}
	}
	return e
}

// AudioTrack is the handle of an audio track.
type AudioTrack struct {
	Track
	sampleRate int
	channels   int
}

func (t *AudioTrack) marshalEntry() *matroska.TrackEntry {
	e := t.entry()
	e.Audio = &matroska.Audio{
		SamplingFrequency: float64(t.sampleRate),
		Channels:          uint64(t.channels),
	}
	return e
}

// AddVideoTrack registers a video track. requestedNumber is a hint:
// when it is zero, out of range or already taken, the lowest free
// number is assigned instead. Tracks can only be added before the first
// frame of the segment is written.
func (s *Segment) AddVideoTrack(width int, height int, requestedNumber int, codec VideoCodec) (*VideoTrack, error) {
	switch {
	case s.finalized:
		return nil, ErrFinalized
	case !s.initialized:
		return nil, ErrNotInitialized
	case s.headerWritten:
		return nil, ErrHeaderWritten
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid video size: %dx%d", width, height)
	}

	codecID := codec.codecID()
	if codecID == "" {
		return nil, fmt.Errorf("unsupported video codec: %d", codec)
	}

	number, err := s.assignTrackNumber(requestedNumber)
	if err != nil {
		return nil, err
	}

	t := &VideoTrack{
		Track: Track{
			s:       s,
			number:  number,
			uid:     s.newTrackUID(),
			typ:     matroska.TrackTypeVideo,
			codecID: codecID,
		},
		width:  width,
		height: height,
	}
	s.tracks = append(s.tracks, t)
	s.hasVideo = true

	s.log.Debugf("video track %d added, codec=%v, size=%dx%d", number, codec, width, height)
	return t, nil
}

// AddAudioTrack registers an audio track. requestedNumber is a hint:
// when it is zero, out of range or already taken, the lowest free
// number is assigned instead. Tracks can only be added before the first
// frame of the segment is written.
func (s *Segment) AddAudioTrack(sampleRate int, channels int, requestedNumber int, codec AudioCodec) (*AudioTrack, error) {
	switch {
	case s.finalized:
		return nil, ErrFinalized
	case !s.initialized:
		return nil, ErrNotInitialized
	case s.headerWritten:
		return nil, ErrHeaderWritten
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}

	codecID := codec.codecID()
	if codecID == "" {
		return nil, fmt.Errorf("unsupported audio codec: %d", codec)
	}

	number, err := s.assignTrackNumber(requestedNumber)
	if err != nil {
		return nil, err
	}

	t := &AudioTrack{
		Track: Track{
			s:       s,
			number:  number,
			uid:     s.newTrackUID(),
			typ:     matroska.TrackTypeAudio,
			codecID: codecID,
		},
		sampleRate: sampleRate,
		channels:   channels,
	}
	s.tracks = append(s.tracks, t)

	s.log.Debugf("audio track %d added, codec=%v, rate=%d, channels=%d", number, codec, sampleRate, channels)
	return t, nil
}

func (s *Segment) assignTrackNumber(requested int) (int, error) {
	if requested >= 1 && requested <= maxTrackNumber && !s.numberTaken(requested) {
		return requested, nil
	}
	for n := 1; n <= maxTrackNumber; n++ {
		if !s.numberTaken(n) {
			return n, nil
		}
	}
	return 0, fmt.Errorf("no track number is available")
}

func (s *Segment) numberTaken(n int) bool {
	for _, t := range s.tracks {
		if t.base().number == n {
			return true
		}
	}
	return false
}

// newTrackUID returns 56 bits of random material. UIDs are stored as
// EBML unsigned integers and must not be zero nor collide.
func (s *Segment) newTrackUID() uint64 {
	for {
		u := uuid.New()
		uid := uint64(0)
		for _, b := range u[:7] {
			uid = uid<<8 | uint64(b)
		}

		if uid != 0 && !s.uidTaken(uid) {
			return uid
		}
	}
}

func (s *Segment) uidTaken(uid uint64) bool {
	for _, t := range s.tracks {
		if t.base().uid == uid {
			return true
		}
	}
	return false
}

func (s *Segment) trackRegistered(t *Track) bool {
	for _, tr := range s.tracks {
		if tr.base() == t {
			return true
		}
	}
	return false
}
