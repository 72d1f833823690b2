// Package gowebmlib is a WebM muxing library for Go.
package gowebmlib

import (
	"fmt"
	"sort"
	"time"

	"github.com/pion/logging"

	"github.com/bluenviron/gowebmlib/pkg/ebml"
	"github.com/bluenviron/gowebmlib/pkg/matroska"
)

const (
	// one block timecode unit corresponds to one millisecond.
	timecodeScale = 1000000

	// track numbers are kept within a single-byte VINT.
	maxTrackNumber = 126

	// block timecodes are signed 16-bit offsets from the cluster base.
	maxBlockTimecode = 32767
	minBlockTimecode = -32768

	defaultMaxClusterDuration = 30 * time.Second

	defaultApp = "gowebmlib"
)

// cluster bookkeeping between open and close.
type cluster struct {
	position int64 // absolute offset of the cluster ID
	sizePos  int64 // absolute offset of the size field
	timecode int64 // base timecode
}

// size patch deferred to finalization; the sink is asked to reposition
// only once the stream is complete.
type sizePatch struct {
	pos  int64
	size uint64
}

// Segment is a WebM muxing session. It assembles encoded frames into a
// WebM container, streamed incrementally to a Sink.
//
// A Segment is not safe for concurrent use.
type Segment struct {
	// Sink is the destination of the container bytes. Mandatory.
	Sink Sink

	// MaxClusterDuration is the maximum timespan covered by a single
	// cluster. It defaults to 30 seconds.
	MaxClusterDuration time.Duration

	// LoggerFactory allows to override the default logger factory.
	LoggerFactory logging.LoggerFactory

	//
	// private
	//

	w           *ebml.Writer
	log         logging.LeveledLogger
	writingApp  string
	tracks      []track
	hasVideo    bool
	initialized bool
	finalized   bool

	headerWritten  bool
	segmentSizePos int64
	payloadStart   int64
	seekHeadPos    int64
	seekHeadSize   int
	infoPos        int64
	durationPos    int64
	tracksPos      int64
	cluster        *cluster
	clusterSizes   []sizePatch
	cues           []matroska.CuePoint
	maxTimestamp   time.Duration
}

// Initialize validates the configuration and writes the EBML header.
func (s *Segment) Initialize() error {
	if s.initialized {
		return ErrAlreadyInitialized
	}

	if s.Sink == nil {
		return fmt.Errorf("a sink is mandatory")
	}
	if s.MaxClusterDuration == 0 {
		s.MaxClusterDuration = defaultMaxClusterDuration
	}
	if s.MaxClusterDuration < time.Millisecond {
		return fmt.Errorf("invalid cluster duration: %v", s.MaxClusterDuration)
	}
	if s.LoggerFactory == nil {
		s.LoggerFactory = logging.NewDefaultLoggerFactory()
	}

	s.log = s.LoggerFactory.NewLogger("webm")
	s.w = ebml.NewWriter(s.Sink)
	s.writingApp = defaultApp
	s.durationPos = -1
	s.tracksPos = -1

	err := matroska.Header{
		DocType:            "webm",
		DocTypeVersion:     4,
		DocTypeReadVersion: 2,
	}.Marshal(s.w)
	if err != nil {
		return err
	}

	s.initialized = true
	s.log.Debugf("initialized, seekable=%v", s.w.Seekable())
	return nil
}

// SetWritingApp sets the WritingApp string carried in the Info element.
// An empty name restores the default. It must be called before the
// first frame of the segment is written.
func (s *Segment) SetWritingApp(name string) error {
	switch {
	case s.finalized:
		return ErrFinalized
	case !s.initialized:
		return ErrNotInitialized
	case s.headerWritten:
		return ErrHeaderWritten
	}

	if name == "" {
		name = defaultApp
	}
	s.writingApp = name
	return nil
}

// Finalize closes the open cluster and completes the container. On a
// seekable sink it also writes the Cues, fills the reserved SeekHead
// and patches the duration and the segment size; on a non-seekable sink
// the output stays a valid streaming WebM with unknown sizes.
// durationOverride, when non-zero, replaces the duration computed from
// the highest written timestamp.
func (s *Segment) Finalize(durationOverride time.Duration) error {
	switch {
	case s.finalized:
		return ErrFinalized
	case !s.initialized:
		return ErrNotInitialized
	}

	if durationOverride < 0 {
		return fmt.Errorf("negative duration: %v", durationOverride)
	}

	// the segment counts as finalized even when one of the writes below
	// fails; the failure is reported but cannot be retried.
	s.finalized = true

	if !s.headerWritten {
		if err := s.flushHeader(); err != nil {
			return err
		}
	}

	s.closeCluster()

	if !s.w.Seekable() {
		s.log.Debugf("finalized in streaming mode")
		return nil
	}

	cuesPos := int64(-1)
	if len(s.cues) != 0 {
		cuesPos = s.w.Position()
		if err := (matroska.Cues{Points: s.cues}).Marshal(s.w); err != nil {
			return fmt.Errorf("writing cues: %w", err)
		}
	}

	end := s.w.Position()

	for _, p := range s.clusterSizes {
		if err := s.w.RewriteSize(p.pos, p.size); err != nil {
			return fmt.Errorf("patching cluster size: %w", err)
		}
	}

	if err := s.patchSeekHead(cuesPos, end); err != nil {
		return fmt.Errorf("patching seek head: %w", err)
	}

	duration := s.maxTimestamp
	if durationOverride != 0 {
		duration = durationOverride
	}
	err := s.w.RewriteFloat(s.durationPos, matroska.IDDuration,
		float64(duration)/float64(timecodeScale))
	if err != nil {
		return fmt.Errorf("patching duration: %w", err)
	}

	if err = s.w.RewriteSize(s.segmentSizePos, uint64(end-s.payloadStart)); err != nil {
		return fmt.Errorf("patching segment size: %w", err)
	}

	s.log.Debugf("finalized, duration=%v, size=%d bytes", duration, end)
	return nil
}

// flushHeader writes the Segment element and its leading children. It
// runs when the first frame arrives or the segment is finalized,
// whichever comes first; afterwards structural mutations are rejected.
func (s *Segment) flushHeader() error {
	if err := s.w.WriteID(matroska.IDSegment); err != nil {
		return err
	}

	s.segmentSizePos = s.w.Position()
	if err := s.w.WriteUnknownSize(); err != nil {
		return err
	}

	// seek positions and cue positions are relative to this offset.
	s.payloadStart = s.w.Position()

	// reserve room for a SeekHead indexing Info, Tracks and Cues.
	s.seekHeadPos = s.w.Position()
	s.seekHeadSize = matroska.SeekHead{Entries: []matroska.SeekEntry{
		{ID: matroska.IDInfo},
		{ID: matroska.IDTracks},
		{ID: matroska.IDCues},
	}}.MarshalSize()
	if err := s.w.WriteVoid(s.seekHeadSize); err != nil {
		return err
	}

	info := matroska.Info{
		TimecodeScale: timecodeScale,
		MuxingApp:     defaultApp,
		WritingApp:    s.writingApp,
	}
	if s.w.Seekable() {
		// duration placeholder, patched during finalization. Streaming
		// outputs carry no duration at all.
		info.Duration = new(float64)
	}

	s.infoPos = s.w.Position()
	var err error
	s.durationPos, err = info.Marshal(s.w)
	if err != nil {
		return err
	}

	if len(s.tracks) != 0 {
		entries := make([]*matroska.TrackEntry, len(s.tracks))
		for i, t := range s.tracks {
			entries[i] = t.marshalEntry()
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Number < entries[j].Number
		})

		s.tracksPos = s.w.Position()
		if err = (matroska.Tracks{Entries: entries}).Marshal(s.w); err != nil {
			return err
		}
	}

	s.headerWritten = true
	s.log.Debugf("segment header written, tracks=%d", len(s.tracks))
	return nil
}

// patchSeekHead rewrites the reserved Void into the real SeekHead.
// Entries of elements that were never written are dropped and the
// leftover reservation is re-voided.
func (s *Segment) patchSeekHead(cuesPos int64, end int64) error {
	entries := []matroska.SeekEntry{
		{ID: matroska.IDInfo, Position: uint64(s.infoPos - s.payloadStart)},
	}
	if s.tracksPos >= 0 {
		entries = append(entries, matroska.SeekEntry{
			ID:       matroska.IDTracks,
			Position: uint64(s.tracksPos - s.payloadStart),
		})
	}
	if cuesPos >= 0 {
		entries = append(entries, matroska.SeekEntry{
			ID:       matroska.IDCues,
			Position: uint64(cuesPos - s.payloadStart),
		})
	}
	seekHead := matroska.SeekHead{Entries: entries}

	if err := s.w.SetPosition(s.seekHeadPos); err != nil {
		return err
	}
	if err := seekHead.Marshal(s.w); err != nil {
		return err
	}
	if left := s.seekHeadSize - seekHead.MarshalSize(); left != 0 {
		if err := s.w.WriteVoid(left); err != nil {
			return err
		}
	}
	return s.w.SetPosition(end)
}

func (s *Segment) writeFrame(t *Track, data []byte, timestamp time.Duration, keyframe bool) error {
	switch {
	case s.finalized:
		return ErrFinalized
	case !s.initialized:
		return ErrNotInitialized
	}

	if !s.trackRegistered(t) {
		return ErrInvalidTrack
	}

	if timestamp < 0 {
		return fmt.Errorf("negative timestamp: %v", timestamp)
	}

	if !s.headerWritten {
		if err := s.flushHeader(); err != nil {
			return err
		}
	}

	timecode := int64(timestamp / time.Millisecond)

	if s.clusterNeeded(t, timecode, keyframe) {
		s.closeCluster()
		if err := s.openCluster(timecode); err != nil {
			return err
		}

		// one cue point per cluster opened by a video keyframe; in
		// audio-only segments, one per cluster.
		if (t.typ == matroska.TrackTypeVideo && keyframe) || !s.hasVideo {
			s.cues = append(s.cues, matroska.CuePoint{
				Time:            uint64(timecode),
				Track:           uint64(t.number),
				ClusterPosition: uint64(s.cluster.position - s.payloadStart),
			})
		}
	}

	// a backwards jump beyond the block timecode range cannot be
	// stored; forward jumps are covered by the cluster policy.
	delta := timecode - s.cluster.timecode
	if delta < minBlockTimecode {
		return fmt.Errorf("timestamp %v is too far behind the cluster start", timestamp)
	}

	err := matroska.SimpleBlock{
		TrackNumber: uint64(t.number),
		Timecode:    int16(delta),
		Keyframe:    keyframe,
		Payload:     data,
	}.Marshal(s.w)
	if err != nil {
		return err
	}

	if timestamp > s.maxTimestamp {
		s.maxTimestamp = timestamp
	}
	return nil
}

func (s *Segment) clusterNeeded(t *Track, timecode int64, keyframe bool) bool {
	switch {
	case s.cluster == nil:
		return true

	case t.typ == matroska.TrackTypeVideo && keyframe:
		return true

	case timecode-s.cluster.timecode > maxBlockTimecode:
		return true

	case timecode-s.cluster.timecode >= int64(s.MaxClusterDuration/time.Millisecond):
		return true
	}
	return false
}

func (s *Segment) openCluster(timecode int64) error {
	pos := s.w.Position()
	sizePos, err := s.w.WriteMasterUnknown(matroska.IDCluster)
	if err != nil {
		return err
	}
	if err = s.w.WriteUInt(matroska.IDTimecode, uint64(timecode)); err != nil {
		return err
	}

	s.cluster = &cluster{
		position: pos,
		sizePos:  sizePos,
		timecode: timecode,
	}
	s.log.Tracef("cluster opened, timecode=%d", timecode)
	return nil
}

func (s *Segment) closeCluster() {
	if s.cluster == nil {
		return
	}
	c := s.cluster
	s.cluster = nil

	// streaming clusters keep their unknown size.
	if !s.w.Seekable() {
		return
	}

	s.clusterSizes = append(s.clusterSizes, sizePatch{
		pos:  c.sizePos,
		size: uint64(s.w.Position() - (c.sizePos + 8)),
	})
}
