// Package matroska contains the Matroska elements that make up a WebM
// stream.
// Specification: https://www.matroska.org/technical/elements.html
package matroska

// element IDs of the Matroska subset used by WebM.
const (
	IDEBML                  uint64 = 0x1A45DFA3
	IDEBMLVersion           uint64 = 0x4286
	IDEBMLReadVersion       uint64 = 0x42F7
	IDEBMLMaxIDLength       uint64 = 0x42F2
	IDEBMLMaxSizeLength     uint64 = 0x42F3
	IDDocType               uint64 = 0x4282
	IDDocTypeVersion        uint64 = 0x4287
	IDDocTypeReadVersion    uint64 = 0x4285
	IDVoid                  uint64 = 0xEC
	IDSegment               uint64 = 0x18538067
	IDSeekHead              uint64 = 0x114D9B74
	IDSeek                  uint64 = 0x4DBB
	IDSeekID                uint64 = 0x53AB
	IDSeekPosition          uint64 = 0x53AC
	IDInfo                  uint64 = 0x1549A966
	IDTimecodeScale         uint64 = 0x2AD7B1
	IDDuration              uint64 = 0x4489
	IDMuxingApp             uint64 = 0x4D80
	IDWritingApp            uint64 = 0x5741
	IDTracks                uint64 = 0x1654AE6B
	IDTrackEntry            uint64 = 0xAE
	IDTrackNumber           uint64 = 0xD7
	IDTrackUID              uint64 = 0x73C5
	IDTrackType             uint64 = 0x83
	IDFlagLacing            uint64 = 0x9C
	IDCodecID               uint64 = 0x86
	IDCodecPrivate          uint64 = 0x63A2
	IDVideo                 uint64 = 0xE0
	IDPixelWidth            uint64 = 0xB0
	IDPixelHeight           uint64 = 0xBA
	IDColour                uint64 = 0x55B0
	IDBitsPerChannel        uint64 = 0x55B2
	IDChromaSubsamplingHorz uint64 = 0x55B5
	IDChromaSubsamplingVert uint64 = 0x55B6
	IDRange                 uint64 = 0x55B9
	IDAudio                 uint64 = 0xE1
	IDSamplingFrequency     uint64 = 0xB5
	IDChannels              uint64 = 0x9F
	IDCluster               uint64 = 0x1F43B675
	IDTimecode              uint64 = 0xE7
	IDSimpleBlock           uint64 = 0xA3
	IDCues                  uint64 = 0x1C53BB6B
	IDCuePoint              uint64 = 0xBB
	IDCueTime               uint64 = 0xB3
	IDCueTrackPositions     uint64 = 0xB7
	IDCueTrack              uint64 = 0xF7
	IDCueClusterPosition    uint64 = 0xF1
)
