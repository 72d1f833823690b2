// Package opus contains the Opus identification header that is carried
// in the CodecPrivate of Opus tracks.
package opus

import (
	"encoding/binary"
	"fmt"
)

// IDHeader is an Opus identification header.
// Specification: RFC 7845, section 5.1
type IDHeader struct {
	Version              uint8
	ChannelCount         uint8
	PreSkip              uint16
	InputSampleRate      uint32
	OutputGain           uint16
	ChannelMappingFamily uint8
	ChannelMappingTable  []uint8
}

// Unmarshal decodes an IDHeader.
func (h *IDHeader) Unmarshal(buf []byte) error {
	if len(buf) < 19 {
		return fmt.Errorf("not enough bytes")
	}

	if string(buf[:8]) != "OpusHead" {
		return fmt.Errorf("OpusHead not found")
	}

	h.Version = buf[8]
	if h.Version != 1 {
		return fmt.Errorf("unsupported version: %d", h.Version)
	}

	h.ChannelCount = buf[9]
	h.PreSkip = binary.LittleEndian.Uint16(buf[10:12])
	h.InputSampleRate = binary.LittleEndian.Uint32(buf[12:16])
	h.OutputGain = binary.LittleEndian.Uint16(buf[16:18])
	h.ChannelMappingFamily = buf[18]
	h.ChannelMappingTable = buf[19:]

	return nil
}

func (h IDHeader) marshalSize() int {
	return 19 + len(h.ChannelMappingTable)
}

// Marshal encodes an IDHeader.
func (h IDHeader) Marshal() ([]byte, error) {
	if h.Version != 1 {
		return nil, fmt.Errorf("unsupported version: %d", h.Version)
	}
	if h.ChannelCount == 0 {
		return nil, fmt.Errorf("invalid channel count: %d", h.ChannelCount)
	}

	buf := make([]byte, h.marshalSize())

	n := copy(buf, "OpusHead")
	buf[n] = h.Version
	n++
	buf[n] = h.ChannelCount
	n++
	binary.LittleEndian.PutUint16(buf[n:], h.PreSkip)
	n += 2
	binary.LittleEndian.PutUint32(buf[n:], h.InputSampleRate)
	n += 4
	binary.LittleEndian.PutUint16(buf[n:], h.OutputGain)
	n += 2
	buf[n] = h.ChannelMappingFamily
	n++
	copy(buf[n:], h.ChannelMappingTable)

	return buf, nil
}
