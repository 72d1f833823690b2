package matroska

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/gowebmlib/pkg/ebml"
)

var simpleBlockCases = []struct {
	name string
	dec  SimpleBlock
	enc  []byte
}{
	{
		"keyframe",
		SimpleBlock{
			TrackNumber: 1,
			Timecode:    0,
			Keyframe:    true,
			Payload:     []byte{0xAA, 0xBB},
		},
		[]byte{
			0xA3, 0x86,
			0x81, 0x00, 0x00, 0x80,
			0xAA, 0xBB,
		},
	},
	{
		"negative timecode",
		SimpleBlock{
			TrackNumber: 2,
			Timecode:    -26,
			Payload:     []byte{0x01, 0x02, 0x03},
		},
		[]byte{
			0xA3, 0x87,
			0x82, 0xFF, 0xE6, 0x00,
			0x01, 0x02, 0x03,
		},
	},
	{
		"empty payload",
		SimpleBlock{
			TrackNumber: 3,
			Timecode:    100,
		},
		[]byte{
			0xA3, 0x84,
			0x83, 0x00, 0x64, 0x00,
		},
	},
	{
		"highest track number",
		SimpleBlock{
			TrackNumber: 126,
			Timecode:    0x7FFF,
			Keyframe:    true,
			Payload:     []byte{0x05},
		},
		[]byte{
			0xA3, 0x85,
			0xFE, 0x7F, 0xFF, 0x80,
			0x05,
		},
	},
}

func TestSimpleBlockMarshal(t *testing.T) {
	for _, ca := range simpleBlockCases {
		t.Run(ca.name, func(t *testing.T) {
			var d streamDest
			err := ca.dec.Marshal(ebml.NewWriter(&d))
			require.NoError(t, err)
			require.Equal(t, ca.enc, d.buf.Bytes())
		})
	}
}

func TestSimpleBlockMarshalInvalidTrackNumber(t *testing.T) {
	for _, ca := range []struct {
		name string
		num  uint64
	}{
		{"zero", 0},
		{"too high", 127},
	} {
		t.Run(ca.name, func(t *testing.T) {
			var d streamDest
			err := SimpleBlock{
				TrackNumber: ca.num,
				Payload:     []byte{0x01},
			}.Marshal(ebml.NewWriter(&d))
			require.Error(t, err)
		})
	}
}
