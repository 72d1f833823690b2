package opus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var idHeaderCases = []struct {
	name string
	enc  []byte
	dec  IDHeader
}{
	{
		"stereo",
		[]byte{
			'O', 'p', 'u', 's', 'H', 'e', 'a', 'd',
			0x01, 0x02,
			0x00, 0x0F,
			0x80, 0xBB, 0x00, 0x00,
			0x00, 0x00,
			0x00,
		},
		IDHeader{
			Version:              1,
			ChannelCount:         2,
			PreSkip:              3840,
			InputSampleRate:      48000,
			OutputGain:           0,
			ChannelMappingFamily: 0,
			ChannelMappingTable:  []uint8{},
		},
	},
	{
		"surround",
		[]byte{
			'O', 'p', 'u', 's', 'H', 'e', 'a', 'd',
			0x01, 0x06,
			0x38, 0x01,
			0x80, 0xBB, 0x00, 0x00,
			0x00, 0x00,
			0x01,
			0x04, 0x02, 0x00, 0x04, 0x01, 0x02, 0x03, 0x05,
		},
		IDHeader{
			Version:              1,
			ChannelCount:         6,
			PreSkip:              312,
			InputSampleRate:      48000,
			OutputGain:           0,
			ChannelMappingFamily: 1,
			ChannelMappingTable:  []uint8{0x04, 0x02, 0x00, 0x04, 0x01, 0x02, 0x03, 0x05},
		},
	},
}

func TestIDHeaderUnmarshal(t *testing.T) {
	for _, ca := range idHeaderCases {
		t.Run(ca.name, func(t *testing.T) {
			var h IDHeader
			err := h.Unmarshal(ca.enc)
			require.NoError(t, err)
			require.Equal(t, ca.dec, h)
		})
	}
}

func TestIDHeaderMarshal(t *testing.T) {
	for _, ca := range idHeaderCases {
		t.Run(ca.name, func(t *testing.T) {
			buf, err := ca.dec.Marshal()
			require.NoError(t, err)
			require.Equal(t, ca.enc, buf)
		})
	}
}

func TestIDHeaderUnmarshalErrors(t *testing.T) {
	for _, ca := range []struct {
		name string
		enc  []byte
	}{
		{
			"not enough bytes",
			[]byte{'O', 'p', 'u', 's'},
		},
		{
			"wrong magic",
			[]byte{
				'O', 'p', 'u', 's', 'T', 'a', 'g', 's',
				0x01, 0x02,
				0x00, 0x0F,
				0x80, 0xBB, 0x00, 0x00,
				0x00, 0x00,
				0x00,
			},
		},
		{
			"unsupported version",
			[]byte{
				'O', 'p', 'u', 's', 'H', 'e', 'a', 'd',
				0x02, 0x02,
				0x00, 0x0F,
				0x80, 0xBB, 0x00, 0x00,
				0x00, 0x00,
				0x00,
			},
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			var h IDHeader
			err := h.Unmarshal(ca.enc)
			require.Error(t, err)
		})
	}
}

func TestIDHeaderMarshalErrors(t *testing.T) {
	_, err := IDHeader{
		Version:      0,
		ChannelCount: 2,
	}.Marshal()
	require.Error(t, err)

	_, err = IDHeader{
		Version:      1,
		ChannelCount: 0,
	}.Marshal()
	require.Error(t, err)
}
