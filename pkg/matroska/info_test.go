package matroska

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/gowebmlib/pkg/ebml"
)

func float64Ptr(v float64) *float64 {
	return &v
}

var infoCases = []struct {
	name        string
	dec         Info
	enc         []byte
	durationPos int64
}{
	{
		"without duration",
		Info{
			TimecodeScale: 1000000,
			MuxingApp:     "gowebmlib",
			WritingApp:    "gowebmlib",
		},
		[]byte{
			0x15, 0x49, 0xA9, 0x66, 0x9F,
			0x2A, 0xD7, 0xB1, 0x83, 0x0F, 0x42, 0x40,
			0x4D, 0x80, 0x89, 'g', 'o', 'w', 'e', 'b', 'm', 'l', 'i', 'b',
			0x57, 0x41, 0x89, 'g', 'o', 'w', 'e', 'b', 'm', 'l', 'i', 'b',
		},
		-1,
	},
	{
		"with duration placeholder",
		Info{
			TimecodeScale: 1000000,
			MuxingApp:     "gowebmlib",
			WritingApp:    "gowebmlib",
			Duration:      float64Ptr(0),
		},
		[]byte{
			0x15, 0x49, 0xA9, 0x66, 0xAA,
			0x2A, 0xD7, 0xB1, 0x83, 0x0F, 0x42, 0x40,
			0x44, 0x89, 0x88, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			0x4D, 0x80, 0x89, 'g', 'o', 'w', 'e', 'b', 'm', 'l', 'i', 'b',
			0x57, 0x41, 0x89, 'g', 'o', 'w', 'e', 'b', 'm', 'l', 'i', 'b',
		},
		12,
	},
	{
		"with duration value",
		Info{
			TimecodeScale: 1000000,
			MuxingApp:     "app1",
			WritingApp:    "app2",
			Duration:      float64Ptr(66),
		},
		[]byte{
			0x15, 0x49, 0xA9, 0x66, 0xA0,
			0x2A, 0xD7, 0xB1, 0x83, 0x0F, 0x42, 0x40,
			0x44, 0x89, 0x88, 0x40, 0x50, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
			0x4D, 0x80, 0x84, 'a', 'p', 'p', '1',
			0x57, 0x41, 0x84, 'a', 'p', 'p', '2',
		},
		12,
	},
}

func TestInfoMarshal(t *testing.T) {
	for _, ca := range infoCases {
		t.Run(ca.name, func(t *testing.T) {
			var d streamDest
			durationPos, err := ca.dec.Marshal(ebml.NewWriter(&d))
			require.NoError(t, err)
			require.Equal(t, ca.enc, d.buf.Bytes())
			require.Equal(t, ca.durationPos, durationPos)
		})
	}
}
