package matroska

import (
	"bytes"
)

type streamDest struct {
	buf bytes.Buffer
}

func (d *streamDest) Write(p []byte) (int, error) {
	return d.buf.Write(p)
}

func (d *streamDest) Position() int64 {
	return int64(d.buf.Len())
}
