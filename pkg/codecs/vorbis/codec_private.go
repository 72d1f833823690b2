// Package vorbis contains the CodecPrivate layout of Vorbis tracks.
package vorbis

import (
	"fmt"
)

// the identification header has a fixed size.
// Specification: Vorbis I specification, section 4.2.2
const identificationSize = 30

func headerMagic(buf []byte, typ byte) bool {
	return len(buf) >= 7 && buf[0] == typ && string(buf[1:7]) == "vorbis"
}

func lacingSize(n int) int {
	return n/255 + 1
}

func appendLacing(buf []byte, n int) []byte {
	for ; n >= 255; n -= 255 {
		buf = append(buf, 0xFF)
	}
	return append(buf, byte(n))
}

func readLacing(buf []byte) (int, int, error) {
	n := 0
	for i, b := range buf {
		n += int(b)
		if b != 0xFF {
			return n, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("invalid lacing")
}

// CodecPrivate is the initialization blob of a Vorbis track: the three
// Vorbis headers joined with Xiph lacing.
// Specification: https://www.matroska.org/technical/codec_specs.html
type CodecPrivate struct {
	Identification []byte
	Comment        []byte
	Setup          []byte
}

// Unmarshal decodes a CodecPrivate.
func (p *CodecPrivate) Unmarshal(buf []byte) error {
	if len(buf) < 1 {
		return fmt.Errorf("not enough bytes")
	}
	if buf[0] != 2 {
		return fmt.Errorf("invalid header count: %d", buf[0])
	}
	buf = buf[1:]

	idSize, n, err := readLacing(buf)
	if err != nil {
		return err
	}
	buf = buf[n:]

	commentSize, n, err := readLacing(buf)
	if err != nil {
		return err
	}
	buf = buf[n:]

	if len(buf) < idSize+commentSize {
		return fmt.Errorf("not enough bytes")
	}

	p.Identification = buf[:idSize]
	p.Comment = buf[idSize : idSize+commentSize]
	p.Setup = buf[idSize+commentSize:]

	return p.validate()
}

func (p CodecPrivate) validate() error {
	if len(p.Identification) != identificationSize {
		return fmt.Errorf("invalid identification header size: %d", len(p.Identification))
	}
	if !headerMagic(p.Identification, 1) {
		return fmt.Errorf("identification header not found")
	}
	if !headerMagic(p.Comment, 3) {
		return fmt.Errorf("comment header not found")
	}
	if !headerMagic(p.Setup, 5) {
		return fmt.Errorf("setup header not found")
	}
	return nil
}

func (p CodecPrivate) marshalSize() int {
	return 1 + lacingSize(len(p.Identification)) + lacingSize(len(p.Comment)) +
		len(p.Identification) + len(p.Comment) + len(p.Setup)
}

// Marshal encodes a CodecPrivate.
func (p CodecPrivate) Marshal() ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, p.marshalSize())
	buf = append(buf, 2)
	buf = appendLacing(buf, len(p.Identification))
	buf = appendLacing(buf, len(p.Comment))
	buf = append(buf, p.Identification...)
	buf = append(buf, p.Comment...)
	buf = append(buf, p.Setup...)
	return buf, nil
}
