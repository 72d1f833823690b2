package ebml

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Destination is the byte destination of a Writer.
type Destination interface {
	io.Writer

	// Position returns the absolute offset of the next byte to be written.
	Position() int64
}

// SeekableDestination is a Destination that supports absolute
// repositioning, which enables rewriting sizes and durations after the
// fact.
type SeekableDestination interface {
	Destination

	// SetPosition moves the write position to an absolute offset.
	SetPosition(pos int64) error
}

// ElementStartNotifier is implemented by destinations that want to know
// the absolute offset of every element as it is written.
type ElementStartNotifier interface {
	// OnElementStart is called right before the ID of an element is
	// written, including when an element is rewritten in place.
	OnElementStart(id uint64, pos int64)
}

var unknownSize = []byte{0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// Writer writes EBML elements to a destination.
// Seekability and element-start notification are detected once, when
// the Writer is created, and stay fixed afterwards.
type Writer struct {
	dest   Destination
	seek   SeekableDestination
	notify ElementStartNotifier
}

// NewWriter allocates a Writer.
func NewWriter(dest Destination) *Writer {
	w := &Writer{
		dest: dest,
	}
	w.seek, _ = dest.(SeekableDestination)
	w.notify, _ = dest.(ElementStartNotifier)
	return w
}

// Seekable reports whether the destination supports SetPosition.
func (w *Writer) Seekable() bool {
	return w.seek != nil
}

// Position returns the absolute offset of the next byte to be written.
func (w *Writer) Position() int64 {
	return w.dest.Position()
}

// SetPosition moves the write position to an absolute offset.
func (w *Writer) SetPosition(pos int64) error {
	if w.seek == nil {
		return fmt.Errorf("destination is not seekable")
	}
	return w.seek.SetPosition(pos)
}

// Write writes raw bytes.
func (w *Writer) Write(p []byte) (int, error) {
	return w.dest.Write(p)
}

// WriteID writes an element ID, notifying the destination beforehand.
func (w *Writer) WriteID(id uint64) error {
	if w.notify != nil {
		w.notify.OnElementStart(id, w.dest.Position())
	}

	buf := make([]byte, 4)
	n := putID(buf, id)
	_, err := w.dest.Write(buf[:n])
	return err
}

// WriteSize writes a size field with the minimal width.
func (w *Writer) WriteSize(v uint64) error {
	if v > MaxSize {
		return fmt.Errorf("size out of range: %d", v)
	}

	buf := make([]byte, 8)
	n := putSize(buf, v, SizeWidth(v))
	_, err := w.dest.Write(buf[:n])
	return err
}

// WriteUnknownSize writes the 8-byte marker of an element whose size is
// not known yet.
func (w *Writer) WriteUnknownSize() error {
	_, err := w.dest.Write(unknownSize)
	return err
}

// WriteMasterStart writes the ID and size of a master element whose
// payload size is known in advance.
func (w *Writer) WriteMasterStart(id uint64, payloadSize int) error {
	if err := w.WriteID(id); err != nil {
		return err
	}
	return w.WriteSize(uint64(payloadSize))
}

// WriteMasterUnknown writes the ID of a master element followed by the
// unknown-size marker, and returns the absolute offset of the size
// field so that it can be rewritten later.
func (w *Writer) WriteMasterUnknown(id uint64) (int64, error) {
	if err := w.WriteID(id); err != nil {
		return 0, err
	}

	pos := w.dest.Position()
	if err := w.WriteUnknownSize(); err != nil {
		return 0, err
	}
	return pos, nil
}

// WriteUInt writes an unsigned integer element with the minimal payload
// width.
func (w *Writer) WriteUInt(id uint64, v uint64) error {
	return w.WriteUIntWidth(id, v, UIntWidth(v))
}

// WriteUIntWidth writes an unsigned integer element with a fixed
// payload width.
func (w *Writer) WriteUIntWidth(id uint64, v uint64, width int) error {
	if err := w.WriteID(id); err != nil {
		return err
	}
	if err := w.WriteSize(uint64(width)); err != nil {
		return err
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	_, err := w.dest.Write(buf[8-width:])
	return err
}

// WriteFloat writes a 8-byte float element.
func (w *Writer) WriteFloat(id uint64, v float64) error {
	if err := w.WriteID(id); err != nil {
		return err
	}
	if err := w.WriteSize(8); err != nil {
		return err
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(v))
	_, err := w.dest.Write(buf)
	return err
}

// WriteString writes a string element.
func (w *Writer) WriteString(id uint64, v string) error {
	if err := w.WriteID(id); err != nil {
		return err
	}
	if err := w.WriteSize(uint64(len(v))); err != nil {
		return err
	}
	_, err := w.dest.Write([]byte(v))
	return err
}

// WriteBinary writes a binary element.
func (w *Writer) WriteBinary(id uint64, v []byte) error {
	if err := w.WriteID(id); err != nil {
		return err
	}
	if err := w.WriteSize(uint64(len(v))); err != nil {
		return err
	}
	_, err := w.dest.Write(v)
	return err
}

// WriteVoid writes a Void element that spans exactly size bytes, ID and
// size field included.
func (w *Writer) WriteVoid(size int) error {
	// 1 byte of ID plus at least 1 byte of size field.
	if size < 2 {
		return fmt.Errorf("invalid Void size: %d", size)
	}

	// the size field grows with the filler; pick the narrowest field
	// able to encode the remaining bytes.
	fill, fillWidth := 0, 0
	for sw := 1; sw <= 8; sw++ {
		fill = size - 1 - sw
		if fill >= 0 && SizeWidth(uint64(fill)) <= sw {
			fillWidth = sw
			break
		}
	}
	if fillWidth == 0 {
		return fmt.Errorf("invalid Void size: %d", size)
	}

	if err := w.WriteID(0xEC); err != nil {
		return err
	}

	buf := make([]byte, 8)
	n := putSize(buf, uint64(fill), fillWidth)
	if _, err := w.dest.Write(buf[:n]); err != nil {
		return err
	}

	_, err := w.dest.Write(make([]byte, fill))
	return err
}

// RewriteSize rewrites with a fixed 8-byte width a size field that was
// originally written as unknown, then restores the write position.
func (w *Writer) RewriteSize(pos int64, v uint64) error {
	if v > MaxSize {
		return fmt.Errorf("size out of range: %d", v)
	}

	end := w.dest.Position()

	if err := w.SetPosition(pos); err != nil {
		return err
	}

	buf := make([]byte, 8)
	putSize(buf, v, 8)
	if _, err := w.dest.Write(buf); err != nil {
		return err
	}

	return w.SetPosition(end)
}

// RewriteFloat rewrites a 8-byte float element in place, then restores
// the write position.
func (w *Writer) RewriteFloat(pos int64, id uint64, v float64) error {
	end := w.dest.Position()

	if err := w.SetPosition(pos); err != nil {
		return err
	}

	if err := w.WriteFloat(id, v); err != nil {
		return err
	}

	return w.SetPosition(end)
}
