// Package ebml implements the subset of the EBML binary format that is
// needed to write Matroska and WebM streams.
// Specification: RFC 8794
package ebml

// MaxSize is the highest value a size field can carry. The all-ones
// pattern of the widest (8 byte) encoding is reserved to mean "unknown
// size".
const MaxSize = 1<<56 - 2

// IDWidth returns the number of bytes taken by an element ID. IDs carry
// their own width marker, therefore the width follows from the value.
func IDWidth(id uint64) int {
	switch {
	case id <= 0xFF:
		return 1

	case id <= 0xFFFF:
		return 2

	case id <= 0xFFFFFF:
		return 3
	}

	return 4
}

// SizeWidth returns the number of bytes of the minimal encoding of a
// size value. Each width reserves its all-ones pattern for "unknown
// size", hence the highest value of a N-byte encoding is 2^(7N)-2.
func SizeWidth(v uint64) int {
	for w, max := 1, uint64(126); w < 8; w, max = w+1, max<<7+254 {
		if v <= max {
			return w
		}
	}
	return 8
}

// UIntWidth returns the number of bytes of the minimal encoding of an
// unsigned integer payload.
func UIntWidth(v uint64) int {
	w := 1
	for v >>= 8; v != 0; v >>= 8 {
		w++
	}
	return w
}

// ElementSize returns the on-wire size of an entire element: ID, size
// field and payload.
func ElementSize(id uint64, payloadSize int) int {
	return IDWidth(id) + SizeWidth(uint64(payloadSize)) + payloadSize
}

func putID(buf []byte, id uint64) int {
	w := IDWidth(id)
	for i := w - 1; i >= 0; i-- {
		buf[i] = byte(id)
		id >>= 8
	}
	return w
}

func putSize(buf []byte, v uint64, width int) int {
	v |= 1 << uint(7*width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	return width
}

func putUInt(buf []byte, v uint64) int {
	w := UIntWidth(v)
	for i := w - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	return w
}
