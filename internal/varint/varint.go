// Package varint implements the base-128 variable-length unsigned integer
// encoding used by deck codes: 7 data bits per byte, least significant group
// first, with bit 7 set on every byte except the last.
package varint

import (
	"errors"
	"math"
)

// MaxLen is the longest encoding of a 32-bit value.
const MaxLen = 5

var (
	ErrValueOutOfRange = errors.New("varint: value out of range")
	ErrTruncatedVarint = errors.New("varint: truncated")
	ErrOverlongVarint  = errors.New("varint: overlong encoding")
)

// Append appends the encoding of v to dst.
func Append(dst []byte, v uint64) ([]byte, error) {
	if v > math.MaxUint32 {
		return dst, ErrValueOutOfRange
	}
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(dst, b), nil
		}
		dst = append(dst, b|0x80)
	}
}

// Encode returns the encoding of v.
func Encode(v uint64) ([]byte, error) {
	return Append(make([]byte, 0, MaxLen), v)
}

// Decode reads one value from the front of b and reports how many bytes it
// used.
func Decode(b []byte) (uint32, int, error) {
	var v uint64
	var shift uint
	for i, c := range b {
		if i == MaxLen {
			return 0, 0, ErrValueOutOfRange
		}
		v |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			// a zero final group means a shorter encoding exists
			if i > 0 && c == 0 {
				return 0, 0, ErrOverlongVarint
			}
			if v > math.MaxUint32 {
				return 0, 0, ErrValueOutOfRange
			}
			return uint32(v), i + 1, nil
		}
		shift += 7
	}
	return 0, 0, ErrTruncatedVarint
}

// Reader decodes consecutive values from a byte slice.
type Reader struct {
	buf []byte
	off int
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Next decodes the next value.
func (r *Reader) Next() (uint32, error) {
	v, n, err := Decode(r.buf[r.off:])
	if err != nil {
		return 0, err
	}
	r.off += n
	return v, nil
}

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

// Len is the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.off }
