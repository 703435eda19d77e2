// Package bits converts between air order bit arrays and host integers.
//
// An air order array stores one bit per byte, each element 0 or 1, in the
// order the bits were transmitted. Element 0 is the least significant bit
// of the host value.
package bits

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidBit is returned when an element is neither 0 nor 1.
var ErrInvalidBit = errors.New("invalid bit")

// AirToHost8 reads n (<= 8) bits from air into a host order value.
func AirToHost8(air []byte, n int) uint8 {
	var v uint8
	for i := 0; i < n; i++ {
		v |= air[i] << uint(i)
	}
	return v
}

// AirToHost16 reads n (<= 16) bits from air into a host order value.
func AirToHost16(air []byte, n int) uint16 {
	var v uint16
	for i := 0; i < n; i++ {
		v |= uint16(air[i]) << uint(i)
	}
	return v
}

// AirToHost32 reads n (<= 32) bits from air into a host order value.
func AirToHost32(air []byte, n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		v |= uint32(air[i]) << uint(i)
	}
	return v
}

// HostToAir writes the low n bits of v into air, least significant first.
func HostToAir(v uint32, air []byte, n int) {
	for i := 0; i < n; i++ {
		air[i] = byte(v>>uint(i)) & 0x01
	}
}

// Reverse8 reverses the bit order of a byte.
func Reverse8(b byte) byte {
	return (b&0x80)>>7 | (b&0x40)>>5 | (b&0x20)>>3 | (b&0x10)>>1 |
		(b&0x08)<<1 | (b&0x04)<<3 | (b&0x02)<<5 | (b&0x01)<<7
}

// FromByte expands b into out[0:8], most significant bit first.
func FromByte(b byte, out []byte) {
	for i := 0; i < 8; i++ {
		out[i] = (b & 0x80) >> 7
		b <<= 1
	}
}

// FromBytes expands each byte of in MSB first.
func FromBytes(in []byte) []byte {
	out := make([]byte, len(in)*8)
	for i, b := range in {
		FromByte(b, out[i*8:])
	}
	return out
}

// Validate reports the first element that is not 0 or 1.
func Validate(air []byte) error {
	for i, b := range air {
		if b > 1 {
			return errors.Wrapf(ErrInvalidBit, "0x%02x at index %d", b, i)
		}
	}
	return nil
}

// Parse accepts either a raw one-bit-per-byte buffer or ASCII '0'/'1'
// text. Whitespace in text input is ignored.
func Parse(b []byte) ([]byte, error) {
	if Validate(b) == nil {
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil
	}

	out := make([]byte, 0, len(b))
	for i, c := range b {
		switch c {
		case '0', '1':
			out = append(out, c-'0')
		case ' ', '\t', '\r', '\n':
		default:
			return nil, errors.Wrapf(ErrInvalidBit, "%q at offset %d", c, i)
		}
	}
	return out, nil
}

// Format renders air as a string of '0' and '1'.
func Format(air []byte) string {
	var sb strings.Builder
	sb.Grow(len(air))
	for _, b := range air {
		sb.WriteByte('0' + b&0x01)
	}
	return sb.String()
}
