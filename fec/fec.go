// Package fec implements the two forward error correction schemes of the
// Bluetooth baseband: the rate 1/3 bit repetition code and the rate 2/3
// (15,10) shortened Hamming code.
package fec

import (
	"github.com/pkg/errors"
)

var (
	// ErrUncorrectable is returned when a rate 2/3 block has a syndrome that
	// no single bit error produces.
	ErrUncorrectable = errors.New("uncorrectable fec block")

	// ErrShortInput is returned when the input holds fewer encoded bits
	// than the requested output needs.
	ErrShortInput = errors.New("fec input too short")
)

// Scheme identifies the FEC applied to a packet field.
type Scheme int

const (
	None Scheme = iota
	Rate13
	Rate23
)

func (s Scheme) String() string {
	switch s {
	case None:
		return "none"
	case Rate13:
		return "1/3"
	case Rate23:
		return "2/3"
	default:
		return "unknown"
	}
}

// EncodedLen returns the number of air bits carrying n data bits.
func (s Scheme) EncodedLen(n int) int {
	switch s {
	case Rate13:
		return 3 * n
	case Rate23:
		return blocks(n) * BlockLen
	default:
		return n
	}
}

// Decode decodes n data bits from in using scheme s.
func (s Scheme) Decode(in []byte, n int) ([]byte, error) {
	switch s {
	case Rate13:
		return Decode13(in, n)
	case Rate23:
		return Decode23(in, n)
	default:
		if len(in) < n {
			return nil, errors.Wrapf(ErrShortInput, "want %d bits, have %d", n, len(in))
		}
		out := make([]byte, n)
		copy(out, in)
		return out, nil
	}
}

// Encode encodes data using scheme s.
func (s Scheme) Encode(data []byte) []byte {
	switch s {
	case Rate13:
		return Encode13(data)
	case Rate23:
		return Encode23(data)
	default:
		out := make([]byte, len(data))
		copy(out, data)
		return out
	}
}
