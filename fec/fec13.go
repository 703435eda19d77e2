package fec

import (
	"github.com/pkg/errors"
)

// Decode13 recovers n bits from a rate 1/3 repetition coded stream by
// majority vote over each group of three.
func Decode13(in []byte, n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrShortInput, "rate 1/3: negative length %d", n)
	}
	if len(in) < 3*n {
		return nil, errors.Wrapf(ErrShortInput, "rate 1/3: want %d bits, have %d", 3*n, len(in))
	}

	out := make([]byte, n)
	for i := range out {
		a, b, c := in[3*i], in[3*i+1], in[3*i+2]
		out[i] = (a & b) | (b & c) | (c & a)
	}
	return out, nil
}

// Encode13 repeats each bit three times.
func Encode13(data []byte) []byte {
	out := make([]byte, 0, 3*len(data))
	for _, b := range data {
		out = append(out, b, b, b)
	}
	return out
}
