package fec

import (
	"github.com/pkg/errors"

	"github.com/rigado/btbb/lfsr"
)

const (
	// BlockLen is the length of an encoded rate 2/3 block.
	BlockLen = 15

	// DataLen is the number of data bits in a rate 2/3 block.
	DataLen = 10

	parityLen = BlockLen - DataLen
)

// g(D) = (D+1)(D^4+D+1), laid out in the order the LFSR consumes it.
var generator23 = [parityLen + 1]byte{1, 1, 0, 1, 0, 1}

// syndromes maps a 5-bit syndrome, first parity bit most significant, to
// the data bit a single error in that position produces. Parity-only
// errors and the zero syndrome map to -1.
var syndromes [1 << parityLen]int8

func init() {
	for i := range syndromes {
		syndromes[i] = -1
	}

	e := make([]byte, DataLen)
	for i := 0; i < DataLen; i++ {
		e[i] = 1
		s := pack5(lfsr.Codeword(e, BlockLen, DataLen, generator23[:]))
		e[i] = 0

		if syndromes[s] != -1 {
			panic("fec: generator does not separate single bit errors")
		}
		syndromes[s] = int8(i)
	}
}

func pack5(b []byte) int {
	var v int
	for _, x := range b[:parityLen] {
		v = v<<1 | int(x&0x01)
	}
	return v
}

func blocks(n int) int {
	return (n + DataLen - 1) / DataLen
}

// Syndrome returns the data bit position corrected for syndrome s, or -1
// when s is not produced by a single data bit error.
func Syndrome(s int) int {
	if s < 0 || s >= len(syndromes) {
		return -1
	}
	return int(syndromes[s])
}

// Decode23 recovers n data bits from a rate 2/3 coded stream. n is padded
// up to a whole number of 10-bit blocks; the result has the padded length.
//
// A block with at most one parity mismatch is accepted as is. Otherwise
// its syndrome must match a single data bit error, which is corrected. Any
// other syndrome fails the whole call with ErrUncorrectable and no output.
func Decode23(in []byte, n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrShortInput, "rate 2/3: negative length %d", n)
	}
	nb := blocks(n)
	if len(in) < nb*BlockLen {
		return nil, errors.Wrapf(ErrShortInput, "rate 2/3: want %d bits, have %d", nb*BlockLen, len(in))
	}

	out := make([]byte, nb*DataLen)
	for blk := 0; blk < nb; blk++ {
		block := in[blk*BlockLen : (blk+1)*BlockLen]
		data := out[blk*DataLen : (blk+1)*DataLen]
		copy(data, block[:DataLen])

		cw := lfsr.Codeword(data, BlockLen, DataLen, generator23[:])

		diff := 0
		s := 0
		for i := 0; i < parityLen; i++ {
			x := (cw[i] ^ block[DataLen+i]) & 0x01
			diff += int(x)
			s = s<<1 | int(x)
		}

		// No error, or an error in a parity bit only.
		if diff <= 1 {
			continue
		}

		pos := Syndrome(s)
		if pos < 0 {
			return nil, errors.Wrapf(ErrUncorrectable, "block %d syndrome %05b", blk, s)
		}
		data[pos] ^= 1
	}
	return out, nil
}

// Encode23 encodes data into rate 2/3 blocks, zero padding the last block.
func Encode23(data []byte) []byte {
	nb := blocks(len(data))
	out := make([]byte, 0, nb*BlockLen)

	block := make([]byte, DataLen)
	for blk := 0; blk < nb; blk++ {
		for i := range block {
			block[i] = 0
		}
		copy(block, data[blk*DataLen:])

		out = append(out, block...)
		out = append(out, lfsr.Codeword(block, BlockLen, DataLen, generator23[:])...)
	}
	return out
}
