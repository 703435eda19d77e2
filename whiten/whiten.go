// Package whiten removes the data whitening applied to the packet header
// and payload before transmission.
//
// The whitening word is the output of the LFSR x^7 + x^4 + 1. The register
// is loaded with clock bits CLK1..CLK6 and a leading 1, so each of the 64
// clock phases starts at a fixed position in the 127-bit sequence.
package whiten

// Period of the whitening sequence.
const Period = 127

var (
	sequence [Period]byte
	indices  [64]byte
)

func init() {
	var pos [128]int

	state := 0x7f
	for i := 0; i < Period; i++ {
		pos[state] = i
		out := (state >> 6) & 0x01
		sequence[i] = byte(out)
		state = (state<<1)&0x7f | out
		if out != 0 {
			state ^= 0x10
		}
	}

	for clk := range indices {
		indices[clk] = byte(pos[0x40|clk])
	}
}

// Sequence returns a copy of the whitening sequence.
func Sequence() [Period]byte {
	return sequence
}

// Index returns the sequence position the given clock starts at. Only
// clock bits 0-5 are used.
func Index(clock uint32) int {
	return int(indices[clock&0x3f])
}

// Unwhiten XORs in with the whitening sequence for clock, starting skip
// bits into the word. The result is a new slice; in is not modified.
func Unwhiten(in []byte, clock uint32, skip int) []byte {
	out := make([]byte, len(in))
	unwhiten(out, in, clock, skip)
	return out
}

// Whiten is the inverse of Unwhiten, which is the same operation.
func Whiten(in []byte, clock uint32, skip int) []byte {
	return Unwhiten(in, clock, skip)
}

// UnwhitenInto writes the unwhitened bits of src into dst and returns the
// number of bits written, the shorter of the two lengths.
func UnwhitenInto(dst, src []byte, clock uint32, skip int) int {
	if len(src) < len(dst) {
		dst = dst[:len(src)]
	}
	unwhiten(dst, src[:len(dst)], clock, skip)
	return len(dst)
}

func unwhiten(dst, src []byte, clock uint32, skip int) {
	index := (Index(clock) + skip%Period + Period) % Period
	for i, b := range src {
		dst[i] = b ^ sequence[index]
		index++
		if index == Period {
			index = 0
		}
	}
}
