// Package accesscode derives Bluetooth BR/EDR access codes from a LAP and
// correlates them against a demodulated bit stream.
package accesscode

import (
	"encoding/binary"

	"github.com/rigado/btbb/bits"
	"github.com/rigado/btbb/lfsr"
)

const (
	// Len is the access code length in bits: preamble, sync word, trailer.
	Len = 72

	// SyncLen is the length of the sync word in bits.
	SyncLen = 64

	// LAPMask selects the meaningful bits of a LAP.
	LAPMask = 0xffffff

	// GIAC is the general inquiry access code LAP.
	GIAC = 0x9e8b33
)

// 64-bit pseudo-random overlay, plus the trailing nibble.
var pn = [9]byte{0x03, 0xf2, 0xa3, 0x3d, 0xd6, 0x9b, 0x12, 0x1c, 0x10}

// Generator of the (64,30) expurgated block code, g[j] is the coefficient of D^j.
var generator = [35]byte{
	1, 0, 0, 1, 0, 1, 0, 1, 1, 0, 1, 1, 1, 1, 0, 0, 1, 0,
	0, 0, 1, 1, 1, 0, 1, 0, 1, 0, 0, 0, 0, 1, 1, 0, 1,
}

// Code is a 72-bit access code, first transmitted bit in the MSB of byte 0.
type Code [9]byte

// Generate derives the access code for lap. Only the low 24 bits are used.
func Generate(lap uint32) Code {
	var ac Code

	l := uint32(bits.Reverse8(byte(lap>>16))) |
		uint32(bits.Reverse8(byte(lap>>8)))<<8 |
		uint32(bits.Reverse8(byte(lap)))<<16

	ac[4] = byte((l & 0xc00000) >> 22)
	ac[5] = byte((l & 0x3fc000) >> 14)
	ac[6] = byte((l & 0x003fc0) >> 6)
	ac[7] = byte((l & 0x00003f) << 2)

	// Barker sequence, picked so the trailer is DC free.
	if l&0x01 != 0 {
		ac[7] |= 0x03
		ac[8] = 0x2a
	} else {
		ac[8] = 0xd5
	}

	for i := 4; i < 9; i++ {
		ac[i] ^= pn[i]
	}

	data := make([]byte, 30)
	data[0] = (ac[4] & 0x02) >> 1
	data[1] = ac[4] & 0x01
	bits.HostToAir(uint32(bits.Reverse8(ac[5])), data[2:], 8)
	bits.HostToAir(uint32(bits.Reverse8(ac[6])), data[10:], 8)
	bits.HostToAir(uint32(bits.Reverse8(ac[7])), data[18:], 8)
	bits.HostToAir(uint32(bits.Reverse8(ac[8])), data[26:], 4)

	cw := lfsr.Codeword(data, 64, 30, generator[:])

	ac[0] = cw[0]<<3 | cw[1]<<2 | cw[2]<<1 | cw[3]
	ac[1] = pack(cw[4:12])
	ac[2] = pack(cw[12:20])
	ac[3] = pack(cw[20:28])
	ac[4] = cw[28]<<7 | cw[29]<<6 | cw[30]<<5 | cw[31]<<4 | cw[32]<<3 | cw[33]<<2 | ac[4]&0x03

	for i := range ac {
		ac[i] ^= pn[i]
	}

	// Preamble mirrors the first sync word bit.
	if ac[0]&0x08 != 0 {
		ac[0] |= 0xa0
	} else {
		ac[0] |= 0x50
	}

	return ac
}

// pack folds 8 bits into a byte, first bit most significant.
func pack(b []byte) byte {
	var v byte
	for _, x := range b[:8] {
		v = v<<1 | x
	}
	return v
}

// Bits expands the code to one bit per byte in transmission order.
func (c Code) Bits() []byte {
	return bits.FromBytes(c[:])
}

// Preamble returns the 4-bit preamble.
func (c Code) Preamble() byte {
	return c[0] >> 4
}

// SyncWord returns the 64-bit sync word between preamble and trailer.
func (c Code) SyncWord() uint64 {
	return binary.BigEndian.Uint64(c[:8])<<4 | uint64(c[8]>>4)
}

// Trailer returns the 4-bit trailer.
func (c Code) Trailer() byte {
	return c[8] & 0x0f
}

// Matches reports whether the first Len bits of window are exactly the
// access code for lap. A single differing bit rejects the window.
func Matches(window []byte, lap uint32) bool {
	return NewMatcher(lap).Match(window)
}
