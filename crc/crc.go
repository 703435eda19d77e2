// Package crc computes the Bluetooth baseband integrity checks: the 16-bit
// payload CRC and the 8-bit header error check, both seeded with the UAP.
package crc

// Len16 is the CRC field length in bits.
const Len16 = 16

// LenHEC is the HEC field length in bits.
const LenHEC = 8

// CRC16 runs the CRC-CCITT register, g(D) = D^16 + D^12 + D^5 + 1, over
// air order bits. The register starts with uap in its low byte.
func CRC16(air []byte, uap uint8) uint16 {
	reg := uint16(uap)
	for _, b := range air {
		reg = reg<<1 | ((reg >> 15) ^ uint16(b&0x01))
		reg ^= (reg & 0x0001) << 5
		reg ^= (reg & 0x0001) << 12
	}
	return reg
}

// CheckCRC16 reports whether the last Len16 bits of air are the CRC of the
// bits before them. The CRC is sent starting with register bit 15, so
// running the register across it leaves zero.
func CheckCRC16(air []byte, uap uint8) bool {
	if len(air) < Len16 {
		return false
	}
	return CRC16(air, uap) == 0
}

// AppendCRC16 appends the CRC of air in transmission order.
func AppendCRC16(air []byte, uap uint8) []byte {
	return appendReg(air, uint32(CRC16(air, uap)), Len16)
}

// HEC runs the header error check register, g(D) = D^8 + D^7 + D^5 + D^2 +
// D + 1, over air order header bits.
func HEC(air []byte, uap uint8) uint8 {
	reg := uap
	for _, b := range air {
		reg = reg<<1 | ((reg >> 7) ^ (b & 0x01))
		t := reg & 0x01
		reg ^= t<<1 | t<<2 | t<<5 | t<<7
	}
	return reg
}

// CheckHEC reports whether the last LenHEC bits of air are the HEC of the
// header bits before them.
func CheckHEC(air []byte, uap uint8) bool {
	if len(air) < LenHEC {
		return false
	}
	return HEC(air, uap) == 0
}

// AppendHEC appends the HEC of air in transmission order.
func AppendHEC(air []byte, uap uint8) []byte {
	return appendReg(air, uint32(HEC(air, uap)), LenHEC)
}

func appendReg(air []byte, reg uint32, n int) []byte {
	out := make([]byte, len(air), len(air)+n)
	copy(out, air)
	for i := n - 1; i >= 0; i-- {
		out = append(out, byte(reg>>uint(i))&0x01)
	}
	return out
}
