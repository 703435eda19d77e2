package crc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

var sample = []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 1, 0, 0, 0, 0, 1, 1, 0, 1, 0, 0, 1, 1, 1}

func TestCRC16Empty(t *testing.T) {
	for _, uap := range []uint8{0x00, 0x47, 0xff} {
		assert.Equal(t, uint16(uap), CRC16(nil, uap))
	}
}

func TestCRC16Known(t *testing.T) {
	assert.Equal(t, uint16(0xe24a), CRC16(sample, 0x47))
	assert.Equal(t, uint16(0x1ef0), CRC16([]byte{1, 1, 1, 1, 1, 1, 1, 1}, 0x00))
	assert.Equal(t, uint16(0xff00), CRC16(make([]byte, 8), 0xff))
}

func TestCRC16Check(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.ByteRange(0, 1), 0, 400).Draw(t, "data")
		uap := rapid.Uint8().Draw(t, "uap")

		framed := AppendCRC16(data, uap)
		assert.Len(t, framed, len(data)+Len16)
		assert.True(t, CheckCRC16(framed, uap))

		flip := rapid.IntRange(0, len(framed)-1).Draw(t, "flip")
		framed[flip] ^= 1
		assert.False(t, CheckCRC16(framed, uap))
	})
}

func TestCRC16Short(t *testing.T) {
	assert.False(t, CheckCRC16(make([]byte, Len16-1), 0))
}

func TestHECKnown(t *testing.T) {
	assert.Equal(t, uint8(0xe8), HEC(sample[:10], 0x47))
	assert.Equal(t, uint8(0x16), HEC([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0}, 0x00))
	assert.Equal(t, uint8(0x5a), HEC(nil, 0x5a))
}

func TestHECCheck(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		hdr := rapid.SliceOfN(rapid.ByteRange(0, 1), 10, 10).Draw(t, "hdr")
		uap := rapid.Uint8().Draw(t, "uap")

		framed := AppendHEC(hdr, uap)
		assert.True(t, CheckHEC(framed, uap))
		assert.False(t, CheckHEC(framed, uap^0x01))

		framed[rapid.IntRange(0, len(framed)-1).Draw(t, "flip")] ^= 1
		assert.False(t, CheckHEC(framed, uap))
	})
	assert.False(t, CheckHEC(nil, 0))
}
