package bits

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAirToHost(t *testing.T) {
	air := []byte{1, 0, 1, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1}

	assert.Equal(t, uint8(0x0d), AirToHost8(air, 8))
	assert.Equal(t, uint8(0x05), AirToHost8(air, 3))
	assert.Equal(t, uint16(0x810d), AirToHost16(air, 16))
	assert.Equal(t, uint32(0x010d), AirToHost32(air, 9))
	assert.Equal(t, uint32(0), AirToHost32(air, 0))
}

func TestHostToAirRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 32).Draw(t, "n")
		v := rapid.Uint32().Draw(t, "v")

		air := make([]byte, n)
		HostToAir(v, air, n)
		for _, b := range air {
			assert.LessOrEqual(t, b, byte(1))
		}

		var mask uint32 = 0xffffffff
		if n < 32 {
			mask = 1<<uint(n) - 1
		}
		assert.Equal(t, v&mask, AirToHost32(air, n))
	})
}

func TestReverse8(t *testing.T) {
	assert.Equal(t, byte(0x80), Reverse8(0x01))
	assert.Equal(t, byte(0xcc), Reverse8(0x33))
	assert.Equal(t, byte(0x79), Reverse8(0x9e))

	for i := 0; i < 256; i++ {
		assert.Equal(t, byte(i), Reverse8(Reverse8(byte(i))))
	}
}

func TestFromBytes(t *testing.T) {
	assert.Equal(t, []byte{0, 1, 0, 1, 0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1}, FromBytes([]byte{0x54, 0x81}))
}

func TestParse(t *testing.T) {
	raw := []byte{0, 1, 1, 0}
	out, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, out)

	out, err = Parse([]byte("01 10\n1"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 1, 0, 1}, out)
	assert.Equal(t, "01101", Format(out))

	_, err = Parse([]byte("0102"))
	assert.Equal(t, ErrInvalidBit, errors.Cause(err))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.NoError(t, Validate([]byte{0, 1}))

	err := Validate([]byte{0, 1, 2})
	require.Error(t, err)
	assert.Equal(t, ErrInvalidBit, errors.Cause(err))
	assert.Contains(t, err.Error(), "index 2")
}
