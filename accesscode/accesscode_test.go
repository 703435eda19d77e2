package accesscode

import (
	"encoding/hex"
	"math/bits"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"
)

type vector struct {
	LAP  string `yaml:"lap"`
	Code string `yaml:"code"`
	Sync string `yaml:"sync"`
}

func loadVectors(t *testing.T) []vector {
	t.Helper()

	in, err := os.ReadFile("testdata/vectors.yaml")
	require.NoError(t, err)

	var vv []vector
	require.NoError(t, yaml.Unmarshal(in, &vv))
	require.NotEmpty(t, vv)
	return vv
}

func TestGenerateVectors(t *testing.T) {
	for _, v := range loadVectors(t) {
		t.Run(v.LAP, func(t *testing.T) {
			lap, err := strconv.ParseUint(v.LAP, 16, 32)
			require.NoError(t, err)

			want, err := hex.DecodeString(v.Code)
			require.NoError(t, err)

			ac := Generate(uint32(lap))
			assert.Equal(t, want, ac[:])

			if v.Sync != "" {
				sync, err := strconv.ParseUint(v.Sync, 16, 64)
				require.NoError(t, err)
				assert.Equal(t, sync, ac.SyncWord())
			}
		})
	}
}

func TestGenerateGIAC(t *testing.T) {
	ac := Generate(GIAC)

	assert.Equal(t, Code{0x54, 0x75, 0xc5, 0x8c, 0xc7, 0x33, 0x45, 0xe7, 0x2a}, ac)
	assert.Equal(t, uint64(0x475c58cc73345e72), ac.SyncWord())
	assert.Equal(t, byte(0x5), ac.Preamble())
	assert.Equal(t, byte(0xa), ac.Trailer())
	assert.Equal(t, []byte{0, 1, 0, 1}, ac.Bits()[:4])
}

func TestGenerateIgnoresHighBits(t *testing.T) {
	assert.Equal(t, Generate(GIAC), Generate(0xff000000|GIAC))
}

func TestPreambleAndTrailer(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ac := Generate(rapid.Uint32Range(0, LAPMask).Draw(t, "lap"))
		b := ac.Bits()

		// Preamble and trailer alternate and join the sync word without a repeat.
		assert.Contains(t, []byte{0x5, 0xa}, ac.Preamble())
		assert.Contains(t, []byte{0x5, 0xa}, ac.Trailer())
		assert.NotEqual(t, b[3], b[4])
		assert.NotEqual(t, b[67], b[68])
	})
}

func TestGenerateDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lap := rapid.Uint32Range(0, LAPMask).Draw(t, "lap")
		assert.Equal(t, Generate(lap), Generate(lap))
	})
}

func TestMatchesRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lap := rapid.Uint32Range(0, LAPMask).Draw(t, "lap")
		assert.True(t, Matches(Generate(lap).Bits(), lap))
	})
}

func TestSyncWordDistance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Uint32Range(0, LAPMask).Draw(t, "a")
		b := rapid.Uint32Range(0, LAPMask).Filter(func(v uint32) bool { return v != a }).Draw(t, "b")

		d := bits.OnesCount64(Generate(a).SyncWord() ^ Generate(b).SyncWord())
		assert.GreaterOrEqual(t, d, 14)
	})
}

func TestMatchesRejectsSingleBitError(t *testing.T) {
	window := Generate(GIAC).Bits()
	for i := range window {
		window[i] ^= 1
		assert.False(t, Matches(window, GIAC), "bit %d", i)
		window[i] ^= 1
	}
	assert.True(t, Matches(window, GIAC))
}

func TestMatchesShortWindow(t *testing.T) {
	window := Generate(GIAC).Bits()
	assert.False(t, Matches(window[:Len-1], GIAC))
	assert.False(t, Matches(nil, GIAC))
}

func TestMatcherTolerance(t *testing.T) {
	m := NewMatcher(GIAC)
	window := m.Code().Bits()
	window[10] ^= 1
	window[40] ^= 1

	assert.Equal(t, 2, m.Distance(window))
	assert.False(t, m.Match(window))
	assert.False(t, m.MatchWithin(window, 1))
	assert.True(t, m.MatchWithin(window, 2))
	assert.True(t, MatchesWithin(window, GIAC, 3))
	assert.Equal(t, -1, m.Distance(window[:10]))
}

func TestFind(t *testing.T) {
	code := Generate(GIAC).Bits()

	stream := make([]byte, 0, 300)
	for i := 0; i < 37; i++ {
		stream = append(stream, byte(i%3)&1)
	}
	stream = append(stream, code...)
	stream = append(stream, make([]byte, 50)...)

	assert.Equal(t, 37, Find(stream, GIAC, 0, 0))
	assert.Equal(t, 37, Find(stream, GIAC, 37, 0))
	assert.Equal(t, -1, Find(stream, GIAC, 38, 0))
	assert.Equal(t, -1, Find(stream[:37+Len-1], GIAC, 0, 0))
	assert.Equal(t, -1, Find(stream, 0x123456, 0, 0))

	stream[37+5] ^= 1
	assert.Equal(t, -1, Find(stream, GIAC, 0, 0))
	assert.Equal(t, 37, Find(stream, GIAC, -4, 1))
}
