package fluxcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestMFMEncodeWordClockFillRule(t *testing.T) {
	// 0x00: every data bit is zero, every preceding bit is zero, so every
	// clock bit should be set.
	var w = MFMEncodeWord(0x00)
	assert.Equal(t, uint16(0xAAAA), w)
}

func TestAllBitsByteRoundtrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var b = byte(rapid.IntRange(0, 255).Draw(rt, "b"))

		var buf = NewTrackBuffer()
		var prev byte
		buf.mfmEncodeAllBitsByte(SpeedAvg, b, &prev)

		var stream = buf.ToMemoryFluxStream()
		var got, err = readAllBitsByte(stream)

		assert.NoError(t, err)
		assert.Equal(t, b, got)
	})
}

func TestOddEvenWordRoundtrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var v = rapid.Uint32().Draw(rt, "v")

		var odd, even = mfmEncodeOddEvenWord(v)
		var got = mfmDecodeOddEvenWord(odd, even)

		assert.Equal(t, v, got)
	})
}
