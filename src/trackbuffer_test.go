package fluxcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackBufferRawBits(t *testing.T) {
	var buf = NewTrackBuffer()
	buf.Bits(SpeedAvg, ModeRaw, 8, 0b10110010)

	assert.Equal(t, []byte{1, 0, 1, 1, 0, 0, 1, 0}, buf.Cells())
	assert.Equal(t, 8, buf.Len())
}

func TestTrackBufferGapSpeed(t *testing.T) {
	var buf = NewTrackBuffer()
	buf.Gap(95000, 4)

	assert.Equal(t, []byte{0, 0, 0, 0}, buf.Cells())
	assert.Equal(t, []int{95000, 95000, 95000, 95000}, buf.Speeds())
}

func TestTrackBufferAutoSectorSplitDefault(t *testing.T) {
	var buf = NewTrackBuffer()
	assert.True(t, buf.AutoSectorSplit())

	buf.DisableAutoSectorSplit()
	assert.False(t, buf.AutoSectorSplit())
}

func TestTrackBufferToMemoryFluxStreamAppliesSpeed(t *testing.T) {
	var buf = NewTrackBuffer()
	buf.Gap(SpeedAvg/2, 1) // half the speed value: half the nominal cell duration

	var stream = buf.ToMemoryFluxStream()

	assert.Equal(t, NominalCellTime/2, stream.times[0])
}
