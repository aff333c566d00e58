package fluxcodec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFluxStreamNextBitsAndReset(t *testing.T) {
	var s = NewMemoryFluxStream([]byte{1, 0, 1, 1, 0, 0, 1, 0}, nil)

	require.NoError(t, s.NextBits(8))
	assert.Equal(t, uint32(0b10110010), s.Word()&0xff)
	assert.Equal(t, 8, s.IndexOffset())

	s.Reset()
	assert.Equal(t, 0, s.IndexOffset())
	assert.Equal(t, uint32(0), s.Word())

	var bit, err = s.NextBit()
	require.NoError(t, err)
	assert.Equal(t, byte(1), bit)
}

func TestMemoryFluxStreamStreamEnd(t *testing.T) {
	var s = NewMemoryFluxStream([]byte{1}, nil)

	_, err := s.NextBit()
	require.NoError(t, err)

	_, err = s.NextBit()
	assert.ErrorIs(t, err, ErrStreamEnd)
}

func TestMemoryFluxStreamLatency(t *testing.T) {
	var s = NewMemoryFluxStream([]byte{0, 0, 0, 0}, nil)

	require.NoError(t, s.NextBits(2))
	assert.Equal(t, 2*NominalCellTime, s.Latency())

	s.ResetLatency()
	assert.Equal(t, time.Duration(0), s.Latency())

	require.NoError(t, s.NextBits(2))
	assert.Equal(t, 2*NominalCellTime, s.Latency())
}
