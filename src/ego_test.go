package fluxcodec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEgoCoreRoundtrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		const sync = 0x8951
		const length = 1536

		var payload = make([]byte, (length-1)*4)
		for i := range payload {
			payload[i] = byte(rapid.IntRange(0, 255).Draw(rt, "b"))
		}

		var ti = &TrackInfo{Payload: payload}
		var buf = NewTrackBuffer()
		require.NoError(t, encodeEgoCore(sync, length)(ti, nil, buf))

		var stream = buf.ToMemoryFluxStream()

		var decoded TrackInfo
		require.NoError(t, decodeEgoCore(sync, length, FormatBehindTheIronGate)(stream, &decoded, NewDiskTags(), nil))

		assert.Equal(t, payload, decoded.Payload)
		assert.True(t, decoded.AllValid())
	})
}

func TestEgoCoreStreamEndMidStructureIsDistinctFromNoMatch(t *testing.T) {
	const sync = 0x8951
	const length = 64

	var stream = NewMemoryFluxStream([]byte{}, nil)
	var decoded TrackInfo
	var err = decodeEgoCore(sync, length, FormatZaZelaznaBrama)(stream, &decoded, NewDiskTags(), nil)
	assert.ErrorIs(t, err, ErrNoMatch, "sync never found should be ErrNoMatch")

	var buf = NewTrackBuffer()
	buf.Bits(SpeedAvg, ModeRaw, 16, uint64(sync))
	buf.Bits(SpeedAvg, ModeOddEven, 32, 0xDEADBEEF) // one data word, then nothing

	var truncated = buf.ToMemoryFluxStream()

	var decoded2 TrackInfo
	err = decodeEgoCore(sync, length, FormatZaZelaznaBrama)(truncated, &decoded2, NewDiskTags(), nil)
	assert.ErrorIs(t, err, ErrStreamEnd, "sync found but stream exhausted mid-structure should be ErrStreamEnd")
}

func TestEgoChecksumRejectsCorruption(t *testing.T) {
	const sync = 0x4489
	const length = 64

	var payload = make([]byte, (length-1)*4)
	for i := range payload {
		payload[i] = byte(i * 7)
	}

	var ti = &TrackInfo{Payload: payload}
	var buf = NewTrackBuffer()
	require.NoError(t, encodeEgoCore(sync, length)(ti, nil, buf))

	var cells = buf.Cells()
	cells[len(cells)-1] ^= 1 // flip the last emitted cell (inside the checksum word)

	var stream = NewMemoryFluxStream(cells, nil)

	var decoded TrackInfo
	var err = decodeEgoCore(sync, length, FormatInferior)(stream, &decoded, NewDiskTags(), nil)
	assert.ErrorIs(t, err, ErrCorruptSector)
}

func TestZaZelaznaBramaTotalBitsFromBootTag(t *testing.T) {
	var params = egoFormatParams[FormatZaZelaznaBrama]

	var payload = make([]byte, (params.length-1)*4)
	var ti = &TrackInfo{Format: FormatZaZelaznaBrama, Payload: payload, Track: 5}

	var tags = NewDiskTags()

	var raw = make([]byte, 152*2)
	binary.BigEndian.PutUint16(raw[5*2:], 0x730)
	tags.SetIfAbsent(ZaZelaznaBramaProtectionTag, raw)

	egoApplyTotalBits(FormatZaZelaznaBrama, params.length, ti, tags)

	assert.Equal(t, 100900+(0x730-0x720)+46, ti.TotalBits)
}

func TestZaZelaznaBramaBootTagPopulatesFromDecode(t *testing.T) {
	var params = egoFormatParams[FormatZaZelaznaBramaBoot]

	var payload = make([]byte, (params.length-1)*4)
	for i := 4; i < 308; i++ {
		payload[i] = byte(i)
	}

	var ti = &TrackInfo{Payload: payload}
	var buf = NewTrackBuffer()
	require.NoError(t, encodeEgoCore(params.sync, params.length)(ti, nil, buf))

	var stream = buf.ToMemoryFluxStream()
	var tags = NewDiskTags()

	var decoded TrackInfo
	require.NoError(t, decodeZaZelaznaBramaBoot(params.sync, params.length)(stream, &decoded, tags, nil))

	var raw, ok = tags.Get(ZaZelaznaBramaProtectionTag)
	require.True(t, ok)
	assert.Equal(t, payload[4:308], raw)
}

func TestEgoDataBitOffDefaultFormula(t *testing.T) {
	const sync = 0x4489
	const length = 64

	var payload = make([]byte, (length-1)*4)

	var ti = &TrackInfo{Payload: payload}
	var buf = NewTrackBuffer()
	require.NoError(t, encodeEgoCore(sync, length)(ti, nil, buf))

	var stream = buf.ToMemoryFluxStream()

	var decoded TrackInfo
	require.NoError(t, decodeEgoCore(sync, length, FormatBehindTheIronGate)(stream, &decoded, NewDiskTags(), nil))

	// sync is 16 raw cells; IndexOffsetBC sits at 16 right after it matches,
	// so the default data_bitoff formula (index_offset_bc - 15) is 1.
	assert.Equal(t, 1, decoded.DataBitOff)
}

func TestAbcChemiiOverridesDataBitOffTo100900(t *testing.T) {
	var params = egoFormatParams[FormatAbcChemiiA]

	var payload = make([]byte, (params.length-1)*4)
	var ti = &TrackInfo{Format: FormatAbcChemiiA, Payload: payload, Track: 3}

	egoApplyTotalBits(FormatAbcChemiiA, params.length, ti, NewDiskTags())

	assert.Equal(t, 100900, ti.DataBitOff)
	assert.Equal(t, 100900+(egoTableLookup(abcChemProtection, 3)-0xA15), ti.TotalBits)
}
