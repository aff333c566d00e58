package fluxcodec

/*--------------------------------------------------------------------------------
 *
 * Purpose:	Present a captured flux bitstream as a rewindable sequence of
 *		bit cells, with the index/latency bookkeeping the track
 *		handlers need (§4.3 of the design). This is the "inbound"
 *		interface; the container layer and hardware flux reader that
 *		actually populate one of these are out of scope here (§1).
 *
 *--------------------------------------------------------------------------------*/

import "time"

// NominalCellTime is the duration of one flux bit-cell at SpeedAvg.
const NominalCellTime = 2000 * time.Nanosecond

// SpeedAvg is the nominal per-cell speed: 100000 parts-per-100000, no
// deviation. Values above/below scale the emitted cell's nominal duration.
const SpeedAvg = 100000

// FluxStream is the sequence of captured bit cells a handler scans and
// decodes. A single handler call is the only consumer; Reset rewinds to
// the start of the capture and clears Word/IndexOffset/Latency.
type FluxStream interface {
	// NextBit advances one cell, returning it (0 or 1). Returns
	// ErrStreamEnd once the capture is exhausted.
	NextBit() (byte, error)

	// NextBits advances n cells, leaving Word's low n bits holding the
	// most recently read n cells.
	NextBits(n int) error

	// NextBytes advances 8*m cells, packing them MSB-first into buf[:m]
	// with no MFM interpretation (raw mode).
	NextBytes(buf []byte, m int) error

	// Reset rewinds to the start of the capture, clearing Word,
	// IndexOffset and Latency.
	Reset()

	// Word is a sliding window of the most recently read raw cells; its
	// low bits hold the most recent reads.
	Word() uint32

	// IndexOffset is the number of cells read since the physical index
	// mark, in cell units.
	IndexOffset() int

	// IndexOffsetBC is IndexOffset expressed in bit-cell units. In this
	// implementation cells are always read one bit-cell at a time, so
	// the two coincide.
	IndexOffsetBC() int

	// Latency is a resettable accumulator of elapsed cell time; a
	// handler zeroes it at a point of interest and reads it back later
	// to measure elapsed nanoseconds.
	Latency() time.Duration

	// ResetLatency zeroes the latency accumulator without otherwise
	// disturbing stream position.
	ResetLatency()
}

// MemoryFluxStream is an in-memory FluxStream over a captured array of
// cells, with an optional parallel array of per-cell durations (for
// reproducing the non-uniform timing protection tracks rely on). When
// times is nil every cell is NominalCellTime.
type MemoryFluxStream struct {
	cells []byte
	times []time.Duration

	pos         int
	word        uint32
	indexOffset int
	latency     time.Duration
}

// NewMemoryFluxStream wraps a captured cell array. times may be nil to use
// NominalCellTime throughout, or a slice the same length as cells giving an
// explicit per-cell duration.
func NewMemoryFluxStream(cells []byte, times []time.Duration) *MemoryFluxStream {
	return &MemoryFluxStream{cells: cells, times: times}
}

func (s *MemoryFluxStream) NextBit() (byte, error) {
	if s.pos >= len(s.cells) {
		return 0, ErrStreamEnd
	}

	var bit = s.cells[s.pos]

	var dur = NominalCellTime
	if s.times != nil {
		dur = s.times[s.pos]
	}

	s.pos++
	s.word = (s.word << 1) | uint32(bit)
	s.indexOffset++
	s.latency += dur

	return bit, nil
}

func (s *MemoryFluxStream) NextBits(n int) error {
	for i := 0; i < n; i++ {
		if _, err := s.NextBit(); err != nil {
			return err
		}
	}

	return nil
}

func (s *MemoryFluxStream) NextBytes(buf []byte, m int) error {
	for i := 0; i < m; i++ {
		var b byte

		for j := 0; j < 8; j++ {
			var bit, err = s.NextBit()
			if err != nil {
				return err
			}

			b = (b << 1) | bit
		}

		buf[i] = b
	}

	return nil
}

func (s *MemoryFluxStream) Reset() {
	s.pos = 0
	s.word = 0
	s.indexOffset = 0
	s.latency = 0
}

func (s *MemoryFluxStream) Word() uint32            { return s.word }
func (s *MemoryFluxStream) IndexOffset() int        { return s.indexOffset }
func (s *MemoryFluxStream) IndexOffsetBC() int      { return s.indexOffset }
func (s *MemoryFluxStream) Latency() time.Duration  { return s.latency }
func (s *MemoryFluxStream) ResetLatency()           { s.latency = 0 }

// Len reports the total number of captured cells, useful for tests and for
// handlers that want to bound a scan loop explicitly rather than relying on
// ErrStreamEnd.
func (s *MemoryFluxStream) Len() int { return len(s.cells) }
