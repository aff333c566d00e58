package fluxcodec

/*--------------------------------------------------------------------------------
 *
 * Purpose:	The CopyLock (Rob Northen) protection track handler (§4.6):
 *		eleven LFSR-validated sectors per track, non-uniform cell
 *		timing on two of them, and seed recovery that lets a track
 *		missing some sectors still be reconstructed in full.
 *
 *--------------------------------------------------------------------------------*/

import "encoding/binary"

type copyLockVariant int

const (
	copyLockVariantNew copyLockVariant = iota
	copyLockVariantOld
)

const (
	copyLockSectors  = 11
	copyLockGapCells = 352

	// copyLockSignatureSector is the sector whose first 16 data bytes are
	// the literal "Rob Northen Comp" signature instead of LFSR output
	// (new variant only).
	copyLockSignatureSector = 6
	copyLockSignatureLen    = 16
)

var copyLockSignature = []byte("Rob Northen Comp")

// copyLockNewSyncTable holds the 11 raw 16-cell sync patterns for the new
// variant, indexed by sector number.
var copyLockNewSyncTable = [copyLockSectors]uint16{
	0x8A91, 0x8A44, 0x8A45, 0x8A51, 0x8912, 0x8911,
	0x8914, 0x8915, 0x8944, 0x8945, 0x8951,
}

func copyLockSectorSpeed(sec int) int {
	switch sec {
	case 4:
		return 95000
	case 6:
		return 105000
	default:
		return SpeedAvg
	}
}

// copyLockStepsForSector is the number of forward LFSR steps a sector
// contributes when walking its data region start-to-start with its
// neighbor. Sector 6 (new variant) contributes 16 fewer because the
// signature pauses the LFSR stream; old variant's sector 5 contributes 16
// more because the signature there does not pause it and is accounted for
// as trailing sector-5 steps instead.
func copyLockStepsForSector(variant copyLockVariant, sec int) int {
	switch {
	case variant == copyLockVariantNew && sec == copyLockSignatureSector:
		return 512 - copyLockSignatureLen
	case variant == copyLockVariantOld && sec == copyLockSignatureSector-1:
		return 512 + copyLockSignatureLen
	default:
		return 512
	}
}

// lfsrSeek walks x by the exact step count separating the effective start
// of sector from and the effective start of sector to, in either
// direction.
func lfsrSeek(x uint32, from, to int, variant copyLockVariant) uint32 {
	switch {
	case from == to:
		return x
	case from < to:
		for s := from; s < to; s++ {
			x = lfsrAdvance(x, copyLockStepsForSector(variant, s))
		}
	default:
		for s := from; s > to; s-- {
			x = lfsrRewind(x, copyLockStepsForSector(variant, s-1))
		}
	}

	return x
}

// copyLockSynthSeed reconstructs the LFSR state whose state_byte equals d0,
// given d0, d8 and d16 eight bytes apart in the same validated run. d0 holds
// register bits 22:15, d8 (eight steps on) bits 14:7, and the top seven bits
// of d16 (sixteen steps on) bits 6:0.
func copyLockSynthSeed(d0, d8, d16 byte) uint32 {
	return ((uint32(d0) << 15) | (uint32(d8) << 7) | (uint32(d16) >> 1)) & lfsrMask
}

func decodeSeedPayload(payload []byte) uint32 {
	if len(payload) != 4 {
		return 0
	}

	return binary.BigEndian.Uint32(payload) & lfsrMask
}

func encodeSeedPayload(seed uint32) []byte {
	var buf = make([]byte, 4)
	binary.BigEndian.PutUint32(buf, seed)

	return buf
}

// copyLockReadSectorWindow reads the 514-byte latency window (sector-index
// confirmation byte, 512 data bytes, trailing zero byte) and returns the
// 512 data bytes and the confirmed sector index byte. The stream's
// Latency() reflects exactly this window afterward, matching the nominal
// bodge constant used when sector 5 is missing.
func copyLockReadSectorWindow(s FluxStream) (data []byte, secByte byte, err error) {
	s.ResetLatency()

	var window []byte
	window, err = readAllBitsBytes(s, 514)
	if err != nil {
		return nil, 0, err
	}

	return window[1:513], window[0], nil
}

func decodeCopyLock(variant copyLockVariant, format FormatTag) DecodeFunc {
	return func(stream FluxStream, ti *TrackInfo, tags *DiskTags, warn Warner) error {
		warn = warnerOrDiscard(warn)

		var valid = make([]bool, copyLockSectors)
		var latency = make([]int64, copyLockSectors)
		var haveLatency = make([]bool, copyLockSectors)

		var trackSeedKnown bool
		var trackSeed uint32

		var earliestSeen bool
		var firstSec int
		var rawDataBitOff int

		for {
			var sec, indexAtSync, matched, err = copyLockScanSync(stream, variant, valid)
			if err != nil {
				break
			}

			if !matched {
				continue
			}

			var data, secByte, rerr = copyLockReadSectorWindow(stream)
			if rerr != nil {
				break
			}

			if secByte != byte(sec) {
				continue
			}

			var dataCursor int
			if variant == copyLockVariantNew && sec == copyLockSignatureSector {
				if !bytesEqual(data[:copyLockSignatureLen], copyLockSignature) {
					continue
				}

				dataCursor = copyLockSignatureLen
			}

			var lfsrAtCursor = copyLockSynthSeed(data[dataCursor], data[dataCursor+8], data[dataCursor+16])

			if trackSeedKnown {
				lfsrAtCursor = lfsrSeek(trackSeed, 0, sec, variant)
			}

			var x = lfsrAtCursor
			var ok = true

			for i := dataCursor; i < 512; i++ {
				if data[i] != lfsrStateByte(x) {
					ok = false
					break
				}

				x = lfsrNext(x)
			}

			if !ok {
				continue
			}

			if !trackSeedKnown {
				var seed = lfsrSeek(lfsrAtCursor, sec, 0, variant)
				if seed == 0 {
					continue
				}

				trackSeed = seed
				trackSeedKnown = true
			}

			valid[sec] = true
			latency[sec] = int64(stream.Latency())
			haveLatency[sec] = true

			if !earliestSeen {
				rawDataBitOff = indexAtSync - 15
				firstSec = sec
				earliestSeen = true
			}
		}

		if !trackSeedKnown {
			return nil
		}

		var missing bool
		for _, v := range valid {
			if !v {
				missing = true
				break
			}
		}

		for i := range valid {
			valid[i] = true
		}

		if missing {
			warn.Warn(Warning{Kind: WarningReconstructed, Format: format, Message: "reconstructed damaged track"})
		}

		copyLockEmitTimingWarnings(format, latency, haveLatency, warn)

		ti.Format = format
		ti.SectorSize = 512
		ti.SectorCount = copyLockSectors
		ti.Payload = encodeSeedPayload(trackSeed)
		ti.Valid = valid
		ti.DataBitOff = rawDataBitOff - firstSec*(514+48)*16 - 48

		return nil
	}
}

// copyLockScanSync advances the stream one cell at a time looking for a
// sync (new variant) or header/zero/trailer triple (old variant) belonging
// to a sector not already marked valid. It returns the matched sector
// index and the stream's index offset at the moment of the match.
func copyLockScanSync(stream FluxStream, variant copyLockVariant, valid []bool) (sec int, indexAtSync int, matched bool, err error) {
	for {
		if _, err = stream.NextBit(); err != nil {
			return 0, 0, false, err
		}

		var word = uint16(stream.Word() & 0xffff)

		if variant == copyLockVariantNew {
			for s := 0; s < copyLockSectors; s++ {
				if valid[s] {
					continue
				}

				if word == copyLockNewSyncTable[s] {
					return s, stream.IndexOffset(), true, nil
				}
			}

			continue
		}

		for s := 0; s < copyLockSectors; s++ {
			if valid[s] {
				continue
			}

			if word != oldVariantHeaderPattern(s) {
				continue
			}

			if err = stream.NextBits(16); err != nil {
				return 0, 0, false, err
			}

			if stream.Word()&0xffff != 0 {
				continue
			}

			if err = stream.NextBits(16); err != nil {
				return 0, 0, false, err
			}

			if uint16(stream.Word()&0xffff) != oldVariantTrailerPattern(s) {
				continue
			}

			return s, stream.IndexOffset(), true, nil
		}
	}
}

func oldVariantHeaderPattern(sec int) uint16 {
	return MFMEncodeWord(byte(0xA0+sec)) | (1 << 13)
}

func oldVariantTrailerPattern(sec int) uint16 {
	return MFMEncodeWord(byte(0xB0+sec)) | (1 << 13)
}

// copyLockLatencyBodge approximates the nominal 514-byte all-bits read
// latency when sector 5 (the timing baseline) wasn't recovered.
const copyLockLatencyBodge = 514 * 8 * 2 * 2000

func copyLockEmitTimingWarnings(format FormatTag, latency []int64, have []bool, warn Warner) {
	var nominal int64 = copyLockLatencyBodge
	if have[5] {
		nominal = latency[5]
	}

	for sec := 0; sec < copyLockSectors; sec++ {
		if !have[sec] || sec == 5 {
			continue
		}

		var pct = (float64(latency[sec]) - float64(nominal)) / float64(nominal) * 100
		var cfg = activeConfig.CopyLock

		switch sec {
		case 4:
			if pct > cfg.ShortSectorThresholdPercent {
				warn.Warn(sectorTimingWarning(format, sec, pct))
			}
		case 6:
			if pct < cfg.LongSectorThresholdPercent {
				warn.Warn(sectorTimingWarning(format, sec, pct))
			}
		default:
			if pct > cfg.OtherSectorTolerancePercent || pct < -cfg.OtherSectorTolerancePercent {
				warn.Warn(sectorTimingWarning(format, sec, pct))
			}
		}
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func encodeCopyLock(variant copyLockVariant) EncodeFunc {
	return func(ti *TrackInfo, tags *DiskTags, w TrackBufferWriter) error {
		var seed = decodeSeedPayload(ti.Payload)
		if seed == 0 {
			return ErrDegenerateSeed
		}

		var lfsr = seed

		for sec := 0; sec < copyLockSectors; sec++ {
			var speed = copyLockSectorSpeed(sec)

			if variant == copyLockVariantNew {
				w.Bits(speed, ModeRaw, 8, uint64(0xA0+sec))
				w.Bits(speed, ModeRaw, 16, 0x0000)
				w.Bits(speed, ModeRaw, 16, uint64(copyLockNewSyncTable[sec]))
			} else {
				w.Bits(speed, ModeRaw, 16, uint64(oldVariantHeaderPattern(sec)))
				w.Bits(speed, ModeRaw, 16, 0x0000)
				w.Bits(speed, ModeRaw, 16, uint64(oldVariantTrailerPattern(sec)))
			}

			w.Bits(speed, ModeAllBits, 16, uint64(sec))

			var body = copyLockGenerateSectorBody(variant, &lfsr, sec)
			for _, b := range body {
				w.Bits(speed, ModeAllBits, 16, uint64(b))
			}

			w.Bits(speed, ModeAllBits, 16, 0)

			var gapSpeed = copyLockSectorSpeed((sec + 1) % copyLockSectors)
			w.Gap(gapSpeed, copyLockGapCells)
		}

		return nil
	}
}

func copyLockGenerateSectorBody(variant copyLockVariant, lfsr *uint32, sec int) []byte {
	var data = make([]byte, 512)

	var start int
	if variant == copyLockVariantNew && sec == copyLockSignatureSector {
		copy(data[:copyLockSignatureLen], copyLockSignature)
		start = copyLockSignatureLen
	}

	for i := start; i < 512; i++ {
		data[i] = lfsrStateByte(*lfsr)
		*lfsr = lfsrNext(*lfsr)
	}

	// The old variant writes no signature, but the LFSR still steps through
	// its 16 positions; those steps are taken at the end of sector 5,
	// matching copyLockStepsForSector.
	if variant == copyLockVariantOld && sec == copyLockSignatureSector-1 {
		*lfsr = lfsrAdvance(*lfsr, copyLockSignatureLen)
	}

	return data
}
