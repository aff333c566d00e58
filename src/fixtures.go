package fluxcodec

/*--------------------------------------------------------------------------------
 *
 * Purpose:	Synthetic flux-stream builders for callers that want a clean
 *		track to decode. Nothing in this module calls them; the
 *		tests and the demo command drive the encoders directly.
 *
 *--------------------------------------------------------------------------------*/

// BuildCopyLockFixture synthesizes a clean new-variant CopyLock track for
// the given seed and returns it as a ready-to-decode flux stream, along
// with the TrackBuffer backing it (useful for tests that want to tamper
// with specific sectors before decoding).
func BuildCopyLockFixture(seed uint32) (*MemoryFluxStream, *TrackBuffer) {
	var buf = NewTrackBuffer()
	var ti = &TrackInfo{Payload: encodeSeedPayload(seed)}

	if err := encodeCopyLock(copyLockVariantNew)(ti, NewDiskTags(), buf); err != nil {
		panic(err) // programmer error: seed is caller-controlled and non-zero
	}

	return buf.ToMemoryFluxStream(), buf
}

// BuildEgoFixture synthesizes a clean track for one of the ego-family
// formats, filling its payload deterministically from fill.
func BuildEgoFixture(format FormatTag, fill byte) (*MemoryFluxStream, error) {
	var params, ok = egoFormatParams[format]
	if !ok {
		return nil, ErrNoMatch
	}

	var payload = make([]byte, (params.length-1)*4)
	for i := range payload {
		payload[i] = fill
	}

	var buf = NewTrackBuffer()
	var ti = &TrackInfo{Format: format, Payload: payload}

	if err := encodeEgoCore(params.sync, params.length)(ti, NewDiskTags(), buf); err != nil {
		return nil, err
	}

	return buf.ToMemoryFluxStream(), nil
}
