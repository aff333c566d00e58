package fluxcodec

import "errors"

// Error kinds a handler can signal while scanning a flux stream. None of
// these ever escape as a panic; every failure is either an empty decode
// return (whole-track failure) or a continue-and-retry at the call site
// that owns the scan loop.

// ErrNoMatch means the stream was exhausted without finding anything this
// handler recognizes. The caller should try the next handler in the registry.
var ErrNoMatch = errors.New("fluxcodec: no recognizable track found")

// ErrCorruptSector means a sync matched but downstream validation (index
// byte, signature, checksum, LFSR continuity) failed. Decoders keep scanning
// past the failed candidate rather than aborting the whole track; the
// ego-family decoder returns it when the stream ends without any candidate
// passing its checksum. The ego-family encoder also returns it for a payload
// of the wrong length.
var ErrCorruptSector = errors.New("fluxcodec: sector failed validation")

// ErrStreamEnd means next_bytes/next_bits ran off the end of the stream
// mid-structure. The decoder stops cleanly, keeping whatever sectors were
// already validated.
var ErrStreamEnd = errors.New("fluxcodec: flux stream exhausted")

// ErrDegenerateSeed is returned by the CopyLock encoder when the payload's
// 23-bit LFSR seed is zero. The decoder does not return it: a sector whose
// recovered seed is zero is rejected and the scan continues.
var ErrDegenerateSeed = errors.New("fluxcodec: recovered a zero LFSR seed")

// ErrMissingTag means a handler depends on a disk-level tag that isn't
// present. The handler leaves the derived metadata unset and still
// returns whatever payload it decoded; this is not fatal.
var ErrMissingTag = errors.New("fluxcodec: disk tag not present")
