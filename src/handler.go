package fluxcodec

/*--------------------------------------------------------------------------------
 *
 * Purpose:	The handler registry (§4.5): a compile-time table mapping a
 *		format tag to sector geometry, per-format constants, and the
 *		decode/encode callback pair. Registration is static; nothing
 *		mutates the table once it's built (§4.5, §9).
 *
 *--------------------------------------------------------------------------------*/

import "sync"

// DecodeFunc scans stream for one instance of a handler's format. On a
// match it populates ti and returns nil. On ErrNoMatch it must leave ti
// untouched; the caller tries the next handler. tags is the disk-level
// side channel (§3); a handler that depends on a tag must tolerate its
// absence (§5, §7).
type DecodeFunc func(stream FluxStream, ti *TrackInfo, tags *DiskTags, warn Warner) error

// EncodeFunc writes ti's payload back out as a synthesized track.
type EncodeFunc func(ti *TrackInfo, tags *DiskTags, w TrackBufferWriter) error

// Handler is the immutable descriptor for one registered track format.
type Handler struct {
	Format FormatTag

	SectorsPerTrack int
	BytesPerSector  int

	Decode DecodeFunc
	Encode EncodeFunc
}

// Registry is a closed, immutable map from format tag to handler, built
// once at construction time — never mutated after, per §4.5/§9.
type Registry struct {
	handlers map[FormatTag]*Handler
}

// NewRegistry builds a Registry from a fixed list of entries. Duplicate
// format tags are a programmer error and the later entry wins; the
// built-in entry list (see registry_init.go) never has duplicates.
func NewRegistry(entries []*Handler) *Registry {
	var m = make(map[FormatTag]*Handler, len(entries))
	for _, h := range entries {
		m[h.Format] = h
	}

	return &Registry{handlers: m}
}

// Lookup resolves a format tag to its handler, or (nil, false) if the tag
// isn't registered.
func (r *Registry) Lookup(tag FormatTag) (*Handler, bool) {
	h, ok := r.handlers[tag]
	return h, ok
}

// All returns every registered handler, in no particular order. Useful for
// a decode pipeline that tries handlers in turn looking for a match.
func (r *Registry) All() []*Handler {
	var out = make([]*Handler, 0, len(r.handlers))
	for _, h := range r.handlers {
		out = append(out, h)
	}

	return out
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry of every handler this
// package implements, built deterministically on first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(builtinHandlers())
	})

	return defaultRegistry
}
