package fluxcodec

/*--------------------------------------------------------------------------------
 *
 * Purpose:	The decoded record for one side of one cylinder (§3 "Track
 *		info"), plus the disk-level tag map protection handlers use
 *		to share metadata between tracks (§3 "Disk tag").
 *
 *--------------------------------------------------------------------------------*/

import "fmt"

// FormatTag identifies a registered track format. The set is closed and
// registered; see Registry.
type FormatTag string

const (
	FormatCopyLockNew FormatTag = "copylock_new"
	FormatCopyLockOld FormatTag = "copylock_old"

	FormatBehindTheIronGate  FormatTag = "behind_the_iron_gate"
	FormatZaZelaznaBrama     FormatTag = "za_zelazna_brama"
	FormatZaZelaznaBramaBoot FormatTag = "za_zelazna_brama_boot"
	FormatAbcChemiiA         FormatTag = "abc_chemii_a"
	FormatAbcChemiiB         FormatTag = "abc_chemii_b"
	FormatAbcChemiiTimsoftA  FormatTag = "abc_chemii_timsoft_a"
	FormatAbcChemiiTimsoftB  FormatTag = "abc_chemii_timsoft_b"
	FormatInferior           FormatTag = "inferior"
)

// TrackInfo is the decoded record for one track. It is created by the
// decode pipeline when a handler returns a non-empty payload, and owned by
// the enclosing disk image; this library only populates the fields, it
// never manages that lifetime.
type TrackInfo struct {
	Format FormatTag

	// Track is the physical track index (cylinder*2+head) this record
	// belongs to. The caller populates it before invoking a handler's
	// Decode or Encode; handlers whose per-track geometry varies (the
	// ego-family protection formulas) read it back.
	Track int

	SectorSize  int
	SectorCount int

	// Payload is the decoded payload buffer. Present iff len(Payload) > 0.
	Payload []byte

	// Valid is the per-sector validity bitmap; a track is valid iff
	// every entry is true.
	Valid []bool

	// DataBitOff is the cell position of the first sector's sync within
	// the track.
	DataBitOff int

	// TotalBits is the exact bit length the physical track must occupy
	// when re-encoded. Zero means "use the format's implicit length".
	TotalBits int
}

// AllValid reports whether every sector in Valid is marked valid,
// matching the track-validity invariant in §3.
func (t *TrackInfo) AllValid() bool {
	if len(t.Valid) == 0 {
		return false
	}

	for _, v := range t.Valid {
		if !v {
			return false
		}
	}

	return true
}

// DiskTagID names a disk-level tag. The set is closed, like FormatTag.
type DiskTagID string

const ZaZelaznaBramaProtectionTag DiskTagID = "za_zelazna_brama_protection"

// DiskTags is the cross-track side channel attached to a disk image. It
// enforces the contract in §5: the first handler to set a key wins, and
// readers observe either absence or a fully-initialized blob. No locking
// is needed because each decode/encode call owns its own TrackInfo and the
// tag map is only ever touched between whole-track calls, never
// concurrently with one.
type DiskTags struct {
	values map[DiskTagID][]byte
}

// NewDiskTags returns an empty tag map for one disk image.
func NewDiskTags() *DiskTags {
	return &DiskTags{values: make(map[DiskTagID][]byte)}
}

// Get returns the tag's payload and true, or (nil, false) if absent. A
// handler that depends on a tag must tolerate the false case (§5, §7
// ErrMissingTag) rather than treat it as an error.
func (d *DiskTags) Get(id DiskTagID) ([]byte, bool) {
	if d == nil {
		return nil, false
	}

	v, ok := d.values[id]
	return v, ok
}

// SetIfAbsent stores payload under id unless a value is already present,
// matching "created by at most one handler, immutable once set" (§3). It
// reports whether it actually wrote the value.
func (d *DiskTags) SetIfAbsent(id DiskTagID, payload []byte) bool {
	if _, exists := d.values[id]; exists {
		return false
	}

	d.values[id] = payload

	return true
}

func (t *TrackInfo) String() string {
	var valid int
	for _, v := range t.Valid {
		if v {
			valid++
		}
	}

	return fmt.Sprintf("TrackInfo{format=%s sectors=%d/%d bitoff=%d totalbits=%d}",
		t.Format, valid, t.SectorCount, t.DataBitOff, t.TotalBits)
}
