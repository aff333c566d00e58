package fluxcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryHasEveryFormat(t *testing.T) {
	var registry = DefaultRegistry()

	for _, tag := range []FormatTag{
		FormatCopyLockNew, FormatCopyLockOld,
		FormatBehindTheIronGate, FormatZaZelaznaBrama, FormatZaZelaznaBramaBoot,
		FormatAbcChemiiA, FormatAbcChemiiB,
		FormatAbcChemiiTimsoftA, FormatAbcChemiiTimsoftB,
		FormatInferior,
	} {
		var h, ok = registry.Lookup(tag)
		require.True(t, ok, "missing handler for %s", tag)
		assert.NotNil(t, h.Decode)
		assert.NotNil(t, h.Encode)
	}

	var _, ok = registry.Lookup("not-a-real-format")
	assert.False(t, ok)
}

func TestDefaultRegistryIsSingleton(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}

func TestTrackInfoAllValid(t *testing.T) {
	var ti TrackInfo
	assert.False(t, ti.AllValid(), "no sectors at all is not valid")

	ti.Valid = []bool{true, true, false}
	assert.False(t, ti.AllValid())

	ti.Valid = []bool{true, true, true}
	assert.True(t, ti.AllValid())
}

func TestDiskTagsSetIfAbsent(t *testing.T) {
	var tags = NewDiskTags()

	var wrote = tags.SetIfAbsent(ZaZelaznaBramaProtectionTag, []byte{1, 2, 3})
	assert.True(t, wrote)

	var wroteAgain = tags.SetIfAbsent(ZaZelaznaBramaProtectionTag, []byte{9, 9, 9})
	assert.False(t, wroteAgain)

	var got, ok = tags.Get(ZaZelaznaBramaProtectionTag)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, got, "first writer wins")
}

func TestDiskTagsMissing(t *testing.T) {
	var tags = NewDiskTags()

	var _, ok = tags.Get(ZaZelaznaBramaProtectionTag)
	assert.False(t, ok)

	var nilTags *DiskTags
	_, ok = nilTags.Get(ZaZelaznaBramaProtectionTag)
	assert.False(t, ok)
}
