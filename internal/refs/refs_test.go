package refs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAll_BasicRefs(t *testing.T) {
	raw := "Both [Anna Kovacs](cv:cv_001) and [Ben Ito](cv:cv_002) fit the role."

	got := ExtractAll(raw)

	require.Len(t, got, 2)
	assert.Equal(t, Ref{Name: "Anna Kovacs", CVID: "cv_001"}, got[0])
	assert.Equal(t, Ref{Name: "Ben Ito", CVID: "cv_002"}, got[1])
}

func TestExtractAll_DedupeByCVID(t *testing.T) {
	raw := "[Anna](cv:cv_001) is strong. Later, [Anna Kovacs](cv:cv_001) again."

	got := ExtractAll(raw)

	require.Len(t, got, 1)
	// First mention wins.
	assert.Equal(t, "Anna", got[0].Name)
}

func TestExtractAll_BoldWrappedRef(t *testing.T) {
	raw := "Top pick: **[Anna Kovacs](cv:cv_001)**."

	got := ExtractAll(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "Anna Kovacs", got[0].Name)
	assert.Equal(t, "cv_001", got[0].CVID)
}

func TestExtractAll_IgnoresOrdinaryLinks(t *testing.T) {
	raw := "See [the docs](https://example.com) and [Anna](cv:cv_001)."

	got := ExtractAll(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "cv_001", got[0].CVID)
}

func TestExtractAll_NoRefs(t *testing.T) {
	assert.Empty(t, ExtractAll("No references here [just brackets]."))
}

func TestFirst(t *testing.T) {
	ref, ok := First("Lead: [Ben Ito](cv:cv_002).")
	require.True(t, ok)
	assert.Equal(t, "cv_002", ref.CVID)

	_, ok = First("nothing")
	assert.False(t, ok)
}

func TestStrip(t *testing.T) {
	raw := "Compare [Anna Kovacs](cv:cv_001) with [Ben Ito](cv:cv_002)."

	assert.Equal(t, "Compare Anna Kovacs with Ben Ito.", Strip(raw))
}

func TestStrip_LeavesOrdinaryLinks(t *testing.T) {
	raw := "See [the docs](https://example.com)."

	assert.Equal(t, raw, Strip(raw))
}
