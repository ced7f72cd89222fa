package comps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIndex(t *testing.T) {
	assert.Greater(t, Default().Len(), 50)
	assert.Same(t, Default(), Default())
}

func TestSimilar(t *testing.T) {
	idx := NewIndex([]Sale{
		{Domain: "ab.com", Price: 500_000},
		{Domain: "cd.com", Price: 700_000},
		{Domain: "ab.net", Price: 40_000},
		{Domain: "longername.org", Price: 100},
	})

	got := idx.Similar("xy.com", 5)
	require.Len(t, got, 3)
	// Same TLD, same length, both alphabetic: 30+40+10.
	assert.Equal(t, "cd.com", got[0].Domain)
	assert.Equal(t, 80, got[0].Similarity)
	assert.Equal(t, "ab.com", got[1].Domain)
	assert.Equal(t, "ab.net", got[2].Domain)
	assert.Equal(t, 50, got[2].Similarity)

	for _, m := range got {
		assert.GreaterOrEqual(t, m.Similarity, MinSimilarity)
		assert.LessOrEqual(t, m.Similarity, 100)
	}
}

func TestSimilar_ExcludesSelfAndLimits(t *testing.T) {
	got := Default().Similar("hb.com", 2)
	assert.Len(t, got, 2)
	for _, m := range got {
		assert.NotEqual(t, "hb.com", m.Domain)
	}
}

func TestSimilar_SharedKeywordBoost(t *testing.T) {
	idx := NewIndex([]Sale{{Domain: "cloudhosting.com", Price: 125_000}})
	got := idx.Similar("cloudstore.com", 5)
	require.Len(t, got, 1)
	// TLD 30, length diff of two 20, alphabetic 10, shared "cloud" 20.
	assert.Equal(t, 80, got[0].Similarity)
}

func TestMedianPrice(t *testing.T) {
	_, ok := MedianPrice(nil)
	assert.False(t, ok)

	odd, ok := MedianPrice([]Match{{Sale: Sale{Price: 3}}, {Sale: Sale{Price: 1}}, {Sale: Sale{Price: 2}}})
	assert.True(t, ok)
	assert.Equal(t, 2.0, odd)

	even, _ := MedianPrice([]Match{{Sale: Sale{Price: 4}}, {Sale: Sale{Price: 1}}, {Sale: Sale{Price: 2}}, {Sale: Sale{Price: 3}}})
	assert.Equal(t, 2.5, even)
}
