package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

func TestKeyDeterminism(t *testing.T) {
	filters := types.SearchFilters{Organism: "Homo sapiens"}
	k1 := Key("RNA-seq diabetes", types.TypeDatasetText, filters)
	k2 := Key("RNA-seq diabetes", types.TypeDatasetText, filters)
	assert.Equal(t, k1, k2, "identical inputs must produce identical keys")
}

func TestKeyNormalization(t *testing.T) {
	k1 := Key("RNA-seq  Diabetes", types.TypeDatasetText, types.SearchFilters{})
	k2 := Key("  rna-seq diabetes ", types.TypeDatasetText, types.SearchFilters{})
	assert.Equal(t, k1, k2, "case and whitespace must not change the key")
}

func TestKeyDiscriminates(t *testing.T) {
	base := Key("rna-seq diabetes", types.TypeDatasetText, types.SearchFilters{})

	assert.NotEqual(t, base, Key("rna-seq cancer", types.TypeDatasetText, types.SearchFilters{}),
		"different text must change the key")
	assert.NotEqual(t, base, Key("rna-seq diabetes", types.TypeHybrid, types.SearchFilters{}),
		"different search type must change the key")
	assert.NotEqual(t, base, Key("rna-seq diabetes", types.TypeDatasetText,
		types.SearchFilters{MinSampleCount: 10}), "filters must change the key")
}

func TestTTLFor(t *testing.T) {
	cfg := types.CacheConfig{}

	idTTL := TTLFor(types.TypeIdentifier, cfg)
	pubTTL := TTLFor(types.TypePublication, cfg)
	textTTL := TTLFor(types.TypeDatasetText, cfg)
	hybridTTL := TTLFor(types.TypeHybrid, cfg)

	assert.Equal(t, 30*24*time.Hour, idTTL)
	assert.Equal(t, 7*24*time.Hour, pubTTL)
	assert.Equal(t, 24*time.Hour, textTTL)
	assert.Equal(t, textTTL, hybridTTL, "hybrid shares the free-text tier")

	custom := types.CacheConfig{IdentifierTTL: time.Hour}
	assert.Equal(t, time.Hour, TTLFor(types.TypeIdentifier, custom))
}

func TestBadgerRoundTrip(t *testing.T) {
	c, err := NewBadgerInMemory()
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	key := Key("gse12345", types.TypeIdentifier, types.SearchFilters{})

	_, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found, "empty cache must miss")

	require.NoError(t, c.Set(ctx, key, []byte(`{"total_results":1}`), time.Hour))

	payload, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"total_results":1}`), payload)

	m := c.Metrics()
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, int64(1), m.Sets)
	assert.Equal(t, int64(0), m.Errors)
	assert.InDelta(t, 0.5, m.HitRate(), 1e-9)
}

func TestBadgerTTLExpiry(t *testing.T) {
	c, err := NewBadgerInMemory()
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "expiring", []byte("x"), 50*time.Millisecond))

	time.Sleep(120 * time.Millisecond)

	_, found, err := c.Get(ctx, "expiring")
	require.NoError(t, err)
	assert.False(t, found, "entry must expire after its TTL")
}

func TestNopAlwaysMisses(t *testing.T) {
	c := NewNop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	m := c.Metrics()
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, int64(1), m.Sets)
	assert.Zero(t, m.HitRate())
}

func TestHitRateZeroDenominator(t *testing.T) {
	var m Metrics
	assert.Zero(t, m.Snapshot().HitRate())
}
