package influence

import (
	"testing"

	"EchoSentinel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCfg() model.PropagationConfig {
	return model.DefaultPropagationConfig()
}

func TestBuildRowsAreStochastic(t *testing.T) {
	nodes := []model.LocationNode{
		{ID: "a", ChainID: "x", City: "Austin", Category: "restaurant"},
		{ID: "b", ChainID: "x", City: "Austin", Category: "restaurant"},
		{ID: "c", ChainID: "y", City: "Austin", Category: "cafe"},
		{ID: "d", ChainID: "y", City: "Denver"},
	}
	m := Build(nodes, defaultCfg())

	require.Equal(t, 4, m.Dim())
	for i := 0; i < m.Dim(); i++ {
		assert.InDelta(t, 1.0, m.RowSum(i), 1e-9, "row %d", i)
	}
}

func TestBuildIdentityRowFallback(t *testing.T) {
	// No self weight and no shared groups: the raw row sum is zero and
	// the row becomes an identity row instead of dividing by zero.
	cfg := defaultCfg()
	cfg.SelfWeight = 0
	nodes := []model.LocationNode{{ID: "a"}, {ID: "b"}}

	m := Build(nodes, cfg)
	for i := 0; i < 2; i++ {
		assert.Equal(t, 1.0, m.At(i, i))
		assert.InDelta(t, 1.0, m.RowSum(i), 1e-12)
	}
}

func TestBuildEmptyNetwork(t *testing.T) {
	m := Build(nil, defaultCfg())
	assert.Equal(t, 0, m.Dim())
}

func TestBuildGroupWeightsAccumulate(t *testing.T) {
	// Two nodes sharing chain, city, and category accumulate all three
	// weights additively before normalization.
	cfg := defaultCfg()
	cfg.GeoMaxWeight = 0 // isolate the group contributions
	nodes := []model.LocationNode{
		{ID: "a", ChainID: "x", City: "Austin", Category: "restaurant"},
		{ID: "b", ChainID: "x", City: "Austin", Category: "restaurant"},
	}
	m := Build(nodes, cfg)

	// Raw row: self 0.7, pair 0.20+0.08+0.05 = 0.33.
	raw := cfg.BrandWeight + cfg.CityWeight + cfg.CategoryWeight
	want := raw / (cfg.SelfWeight + raw)
	assert.InDelta(t, want, m.At(0, 1), 1e-9)
	assert.InDelta(t, cfg.SelfWeight/(cfg.SelfWeight+raw), m.At(0, 0), 1e-9)
}

func TestBuildEmptyGroupKeysAreNotGrouped(t *testing.T) {
	cfg := defaultCfg()
	nodes := []model.LocationNode{{ID: "a"}, {ID: "b"}}

	m := Build(nodes, cfg)
	assert.Equal(t, 0.0, m.At(0, 1))
	assert.Equal(t, 1.0, m.At(0, 0))
}

func TestBuildGeoWeightDecay(t *testing.T) {
	cfg := defaultCfg()
	cfg.BrandWeight = 0
	cfg.CityWeight = 0
	cfg.CategoryWeight = 0

	// Roughly 11 km apart on the same meridian, same city.
	nodes := []model.LocationNode{
		{ID: "a", City: "Austin", Latitude: 30.0, Longitude: -97.7, HasCoords: true},
		{ID: "b", City: "Austin", Latitude: 30.1, Longitude: -97.7, HasCoords: true},
	}
	m := Build(nodes, cfg)

	d := HaversineKm(30.0, -97.7, 30.1, -97.7)
	require.Less(t, d, cfg.GeoRadiusKm)
	raw := cfg.GeoMaxWeight * (1 - d/cfg.GeoRadiusKm)
	want := raw / (cfg.SelfWeight + raw)
	assert.InDelta(t, want, m.At(0, 1), 1e-9)
}

func TestBuildGeoSkipsMissingCoordsAndFarPairs(t *testing.T) {
	cfg := defaultCfg()
	cfg.BrandWeight = 0
	cfg.CityWeight = 0
	cfg.CategoryWeight = 0

	nodes := []model.LocationNode{
		// Missing coordinates: contribution silently skipped.
		{ID: "a", City: "Austin"},
		{ID: "b", City: "Austin", Latitude: 30.0, Longitude: -97.7, HasCoords: true},
		// Outside the 50 km radius.
		{ID: "c", City: "Austin", Latitude: 31.0, Longitude: -97.7, HasCoords: true},
	}
	m := Build(nodes, cfg)

	assert.Equal(t, 0.0, m.At(0, 1))
	assert.Equal(t, 0.0, m.At(1, 0))
	d := HaversineKm(30.0, -97.7, 31.0, -97.7)
	require.Greater(t, d, cfg.GeoRadiusKm)
	assert.Equal(t, 0.0, m.At(1, 2))
}

func TestBuildGeoRequiresSameCity(t *testing.T) {
	cfg := defaultCfg()
	cfg.BrandWeight = 0
	cfg.CityWeight = 0
	cfg.CategoryWeight = 0

	nodes := []model.LocationNode{
		{ID: "a", City: "Austin", Latitude: 30.0, Longitude: -97.7, HasCoords: true},
		{ID: "b", City: "Round Rock", Latitude: 30.05, Longitude: -97.7, HasCoords: true},
	}
	m := Build(nodes, cfg)
	assert.Equal(t, 0.0, m.At(0, 1))
}

func TestHaversineKnownDistance(t *testing.T) {
	// One degree of latitude is about 111 km.
	d := HaversineKm(30, -97, 31, -97)
	assert.InDelta(t, 111.2, d, 0.5)
	assert.Equal(t, 0.0, HaversineKm(30, -97, 30, -97))
}
