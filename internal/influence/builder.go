// Package influence turns location metadata into the row-stochastic
// sparse matrix that drives sentiment propagation.
package influence

import (
	"EchoSentinel/internal/matrix"
	"EchoSentinel/internal/model"
)

// Build assembles the n×n influence matrix F from the node list and the
// configured weights:
//
//  1. diagonal self-influence for every node,
//  2. additive off-diagonal weights within each chain / city / category
//     group (multiple shared groups accumulate),
//  3. a geographic weight decaying linearly to zero at the radius
//     boundary, applied between same-city nodes that both carry
//     coordinates,
//  4. row normalization; a row whose raw sum is zero becomes an
//     identity row instead of dividing by zero.
//
// Zero nodes yield an empty 0×0 matrix, not an error. Pairwise grouping
// is O(Σ group²); callers must not depend on that — the builder can be
// swapped for a spatial index without changing the contract.
func Build(nodes []model.LocationNode, cfg model.PropagationConfig) *matrix.Sparse {
	n := len(nodes)
	b := matrix.NewBuilder(n)

	for i := range nodes {
		b.Set(i, i, cfg.SelfWeight)
	}

	addGroupWeights(b, nodes, cfg.BrandWeight, func(nd model.LocationNode) string { return nd.ChainID })
	addGroupWeights(b, nodes, cfg.CityWeight, func(nd model.LocationNode) string { return nd.City })
	addGroupWeights(b, nodes, cfg.CategoryWeight, func(nd model.LocationNode) string { return nd.Category })
	addGeoWeights(b, nodes, cfg)

	// Row-normalize into a stochastic matrix.
	for i := 0; i < n; i++ {
		sum := b.RowSum(i)
		if sum > 0 {
			b.ScaleRow(i, 1/sum)
		} else {
			b.Set(i, i, 1)
		}
	}
	return b.Build()
}

// addGroupWeights adds w to every ordered off-diagonal pair inside each
// group keyed by the given attribute. Nodes with an empty key are
// skipped rather than grouped together.
func addGroupWeights(b *matrix.Builder, nodes []model.LocationNode, w float64, key func(model.LocationNode) string) {
	if w == 0 {
		return
	}
	groups := make(map[string][]int)
	for i, nd := range nodes {
		k := key(nd)
		if k == "" {
			continue
		}
		groups[k] = append(groups[k], i)
	}
	for _, members := range groups {
		for _, i := range members {
			for _, j := range members {
				if i != j {
					b.Add(i, j, w)
				}
			}
		}
	}
}

// addGeoWeights adds the distance-decayed geographic weight between
// same-city pairs. Missing coordinates skip the contribution, they do
// not fail the build.
func addGeoWeights(b *matrix.Builder, nodes []model.LocationNode, cfg model.PropagationConfig) {
	if cfg.GeoMaxWeight == 0 || cfg.GeoRadiusKm <= 0 {
		return
	}
	cities := make(map[string][]int)
	for i, nd := range nodes {
		if nd.City == "" || !nd.HasCoords {
			continue
		}
		cities[nd.City] = append(cities[nd.City], i)
	}
	for _, members := range cities {
		for _, i := range members {
			for _, j := range members {
				if i == j {
					continue
				}
				d := HaversineKm(nodes[i].Latitude, nodes[i].Longitude, nodes[j].Latitude, nodes[j].Longitude)
				if d < cfg.GeoRadiusKm {
					b.Add(i, j, cfg.GeoMaxWeight*(1-d/cfg.GeoRadiusKm))
				}
			}
		}
	}
}
