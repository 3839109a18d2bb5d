// Package engine implements the sentiment propagation-and-echo
// simulation: forward/backward state evolution over the influence
// matrix, perturbation experiments, Monte Carlo sampling, and the
// criticality / health reports built on top of the sampled statistics.
package engine

import (
	"fmt"
	"strings"
	"sync"

	"EchoSentinel/internal/influence"
	"EchoSentinel/internal/matrix"
	"EchoSentinel/internal/model"
)

// Engine holds an immutable location network and lazily builds the
// influence matrix on first use. A new Engine is required to reflect
// updated location data; there is no mutation API.
type Engine struct {
	nodes []model.LocationNode
	cfg   model.PropagationConfig
	byID  map[string]int

	buildOnce sync.Once
	fm        *matrix.Sparse
}

// New creates an Engine over the given nodes. Node ids must be unique;
// index position in the slice is the canonical handle for the engine's
// lifetime.
func New(nodes []model.LocationNode, cfg model.PropagationConfig) (*Engine, error) {
	byID := make(map[string]int, len(nodes))
	for i, nd := range nodes {
		if _, dup := byID[nd.ID]; dup {
			return nil, fmt.Errorf("duplicate location id %q", nd.ID)
		}
		byID[nd.ID] = i
	}
	return &Engine{nodes: nodes, cfg: cfg, byID: byID}, nil
}

// Size returns the number of locations in the network.
func (e *Engine) Size() int { return len(e.nodes) }

// Config returns the propagation configuration.
func (e *Engine) Config() model.PropagationConfig { return e.cfg }

// Node returns the location at index i.
func (e *Engine) Node(i int) model.LocationNode { return e.nodes[i] }

// Matrix returns the influence matrix, building it on first call. The
// build is guarded so concurrent first access constructs it exactly
// once; afterwards it is read-only and shared without locking.
func (e *Engine) Matrix() *matrix.Sparse {
	e.buildOnce.Do(func() {
		e.fm = influence.Build(e.nodes, e.cfg)
	})
	return e.fm
}

// FilterByChain returns the indices of nodes whose chain_id contains
// the given substring, case-insensitively. An empty filter matches
// every node.
func (e *Engine) FilterByChain(brand string) []int {
	idx := make([]int, 0, len(e.nodes))
	needle := strings.ToLower(brand)
	for i, nd := range e.nodes {
		if needle == "" || strings.Contains(strings.ToLower(nd.ChainID), needle) {
			idx = append(idx, i)
		}
	}
	return idx
}
