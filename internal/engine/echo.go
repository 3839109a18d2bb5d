package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"EchoSentinel/internal/model"
)

// ErrNodeNotFound is returned by id-keyed operations for unknown ids.
var ErrNodeNotFound = errors.New("location not found")

// ComputeEcho runs one perturbation experiment against the node at
// target: forward-evolve the standardized state, inject the
// perturbation, backward-evolve, and measure how far the round trip
// landed from the starting state. steps <= 0 falls back to the
// configured default. Deterministic given the cached matrix.
func (e *Engine) ComputeEcho(target, steps int, perturbation float64) (*model.EchoResult, error) {
	if target < 0 || target >= len(e.nodes) {
		return nil, fmt.Errorf("node index %d out of range [0,%d): %w", target, len(e.nodes), ErrNodeNotFound)
	}
	if steps <= 0 {
		steps = e.cfg.DefaultSteps
	}

	x0 := e.StateVector()
	xT := e.EvolveForward(x0, steps)
	perturbed := InjectPerturbation(xT, target, perturbation)
	x0back := e.EvolveBackward(perturbed, steps)

	n := len(e.nodes)
	diff := make([]float64, n)
	var sumSq float64
	for i := range diff {
		diff[i] = x0back[i] - x0[i]
		sumSq += diff[i] * diff[i]
	}
	echo := math.Sqrt(sumSq) / math.Sqrt(float64(n))

	butterfly := 0.0
	if perturbation != 0 {
		butterfly = echo / math.Abs(perturbation)
	}

	// Rank nodes by absolute displacement.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return math.Abs(diff[order[a]]) > math.Abs(diff[order[b]])
	})

	topN := 10
	if topN > n {
		topN = n
	}
	affected := make([]model.AffectedLocation, 0, topN)
	for _, i := range order[:topN] {
		nd := e.nodes[i]
		affected = append(affected, model.AffectedLocation{
			ID:       nd.ID,
			Name:     nd.Name,
			ChainID:  nd.ChainID,
			City:     nd.City,
			Category: nd.Category,
			Impact:   diff[i],
		})
	}

	pathN := 5
	if pathN > n {
		pathN = n
	}
	path := make([]string, 0, pathN)
	for _, i := range order[:pathN] {
		path = append(path, e.nodes[i].Name)
	}

	src := e.nodes[target]
	return &model.EchoResult{
		SourceID:        src.ID,
		SourceName:      src.Name,
		EchoValue:       echo,
		Perturbation:    perturbation,
		Steps:           steps,
		Butterfly:       butterfly,
		Stability:       model.ClassifyStability(echo, e.cfg.LowThreshold, e.cfg.HighThreshold),
		MostAffected:    affected,
		PropagationPath: path,
		ComputedAt:      time.Now(),
	}, nil
}

// ComputeEchoByID is the id-keyed variant of ComputeEcho. Unknown ids
// fail with ErrNodeNotFound.
func (e *Engine) ComputeEchoByID(id string, steps int, perturbation float64) (*model.EchoResult, error) {
	idx, ok := e.byID[id]
	if !ok {
		return nil, fmt.Errorf("location %q: %w", id, ErrNodeNotFound)
	}
	return e.ComputeEcho(idx, steps, perturbation)
}
