package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"EchoSentinel/internal/model"

	"github.com/google/uuid"
)

// ErrNoNodes is returned when sampling is requested on an empty network
// or an empty node subset.
var ErrNoNodes = errors.New("no nodes to sample")

// Parallel execution is pure throughput; below this many trials the
// pool overhead is not worth it.
const minParallelTrials = 10

// SampleOptions controls a Monte Carlo run. The zero value means:
// configured default trial count, whole network, time-based seed,
// 4 workers.
type SampleOptions struct {
	Trials int
	// Subset restricts sampling to these node indices; nil means all.
	Subset []int
	// Seed fixes the random draws for reproducible runs; 0 derives a
	// seed from the clock.
	Seed int64
	// Workers bounds the pool; <= 1 forces sequential execution.
	Workers int
}

// trialDraw is one pre-drawn (node, perturbation) pair. Draws are made
// up front from a single source so parallel and sequential runs sample
// identically.
type trialDraw struct {
	node  int
	delta float64
}

type trialOutcome struct {
	node      int
	echo      float64
	stability model.Stability
}

// RunMonteCarlo repeats the echo experiment over random (node, δ)
// pairs with δ uniform in [−1, 1] and aggregates the distribution.
// Aggregation is commutative, so result ordering across workers does
// not affect the statistics.
func (e *Engine) RunMonteCarlo(opts SampleOptions) (*model.MonteCarloResult, error) {
	subset := opts.Subset
	if subset == nil {
		subset = e.FilterByChain("")
	}
	if len(subset) == 0 {
		return nil, ErrNoNodes
	}

	trials := opts.Trials
	if trials <= 0 {
		trials = e.cfg.DefaultTrials
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := opts.Workers
	if workers == 0 {
		workers = 4
	}

	rng := rand.New(rand.NewSource(seed))
	draws := make([]trialDraw, trials)
	for i := range draws {
		draws[i] = trialDraw{
			node:  subset[rng.Intn(len(subset))],
			delta: rng.Float64()*2 - 1,
		}
	}

	var outcomes []trialOutcome
	var err error
	if workers > 1 && trials >= minParallelTrials {
		outcomes, err = e.runTrialsParallel(draws, workers)
	} else {
		outcomes, err = e.runTrialsSequential(draws)
	}
	if err != nil {
		return nil, err
	}

	return e.aggregate(outcomes), nil
}

func (e *Engine) runTrialsSequential(draws []trialDraw) ([]trialOutcome, error) {
	out := make([]trialOutcome, 0, len(draws))
	for _, d := range draws {
		res, err := e.ComputeEcho(d.node, e.cfg.DefaultSteps, d.delta)
		if err != nil {
			return nil, fmt.Errorf("trial at node %d: %w", d.node, err)
		}
		out = append(out, trialOutcome{node: d.node, echo: res.EchoValue, stability: res.Stability})
	}
	return out, nil
}

// runTrialsParallel fans the pre-drawn trials out to a bounded worker
// pool. A trial is the unit of work and runs to completion; outcomes
// are collected in whatever order they finish.
func (e *Engine) runTrialsParallel(draws []trialDraw, workers int) ([]trialOutcome, error) {
	// Matrix build is guarded by sync.Once, but force it here so the
	// workers start from a fully constructed read-only matrix.
	e.Matrix()

	work := make(chan trialDraw)
	results := make(chan trialOutcome, len(draws))

	var errOnce sync.Once
	var firstErr error

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			failed := false
			for d := range work {
				if failed {
					continue // drain remaining work after a failure
				}
				res, err := e.ComputeEcho(d.node, e.cfg.DefaultSteps, d.delta)
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					failed = true
					continue
				}
				results <- trialOutcome{node: d.node, echo: res.EchoValue, stability: res.Stability}
			}
		}()
	}

	for _, d := range draws {
		work <- d
	}
	close(work)
	wg.Wait()
	close(results)

	if firstErr != nil {
		return nil, fmt.Errorf("monte carlo trial: %w", firstErr)
	}

	out := make([]trialOutcome, 0, len(draws))
	for o := range results {
		out = append(out, o)
	}
	return out, nil
}

func (e *Engine) aggregate(outcomes []trialOutcome) *model.MonteCarloResult {
	n := len(outcomes)
	echoes := make([]float64, 0, n)

	var sum float64
	minEcho := math.Inf(1)
	maxEcho := math.Inf(-1)
	var stable, unstable, chaotic int
	type nodeAgg struct {
		sum   float64
		count int
	}
	perNode := make(map[int]*nodeAgg)

	for _, o := range outcomes {
		echoes = append(echoes, o.echo)
		sum += o.echo
		if o.echo < minEcho {
			minEcho = o.echo
		}
		if o.echo > maxEcho {
			maxEcho = o.echo
		}
		switch o.stability {
		case model.StabilityStable:
			stable++
		case model.StabilityUnstable:
			unstable++
		default:
			chaotic++
		}
		agg := perNode[o.node]
		if agg == nil {
			agg = &nodeAgg{}
			perNode[o.node] = agg
		}
		agg.sum += o.echo
		agg.count++
	}

	mean := sum / float64(n)
	var variance float64
	for _, v := range echoes {
		d := v - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(n))

	chaosIndex := 0.0
	if std > 0 {
		chaosIndex = mean / std
	}

	sort.Float64s(echoes)

	critical := make([]model.NodeEchoStat, 0, len(perNode))
	for idx, agg := range perNode {
		nd := e.nodes[idx]
		m := agg.sum / float64(agg.count)
		critical = append(critical, model.NodeEchoStat{
			ID:          nd.ID,
			Name:        nd.Name,
			MeanEcho:    m,
			Trials:      agg.count,
			Criticality: model.ClassifyNodeCriticality(m),
		})
	}
	sort.Slice(critical, func(a, b int) bool {
		if critical[a].MeanEcho != critical[b].MeanEcho {
			return critical[a].MeanEcho > critical[b].MeanEcho
		}
		return critical[a].ID < critical[b].ID
	})
	if len(critical) > 20 {
		critical = critical[:20]
	}

	return &model.MonteCarloResult{
		RunID:         uuid.NewString(),
		Trials:        n,
		MeanEcho:      mean,
		StdEcho:       std,
		MinEcho:       minEcho,
		MaxEcho:       maxEcho,
		P95Echo:       percentile(echoes, 0.95),
		P99Echo:       percentile(echoes, 0.99),
		ChaosIndex:    chaosIndex,
		CriticalNodes: critical,
		Distribution: model.StabilityDistribution{
			Stable:   float64(stable) / float64(n),
			Unstable: float64(unstable) / float64(n),
			Chaotic:  float64(chaotic) / float64(n),
		},
		ComputedAt: time.Now(),
	}
}

// percentile computes the q-th quantile of a sorted sample with linear
// interpolation between adjacent ranks.
func percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
