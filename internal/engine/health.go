package engine

import (
	"fmt"
	"math/rand"
	"time"

	"EchoSentinel/internal/model"
)

const healthTrials = 100

// LocationCriticality samples the echo of one location n times with
// random perturbations and classifies the mean against the
// LOW/MEDIUM/HIGH/CRITICAL thresholds at 1.0/2.0/3.0. Unknown ids fail
// with ErrNodeNotFound.
func (e *Engine) LocationCriticality(id string, samples int) (*model.CriticalityReport, error) {
	idx, ok := e.byID[id]
	if !ok {
		return nil, fmt.Errorf("location %q: %w", id, ErrNodeNotFound)
	}
	if samples <= 0 {
		samples = 10
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var sum float64
	for s := 0; s < samples; s++ {
		delta := rng.Float64()*2 - 1
		res, err := e.ComputeEcho(idx, e.cfg.DefaultSteps, delta)
		if err != nil {
			return nil, err
		}
		sum += res.EchoValue
	}
	mean := sum / float64(samples)

	nd := e.nodes[idx]
	return &model.CriticalityReport{
		ID:          nd.ID,
		Name:        nd.Name,
		Samples:     samples,
		MeanEcho:    mean,
		Criticality: model.ClassifyLocationCriticality(mean),
	}, nil
}

// SystemHealth runs a reduced sequential Monte Carlo sweep and
// classifies the overall network with the same risk formula and
// thresholds the signal synthesizer uses.
func (e *Engine) SystemHealth() (*model.SystemHealth, error) {
	mc, err := e.RunMonteCarlo(SampleOptions{Trials: healthTrials, Workers: 1})
	if err != nil {
		return nil, fmt.Errorf("health sweep: %w", err)
	}

	risk := model.RiskScore(mc.MeanEcho, mc.Distribution.Chaotic, mc.Distribution.Unstable)
	var status model.HealthStatus
	switch {
	case risk < 2.0 && mc.Distribution.Chaotic < 0.1:
		status = model.HealthHealthy
	case risk < 3.5 && mc.Distribution.Chaotic < 0.3:
		status = model.HealthCaution
	default:
		status = model.HealthAtRisk
	}

	return &model.SystemHealth{
		Status:          status,
		RiskScore:       risk,
		MeanEcho:        mc.MeanEcho,
		ChaoticFraction: mc.Distribution.Chaotic,
		Trials:          mc.Trials,
		ComputedAt:      time.Now(),
	}, nil
}
