// Package strategy turns Monte Carlo echo statistics into a discrete
// trading recommendation.
package strategy

import (
	"fmt"
	"math"
	"time"

	"EchoSentinel/internal/engine"
	"EchoSentinel/internal/model"
)

// Fixed decision thresholds; deliberately not configurable per call.
const (
	sellRiskScore   = 4.0
	sellChaoticFrac = 0.3
	buyRiskScore    = 2.0
	buyChaoticFrac  = 0.1
	maxConfidence   = 0.9
)

// Generate runs a Monte Carlo sweep, optionally restricted to nodes
// whose chain_id contains brand (case-insensitive), and derives the
// trading signal. A brand matching zero locations is a normal outcome:
// it yields HOLD with confidence 0 and UNKNOWN risk, not an error.
func Generate(e *engine.Engine, brand string, trials int) (*model.TradingSignal, error) {
	subset := e.FilterByChain(brand)
	if len(subset) == 0 {
		return &model.TradingSignal{
			Brand:          brand,
			Signal:         model.SignalHold,
			Confidence:     0,
			RiskLevel:      model.RiskUnknown,
			Recommendation: fmt.Sprintf("no locations match brand %q; nothing to evaluate", brand),
			GeneratedAt:    time.Now(),
		}, nil
	}

	mc, err := e.RunMonteCarlo(engine.SampleOptions{Trials: trials, Subset: subset})
	if err != nil {
		return nil, fmt.Errorf("signal sweep for brand %q: %w", brand, err)
	}
	return Derive(mc, brand), nil
}

// Derive maps aggregate echo statistics to a signal. Pure: thresholds
// and confidence formulas are exercised here without any sampling.
func Derive(mc *model.MonteCarloResult, brand string) *model.TradingSignal {
	risk := model.RiskScore(mc.MeanEcho, mc.Distribution.Chaotic, mc.Distribution.Unstable)

	sig := &model.TradingSignal{
		RunID:         mc.RunID,
		Brand:         brand,
		RiskScore:     risk,
		ChaosIndex:    mc.ChaosIndex,
		MeanEcho:      mc.MeanEcho,
		StdEcho:       mc.StdEcho,
		CriticalNodes: mc.CriticalNodes,
		GeneratedAt:   time.Now(),
	}

	switch {
	case risk > sellRiskScore || mc.Distribution.Chaotic > sellChaoticFrac:
		sig.Signal = model.SignalSell
		sig.Confidence = math.Min(maxConfidence, 0.5+risk/10)
		sig.RiskLevel = model.RiskHigh
		sig.Recommendation = "sentiment network is highly sensitive to shocks; reduce exposure"
	case risk < buyRiskScore && mc.Distribution.Chaotic < buyChaoticFrac:
		sig.Signal = model.SignalBuy
		sig.Confidence = math.Min(maxConfidence, 0.7+(buyRiskScore-risk)*0.1)
		sig.RiskLevel = model.RiskLow
		sig.Recommendation = "perturbations damp out quickly; sentiment base is resilient"
	default:
		sig.Signal = model.SignalHold
		sig.Confidence = 0.5 + math.Min(0.2, (3-math.Abs(risk-3))*0.1)
		sig.RiskLevel = model.RiskMedium
		sig.Recommendation = "mixed propagation profile; wait for a clearer reading"
	}

	sig.Confidence = clamp01(sig.Confidence)
	return sig
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
