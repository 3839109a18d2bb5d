package model

import "time"

// Criticality labels how much average echo a node generates.
type Criticality string

const (
	CriticalityLow      Criticality = "LOW"
	CriticalityMedium   Criticality = "MEDIUM"
	CriticalityHigh     Criticality = "HIGH"
	CriticalityCritical Criticality = "CRITICAL"
)

// ClassifyNodeCriticality is the 3-level scale used inside Monte Carlo
// aggregation (no CRITICAL tier).
func ClassifyNodeCriticality(meanEcho float64) Criticality {
	switch {
	case meanEcho > 3.0:
		return CriticalityHigh
	case meanEcho > 1.5:
		return CriticalityMedium
	default:
		return CriticalityLow
	}
}

// ClassifyLocationCriticality is the 4-level scale used by the per-location
// criticality report.
func ClassifyLocationCriticality(meanEcho float64) Criticality {
	switch {
	case meanEcho > 3.0:
		return CriticalityCritical
	case meanEcho > 2.0:
		return CriticalityHigh
	case meanEcho > 1.0:
		return CriticalityMedium
	default:
		return CriticalityLow
	}
}

// NodeEchoStat is a per-node aggregate over the trials that hit it.
type NodeEchoStat struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	MeanEcho    float64     `json:"mean_echo"`
	Trials      int         `json:"trials"`
	Criticality Criticality `json:"criticality"`
}

// StabilityDistribution holds the fraction of trials landing in each
// stability class. The three fractions sum to 1.
type StabilityDistribution struct {
	Stable   float64 `json:"stable"`
	Unstable float64 `json:"unstable"`
	Chaotic  float64 `json:"chaotic"`
}

// MonteCarloResult aggregates the echo statistics of a sampling run.
type MonteCarloResult struct {
	RunID    string  `json:"run_id"`
	Trials   int     `json:"trials"`
	MeanEcho float64 `json:"mean_echo"`
	StdEcho  float64 `json:"std_echo"`
	MinEcho  float64 `json:"min_echo"`
	MaxEcho  float64 `json:"max_echo"`
	P95Echo  float64 `json:"p95_echo"`
	P99Echo  float64 `json:"p99_echo"`
	// ChaosIndex is mean/std of the sampled echoes, 0 when std is 0.
	ChaosIndex    float64               `json:"chaos_index"`
	CriticalNodes []NodeEchoStat        `json:"critical_nodes"`
	Distribution  StabilityDistribution `json:"distribution"`
	ComputedAt    time.Time             `json:"computed_at"`
}

// CriticalityReport is the outcome of repeated sampling at one location.
type CriticalityReport struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Samples     int         `json:"samples"`
	MeanEcho    float64     `json:"mean_echo"`
	Criticality Criticality `json:"criticality"`
}

// RiskScore combines the mean echo with the instability fractions into
// the single score shared by the signal synthesizer and the system
// health report.
func RiskScore(meanEcho, chaoticFrac, unstableFrac float64) float64 {
	return meanEcho * (1 + chaoticFrac + 0.5*unstableFrac)
}

// HealthStatus is the overall system classification.
type HealthStatus string

const (
	HealthHealthy HealthStatus = "HEALTHY"
	HealthCaution HealthStatus = "CAUTION"
	HealthAtRisk  HealthStatus = "AT_RISK"
)

// SystemHealth summarizes a reduced Monte Carlo sweep of the whole network.
type SystemHealth struct {
	Status          HealthStatus `json:"status"`
	RiskScore       float64      `json:"risk_score"`
	MeanEcho        float64      `json:"mean_echo"`
	ChaoticFraction float64      `json:"chaotic_fraction"`
	Trials          int          `json:"trials"`
	ComputedAt      time.Time    `json:"computed_at"`
}
