package model

import "time"

// Stability classifies a single echo measurement against the configured
// low/high thresholds.
type Stability string

const (
	StabilityStable   Stability = "STABLE"
	StabilityUnstable Stability = "UNSTABLE"
	StabilityChaotic  Stability = "CHAOTIC"
)

// ClassifyStability maps an echo value to its stability class.
func ClassifyStability(echo, low, high float64) Stability {
	switch {
	case echo <= low:
		return StabilityStable
	case echo <= high:
		return StabilityUnstable
	default:
		return StabilityChaotic
	}
}

// AffectedLocation describes one node's displacement after a
// perturb-and-echo round trip.
type AffectedLocation struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ChainID  string  `json:"chain_id,omitempty"`
	City     string  `json:"city,omitempty"`
	Category string  `json:"category,omitempty"`
	Impact   float64 `json:"impact"`
}

// EchoResult is the outcome of a single perturbation experiment.
type EchoResult struct {
	SourceID     string  `json:"source_id"`
	SourceName   string  `json:"source_name"`
	EchoValue    float64 `json:"echo_value"`
	Perturbation float64 `json:"perturbation"`
	Steps        int     `json:"steps"`
	// Butterfly is echo value per unit of perturbation; 0 when the
	// perturbation itself is 0.
	Butterfly    float64            `json:"butterfly"`
	Stability    Stability          `json:"stability"`
	MostAffected []AffectedLocation `json:"most_affected"`
	// PropagationPath lists the five hardest-hit location names in
	// descending impact order.
	PropagationPath []string  `json:"propagation_path"`
	ComputedAt      time.Time `json:"computed_at"`
}
