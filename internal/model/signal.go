package model

import "time"

// SignalType is the discrete trading recommendation.
type SignalType string

const (
	SignalBuy  SignalType = "BUY"
	SignalHold SignalType = "HOLD"
	SignalSell SignalType = "SELL"
)

// RiskLevel labels the risk attached to a trading signal.
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskUnknown RiskLevel = "UNKNOWN"
)

// TradingSignal is the final output of the signal synthesizer.
type TradingSignal struct {
	RunID string `json:"run_id"`
	// Brand is the chain_id substring the sample was restricted to;
	// empty means the whole network.
	Brand          string         `json:"brand,omitempty"`
	Signal         SignalType     `json:"signal"`
	Confidence     float64        `json:"confidence"`
	RiskScore      float64        `json:"risk_score"`
	ChaosIndex     float64        `json:"chaos_index"`
	MeanEcho       float64        `json:"mean_echo"`
	StdEcho        float64        `json:"std_echo"`
	CriticalNodes  []NodeEchoStat `json:"critical_nodes"`
	Recommendation string         `json:"recommendation"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	GeneratedAt    time.Time      `json:"generated_at"`
}
