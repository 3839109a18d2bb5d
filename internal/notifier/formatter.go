package notifier

import (
	"fmt"
	"strings"
	"time"

	"EchoSentinel/internal/model"
)

// FormatSignal formats a trading signal into an analyst report.
func FormatSignal(sig *model.TradingSignal) string {
	var b strings.Builder

	scope := "whole network"
	if sig.Brand != "" {
		scope = fmt.Sprintf("brand %q", sig.Brand)
	}
	b.WriteString(fmt.Sprintf("EchoSentinel signal | %s | %s\n\n", scope, time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Signal: %s (confidence %.0f%%, risk %s)\n", sig.Signal, sig.Confidence*100, sig.RiskLevel))
	b.WriteString(fmt.Sprintf("Risk score: %.2f | chaos index: %.2f\n", sig.RiskScore, sig.ChaosIndex))
	b.WriteString(fmt.Sprintf("Echo mean: %.3f | std: %.3f\n", sig.MeanEcho, sig.StdEcho))

	if len(sig.CriticalNodes) > 0 {
		b.WriteString("\nMost critical locations:\n")
		top := sig.CriticalNodes
		if len(top) > 5 {
			top = top[:5]
		}
		for i, n := range top {
			b.WriteString(fmt.Sprintf("  %d. %s (%s) mean echo %.2f [%s]\n", i+1, n.Name, n.ID, n.MeanEcho, n.Criticality))
		}
	}

	b.WriteString("\n" + sig.Recommendation + "\n")
	return b.String()
}

// FormatMonteCarlo formats a sampling run summary.
func FormatMonteCarlo(res *model.MonteCarloResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Monte Carlo run %s | %d trials\n\n", res.RunID, res.Trials))
	b.WriteString(fmt.Sprintf("Echo mean %.3f std %.3f (min %.3f, max %.3f)\n", res.MeanEcho, res.StdEcho, res.MinEcho, res.MaxEcho))
	b.WriteString(fmt.Sprintf("p95 %.3f | p99 %.3f | chaos index %.2f\n", res.P95Echo, res.P99Echo, res.ChaosIndex))
	b.WriteString(fmt.Sprintf("Stability: %.0f%% stable / %.0f%% unstable / %.0f%% chaotic\n",
		res.Distribution.Stable*100, res.Distribution.Unstable*100, res.Distribution.Chaotic*100))
	return b.String()
}

// FormatHealth formats a system health check.
func FormatHealth(h *model.SystemHealth) string {
	return fmt.Sprintf("System health: %s\nrisk score %.2f | mean echo %.3f | chaotic %.0f%% (%d trials)",
		h.Status, h.RiskScore, h.MeanEcho, h.ChaoticFraction*100, h.Trials)
}
