package strategy

import (
	"math"
	"testing"

	"EchoSentinel/internal/engine"
	"EchoSentinel/internal/model"
)

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	nodes := []model.LocationNode{
		{ID: "a1", Name: "A One", ChainID: "alpha", City: "Austin", Sentiment: 0.8},
		{ID: "a2", Name: "A Two", ChainID: "alpha", City: "Austin", Sentiment: -0.2},
		{ID: "b1", Name: "B One", ChainID: "beta", City: "Denver", Sentiment: 0.1},
	}
	e, err := engine.New(nodes, model.DefaultPropagationConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func mcStats(mean, stable, unstable, chaotic float64) *model.MonteCarloResult {
	return &model.MonteCarloResult{
		RunID:    "test-run",
		Trials:   100,
		MeanEcho: mean,
		StdEcho:  0.5,
		Distribution: model.StabilityDistribution{
			Stable:   stable,
			Unstable: unstable,
			Chaotic:  chaotic,
		},
	}
}

func TestGenerateUnknownBrand(t *testing.T) {
	e := testEngine(t)
	sig, err := Generate(e, "no-such-brand", 20)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if sig.Signal != model.SignalHold {
		t.Errorf("expected HOLD, got %s", sig.Signal)
	}
	if sig.Confidence != 0.0 {
		t.Errorf("expected confidence exactly 0, got %g", sig.Confidence)
	}
	if sig.RiskLevel != model.RiskUnknown {
		t.Errorf("expected UNKNOWN risk, got %s", sig.RiskLevel)
	}
	if sig.Recommendation == "" {
		t.Error("expected explanatory recommendation text")
	}
}

func TestGenerateBrandScoped(t *testing.T) {
	e := testEngine(t)
	sig, err := Generate(e, "ALPHA", 20)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if sig.Brand != "ALPHA" {
		t.Errorf("brand scope lost: %q", sig.Brand)
	}
	if sig.Signal != model.SignalBuy && sig.Signal != model.SignalHold && sig.Signal != model.SignalSell {
		t.Errorf("unexpected signal %s", sig.Signal)
	}
	if sig.Confidence < 0 || sig.Confidence > 1 {
		t.Errorf("confidence %g out of [0,1]", sig.Confidence)
	}
}

func TestDeriveSellOnHighRisk(t *testing.T) {
	// risk = 3.0 × (1 + 0.4 + 0.5×0.3) = 4.65 > 4.0
	sig := Derive(mcStats(3.0, 0.3, 0.3, 0.4), "")
	if sig.Signal != model.SignalSell {
		t.Fatalf("expected SELL, got %s", sig.Signal)
	}
	wantConf := math.Min(0.9, 0.5+sig.RiskScore/10)
	if math.Abs(sig.Confidence-wantConf) > 1e-9 {
		t.Errorf("confidence %g, want %g", sig.Confidence, wantConf)
	}
	if sig.RiskLevel != model.RiskHigh {
		t.Errorf("expected HIGH risk, got %s", sig.RiskLevel)
	}
}

func TestDeriveSellOnChaoticFraction(t *testing.T) {
	// Low risk score but chaotic fraction above 0.3 still sells.
	sig := Derive(mcStats(0.5, 0.5, 0.1, 0.4), "")
	if sig.Signal != model.SignalSell {
		t.Errorf("expected SELL on chaotic fraction, got %s", sig.Signal)
	}
}

func TestDeriveBuyOnLowRisk(t *testing.T) {
	// risk = 1.0 × (1 + 0.05 + 0.5×0.1) = 1.1 < 2.0, chaotic 0.05 < 0.1
	sig := Derive(mcStats(1.0, 0.85, 0.1, 0.05), "")
	if sig.Signal != model.SignalBuy {
		t.Fatalf("expected BUY, got %s (risk %.2f)", sig.Signal, sig.RiskScore)
	}
	wantConf := math.Min(0.9, 0.7+(2-sig.RiskScore)*0.1)
	if math.Abs(sig.Confidence-wantConf) > 1e-9 {
		t.Errorf("confidence %g, want %g", sig.Confidence, wantConf)
	}
	if sig.RiskLevel != model.RiskLow {
		t.Errorf("expected LOW risk, got %s", sig.RiskLevel)
	}
}

func TestDeriveHoldInBetween(t *testing.T) {
	// risk = 2.0 × (1 + 0.15 + 0.5×0.25) = 2.55: neither buy nor sell.
	sig := Derive(mcStats(2.0, 0.6, 0.25, 0.15), "")
	if sig.Signal != model.SignalHold {
		t.Fatalf("expected HOLD, got %s (risk %.2f)", sig.Signal, sig.RiskScore)
	}
	wantConf := 0.5 + math.Min(0.2, (3-math.Abs(sig.RiskScore-3))*0.1)
	if math.Abs(sig.Confidence-wantConf) > 1e-9 {
		t.Errorf("confidence %g, want %g", sig.Confidence, wantConf)
	}
	if sig.RiskLevel != model.RiskMedium {
		t.Errorf("expected MEDIUM risk, got %s", sig.RiskLevel)
	}
}

func TestDeriveConfidenceAlwaysInRange(t *testing.T) {
	cases := []*model.MonteCarloResult{
		mcStats(0, 1, 0, 0),
		mcStats(0.1, 0.9, 0.1, 0),
		mcStats(5, 0, 0.2, 0.8),
		mcStats(10, 0, 0, 1),
		mcStats(3, 0.4, 0.4, 0.2),
	}
	for i, mc := range cases {
		sig := Derive(mc, "")
		if sig.Confidence < 0 || sig.Confidence > 1 {
			t.Errorf("case %d: confidence %g out of [0,1]", i, sig.Confidence)
		}
	}
}

func TestRiskScoreFormula(t *testing.T) {
	got := model.RiskScore(2.0, 0.3, 0.4)
	want := 2.0 * (1 + 0.3 + 0.5*0.4)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("risk score %g, want %g", got, want)
	}
}
