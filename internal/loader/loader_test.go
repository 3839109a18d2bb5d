package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeSentiment(t *testing.T) {
	tests := []struct {
		rating float64
		want   float64
	}{
		{3.0, 0},
		{5.0, 1},
		{1.0, -1},
		{4.0, 0.5},
		{2.0, -0.5},
		{0.0, -1}, // clamped
		{6.0, 1},  // clamped
	}
	for _, tt := range tests {
		if got := NormalizeSentiment(tt.rating); got != tt.want {
			t.Errorf("rating %.1f: expected %.2f, got %.2f", tt.rating, tt.want, got)
		}
	}
}

func TestJSONFileLoader(t *testing.T) {
	content := `[
		{"id": "l1", "name": "First", "chain_id": "alpha", "city": "Austin",
		 "latitude": 30.1, "longitude": -97.7, "rating": 4.0, "review_count": 120},
		{"id": "l2", "name": "Second", "rating": 2.0, "sentiment": 0.9},
		{"name": "no id, dropped", "rating": 3.0}
	]`
	path := filepath.Join(t.TempDir(), "locations.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	nodes, err := NewJSONFileLoader(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}

	if !nodes[0].HasCoords {
		t.Error("expected coordinates on first node")
	}
	if nodes[0].Sentiment != 0.5 {
		t.Errorf("expected normalized sentiment 0.5, got %g", nodes[0].Sentiment)
	}
	// Explicit sentiment wins over the rating-derived one.
	if nodes[1].Sentiment != 0.9 {
		t.Errorf("expected explicit sentiment 0.9, got %g", nodes[1].Sentiment)
	}
	if nodes[1].HasCoords {
		t.Error("second node has no coordinates")
	}
}

func TestJSONFileLoaderMissingFile(t *testing.T) {
	if _, err := NewJSONFileLoader("/does/not/exist.json").Load(); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestJSONFileLoaderBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJSONFileLoader(path).Load(); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func TestMockLoaderDeterministic(t *testing.T) {
	m := &MockLoader{Chains: 2, PerChain: 3, Seed: 1}
	first, err := m.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	second, err := m.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(first) != 6 {
		t.Fatalf("expected 6 nodes, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("node %d differs between loads with the same seed", i)
		}
	}

	ids := make(map[string]bool)
	for _, nd := range first {
		if ids[nd.ID] {
			t.Errorf("duplicate id %s", nd.ID)
		}
		ids[nd.ID] = true
		if nd.Sentiment < -1 || nd.Sentiment > 1 {
			t.Errorf("sentiment %g out of range", nd.Sentiment)
		}
		if !nd.HasCoords {
			t.Errorf("node %s missing coordinates", nd.ID)
		}
	}
}
