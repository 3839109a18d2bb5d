package loader

import (
	"fmt"
	"math/rand"

	"EchoSentinel/internal/model"
)

// MockLoader generates a synthetic chain/city network for development
// and testing. Deterministic for a fixed seed.
type MockLoader struct {
	Chains   int
	PerChain int
	Seed     int64
}

func (m *MockLoader) Name() string { return "mock" }

var mockCities = []struct {
	name     string
	lat, lon float64
}{
	{"Austin", 30.2672, -97.7431},
	{"Denver", 39.7392, -104.9903},
	{"Portland", 45.5152, -122.6784},
}

// Load produces Chains × PerChain locations spread over three cities
// with jittered coordinates and ratings.
func (m *MockLoader) Load() ([]model.LocationNode, error) {
	chains := m.Chains
	if chains <= 0 {
		chains = 3
	}
	perChain := m.PerChain
	if perChain <= 0 {
		perChain = 5
	}
	rng := rand.New(rand.NewSource(m.Seed))

	nodes := make([]model.LocationNode, 0, chains*perChain)
	for c := 0; c < chains; c++ {
		chainID := fmt.Sprintf("chain-%d", c+1)
		for p := 0; p < perChain; p++ {
			city := mockCities[(c*perChain+p)%len(mockCities)]
			rating := 2.5 + rng.Float64()*2.5
			nodes = append(nodes, model.LocationNode{
				ID:          fmt.Sprintf("%s-loc-%d", chainID, p+1),
				Name:        fmt.Sprintf("%s #%d %s", chainID, p+1, city.name),
				Latitude:    city.lat + (rng.Float64()-0.5)*0.2,
				Longitude:   city.lon + (rng.Float64()-0.5)*0.2,
				HasCoords:   true,
				ChainID:     chainID,
				City:        city.name,
				Category:    "restaurant",
				Rating:      rating,
				Sentiment:   NormalizeSentiment(rating),
				ReviewCount: 50 + rng.Intn(950),
			})
		}
	}
	return nodes, nil
}
