package model

// LocationNode represents one physical business location in the network.
// Index position in the engine's node list is the canonical handle used
// by the influence matrix and state vectors; the list is immutable after
// engine construction.
type LocationNode struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	HasCoords   bool    `json:"has_coords,omitempty"`
	ChainID     string  `json:"chain_id,omitempty"`
	City        string  `json:"city,omitempty"`
	Category    string  `json:"category,omitempty"`
	Sentiment   float64 `json:"sentiment"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

// PropagationConfig bundles the influence weights and simulation defaults.
// Immutable once handed to an engine.
type PropagationConfig struct {
	SelfWeight     float64 `yaml:"self_weight"`
	GeoMaxWeight   float64 `yaml:"geo_max_weight"`
	GeoRadiusKm    float64 `yaml:"geo_radius_km"`
	BrandWeight    float64 `yaml:"brand_weight"`
	CityWeight     float64 `yaml:"city_weight"`
	CategoryWeight float64 `yaml:"category_weight"`

	DefaultSteps        int     `yaml:"default_steps"`
	DefaultPerturbation float64 `yaml:"default_perturbation"`
	DefaultTrials       int     `yaml:"default_trials"`

	LowThreshold  float64 `yaml:"low_threshold"`
	HighThreshold float64 `yaml:"high_threshold"`
}

// DefaultPropagationConfig returns the standard weight set.
func DefaultPropagationConfig() PropagationConfig {
	return PropagationConfig{
		SelfWeight:          0.7,
		GeoMaxWeight:        0.15,
		GeoRadiusKm:         50,
		BrandWeight:         0.20,
		CityWeight:          0.08,
		CategoryWeight:      0.05,
		DefaultSteps:        10,
		DefaultPerturbation: -0.5,
		DefaultTrials:       500,
		LowThreshold:        1.5,
		HighThreshold:       3.5,
	}
}
