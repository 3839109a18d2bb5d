// Package loader supplies LocationNode batches to the engine. Loaders
// own the rating→sentiment normalization so the engine can assume
// sentiment is already populated.
package loader

import "EchoSentinel/internal/model"

// Loader is the ingestion boundary: it produces one immutable batch of
// locations per call.
type Loader interface {
	Load() ([]model.LocationNode, error)
	Name() string
}

// NormalizeSentiment maps a 1–5 star rating onto [-1, 1] with the
// midpoint at 3 stars.
func NormalizeSentiment(rating float64) float64 {
	s := (rating - 3) / 2
	if s < -1 {
		s = -1
	}
	if s > 1 {
		s = 1
	}
	return s
}
