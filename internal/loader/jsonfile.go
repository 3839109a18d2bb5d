package loader

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"EchoSentinel/internal/model"
)

// locationRecord mirrors one entry of the export file. Pointer fields
// distinguish "absent" from zero.
type locationRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	ChainID     string   `json:"chain_id"`
	City        string   `json:"city"`
	Category    string   `json:"category"`
	Sentiment   *float64 `json:"sentiment"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
}

// JSONFileLoader reads a JSON array of location records from disk.
type JSONFileLoader struct {
	Path string
}

// NewJSONFileLoader creates a loader for the given export file.
func NewJSONFileLoader(path string) *JSONFileLoader {
	return &JSONFileLoader{Path: path}
}

func (l *JSONFileLoader) Name() string { return "json:" + l.Path }

// Load parses the file, normalizes ratings into sentiment when the
// record carries none, and drops records without an id.
func (l *JSONFileLoader) Load() ([]model.LocationNode, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read locations file: %w", err)
	}

	var records []locationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse locations file: %w", err)
	}

	nodes := make([]model.LocationNode, 0, len(records))
	dropped := 0
	for _, r := range records {
		if r.ID == "" {
			dropped++
			continue
		}
		nd := model.LocationNode{
			ID:          r.ID,
			Name:        r.Name,
			ChainID:     r.ChainID,
			City:        r.City,
			Category:    r.Category,
			Rating:      r.Rating,
			ReviewCount: r.ReviewCount,
		}
		if r.Latitude != nil && r.Longitude != nil {
			nd.Latitude = *r.Latitude
			nd.Longitude = *r.Longitude
			nd.HasCoords = true
		}
		if r.Sentiment != nil {
			nd.Sentiment = *r.Sentiment
		} else {
			nd.Sentiment = NormalizeSentiment(r.Rating)
		}
		nodes = append(nodes, nd)
	}
	if dropped > 0 {
		log.Printf("[WARN] dropped %d location records without id", dropped)
	}
	return nodes, nil
}
