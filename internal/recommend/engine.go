// Package recommend turns a free-text tire request into candidate tires.
//
// The Gemini engine asks the model for a JSON array and parses it through a
// three-tier repair chain; anything unusable surfaces as a single error so
// the caller can switch to the deterministic rule fallback.
package recommend

import (
	"context"

	"github.com/tirematch/backend/internal/models"
)

// Engine produces candidate tires for a customer request. The returned int64
// is the call latency in milliseconds.
type Engine interface {
	Recommend(ctx context.Context, query string, items []models.CatalogItem) ([]models.Candidate, int64, error)
}
