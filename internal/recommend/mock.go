package recommend

import (
	"context"
	"time"

	"github.com/tirematch/backend/internal/models"
	"github.com/tirematch/backend/internal/utils"
)

// MockEngine derives deterministic candidates from a hash of the query.
// Used when no Gemini API key is configured.
type MockEngine struct {
	ModelVersion string
}

func (m MockEngine) Recommend(ctx context.Context, query string, items []models.CatalogItem) ([]models.Candidate, int64, error) {
	start := time.Now()
	if len(items) == 0 {
		return nil, time.Since(start).Milliseconds(), ErrNoCandidates
	}

	offset := int(utils.HashStringToUint64(query) % uint64(len(items)))
	count := 3
	if count > len(items) {
		count = len(items)
	}

	scores := []int{92, 85, 78}
	out := make([]models.Candidate, 0, count)
	for i := 0; i < count; i++ {
		item := items[(offset+i)%len(items)]
		season := "all-season"
		if hasTagSubstring(item.Tags, "winter") {
			season = "winter"
		}
		out = append(out, models.Candidate{
			Brand:      item.Brand,
			Model:      item.Model,
			Season:     season,
			PriceRange: defaultPriceRange,
			MatchScore: scores[i%len(scores)],
			Reason:     "Deterministic pick (" + m.ModelVersion + ")",
			Features:   []string{},
		})
	}
	return out, time.Since(start).Milliseconds(), nil
}
