package recommend

import (
	"strings"

	"github.com/tirematch/backend/internal/models"
)

// RuleFallback builds candidates straight from the catalog when the model
// response is unusable: up to 2 winter-tagged and up to 2 all-season-tagged
// items, with synthetic match scores descending from 75 in steps of 10.
// Deterministic, catalog-only, no external call.
func RuleFallback(items []models.CatalogItem) []models.Candidate {
	winter := itemsTagged(items, "winter", 2)
	allSeason := itemsTagged(items, "all-season", 2)

	picked := append(winter, allSeason...)
	out := make([]models.Candidate, 0, len(picked))
	score := 75
	for _, item := range picked {
		season := "all-season"
		if hasTagSubstring(item.Tags, "winter") {
			season = "winter"
		}
		out = append(out, models.Candidate{
			Brand:      item.Brand,
			Model:      item.Model,
			Season:     season,
			PriceRange: defaultPriceRange,
			MatchScore: score,
			Reason:     "Popular " + season + " choice from current stock",
			Features:   []string{},
		})
		score -= 10
	}
	return out
}

func itemsTagged(items []models.CatalogItem, tag string, limit int) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, limit)
	for _, item := range items {
		if len(out) == limit {
			break
		}
		if hasTagSubstring(item.Tags, tag) {
			out = append(out, item)
		}
	}
	return out
}

func hasTagSubstring(tags []string, substr string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), substr) {
			return true
		}
	}
	return false
}
