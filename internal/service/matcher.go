package service

import (
	"strings"

	"github.com/tirematch/backend/internal/models"
)

// DefaultInstallFee is the per-tire professional installation charge applied
// when no installer has been chosen yet.
const DefaultInstallFee = 25.0

// MatchCandidates joins model-suggested candidates against real inventory.
// A candidate matches an item when the brands are equal (case-insensitive),
// the item title contains the candidate model as a case-insensitive
// substring, and the item is available for sale. Unmatched candidates are
// dropped; an empty result is a valid outcome the caller must handle.
func MatchCandidates(candidates []models.Candidate, items []models.CatalogItem) []models.TireProduct {
	out := make([]models.TireProduct, 0, len(candidates))
	for _, cand := range candidates {
		item, ok := findMatch(cand, items)
		if !ok {
			continue
		}
		features := cand.Features
		if features == nil {
			features = []string{}
		}
		out = append(out, models.TireProduct{
			CatalogItem: item,
			MatchScore:  cand.MatchScore,
			Season:      cand.Season,
			PriceRange:  cand.PriceRange,
			Features:    features,
			Reason:      cand.Reason,
			InstallFee:  DefaultInstallFee,
		})
	}
	return out
}

func findMatch(cand models.Candidate, items []models.CatalogItem) (models.CatalogItem, bool) {
	model := strings.ToLower(strings.TrimSpace(cand.Model))
	for _, item := range items {
		if !item.AvailableForSale {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(item.Brand), strings.TrimSpace(cand.Brand)) {
			continue
		}
		if model != "" && !strings.Contains(strings.ToLower(item.Title), model) {
			continue
		}
		return item, true
	}
	return models.CatalogItem{}, false
}
