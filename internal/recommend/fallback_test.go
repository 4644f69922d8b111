package recommend

import (
	"context"
	"testing"

	"github.com/tirematch/backend/internal/models"
)

func tagged(id, brand, model string, tags ...string) models.CatalogItem {
	return models.CatalogItem{ID: id, Brand: brand, Model: model, Tags: tags, AvailableForSale: true}
}

func TestRuleFallbackBucketsAndScores(t *testing.T) {
	items := []models.CatalogItem{
		tagged("1", "Bridgestone", "Blizzak WS90", "tire", "Winter"),
		tagged("2", "Michelin", "X-Ice Snow", "winter"),
		tagged("3", "Continental", "VikingContact 7", "winter"),
		tagged("4", "Goodyear", "Assurance", "all-season"),
		tagged("5", "Pirelli", "P4", "All-Season"),
		tagged("6", "Michelin", "Defender", "all-season"),
	}

	cands := RuleFallback(items)
	if len(cands) != 4 {
		t.Fatalf("expected 4 candidates (2 winter + 2 all-season), got %d", len(cands))
	}
	wantScores := []int{75, 65, 55, 45}
	for i, c := range cands {
		if c.MatchScore != wantScores[i] {
			t.Fatalf("candidate %d: expected score %d, got %d", i, wantScores[i], c.MatchScore)
		}
	}
	if cands[0].Season != "winter" || cands[2].Season != "all-season" {
		t.Fatalf("unexpected seasons: %+v", cands)
	}
	// Third winter tire must not appear.
	for _, c := range cands {
		if c.Model == "VikingContact 7" {
			t.Fatalf("winter bucket should be capped at 2")
		}
	}
}

func TestRuleFallbackShortBuckets(t *testing.T) {
	items := []models.CatalogItem{
		tagged("1", "Bridgestone", "Blizzak WS90", "winter"),
	}
	cands := RuleFallback(items)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].MatchScore != 75 {
		t.Fatalf("expected score 75, got %d", cands[0].MatchScore)
	}
}

func TestRuleFallbackEmptyCatalog(t *testing.T) {
	if cands := RuleFallback(nil); len(cands) != 0 {
		t.Fatalf("expected no candidates, got %d", len(cands))
	}
}

func TestMockEngineDeterministic(t *testing.T) {
	items := []models.CatalogItem{
		tagged("1", "Michelin", "Defender", "all-season"),
		tagged("2", "Bridgestone", "Blizzak", "winter"),
		tagged("3", "Goodyear", "Eagle", "performance"),
		tagged("4", "Pirelli", "P Zero", "summer"),
	}
	engine := MockEngine{ModelVersion: "mock-v1"}
	a, _, err := engine.Recommend(context.Background(), "quiet highway tires", items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _, err := engine.Recommend(context.Background(), "quiet highway tires", items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("expected 3 candidates, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Brand != b[i].Brand || a[i].Model != b[i].Model {
			t.Fatalf("expected deterministic output, got %+v vs %+v", a[i], b[i])
		}
	}
}
