package service

import (
	"testing"

	"github.com/tirematch/backend/internal/models"
)

func TestMatchCandidatesCaseInsensitive(t *testing.T) {
	items := []models.CatalogItem{
		{Brand: "Michelin", Title: "Michelin Defender LTX", AvailableForSale: true},
	}
	candidates := []models.Candidate{
		{Brand: "michelin", Model: "defender", MatchScore: 88},
	}

	products := MatchCandidates(candidates, items)
	if len(products) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(products))
	}
	if products[0].Brand != "Michelin" {
		t.Fatalf("expected catalog brand Michelin, got %s", products[0].Brand)
	}
	if products[0].MatchScore != 88 {
		t.Fatalf("expected candidate score carried over, got %d", products[0].MatchScore)
	}
}

func TestMatchCandidatesSkipsUnavailable(t *testing.T) {
	items := []models.CatalogItem{
		{Brand: "Michelin", Title: "Michelin Defender LTX", AvailableForSale: false},
	}
	candidates := []models.Candidate{{Brand: "Michelin", Model: "Defender"}}
	if products := MatchCandidates(candidates, items); len(products) != 0 {
		t.Fatalf("expected no matches for out-of-stock item, got %d", len(products))
	}
}

func TestMatchCandidatesNoMatchIsEmptyNotError(t *testing.T) {
	items := []models.CatalogItem{
		{Brand: "Goodyear", Title: "Goodyear Eagle F1", AvailableForSale: true},
	}
	candidates := []models.Candidate{
		{Brand: "Michelin", Model: "Defender"},
		{Brand: "Pirelli", Model: "P Zero"},
	}
	products := MatchCandidates(candidates, items)
	if products == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(products) != 0 {
		t.Fatalf("expected no matches, got %d", len(products))
	}
}

func TestMatchCandidatesBrandOnlyCandidate(t *testing.T) {
	items := []models.CatalogItem{
		{Brand: "Continental", Title: "Continental ExtremeContact DWS06", AvailableForSale: true},
	}
	candidates := []models.Candidate{{Brand: "Continental"}}
	if products := MatchCandidates(candidates, items); len(products) != 1 {
		t.Fatalf("expected brand-only candidate to match, got %d", len(products))
	}
}
