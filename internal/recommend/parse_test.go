package recommend

import (
	"errors"
	"testing"
)

func TestParseCandidatesDirectJSON(t *testing.T) {
	raw := `[{"brand":"X","model":"Y"}]`
	cands, err := ParseCandidates(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	c := cands[0]
	if c.Brand != "X" || c.Model != "Y" {
		t.Fatalf("unexpected candidate: %+v", c)
	}
	if c.Season != "all-season" || c.MatchScore != 75 || c.PriceRange != "$$" {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.Features == nil || len(c.Features) != 0 {
		t.Fatalf("expected empty features slice, got %#v", c.Features)
	}
}

func TestParseCandidatesFencedJSON(t *testing.T) {
	raw := "Here you go:\n```json\n[{\"brand\":\"Michelin\",\"model\":\"Pilot Sport 4\",\"matchScore\":91}]\n```\nHope that helps!"
	cands, err := ParseCandidates(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 1 || cands[0].MatchScore != 91 {
		t.Fatalf("unexpected candidates: %+v", cands)
	}
}

func TestParseCandidatesRepairedJSON(t *testing.T) {
	// Trailing comma and bare keys need the third tier.
	raw := `[{brand: "Goodyear", model: "Eagle F1",}]`
	cands, err := ParseCandidates(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 1 || cands[0].Brand != "Goodyear" {
		t.Fatalf("unexpected candidates: %+v", cands)
	}
}

func TestParseCandidatesSingleObject(t *testing.T) {
	cands, err := ParseCandidates(`{"brand":"Pirelli","model":"P Zero"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 1 || cands[0].Brand != "Pirelli" {
		t.Fatalf("unexpected candidates: %+v", cands)
	}
}

func TestParseCandidatesDropsBrandlessModelless(t *testing.T) {
	raw := `[{"season":"winter"},{"brand":"Nokian","model":"Hakkapeliitta"}]`
	cands, err := ParseCandidates(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 1 || cands[0].Brand != "Nokian" {
		t.Fatalf("expected only the Nokian candidate, got %+v", cands)
	}
}

func TestParseCandidatesUnrepairable(t *testing.T) {
	for _, raw := range []string{"", "total garbage", "[{{{", `[]`, `[{"season":"winter"}]`} {
		if _, err := ParseCandidates(raw); !errors.Is(err, ErrNoCandidates) {
			t.Fatalf("input %q: expected ErrNoCandidates, got %v", raw, err)
		}
	}
}
