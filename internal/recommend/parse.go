package recommend

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/tirematch/backend/internal/models"
)

// ErrNoCandidates means the model response yielded nothing usable after all
// repair tiers and validation; the caller should use the rule fallback.
var ErrNoCandidates = errors.New("no usable candidates in model response")

const (
	defaultSeason     = "all-season"
	defaultMatchScore = 75
	defaultPriceRange = "$$"
)

type rawCandidate struct {
	Brand      string   `json:"brand"`
	Model      string   `json:"model"`
	Size       string   `json:"size"`
	Season     string   `json:"season"`
	PriceRange string   `json:"priceRange"`
	MatchScore float64  `json:"matchScore"`
	Reason     string   `json:"reason"`
	Features   []string `json:"features"`
}

var (
	fenceRe       = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	trailingComma = regexp.MustCompile(`,\s*([\]}])`)
	unquotedKeyRe = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// ParseCandidates extracts tire candidates from a model response. Tiers, in
// order, first success wins:
//  1. parse the raw text as JSON
//  2. strip code fences, extract the first top-level [...] or {...}, parse
//  3. repair the extracted text (trailing commas, bare keys), parse
//
// Candidates missing both brand and model are dropped; missing optional
// fields are defaulted. An empty list after filtering is ErrNoCandidates.
func ParseCandidates(raw string) ([]models.Candidate, error) {
	attempts := []string{raw}
	if extracted := extractJSON(stripFences(raw)); extracted != "" {
		attempts = append(attempts, extracted, repairJSON(extracted))
	}

	for _, attempt := range attempts {
		rcs, err := decodeCandidates(attempt)
		if err != nil {
			continue
		}
		cands := validateCandidates(rcs)
		if len(cands) == 0 {
			return nil, ErrNoCandidates
		}
		return cands, nil
	}
	return nil, ErrNoCandidates
}

func decodeCandidates(s string) ([]rawCandidate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty input")
	}
	var list []rawCandidate
	if err := json.Unmarshal([]byte(s), &list); err == nil {
		return list, nil
	}
	var single rawCandidate
	if err := json.Unmarshal([]byte(s), &single); err == nil {
		return []rawCandidate{single}, nil
	}
	return nil, errors.New("not valid candidate JSON")
}

func validateCandidates(rcs []rawCandidate) []models.Candidate {
	out := make([]models.Candidate, 0, len(rcs))
	for _, rc := range rcs {
		if strings.TrimSpace(rc.Brand) == "" && strings.TrimSpace(rc.Model) == "" {
			continue
		}
		c := models.Candidate{
			Brand:      strings.TrimSpace(rc.Brand),
			Model:      strings.TrimSpace(rc.Model),
			Size:       strings.TrimSpace(rc.Size),
			Season:     strings.TrimSpace(rc.Season),
			PriceRange: strings.TrimSpace(rc.PriceRange),
			MatchScore: int(rc.MatchScore),
			Reason:     strings.TrimSpace(rc.Reason),
			Features:   rc.Features,
		}
		if c.Season == "" {
			c.Season = defaultSeason
		}
		if c.MatchScore <= 0 {
			c.MatchScore = defaultMatchScore
		}
		if c.PriceRange == "" {
			c.PriceRange = defaultPriceRange
		}
		if c.Features == nil {
			c.Features = []string{}
		}
		out = append(out, c)
	}
	return out
}

func stripFences(s string) string {
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// extractJSON returns the first top-level [...] substring, falling back to
// the first {...} when no array is present.
func extractJSON(s string) string {
	for _, pair := range [][2]byte{{'[', ']'}, {'{', '}'}} {
		start := strings.IndexByte(s, pair[0])
		end := strings.LastIndexByte(s, pair[1])
		if start >= 0 && end > start {
			return s[start : end+1]
		}
	}
	return ""
}

func repairJSON(s string) string {
	s = trailingComma.ReplaceAllString(s, "$1")
	s = unquotedKeyRe.ReplaceAllString(s, `$1"$2":`)
	return s
}
