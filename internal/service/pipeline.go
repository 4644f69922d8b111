package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tirematch/backend/internal/catalog"
	"github.com/tirematch/backend/internal/db"
	"github.com/tirematch/backend/internal/models"
	"github.com/tirematch/backend/internal/recommend"
)

// Recommendation sources.
const (
	SourceAI    = "ai"
	SourceRules = "rules"
)

// ErrNoInventory is the one terminal failure of the pipeline: neither the
// model path nor the rule fallback produced anything to show.
var ErrNoInventory = errors.New("no inventory available for recommendations")

type Recommender struct {
	Catalog catalog.Client
	Engine  recommend.Engine
	Store   *db.Store
	Logger  zerolog.Logger
}

type Result struct {
	Products      []models.TireProduct `json:"products"`
	Source        string               `json:"source"`
	CatalogSource catalog.Source       `json:"catalog_source"`
}

// Recommend runs the full pipeline: fetch catalog, ask the engine, match
// candidates against inventory, and fall back to rule-based picks when the
// model path yields nothing. Engine errors never propagate to the caller.
func (r *Recommender) Recommend(ctx context.Context, query string) (Result, error) {
	start := time.Now()

	fetch := r.Catalog.Fetch(ctx)
	if fetch.Source == catalog.SourceFallback {
		r.Logger.Warn().Err(fetch.Err).Msg("serving recommendations from fallback catalog")
	}
	if len(fetch.Items) == 0 {
		return Result{}, ErrNoInventory
	}

	source := SourceAI
	candidates, latencyMs, err := r.Engine.Recommend(ctx, query, fetch.Items)
	if err != nil {
		r.Logger.Warn().Err(err).Int64("latency_ms", latencyMs).Msg("engine failed, using rule fallback")
		candidates = recommend.RuleFallback(fetch.Items)
		source = SourceRules
	}

	products := MatchCandidates(candidates, fetch.Items)
	if dropped := len(candidates) - len(products); dropped > 0 {
		r.Logger.Info().Int("dropped", dropped).Msg("candidates without inventory match")
	}

	if len(products) == 0 && source == SourceAI {
		candidates = recommend.RuleFallback(fetch.Items)
		source = SourceRules
		products = MatchCandidates(candidates, fetch.Items)
	}

	result := Result{
		Products:      products,
		Source:        source,
		CatalogSource: fetch.Source,
	}
	r.logRun(ctx, query, result, time.Since(start).Milliseconds())
	return result, nil
}

func (r *Recommender) logRun(ctx context.Context, query string, res Result, latencyMs int64) {
	if r.Store == nil {
		return
	}
	entry := db.RunEntry{
		Query:         query,
		Source:        res.Source,
		CatalogSource: string(res.CatalogSource),
		Products:      len(res.Products),
		LatencyMs:     latencyMs,
	}
	if err := r.Store.LogRun(ctx, entry); err != nil {
		r.Logger.Error().Err(err).Msg("failed to log recommendation run")
	}
}
