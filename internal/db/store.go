// Package db is an optional pgx-backed log of recommendation runs. The
// service runs fully without it; a nil *Store disables logging.
package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Expected schema:
//
//	CREATE TABLE recommendation_runs (
//	    id BIGSERIAL PRIMARY KEY,
//	    query TEXT NOT NULL,
//	    source TEXT NOT NULL,
//	    catalog_source TEXT NOT NULL,
//	    products INT NOT NULL,
//	    latency_ms BIGINT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// RunEntry records one recommendation request and which path served it.
type RunEntry struct {
	Query         string `json:"query"`
	Source        string `json:"source"`
	CatalogSource string `json:"catalog_source"`
	Products      int    `json:"products"`
	LatencyMs     int64  `json:"latency_ms"`
}

func (s *Store) LogRun(ctx context.Context, e RunEntry) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO recommendation_runs (query, source, catalog_source, products, latency_ms) VALUES ($1, $2, $3, $4, $5)`,
		e.Query, e.Source, e.CatalogSource, e.Products, e.LatencyMs)
	return err
}

func (s *Store) RecentRuns(ctx context.Context, limit int) ([]map[string]any, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, query, source, catalog_source, products, latency_ms, created_at
		 FROM recommendation_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []map[string]any{}
	for rows.Next() {
		var (
			id        int64
			query     string
			source    string
			catSource string
			products  int
			latencyMs int64
			createdAt time.Time
		)
		if err := rows.Scan(&id, &query, &source, &catSource, &products, &latencyMs, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, map[string]any{
			"id":             id,
			"query":          query,
			"source":         source,
			"catalog_source": catSource,
			"products":       products,
			"latency_ms":     latencyMs,
			"created_at":     createdAt,
		})
	}
	return out, rows.Err()
}
