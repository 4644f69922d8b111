// Package catalog fetches tire listings from the Shopify Storefront API.
//
// Read failures degrade to a built-in fallback list instead of propagating.
// The FetchResult Source tag tells callers which path produced the data, so
// an outage is distinguishable from a genuinely empty catalog.
package catalog

import (
	"context"
	"strings"

	"github.com/tirematch/backend/internal/models"
)

type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

type FetchResult struct {
	Items  []models.CatalogItem
	Source Source
	// Err is the upstream failure that forced the fallback; nil on live data.
	Err error
}

type Client interface {
	Fetch(ctx context.Context) FetchResult
}

// SplitTitle derives brand and model from a product title: the first
// whitespace-delimited token is the brand, the remainder the model.
func SplitTitle(title string) (brand, model string) {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
