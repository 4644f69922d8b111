package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tirematch/backend/internal/models"
)

const productsQuery = `{
  products(first: 50, query: "product_type:Tire OR tag:tire") {
    edges {
      node {
        id
        title
        tags
        totalInventory
        images(first: 1) {
          edges { node { url } }
        }
        variants(first: 1) {
          edges {
            node {
              id
              availableForSale
              price { amount currencyCode }
            }
          }
        }
      }
    }
  }
}`

type ShopifyClient struct {
	Domain     string
	Token      string
	APIVersion string
	Client     *http.Client
	Logger     zerolog.Logger
}

type graphqlRequest struct {
	Query string `json:"query"`
}

type productsResponse struct {
	Data struct {
		Products struct {
			Edges []struct {
				Node struct {
					ID             string   `json:"id"`
					Title          string   `json:"title"`
					Tags           []string `json:"tags"`
					TotalInventory int      `json:"totalInventory"`
					Images         struct {
						Edges []struct {
							Node struct {
								URL string `json:"url"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"images"`
					Variants struct {
						Edges []struct {
							Node struct {
								ID               string `json:"id"`
								AvailableForSale bool   `json:"availableForSale"`
								Price            struct {
									Amount       string `json:"amount"`
									CurrencyCode string `json:"currencyCode"`
								} `json:"price"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"variants"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Fetch returns the live tire catalog, or the static fallback list when the
// storefront is unreachable, errors, or returns no products.
func (s *ShopifyClient) Fetch(ctx context.Context) FetchResult {
	items, err := s.fetchLive(ctx)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("catalog fetch failed, using fallback list")
		return FetchResult{Items: FallbackItems(), Source: SourceFallback, Err: err}
	}
	if len(items) == 0 {
		s.Logger.Warn().Msg("catalog returned no products, using fallback list")
		return FetchResult{Items: FallbackItems(), Source: SourceFallback}
	}
	return FetchResult{Items: items, Source: SourceLive}
}

func (s *ShopifyClient) fetchLive(ctx context.Context) ([]models.CatalogItem, error) {
	if s.Domain == "" || s.Token == "" {
		return nil, fmt.Errorf("storefront credentials not configured")
	}
	endpoint := fmt.Sprintf("https://%s/api/%s/graphql.json", s.Domain, s.APIVersion)
	return s.fetchLiveAt(ctx, endpoint)
}

func (s *ShopifyClient) fetchLiveAt(ctx context.Context, endpoint string) ([]models.CatalogItem, error) {
	if s.Client == nil {
		s.Client = &http.Client{Timeout: 15 * time.Second}
	}

	b, _ := json.Marshal(graphqlRequest{Query: productsQuery})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", s.Token)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("storefront http error: %s", resp.Status)
	}

	var r productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, err
	}
	if len(r.Errors) > 0 {
		return nil, fmt.Errorf("storefront graphql error: %s", r.Errors[0].Message)
	}

	items := make([]models.CatalogItem, 0, len(r.Data.Products.Edges))
	for _, edge := range r.Data.Products.Edges {
		node := edge.Node
		if len(node.Variants.Edges) == 0 {
			continue
		}
		variant := node.Variants.Edges[0].Node
		price, _ := strconv.ParseFloat(variant.Price.Amount, 64)
		brand, model := SplitTitle(node.Title)

		item := models.CatalogItem{
			ID:               node.ID,
			VariantID:        variant.ID,
			Title:            node.Title,
			Brand:            brand,
			Model:            model,
			Price:            price,
			Currency:         variant.Price.CurrencyCode,
			Tags:             node.Tags,
			AvailableForSale: variant.AvailableForSale,
			Stock:            node.TotalInventory,
		}
		if len(node.Images.Edges) > 0 {
			item.ImageURL = node.Images.Edges[0].Node.URL
		}
		items = append(items, item)
	}
	return items, nil
}
