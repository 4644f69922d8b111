package catalog

import "github.com/tirematch/backend/internal/models"

// FallbackItems is the static catalog used when the storefront cannot be
// reached. It keeps both winter and all-season entries so the rule-based
// recommendation fallback always has something in each bucket.
func FallbackItems() []models.CatalogItem {
	return []models.CatalogItem{
		{
			ID:               "gid://shopify/Product/9200001",
			VariantID:        "gid://shopify/ProductVariant/44000001",
			Title:            "Michelin Defender LTX M/S",
			Brand:            "Michelin",
			Model:            "Defender LTX M/S",
			Price:            189.99,
			Currency:         "USD",
			Tags:             []string{"tire", "all-season", "touring", "suv"},
			AvailableForSale: true,
			Stock:            24,
		},
		{
			ID:               "gid://shopify/Product/9200002",
			VariantID:        "gid://shopify/ProductVariant/44000002",
			Title:            "Bridgestone Blizzak WS90",
			Brand:            "Bridgestone",
			Model:            "Blizzak WS90",
			Price:            164.50,
			Currency:         "USD",
			Tags:             []string{"tire", "winter", "studless"},
			AvailableForSale: true,
			Stock:            16,
		},
		{
			ID:               "gid://shopify/Product/9200003",
			VariantID:        "gid://shopify/ProductVariant/44000003",
			Title:            "Goodyear Assurance WeatherReady",
			Brand:            "Goodyear",
			Model:            "Assurance WeatherReady",
			Price:            172.00,
			Currency:         "USD",
			Tags:             []string{"tire", "all-season", "all-weather"},
			AvailableForSale: true,
			Stock:            30,
		},
		{
			ID:               "gid://shopify/Product/9200004",
			VariantID:        "gid://shopify/ProductVariant/44000004",
			Title:            "Continental VikingContact 7",
			Brand:            "Continental",
			Model:            "VikingContact 7",
			Price:            158.75,
			Currency:         "USD",
			Tags:             []string{"tire", "winter", "nordic"},
			AvailableForSale: true,
			Stock:            12,
		},
		{
			ID:               "gid://shopify/Product/9200005",
			VariantID:        "gid://shopify/ProductVariant/44000005",
			Title:            "Pirelli Scorpion AS Plus 3",
			Brand:            "Pirelli",
			Model:            "Scorpion AS Plus 3",
			Price:            196.40,
			Currency:         "USD",
			Tags:             []string{"tire", "all-season", "crossover"},
			AvailableForSale: true,
			Stock:            18,
		},
	}
}
