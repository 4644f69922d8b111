// Package checkout turns selected line items into a Shopify cart.
//
// Cart creation falls back to a deterministic permalink on any failure
// class, so the caller always receives a usable URL and never an error.
// The Result Source tag records which path produced the URL.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const variantGIDPrefix = "gid://shopify/ProductVariant/"

const cartCreateMutation = `mutation cartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart {
      id
      checkoutUrl
    }
    userErrors {
      field
      message
    }
  }
}`

type Line struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// Meta carries the analytics attributes attached to the cart.
type Meta struct {
	Installation bool
	TireBrand    string
	TireModel    string
}

type Result struct {
	URL    string `json:"url"`
	Source string `json:"source"` // cart_api | permalink
	CartID string `json:"cart_id,omitempty"`
}

type Builder struct {
	Domain     string
	Token      string
	APIVersion string
	HTTP       *http.Client
	Logger     zerolog.Logger
}

type cartAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type cartLine struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

type cartCreateResponse struct {
	Data struct {
		CartCreate struct {
			Cart struct {
				ID          string `json:"id"`
				CheckoutURL string `json:"checkoutUrl"`
			} `json:"cart"`
			UserErrors []struct {
				Message string `json:"message"`
			} `json:"userErrors"`
		} `json:"cartCreate"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Build creates a cart for the given lines and returns its checkout URL,
// or the permalink fallback when the cart API cannot deliver one.
func (b *Builder) Build(ctx context.Context, lines []Line, meta Meta) Result {
	url, cartID, err := b.createCart(ctx, lines, meta)
	if err != nil {
		b.Logger.Warn().Err(err).Msg("cart create failed, using permalink fallback")
		return Result{URL: b.Permalink(lines), Source: "permalink"}
	}
	return Result{URL: url, Source: "cart_api", CartID: cartID}
}

func (b *Builder) createCart(ctx context.Context, lines []Line, meta Meta) (string, string, error) {
	if b.Domain == "" || b.Token == "" {
		return "", "", fmt.Errorf("storefront credentials not configured")
	}
	endpoint := fmt.Sprintf("https://%s/api/%s/graphql.json", b.Domain, b.APIVersion)
	return b.createCartAt(ctx, endpoint, lines, meta)
}

func (b *Builder) createCartAt(ctx context.Context, endpoint string, lines []Line, meta Meta) (string, string, error) {
	if b.HTTP == nil {
		b.HTTP = &http.Client{Timeout: 15 * time.Second}
	}

	cartLines := make([]cartLine, 0, len(lines))
	for _, l := range lines {
		cartLines = append(cartLines, cartLine{
			MerchandiseID: NormalizeVariantGID(l.VariantID),
			Quantity:      l.Quantity,
		})
	}
	attributes := []cartAttribute{{Key: "_source", Value: "ai_tire_finder"}}
	if meta.Installation {
		attributes = append(attributes,
			cartAttribute{Key: "_installation", Value: "true"},
			cartAttribute{Key: "_tire_brand", Value: meta.TireBrand},
			cartAttribute{Key: "_tire_model", Value: meta.TireModel},
		)
	}

	payload := map[string]any{
		"query": cartCreateMutation,
		"variables": map[string]any{
			"input": map[string]any{
				"lines":      cartLines,
				"attributes": attributes,
			},
		},
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", b.Token)

	resp, err := b.HTTP.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("cart api http error: %s", resp.Status)
	}

	var r cartCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", "", err
	}
	if len(r.Errors) > 0 {
		return "", "", fmt.Errorf("cart api graphql error: %s", r.Errors[0].Message)
	}
	if len(r.Data.CartCreate.UserErrors) > 0 {
		return "", "", fmt.Errorf("cart api user error: %s", r.Data.CartCreate.UserErrors[0].Message)
	}
	if r.Data.CartCreate.Cart.CheckoutURL == "" {
		return "", "", fmt.Errorf("cart api returned no checkout url")
	}
	return r.Data.CartCreate.Cart.CheckoutURL, r.Data.CartCreate.Cart.ID, nil
}

// Permalink builds the deterministic cart URL from numericVariantId:quantity
// pairs. It needs no API call and cannot fail.
func (b *Builder) Permalink(lines []Line) string {
	pairs := make([]string, 0, len(lines))
	for _, l := range lines {
		pairs = append(pairs, fmt.Sprintf("%s:%d", NumericVariantID(l.VariantID), l.Quantity))
	}
	return fmt.Sprintf("https://%s/cart/%s?ref=ai_match_v2", b.Domain, strings.Join(pairs, ","))
}

// NormalizeVariantGID converts a bare numeric variant id to the platform's
// canonical global-id form; already-canonical ids pass through.
func NormalizeVariantGID(id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return variantGIDPrefix + id
}

// NumericVariantID extracts the trailing numeric id from a variant gid.
func NumericVariantID(id string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}
