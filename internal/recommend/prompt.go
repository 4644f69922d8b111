package recommend

import (
	"fmt"
	"strings"

	"github.com/tirematch/backend/internal/models"
)

// BuildPrompt embeds the customer request and a line-per-product catalog
// summary into a single instruction asking for a JSON array of candidates.
func BuildPrompt(query string, items []models.CatalogItem) string {
	var sb strings.Builder
	sb.WriteString("You are a tire fitment expert for an online tire store.\n")
	sb.WriteString("A customer described their need as:\n\n")
	sb.WriteString(strings.TrimSpace(query))
	sb.WriteString("\n\nCurrent inventory:\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- %s %s | tags: %s | $%.2f | stock: %d\n",
			item.Brand, item.Model, strings.Join(item.Tags, ","), item.Price, item.Stock))
	}
	sb.WriteString("\nRecommend up to 4 tires from this inventory. Respond with ONLY a JSON array, no prose, where each element is an object with keys: ")
	sb.WriteString(`"brand", "model", "size", "season", "priceRange", "matchScore" (0-100), "reason", "features" (array of strings).`)
	return sb.String()
}
