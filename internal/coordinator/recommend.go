package coordinator

import (
	"sort"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/domain/entity"
)

const placeholderImage = "/api/placeholder/200/200"

// PurchasedCategories returns the distinct, sorted product types found in
// the order history.
func PurchasedCategories(orders []entity.Order) []string {
	seen := make(map[string]struct{})
	for _, order := range orders {
		for _, item := range order.LineItems {
			if item.ProductType != "" {
				seen[item.ProductType] = struct{}{}
			}
		}
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// PlaceholderRecommendations returns the two fixed products shown with every
// successful lookup. They do not depend on purchase history.
// TODO: rank catalogue products by PurchasedCategories once a product feed is wired in.
func PlaceholderRecommendations() []entity.Recommendation {
	return []entity.Recommendation{
		{ID: 1, Name: "New Product 1", Price: "$29.99", Category: "Category A", Image: placeholderImage},
		{ID: 2, Name: "New Product 2", Price: "$39.99", Category: "Category B", Image: placeholderImage},
	}
}
