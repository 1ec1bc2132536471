package nudge

import (
	"context"
	"modshop/domain"
	"modshop/pkg/logger"
)

const (
	fallbackName     = "Budget-Friendly Alternative"
	alreadyCheapest  = "Already the cheapest option"
	fallbackFloor    = 5.0
	fallbackDiscount = 0.7
)

// CheaperAlternative resolves a less expensive in-category product for the
// given cart item. It never fails: an unclassifiable title, an empty
// category, or any catalog error degrades to a synthetic budget suggestion.
func (s *NudgeService) CheaperAlternative(ctx context.Context, item domain.CartItem) domain.AlternativeSuggestion {
	category := item.Category
	if category == "" {
		if c, ok := classifyCategory(item.Title); ok {
			category = c
		}
	}

	if category == "" {
		return fallbackSuggestion(item)
	}

	qctx, cancel := context.WithTimeout(ctx, s.catalogTimeout)
	defer cancel()

	product, err := s.catalog.CheapestInCategory(qctx, category, item.Slug)
	if err != nil {
		logger.Error("cheapest-in-category lookup failed",
			"category", category, "exclude", item.Slug, "error", err)
		return fallbackSuggestion(item)
	}
	if product == nil {
		return fallbackSuggestion(item)
	}

	if product.Price < item.Price {
		return domain.AlternativeSuggestion{
			Name:        product.Title,
			Price:       product.Price,
			Slug:        product.Slug,
			Image:       product.Image,
			Category:    product.Category,
			Description: product.Description,
		}
	}

	// The item itself is already the cheapest in its category (or tied).
	return domain.AlternativeSuggestion{
		Name:              alreadyCheapest,
		Price:             item.Price,
		Category:          category,
		IsAlreadyCheapest: true,
	}
}

// fallbackSuggestion is a synthetic 30%-cheaper value, floored at 5
// currency units.
func fallbackSuggestion(item domain.CartItem) domain.AlternativeSuggestion {
	price := item.Price * fallbackDiscount
	if price < fallbackFloor {
		price = fallbackFloor
	}
	return domain.AlternativeSuggestion{
		Name:  fallbackName,
		Price: price,
	}
}
