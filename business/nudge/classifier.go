package nudge

import "strings"

// Keyword sets for the category fallback, checked in order; the first
// matching set wins when a title could match several.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"clothing", []string{"shirt", "tshirt", "polo", "jeans", "pants", "chino", "hoodie", "jacket", "fleece"}},
	{"video-games", []string{"game", "theft", "cyberpunk", "witcher", "doom", "red dead"}},
	{"books", []string{"book", "habits", "work", "guide", "atomic", "deep"}},
	{"household", []string{"lamp", "kitchen", "bottle", "scale", "container", "toilet"}},
}

// classifyCategory maps a free-text product title to a catalog category by
// case-insensitive substring match. Used only when the cart item carries no
// explicit category. Returns false when nothing matches.
func classifyCategory(title string) (string, bool) {
	lower := strings.ToLower(title)

	for _, set := range categoryKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.category, true
			}
		}
	}

	return "", false
}
