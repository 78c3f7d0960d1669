// ABOUTME: Menu item construction from matched text fragments
// ABOUTME: Price pattern matching, name cleaning, and dietary keyword tagging
package scraper

import (
	"regexp"
	"strings"

	"github.com/harper/menuchat/internal/models"
)

// DollarPrice matches $XX or $XX.XX
var DollarPrice = regexp.MustCompile(`\$\d+(?:\.\d{2})?`)

var (
	vegetarianKeywords = []string{"vegetarian", "veg", "plant-based", "meatless"}
	veganKeywords      = []string{"vegan"}
	glutenFreeKeywords = []string{"gluten-free", "gluten free", "gf"}
	spicyKeywords      = []string{"spicy", "hot", "chili"}
)

// buildItem turns a price-bearing text fragment into a MenuItem. The first
// price found becomes the item price and every price is stripped from the
// name. Returns false when the text holds no price.
func buildItem(text, section string, pattern *regexp.Regexp) (models.MenuItem, bool) {
	text = strings.TrimSpace(text)
	prices := pattern.FindAllString(text, -1)
	if len(prices) == 0 {
		return models.MenuItem{}, false
	}

	name := text
	for _, p := range prices {
		name = strings.TrimSpace(strings.ReplaceAll(name, p, ""))
	}

	item := models.MenuItem{
		Item:        name,
		Price:       prices[0],
		Description: text,
		Section:     section,
	}
	tagDietary(&item, text)
	return item, true
}

// tagDietary sets each flag independently from keyword containment
func tagDietary(item *models.MenuItem, text string) {
	lower := strings.ToLower(text)
	item.Vegetarian = containsAny(lower, vegetarianKeywords)
	item.Vegan = containsAny(lower, veganKeywords)
	item.GlutenFree = containsAny(lower, glutenFreeKeywords)
	item.Spicy = containsAny(lower, spicyKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
