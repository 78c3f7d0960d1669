// ABOUTME: Menu item extraction as an ordered chain of heuristic strategies
// ABOUTME: Strategies share one accumulator and never deduplicate results
package scraper

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/harper/menuchat/internal/models"
)

const (
	// headingFallbackThreshold gates the heading strategy
	headingFallbackThreshold = 5
	headingSiblingLimit      = 10
	sectionSiblingLimit      = 15
)

var menuHeadingPattern = regexp.MustCompile(`(?i)menu|appetizer|entree|dessert|starter|main`)

// Strategy is one rule in the extraction chain
type Strategy struct {
	Name string
	// RunBelow, when positive, runs the strategy only while fewer than
	// RunBelow items have been accumulated by earlier strategies.
	RunBelow int
	Extract  func(doc *goquery.Document) []models.MenuItem
}

// MenuExtractor runs its strategies in order over a parsed page
type MenuExtractor struct {
	strategies []Strategy
}

// NewMenuExtractor creates an extractor with the given rule chain
func NewMenuExtractor(strategies ...Strategy) *MenuExtractor {
	return &MenuExtractor{strategies: strategies}
}

// NewGenericMenuExtractor returns the default three-strategy chain
func NewGenericMenuExtractor() *MenuExtractor {
	return NewMenuExtractor(
		Strategy{Name: "price-text", Extract: extractPriceText},
		Strategy{Name: "heading-anchored", RunBelow: headingFallbackThreshold, Extract: extractHeadingAnchored},
		Strategy{Name: "menu-sections", Extract: extractMenuSections},
	)
}

// Extract returns every item found, in strategy order. A page without
// priced elements yields an empty, non-nil slice.
func (e *MenuExtractor) Extract(doc *goquery.Document) []models.MenuItem {
	items := []models.MenuItem{}
	for _, s := range e.strategies {
		if s.RunBelow > 0 && len(items) >= s.RunBelow {
			continue
		}
		items = append(items, s.Extract(doc)...)
	}
	return items
}

// CountMenuContainers counts div/section elements whose class or id mentions "menu"
func CountMenuContainers(doc *goquery.Document) int {
	return doc.Find("div, section").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return attrContainsFold(s, "class", "menu") || attrContainsFold(s, "id", "menu")
	}).Length()
}

// extractPriceText collects every p/li/div whose own string carries a price.
// The scan is document-wide, which covers the menu containers as well.
func extractPriceText(doc *goquery.Document) []models.MenuItem {
	var items []models.MenuItem
	doc.Find("p, li, div").Each(func(_ int, s *goquery.Selection) {
		str, ok := selectionOwnString(s)
		if !ok || !DollarPrice.MatchString(str) {
			return
		}
		if item, ok := buildItem(s.Text(), "", DollarPrice); ok {
			items = append(items, item)
		}
	})
	return items
}

// extractHeadingAnchored scans the siblings after menu-like headings
func extractHeadingAnchored(doc *goquery.Document) []models.MenuItem {
	var items []models.MenuItem
	doc.Find("h2, h3, h4").Each(func(_ int, heading *goquery.Selection) {
		str, ok := selectionOwnString(heading)
		if !ok || !menuHeadingPattern.MatchString(str) {
			return
		}
		section := trimmedText(heading)

		seen := 0
		heading.NextAllFiltered("p, div, li, span").EachWithBreak(func(_ int, sib *goquery.Selection) bool {
			if seen >= headingSiblingLimit {
				return false
			}
			seen++
			if item, ok := buildItem(sib.Text(), section, DollarPrice); ok {
				items = append(items, item)
			}
			return true
		})
	})
	return items
}

// extractMenuSections walks the headings inside menu divs, reading the
// siblings of each heading until the next heading
func extractMenuSections(doc *goquery.Document) []models.MenuItem {
	var items []models.MenuItem
	doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return attrContainsFold(s, "class", "menu")
	}).Each(func(_ int, container *goquery.Selection) {
		container.Find("h2, h3, h4").Each(func(_ int, heading *goquery.Selection) {
			section := trimmedText(heading)

			seen := 0
			heading.NextAll().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
				if isHeading(sib) {
					return false
				}
				switch tagName(sib) {
				case "p", "div", "li":
				default:
					return true
				}
				if seen >= sectionSiblingLimit {
					return false
				}
				seen++
				if item, ok := buildItem(sib.Text(), section, DollarPrice); ok {
					items = append(items, item)
				}
				return true
			})
		})
	})
	return items
}
