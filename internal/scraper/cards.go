// ABOUTME: Product-card profile for menus laid out as category sections of cards
// ABOUTME: Labelled rupee prices, lazy image URLs, and a contacts block
package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/harper/menuchat/internal/models"
)

const (
	unnamedItem   = "Unnamed Item"
	priceNotFound = "Price not found"
)

var (
	labelledPrice     = regexp.MustCompile(`(?i)(?:price|₹|Rs\.?)\s*([\d,]+)`)
	priceWord         = regexp.MustCompile(`(?i)price`)
	cardPhonePattern  = regexp.MustCompile(`\+?\d[\d\s-]{7,}`)
	categoryPrefix    = "Top Rated - "
	cardItemSelectors = "div.strip, div.item_version_2, div.list_home"
)

// NewCardMenuExtractor returns the single-strategy chain for product-card pages
func NewCardMenuExtractor() *MenuExtractor {
	return NewMenuExtractor(Strategy{Name: "product-cards", Extract: extractProductCards})
}

// NewCardContactExtractor reads JSON-LD first, then the contacts block
func NewCardContactExtractor() *ContactExtractor {
	return NewContactExtractor(extractStructured, extractCardContacts, extractEmail)
}

func extractProductCards(doc *goquery.Document) []models.MenuItem {
	var items []models.MenuItem
	doc.Find("section.product-area").Each(func(_ int, section *goquery.Selection) {
		header := section.Find("h2").First()
		if header.Length() == 0 {
			return
		}
		category := strings.Replace(strippedText(header, ""), categoryPrefix, "", 1)

		section.Find(cardItemSelectors).Each(func(_ int, card *goquery.Selection) {
			items = append(items, buildCardItem(card, category))
		})
	})
	return items
}

func buildCardItem(card *goquery.Selection, category string) models.MenuItem {
	name := unnamedItem
	for _, sel := range []string{"h3", "h4", "strong"} {
		if tag := card.Find(sel).First(); tag.Length() > 0 {
			name = strippedText(tag, "")
			break
		}
	}

	fullText := strippedText(card, " ")
	item := models.MenuItem{
		Item:        name,
		Price:       cardPrice(card),
		Description: fullText,
		Section:     category,
		ImageURL:    cardImage(card),
	}
	tagDietary(&item, fullText)
	return item
}

// cardPrice prefers an explicit price element and falls back to the card text
func cardPrice(card *goquery.Selection) string {
	priceTag := card.Find("li").FilterFunction(func(_ int, li *goquery.Selection) bool {
		str, ok := selectionOwnString(li)
		return ok && priceWord.MatchString(str)
	}).First()
	if priceTag.Length() == 0 {
		priceTag = card.Find("span").FilterFunction(func(_ int, span *goquery.Selection) bool {
			class, _ := span.Attr("class")
			return priceWord.MatchString(class)
		}).First()
	}

	text := card.Text()
	if priceTag.Length() > 0 {
		text = strippedText(priceTag, "")
	}
	if m := labelledPrice.FindStringSubmatch(text); m != nil {
		return "₹" + m[1]
	}
	return priceNotFound
}

func cardImage(card *goquery.Selection) string {
	img := card.Find("img").First()
	if img.Length() == 0 {
		return ""
	}
	var src string
	for _, attr := range []string{"data-src", "src", "data-lazy"} {
		if v, ok := img.Attr(attr); ok && v != "" {
			src = v
			break
		}
	}
	if strings.HasPrefix(src, "//") {
		src = "https:" + src
	}
	return src
}

// extractCardContacts joins every address and phone number the page lists
func extractCardContacts(doc *goquery.Document) models.ContactInfo {
	info := models.NewContactInfo()

	var addresses []string
	doc.Find("div#collapse_4 li").Each(func(_ int, li *goquery.Selection) {
		if t := strippedText(li, ""); t != "" {
			addresses = append(addresses, t)
		}
	})
	if len(addresses) > 0 {
		info.Address = strings.Join(addresses, "; ")
	}

	if block := doc.Find("div.contacts").First(); block.Length() > 0 {
		seen := map[string]bool{}
		var phones []string
		for _, p := range cardPhonePattern.FindAllString(block.Text(), -1) {
			p = strings.TrimSpace(p)
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			phones = append(phones, p)
		}
		if len(phones) > 0 {
			info.Phone = strings.Join(phones, "; ")
		}
	}

	return info
}
