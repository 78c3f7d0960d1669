// ABOUTME: Contact extraction as a sequence of fill-if-empty enrichment passes
// ABOUTME: Structured data first, then keyword, link, and regex heuristics
package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/harper/menuchat/internal/models"
)

var (
	addressKeywords = []string{"address", "location", "find us", "directions"}
	phoneKeywords   = []string{"phone", "call", "tel", "contact"}
	hoursKeywords   = []string{"hours", "open", "opening", "time"}

	streetPattern  = regexp.MustCompile(`(?i)\d+.*(?:street|st\.|avenue|ave\.|road|rd\.|blvd|boulevard)`)
	phonePattern   = regexp.MustCompile(`(?:\+\d{1,2}\s)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	weekdayPattern = regexp.MustCompile(`(?i)monday|tuesday|wednesday|thursday|friday|saturday|sunday`)
)

// ContactPass produces candidate values; only sentinel fields get written
type ContactPass func(doc *goquery.Document) models.ContactInfo

// ContactExtractor merges its passes in order
type ContactExtractor struct {
	passes []ContactPass
}

// NewContactExtractor creates an extractor with the given passes
func NewContactExtractor(passes ...ContactPass) *ContactExtractor {
	return &ContactExtractor{passes: passes}
}

// NewGenericContactExtractor prefers JSON-LD and falls back to heuristics
func NewGenericContactExtractor() *ContactExtractor {
	return NewContactExtractor(
		extractStructured,
		extractAddress,
		extractPhone,
		extractEmail,
		extractHours,
	)
}

// Extract runs every pass until all fields are found
func (e *ContactExtractor) Extract(doc *goquery.Document) models.ContactInfo {
	info := models.NewContactInfo()
	for _, pass := range e.passes {
		if info.Complete() {
			break
		}
		info.Fill(pass(doc))
	}
	return info
}

// findKeywordText returns the trimmed text of the first element, among tags
// whose own string mentions a keyword, that satisfies accept. Keywords are
// tried in order.
func findKeywordText(doc *goquery.Document, tags string, keywords []string, accept func(string) (string, bool)) (string, bool) {
	elements := doc.Find(tags)
	for _, kw := range keywords {
		pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(kw))
		var found string
		elements.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			str, ok := selectionOwnString(s)
			if !ok || !pattern.MatchString(str) {
				return true
			}
			if v, ok := accept(trimmedText(s)); ok {
				found = v
				return false
			}
			return true
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}

func extractAddress(doc *goquery.Document) models.ContactInfo {
	info := models.NewContactInfo()
	if v, ok := findKeywordText(doc, "p, span, div", addressKeywords, func(text string) (string, bool) {
		return text, streetPattern.MatchString(text)
	}); ok {
		info.Address = v
	}
	return info
}

// extractPhone matches phone numbers near phone keywords; a tel: link, when
// present, replaces the keyword match
func extractPhone(doc *goquery.Document) models.ContactInfo {
	info := models.NewContactInfo()
	if v, ok := findKeywordText(doc, "p, span, div, a", phoneKeywords, func(text string) (string, bool) {
		m := phonePattern.FindString(text)
		return m, m != ""
	}); ok {
		info.Phone = v
	}

	if href, ok := doc.Find(`a[href^="tel:"]`).First().Attr("href"); ok {
		if tel := strings.TrimPrefix(href, "tel:"); tel != "" {
			info.Phone = tel
		}
	}
	return info
}

func extractEmail(doc *goquery.Document) models.ContactInfo {
	info := models.NewContactInfo()
	if href, ok := doc.Find(`a[href^="mailto:"]`).First().Attr("href"); ok {
		if email := strings.TrimPrefix(href, "mailto:"); email != "" {
			info.Email = email
		}
	}
	return info
}

func extractHours(doc *goquery.Document) models.ContactInfo {
	info := models.NewContactInfo()
	if v, ok := findKeywordText(doc, "p, div, span", hoursKeywords, func(text string) (string, bool) {
		return text, weekdayPattern.MatchString(text)
	}); ok {
		info.Hours = v
	}
	return info
}
