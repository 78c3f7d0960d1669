// ABOUTME: DOM helpers shared by the menu and contact extractors
// ABOUTME: Own-string matching, tag checks, and stripped text joining
package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ownString returns the text an element holds when its content is a single
// string, descending through single-child elements. Elements with several
// children (including whitespace text nodes) have no own string.
func ownString(n *html.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	child := n.FirstChild
	if child == nil || child.NextSibling != nil {
		return "", false
	}
	switch child.Type {
	case html.TextNode, html.CommentNode:
		return child.Data, true
	case html.ElementNode:
		return ownString(child)
	}
	return "", false
}

// selectionOwnString is ownString for the first node of a selection
func selectionOwnString(s *goquery.Selection) (string, bool) {
	if s.Length() == 0 {
		return "", false
	}
	return ownString(s.Get(0))
}

// tagName returns the lower-case element name of the first node
func tagName(s *goquery.Selection) string {
	return strings.ToLower(goquery.NodeName(s))
}

func isHeading(s *goquery.Selection) bool {
	switch tagName(s) {
	case "h2", "h3", "h4":
		return true
	}
	return false
}

// attrContainsFold reports whether the attribute value contains sub, ignoring case
func attrContainsFold(s *goquery.Selection, attr, sub string) bool {
	v, ok := s.Attr(attr)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(v), strings.ToLower(sub))
}

// strippedText joins every non-blank text node under s, each trimmed, with sep
func strippedText(s *goquery.Selection, sep string) string {
	var parts []string
	for _, n := range s.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, sep)
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

func trimmedText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}
