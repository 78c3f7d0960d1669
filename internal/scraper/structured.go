// ABOUTME: JSON-LD business listing extraction
// ABOUTME: Reads address, telephone, and opening hours from Restaurant/LocalBusiness blocks
package scraper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/harper/menuchat/internal/models"
)

var businessTypes = map[string]bool{
	"Restaurant":    true,
	"LocalBusiness": true,
}

// extractStructured reads every JSON-LD script on the page. The first
// business block to supply a field wins; malformed blocks are skipped.
func extractStructured(doc *goquery.Document) models.ContactInfo {
	info := models.NewContactInfo()
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var data interface{}
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return
		}
		for _, node := range businessNodes(data) {
			info.Fill(contactFromBusiness(node))
		}
	})
	return info
}

// businessNodes returns the business-typed objects of a JSON-LD document,
// looking at top-level objects, top-level arrays, and @graph members
func businessNodes(data interface{}) []map[string]interface{} {
	var nodes []map[string]interface{}
	switch v := data.(type) {
	case map[string]interface{}:
		if isBusiness(v) {
			nodes = append(nodes, v)
		}
		if graph, ok := v["@graph"].([]interface{}); ok {
			for _, member := range graph {
				if m, ok := member.(map[string]interface{}); ok && isBusiness(m) {
					nodes = append(nodes, m)
				}
			}
		}
	case []interface{}:
		for _, elem := range v {
			nodes = append(nodes, businessNodes(elem)...)
		}
	}
	return nodes
}

func isBusiness(m map[string]interface{}) bool {
	switch t := m["@type"].(type) {
	case string:
		return businessTypes[t]
	case []interface{}:
		for _, v := range t {
			if s, ok := v.(string); ok && businessTypes[s] {
				return true
			}
		}
	}
	return false
}

func contactFromBusiness(m map[string]interface{}) models.ContactInfo {
	info := models.NewContactInfo()

	switch addr := m["address"].(type) {
	case map[string]interface{}:
		formatted := fmt.Sprintf("%s, %s, %s %s",
			jsonString(addr["streetAddress"]),
			jsonString(addr["addressLocality"]),
			jsonString(addr["addressRegion"]),
			jsonString(addr["postalCode"]))
		if strings.Trim(formatted, ", ") != "" {
			info.Address = formatted
		}
	case string:
		if strings.TrimSpace(addr) != "" {
			info.Address = addr
		}
	}

	if phone := jsonString(m["telephone"]); phone != "" {
		info.Phone = phone
	}

	if hours := formatOpeningHours(m); hours != "" {
		info.Hours = hours
	}

	return info
}

// formatOpeningHours renders openingHoursSpecification as "day: opens-closes"
// entries, falling back to the plain openingHours property
func formatOpeningHours(m map[string]interface{}) string {
	var specs []interface{}
	switch v := m["openingHoursSpecification"].(type) {
	case []interface{}:
		specs = v
	case map[string]interface{}:
		specs = []interface{}{v}
	}

	var parts []string
	for _, s := range specs {
		spec, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s-%s",
			formatDays(spec["dayOfWeek"]),
			jsonString(spec["opens"]),
			jsonString(spec["closes"])))
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}

	switch v := m["openingHours"].(type) {
	case string:
		return v
	case []interface{}:
		for _, h := range v {
			if s := jsonString(h); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// formatDays accepts a day name, a schema.org day URL, or a list of either
func formatDays(v interface{}) string {
	switch d := v.(type) {
	case string:
		return shortDay(d)
	case []interface{}:
		var days []string
		for _, e := range d {
			if s := jsonString(e); s != "" {
				days = append(days, shortDay(s))
			}
		}
		return strings.Join(days, "/")
	}
	return ""
}

func shortDay(d string) string {
	if i := strings.LastIndex(d, "/"); i >= 0 {
		return d[i+1:]
	}
	return d
}

func jsonString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}
