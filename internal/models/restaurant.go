// ABOUTME: Restaurant record produced by the scraper and consumed by the knowledge base
// ABOUTME: Holds menu items, contact info, and the aggregates derived from them
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NotFound is the sentinel stored in string fields the scraper could not fill
const NotFound = "Not found"

// MenuItem is a single priced entry found on a restaurant page
type MenuItem struct {
	Item        string `json:"item"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Section     string `json:"section,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Vegetarian  bool   `json:"vegetarian"`
	Vegan       bool   `json:"vegan"`
	GlutenFree  bool   `json:"gluten_free"`
	Spicy       bool   `json:"spicy"`
}

// DietaryTags lists the flags set on the item, in a fixed order
func (m MenuItem) DietaryTags() []string {
	var tags []string
	if m.Vegetarian {
		tags = append(tags, "vegetarian")
	}
	if m.Vegan {
		tags = append(tags, "vegan")
	}
	if m.GlutenFree {
		tags = append(tags, "gluten-free")
	}
	if m.Spicy {
		tags = append(tags, "spicy")
	}
	return tags
}

// ContactInfo holds contact details; unknown fields keep the NotFound sentinel
type ContactInfo struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Hours   string `json:"hours"`
}

// NewContactInfo returns a ContactInfo with every field at the sentinel
func NewContactInfo() ContactInfo {
	return ContactInfo{
		Address: NotFound,
		Phone:   NotFound,
		Email:   NotFound,
		Hours:   NotFound,
	}
}

// HasAddressOrPhone reports whether either primary contact field was found
func (c ContactInfo) HasAddressOrPhone() bool {
	return IsFound(c.Address) || IsFound(c.Phone)
}

// Fill copies every field of other into c that c is still missing.
// Fields already found in c are never overwritten.
func (c *ContactInfo) Fill(other ContactInfo) {
	fillIfMissing(&c.Address, other.Address)
	fillIfMissing(&c.Phone, other.Phone)
	fillIfMissing(&c.Email, other.Email)
	fillIfMissing(&c.Hours, other.Hours)
}

// Complete reports whether no field is left at the sentinel
func (c ContactInfo) Complete() bool {
	return IsFound(c.Address) && IsFound(c.Phone) && IsFound(c.Email) && IsFound(c.Hours)
}

// IsFound reports whether a field holds a real value
func IsFound(v string) bool {
	return v != "" && v != NotFound
}

func fillIfMissing(dst *string, v string) {
	if !IsFound(*dst) && IsFound(v) {
		*dst = v
	}
}

// PriceRange is the min/max over parsable menu prices
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DietaryOptions counts menu items per dietary flag
type DietaryOptions struct {
	VegetarianCount int `json:"vegetarian_count"`
	VeganCount      int `json:"vegan_count"`
	GlutenFreeCount int `json:"gluten_free_count"`
	SpicyCount      int `json:"spicy_count"`
}

// Restaurant is the scrape result for one site. When Error is set the record
// represents a failed fetch and only Name, URL and Error are meaningful.
type Restaurant struct {
	Name           string         `json:"name"`
	URL            string         `json:"url"`
	Title          string         `json:"title"`
	MenuItems      []MenuItem     `json:"menu_items"`
	ContactInfo    ContactInfo    `json:"contact_info"`
	DietaryOptions DietaryOptions `json:"dietary_options"`
	ItemCount      int            `json:"item_count"`
	PriceRange     PriceRange     `json:"price_range"`
	Error          string         `json:"error,omitempty"`
}

// NewRestaurant assembles a record and computes its aggregates
func NewRestaurant(name, url, title string, items []MenuItem, contact ContactInfo) Restaurant {
	if items == nil {
		items = []MenuItem{}
	}
	return Restaurant{
		Name:           name,
		URL:            url,
		Title:          title,
		MenuItems:      items,
		ContactInfo:    contact,
		DietaryOptions: CountDietary(items),
		ItemCount:      len(items),
		PriceRange:     ComputePriceRange(items),
	}
}

// NewFailedRestaurant builds the error record for a site that could not be scraped
func NewFailedRestaurant(name, url string, err error) Restaurant {
	return Restaurant{Name: name, URL: url, Error: err.Error()}
}

// Failed reports whether the record is an error object
func (r Restaurant) Failed() bool {
	return r.Error != ""
}

type failedRestaurant struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Error string `json:"error"`
}

// MarshalJSON writes failed records as {name, url, error} only
func (r Restaurant) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(failedRestaurant{Name: r.Name, URL: r.URL, Error: r.Error})
	}
	type plain Restaurant
	return json.Marshal(plain(r))
}

// CountDietary tallies the dietary flags across items
func CountDietary(items []MenuItem) DietaryOptions {
	var d DietaryOptions
	for _, item := range items {
		if item.Vegetarian {
			d.VegetarianCount++
		}
		if item.Vegan {
			d.VeganCount++
		}
		if item.GlutenFree {
			d.GlutenFreeCount++
		}
		if item.Spicy {
			d.SpicyCount++
		}
	}
	return d
}

// ComputePriceRange returns min/max over prices that parse; 0/0 when none do.
// A free item and a menu without prices are indistinguishable here.
func ComputePriceRange(items []MenuItem) PriceRange {
	var (
		pr    PriceRange
		found bool
	)
	for _, item := range items {
		v, ok := ParsePrice(item.Price)
		if !ok {
			continue
		}
		if !found {
			pr = PriceRange{Min: v, Max: v}
			found = true
			continue
		}
		if v < pr.Min {
			pr.Min = v
		}
		if v > pr.Max {
			pr.Max = v
		}
	}
	return pr
}

var currencyPrefixes = []string{"$", "₹", "Rs.", "Rs"}

// ParsePrice parses a currency-prefixed price such as "$12.50" or "₹1,200"
func ParsePrice(price string) (float64, bool) {
	s := strings.TrimSpace(price)
	prefixed := false
	for _, p := range currencyPrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(strings.TrimPrefix(s, p))
			prefixed = true
			break
		}
	}
	if !prefixed || s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatAmount renders a price bound without trailing zeros ("5", "12.5")
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
