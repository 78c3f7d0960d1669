// ABOUTME: Flattens a restaurant record into the text document that gets chunked
// ABOUTME: Fixed template: header facts first, then one block per menu item
package kb

import (
	"fmt"
	"strings"

	"github.com/harper/menuchat/internal/models"
)

// RenderDocument renders the knowledge-base text for one restaurant.
// The output depends only on the record, so identical input renders
// identical text.
func RenderDocument(r models.Restaurant) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Restaurant Name: %s\n", r.Name)
	fmt.Fprintf(&b, "Address: %s\n", r.ContactInfo.Address)
	fmt.Fprintf(&b, "Hours: %s\n", r.ContactInfo.Hours)
	fmt.Fprintf(&b, "Price Range: $%s - $%s\n",
		models.FormatAmount(r.PriceRange.Min), models.FormatAmount(r.PriceRange.Max))
	fmt.Fprintf(&b, "Total Items: %d\n\n", r.ItemCount)
	b.WriteString("Menu Items:\n")

	for _, item := range r.MenuItems {
		fmt.Fprintf(&b, "- %s (%s): %s\n", item.Item, item.Price, item.Description)
		for _, tag := range item.DietaryTags() {
			fmt.Fprintf(&b, "  This item is %s.\n", tag)
		}
	}
	return b.String()
}
