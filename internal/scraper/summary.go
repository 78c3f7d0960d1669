// ABOUTME: Console summary of a scrape batch
// ABOUTME: Per-site status table plus a detailed sample of the first menu
package scraper

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/harper/menuchat/internal/models"
)

const (
	statusSuccess = "Success"
	statusError   = "Error"
	sampleSize    = 3
	maxCellWidth  = 40
)

// SummaryRow is one line of the batch summary
type SummaryRow struct {
	Name        string
	URL         string
	Status      string
	Error       string
	ItemsFound  int
	PriceRange  string
	Vegetarian  int
	ContactSeen bool
}

// Summarize reduces each record to its summary row
func Summarize(results []models.Restaurant) []SummaryRow {
	rows := make([]SummaryRow, 0, len(results))
	for _, r := range results {
		if r.Failed() {
			rows = append(rows, SummaryRow{Name: r.Name, URL: r.URL, Status: statusError, Error: r.Error})
			continue
		}
		rows = append(rows, SummaryRow{
			Name:        r.Name,
			URL:         r.URL,
			Status:      statusSuccess,
			ItemsFound:  r.ItemCount,
			PriceRange:  formatRange(r.PriceRange),
			Vegetarian:  r.DietaryOptions.VegetarianCount,
			ContactSeen: r.ContactInfo.HasAddressOrPhone(),
		})
	}
	return rows
}

func formatRange(pr models.PriceRange) string {
	if pr.Max <= 0 {
		return models.NotFound
	}
	return fmt.Sprintf("$%s - $%s", models.FormatAmount(pr.Min), models.FormatAmount(pr.Max))
}

// WriteSummary prints the summary table
func WriteSummary(w io.Writer, results []models.Restaurant) error {
	header := []string{"NAME", "STATUS", "ITEMS", "PRICE RANGE", "VEGETARIAN", "CONTACT", "ERROR"}
	table := [][]string{header}

	for _, row := range Summarize(results) {
		items, veg, contact := "", "", ""
		if row.Status == statusSuccess {
			items = strconv.Itoa(row.ItemsFound)
			veg = strconv.Itoa(row.Vegetarian)
			contact = "✗"
			if row.ContactSeen {
				contact = "✓"
			}
		}
		table = append(table, []string{row.Name, row.Status, items, row.PriceRange, veg, contact, row.Error})
	}

	widths := make([]int, len(header))
	for _, line := range table {
		for i, cell := range line {
			cell = runewidth.Truncate(cell, maxCellWidth, "...")
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	for _, line := range table {
		cells := make([]string, len(line))
		for i, cell := range line {
			cells[i] = runewidth.FillRight(runewidth.Truncate(cell, maxCellWidth, "..."), widths[i])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteSample prints the first few items and contact details of the first
// restaurant that has menu items
func WriteSample(w io.Writer, results []models.Restaurant) {
	for _, r := range results {
		if r.Failed() || len(r.MenuItems) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s Menu Sample:\n", r.Name)
		for i, item := range r.MenuItems {
			if i >= sampleSize {
				break
			}
			dietary := "None specified"
			if tags := item.DietaryTags(); len(tags) > 0 {
				dietary = strings.Join(tags, ", ")
			}
			fmt.Fprintf(w, "%d. %s\n", i+1, item.Item)
			fmt.Fprintf(w, "   Price: %s\n", item.Price)
			fmt.Fprintf(w, "   Dietary: %s\n", dietary)
		}

		fmt.Fprintf(w, "\n%s Contact Information:\n", r.Name)
		fmt.Fprintf(w, "- Address: %s\n", r.ContactInfo.Address)
		fmt.Fprintf(w, "- Phone: %s\n", r.ContactInfo.Phone)
		fmt.Fprintf(w, "- Email: %s\n", r.ContactInfo.Email)
		fmt.Fprintf(w, "- Hours: %s\n", r.ContactInfo.Hours)
		fmt.Fprintf(w, "Total Menu Items: %d\n", r.ItemCount)
		fmt.Fprintf(w, "Price Range: %s\n", formatRange(r.PriceRange))
		fmt.Fprintln(w, "Dietary Options:")
		fmt.Fprintf(w, "- Vegetarian Items: %d\n", r.DietaryOptions.VegetarianCount)
		fmt.Fprintf(w, "- Vegan Items: %d\n", r.DietaryOptions.VeganCount)
		fmt.Fprintf(w, "- Gluten-free Items: %d\n", r.DietaryOptions.GlutenFreeCount)
		fmt.Fprintf(w, "- Spicy Items: %d\n", r.DietaryOptions.SpicyCount)
		return
	}
}
