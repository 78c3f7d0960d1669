// ABOUTME: Tests for contact extraction passes and JSON-LD parsing
// ABOUTME: Verifies structured data precedence and the heuristic fallbacks
package scraper

import (
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/harper/menuchat/internal/models"
)

const structuredPage = `<html><head>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Restaurant","name":"Test Bistro",
"address":{"@type":"PostalAddress","streetAddress":"123 Main St","addressLocality":"Springfield","addressRegion":"IL","postalCode":"62701"},
"telephone":"+1 217-555-0100",
"openingHoursSpecification":[
{"@type":"OpeningHoursSpecification","dayOfWeek":"Monday","opens":"11:00","closes":"22:00"},
{"@type":"OpeningHoursSpecification","dayOfWeek":["https://schema.org/Saturday","Sunday"],"opens":"10:00","closes":"23:00"}]}</script>
</head><body><p>Address: 999 Elm Street, Shelbyville</p><a href="tel:5550001111">Call</a><a href="mailto:hello@bistro.example">Email us</a></body></html>`

func TestContactExtractor_StructuredWins(t *testing.T) {
	info := NewGenericContactExtractor().Extract(parseHTML(t, structuredPage))

	want := models.ContactInfo{
		Address: "123 Main St, Springfield, IL 62701",
		Phone:   "+1 217-555-0100",
		Email:   "hello@bistro.example",
		Hours:   "Monday: 11:00-22:00, Saturday/Sunday: 10:00-23:00",
	}
	if info != want {
		t.Errorf("Extract() = %+v, want %+v", info, want)
	}
}

func TestContactExtractor_Heuristics(t *testing.T) {
	page := `<html><body>
<p>Address: 42 Harbour Road, Sydney</p>
<span>Call us: (555) 123-4567</span>
<div>Opening hours: Monday to Friday 11am-10pm</div>
<a href="mailto:bookings@harbour.example">Book</a>
</body></html>`

	info := NewGenericContactExtractor().Extract(parseHTML(t, page))

	want := models.ContactInfo{
		Address: "Address: 42 Harbour Road, Sydney",
		Phone:   "(555) 123-4567",
		Email:   "bookings@harbour.example",
		Hours:   "Opening hours: Monday to Friday 11am-10pm",
	}
	if info != want {
		t.Errorf("Extract() = %+v, want %+v", info, want)
	}
}

func TestContactExtractor_TelLinkOverridesKeywordMatch(t *testing.T) {
	page := `<html><body><p>Phone: 555-123-4567</p><a href="tel:+61290000000">Ring the venue</a></body></html>`

	info := NewGenericContactExtractor().Extract(parseHTML(t, page))

	if info.Phone != "+61290000000" {
		t.Errorf("Phone = %q, want tel: link value", info.Phone)
	}
}

func TestContactExtractor_NothingFound(t *testing.T) {
	info := NewGenericContactExtractor().Extract(parseHTML(t, `<html><body><p>Welcome</p></body></html>`))

	if info != models.NewContactInfo() {
		t.Errorf("Extract() = %+v, want all fields %q", info, models.NotFound)
	}
	if info.HasAddressOrPhone() {
		t.Error("HasAddressOrPhone() = true, want false")
	}
}

func TestContactExtractor_AddressNeedsStreet(t *testing.T) {
	page := `<html><body><p>Location: downtown, near the park</p></body></html>`

	info := NewGenericContactExtractor().Extract(parseHTML(t, page))

	if info.Address != models.NotFound {
		t.Errorf("Address = %q, want %q", info.Address, models.NotFound)
	}
}

func TestExtractStructured_MalformedBlockSkipped(t *testing.T) {
	page := `<html><head>
<script type="application/ld+json">{not json</script>
<script type="application/ld+json">{"@type":"LocalBusiness","telephone":"02 9000 0000"}</script>
</head><body></body></html>`

	info := extractStructured(parseHTML(t, page))

	if info.Phone != "02 9000 0000" {
		t.Errorf("Phone = %q", info.Phone)
	}
	if info.Address != models.NotFound {
		t.Errorf("Address = %q, want sentinel", info.Address)
	}
}

func TestExtractStructured_GraphAndTypeList(t *testing.T) {
	page := `<html><head><script type="application/ld+json">{"@context":"https://schema.org","@graph":[
{"@type":"WebSite","name":"ignored","telephone":"000"},
{"@type":["Restaurant","FoodEstablishment"],"address":"1 George St, Sydney","telephone":"123","openingHours":["Mo-Fr 11:00-22:00","Sa 10:00-23:00"]}]}</script></head><body></body></html>`

	info := extractStructured(parseHTML(t, page))

	if info.Address != "1 George St, Sydney" {
		t.Errorf("Address = %q", info.Address)
	}
	if info.Phone != "123" {
		t.Errorf("Phone = %q", info.Phone)
	}
	if info.Hours != "Mo-Fr 11:00-22:00, Sa 10:00-23:00" {
		t.Errorf("Hours = %q", info.Hours)
	}
}

func TestExtractStructured_FirstBlockWins(t *testing.T) {
	page := `<html><head>
<script type="application/ld+json">[{"@type":"Restaurant","telephone":"111"}]</script>
<script type="application/ld+json">{"@type":"Restaurant","telephone":"222","address":"9 Pitt St"}</script>
</head><body></body></html>`

	info := extractStructured(parseHTML(t, page))

	if info.Phone != "111" {
		t.Errorf("Phone = %q, want first block's value", info.Phone)
	}
	if info.Address != "9 Pitt St" {
		t.Errorf("Address = %q, want value filled from second block", info.Address)
	}
}

func TestContactExtractor_StopsWhenComplete(t *testing.T) {
	calls := 0
	full := func(_ *goquery.Document) models.ContactInfo {
		calls++
		return models.ContactInfo{Address: "a", Phone: "p", Email: "e", Hours: "h"}
	}
	e := NewContactExtractor(full, full)

	info := e.Extract(parseHTML(t, `<html></html>`))

	if !info.Complete() {
		t.Errorf("Extract() = %+v, want complete", info)
	}
	if calls != 1 {
		t.Errorf("passes run = %d, want 1", calls)
	}
}
