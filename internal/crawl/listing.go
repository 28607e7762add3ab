package crawl

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ListingItem is one gazette edition entry on a listing page. Year is 0 when
// the label carries no parseable date.
type ListingItem struct {
	Ref   string
	Label string
	Year  int
}

// listingMarkers identify edition anchors among the page's navigation links.
const (
	listingTextMarker = "Diário Oficial"
	listingExtMarker  = ".pdf"
)

// reLabelDate matches dd-mm-yyyy or dd/mm/yyyy inside a listing label.
var reLabelDate = regexp.MustCompile(`(\d{2})[-/](\d{2})[-/](\d{4})`)

// ParseListing scans rendered listing markup for gazette edition anchors:
// links whose visible text names a "Diário Oficial" PDF. Each hit yields a
// ListingItem with its detail reference resolved against baseURL and the
// publication year parsed from the label when present.
func ParseListing(html, baseURL string) ([]ListingItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(baseURL)

	var items []ListingItem
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())
		if !strings.Contains(label, listingTextMarker) || !strings.Contains(label, listingExtMarker) {
			return
		}
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		if base != nil {
			if refURL, err := url.Parse(href); err == nil {
				href = base.ResolveReference(refURL).String()
			}
		}
		items = append(items, ListingItem{Ref: href, Label: label, Year: labelYear(label)})
	})
	return items, nil
}

// labelYear extracts the four-digit year from a dated label, 0 when absent.
func labelYear(label string) int {
	m := reLabelDate.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return 0
	}
	return year
}
