package resolver

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// downloadMarker is the portal's canonical download path segment; anchors
// and frames pointing at it carry the PDF binary even without a .pdf suffix.
const downloadMarker = "@@download/file"

// rePDFHref catches .pdf hrefs missed by the structural pass, e.g. links
// injected by scripts into markup goquery's DOM walk does not reach.
var rePDFHref = regexp.MustCompile(`(?i)href=["']([^"']+\.pdf[^"']*)["']`)

// discoverCandidates collects PDF candidate URLs from rendered detail-page
// markup in priority order: anchors, then inline frames and embeds, then a
// synthesized download URL when the detail reference itself looks like a
// PDF, then the detail reference as last resort. Relative targets are
// resolved against baseURL.
func discoverCandidates(html, baseURL, detailURL string) []string {
	var candidates []string

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			lower := strings.ToLower(href)
			if strings.HasSuffix(lower, ".pdf") || strings.Contains(href, downloadMarker) {
				if abs := resolveAgainst(baseURL, href); abs != "" {
					candidates = append(candidates, abs)
				}
			}
		})
		doc.Find("iframe[src], embed[src]").Each(func(_ int, s *goquery.Selection) {
			src, _ := s.Attr("src")
			if strings.Contains(strings.ToLower(src), ".pdf") || strings.Contains(src, downloadMarker) {
				if abs := resolveAgainst(baseURL, src); abs != "" {
					candidates = append(candidates, abs)
				}
			}
		})
	}

	if strings.HasSuffix(strings.ToLower(detailURL), ".pdf") && !strings.Contains(detailURL, "/"+downloadMarker) {
		candidates = append(candidates, strings.TrimRight(detailURL, "/")+"/"+downloadMarker)
	}
	if len(candidates) == 0 {
		candidates = append(candidates, detailURL)
	}
	return candidates
}

// rawMarkupCandidates is the fallback scan over raw markup for .pdf hrefs
// the structural pass did not surface.
func rawMarkupCandidates(html, baseURL string) []string {
	var candidates []string
	for _, m := range rePDFHref.FindAllStringSubmatch(html, -1) {
		if abs := resolveAgainst(baseURL, m[1]); abs != "" {
			candidates = append(candidates, abs)
		}
	}
	return candidates
}

// resolveAgainst resolves ref against base, returning "" for unusable refs.
func resolveAgainst(base, ref string) string {
	refURL, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Scheme == "" {
		// No usable base; keep absolute refs, drop relative ones.
		if refURL.IsAbs() {
			return refURL.String()
		}
		return ""
	}
	return baseURL.ResolveReference(refURL).String()
}

// dedupe keeps the first occurrence of each URL, preserving discovery order.
func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := urls[:0:0]
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}
