// Package resolver turns a gazette detail-page reference into a verified
// PDF byte stream through a cascade of discovery strategies.
package resolver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/mateus/doepb-harvester/internal/browser"
)

const (
	// DefaultWaitTimeout bounds the wait for any hyperlink to appear on a
	// freshly navigated detail page.
	DefaultWaitTimeout = 10 * time.Second

	// DefaultOverlayID is the portal's disclaimer overlay, removed before
	// scanning so it cannot mask the download links.
	DefaultOverlayID = "viewlet-disclaimer"
)

// ResolvedDocument pairs the PDF bytes recovered for a detail reference with
// the URL they came from. Bytes is nil when resolution failed; PDFURL then
// holds the first attempted candidate so callers can log what was tried.
type ResolvedDocument struct {
	SourceRef string
	PDFURL    string
	Bytes     []byte
}

// Found reports whether resolution recovered an actual PDF.
func (d *ResolvedDocument) Found() bool {
	return len(d.Bytes) > 0
}

// Options tunes a Resolver. Zero values select defaults.
type Options struct {
	FetchTimeout time.Duration
	WaitTimeout  time.Duration
	UserAgent    string
	OverlayID    string
}

// Resolver discovers and downloads the PDF behind a detail reference.
type Resolver struct {
	sess        browser.Session
	client      *http.Client
	userAgent   string
	waitTimeout time.Duration
	overlayID   string
}

// New builds a Resolver over a live browser session.
func New(sess browser.Session, opts *Options) *Resolver {
	if opts == nil {
		opts = &Options{}
	}
	fetchTimeout := opts.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	waitTimeout := opts.WaitTimeout
	if waitTimeout <= 0 {
		waitTimeout = DefaultWaitTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	overlayID := opts.OverlayID
	if overlayID == "" {
		overlayID = DefaultOverlayID
	}
	return &Resolver{
		sess:        sess,
		client:      &http.Client{Timeout: fetchTimeout},
		userAgent:   userAgent,
		waitTimeout: waitTimeout,
		overlayID:   overlayID,
	}
}

// Resolve navigates to the detail reference and works through the candidate
// cascade until a fetch yields verified PDF bytes. Every per-candidate
// failure (network error, timeout, non-PDF body) advances the cascade; total
// failure is reported as an empty result, never as an error, so the crawl
// can continue across documents.
func (r *Resolver) Resolve(ctx context.Context, detailURL string) *ResolvedDocument {
	doc := &ResolvedDocument{SourceRef: detailURL, PDFURL: detailURL}

	var html, base string
	if err := r.sess.Navigate(ctx, detailURL); err != nil {
		log.Printf("[RESOLVE] navigation failed for %s: %v", detailURL, err)
	} else {
		// Best effort: a bare page without links is still scanned below.
		if err := r.sess.WaitVisible(ctx, "a[href]", r.waitTimeout); err != nil {
			log.Printf("[RESOLVE] no links appeared on %s: %v", detailURL, err)
		}
		if err := r.sess.RemoveElementByID(ctx, r.overlayID); err != nil {
			log.Printf("[RESOLVE] overlay removal failed on %s: %v", detailURL, err)
		}
		html, _ = r.sess.HTML(ctx)
		base, _ = r.sess.Location(ctx)
	}
	if base == "" {
		base = detailURL
	}

	candidates := dedupe(discoverCandidates(html, base, detailURL))
	doc.PDFURL = candidates[0]

	tried := make(map[string]bool, len(candidates))
	for _, u := range candidates {
		tried[u] = true
		data, err := r.fetchPDF(ctx, u, detailURL)
		if err != nil {
			log.Printf("[RESOLVE] candidate rejected: %v", err)
			continue
		}
		doc.PDFURL = u
		doc.Bytes = data
		return doc
	}

	for _, u := range rawMarkupCandidates(html, base) {
		if tried[u] {
			continue
		}
		tried[u] = true
		data, err := r.fetchPDF(ctx, u, detailURL)
		if err != nil {
			log.Printf("[RESOLVE] fallback candidate rejected: %v", err)
			continue
		}
		doc.PDFURL = u
		doc.Bytes = data
		return doc
	}

	return doc
}
