// Package crawl drives pagination over gazette listing pages, applies the
// temporal cutoff, and streams extracted records to the output sink.
package crawl

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mateus/doepb-harvester/internal/browser"
	"github.com/mateus/doepb-harvester/internal/records"
	"github.com/mateus/doepb-harvester/internal/resolver"
)

const (
	// DefaultBaseURL is the portal's recent-editions listing.
	DefaultBaseURL = "https://auniao.pb.gov.br/doe/edicoes-recentes"

	// DefaultCutoffYear is the earliest publication year still collected:
	// an item dated at or below it latches the stop flag and is skipped.
	DefaultCutoffYear = 2019

	// DefaultPageStep is the portal's listing page size (?b_start:int=N).
	DefaultPageStep = 12

	// DefaultMaxPageOffset is the safety ceiling against unbounded
	// pagination.
	DefaultMaxPageOffset = 20000

	// DefaultDailyLimit bounds the diario mode scan.
	DefaultDailyLimit = 5

	defaultListingWait = 10 * time.Second
)

// DocumentResolver resolves a detail reference into PDF bytes. Satisfied by
// *resolver.Resolver; faked in tests.
type DocumentResolver interface {
	Resolve(ctx context.Context, detailURL string) *resolver.ResolvedDocument
}

// RecordExtractor mines PDF bytes for act records. Satisfied by
// *records.Extractor.
type RecordExtractor interface {
	Extract(pdfBytes []byte) ([]records.Record, error)
}

// Summary reports what one crawl run produced.
type Summary struct {
	SavedPDFs int
	Records   int
}

// Options configures a crawl. Zero values select defaults.
type Options struct {
	BaseURL       string
	CutoffYear    int
	DownloadDir   string
	PageStep      int
	MaxPageOffset int
	DailyLimit    int
	ListingWait   time.Duration
	OverlayID     string
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	if out.CutoffYear == 0 {
		out.CutoffYear = DefaultCutoffYear
	}
	if out.PageStep <= 0 {
		out.PageStep = DefaultPageStep
	}
	if out.MaxPageOffset <= 0 {
		out.MaxPageOffset = DefaultMaxPageOffset
	}
	if out.DailyLimit <= 0 {
		out.DailyLimit = DefaultDailyLimit
	}
	if out.ListingWait <= 0 {
		out.ListingWait = defaultListingWait
	}
	if out.OverlayID == "" {
		out.OverlayID = resolver.DefaultOverlayID
	}
	return out
}

// Controller runs the FETCH_PAGE → RESOLVE_AND_EXTRACT → ADVANCE loop.
// State is process-lifetime only: visited references, the stop latch, and
// the run counters. One Controller serves one crawl invocation.
type Controller struct {
	sess      browser.Session
	resolver  DocumentResolver
	extractor RecordExtractor
	sink      Sink
	opts      Options

	visited     map[string]bool
	stopReached bool
	summary     Summary
}

// New wires a Controller over a live session and an open sink.
func New(sess browser.Session, res DocumentResolver, ex RecordExtractor, sink Sink, opts Options) *Controller {
	return &Controller{
		sess:      sess,
		resolver:  res,
		extractor: ex,
		sink:      sink,
		opts:      opts.withDefaults(),
		visited:   make(map[string]bool),
	}
}

// RunHistorical crawls the full back catalog: listing page by listing page
// until an item at or below the cutoff year appears (the current page still
// finishes) or the pagination ceiling is hit.
func (c *Controller) RunHistorical(ctx context.Context) (Summary, error) {
	items, err := c.scanListing(ctx, c.opts.BaseURL)
	if err != nil {
		return c.summary, err
	}
	log.Printf("[PAGE 0] items: %d stop=%v", len(items), c.stopReached)
	if err := c.processItems(ctx, items, true); err != nil {
		return c.summary, err
	}

	pageIdx := 1
	for start := c.opts.PageStep; start < c.opts.MaxPageOffset && !c.stopReached; start += c.opts.PageStep {
		pageURL := fmt.Sprintf("%s?b_start:int=%d", c.opts.BaseURL, start)
		items, err := c.scanListing(ctx, pageURL)
		if err != nil {
			return c.summary, err
		}
		log.Printf("[PAGE %d] items: %d stop=%v", pageIdx, len(items), c.stopReached)
		if err := c.processItems(ctx, items, true); err != nil {
			return c.summary, err
		}
		pageIdx++
	}

	log.Printf("[DONE] PDFs: %d | records: %d", c.summary.SavedPDFs, c.summary.Records)
	return c.summary, nil
}

// RunDaily scans only the first few items of the first listing page, with
// no pagination and no year cutoff.
func (c *Controller) RunDaily(ctx context.Context) (Summary, error) {
	items, err := c.scanDaily(ctx)
	if err != nil {
		return c.summary, err
	}
	if len(items) > c.opts.DailyLimit {
		items = items[:c.opts.DailyLimit]
	}
	log.Printf("[PAGE 0] items: %d", len(items))
	if err := c.processItems(ctx, items, false); err != nil {
		return c.summary, err
	}
	log.Printf("[DONE] PDFs: %d | records: %d", c.summary.SavedPDFs, c.summary.Records)
	return c.summary, nil
}

// scanListing renders one listing page and returns its in-range items.
// Items dated at or below the cutoff latch the stop flag and are excluded.
func (c *Controller) scanListing(ctx context.Context, pageURL string) ([]ListingItem, error) {
	all, err := c.renderListing(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	items := all[:0:0]
	for _, item := range all {
		if item.Year != 0 && item.Year <= c.opts.CutoffYear {
			c.stopReached = true
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Controller) scanDaily(ctx context.Context) ([]ListingItem, error) {
	return c.renderListing(ctx, c.opts.BaseURL)
}

func (c *Controller) renderListing(ctx context.Context, pageURL string) ([]ListingItem, error) {
	if err := c.sess.Navigate(ctx, pageURL); err != nil {
		return nil, fmt.Errorf("failed to load listing page %s: %w", pageURL, err)
	}
	if err := c.sess.WaitVisible(ctx, "a[href]", c.opts.ListingWait); err != nil {
		log.Printf("[PAGE] no links appeared on %s: %v", pageURL, err)
	}
	if err := c.sess.RemoveElementByID(ctx, c.opts.OverlayID); err != nil {
		log.Printf("[PAGE] overlay removal failed on %s: %v", pageURL, err)
	}
	html, err := c.sess.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing page %s: %w", pageURL, err)
	}
	base, err := c.sess.Location(ctx)
	if err != nil || base == "" {
		base = pageURL
	}
	return ParseListing(html, base)
}

// processItems resolves and extracts each unvisited item, streaming records
// to the sink. Per-item failures are logged and skipped; only sink write
// failures abort the run. The cutoff applies on the historical path only;
// the daily scan must process recent editions regardless of their year.
func (c *Controller) processItems(ctx context.Context, items []ListingItem, applyCutoff bool) error {
	for _, item := range items {
		if c.visited[item.Ref] {
			continue
		}
		// Defense in depth beyond the page-level latch.
		if applyCutoff && item.Year != 0 && item.Year <= c.opts.CutoffYear {
			continue
		}
		c.visited[item.Ref] = true

		doc := c.resolver.Resolve(ctx, item.Ref)
		if !doc.Found() {
			log.Printf("[SKIP] no PDF for %s (tried %s)", item.Ref, doc.PDFURL)
			continue
		}
		c.summary.SavedPDFs++
		c.savePDF(item.Label, doc.Bytes)

		recs, err := c.extractor.Extract(doc.Bytes)
		if err != nil {
			log.Printf("[SKIP] extraction failed for %s: %v", doc.PDFURL, err)
			continue
		}
		for _, rec := range recs {
			row := Row{DataLink: item.Label, DetailURL: item.Ref, PDFURL: doc.PDFURL, Record: rec}
			if err := c.sink.Write(row); err != nil {
				return err
			}
			c.summary.Records++
		}
		log.Printf("[OK] PDF %d saved | records total: %d", c.summary.SavedPDFs, c.summary.Records)
	}
	return nil
}

// savePDF persists the document under the download directory using a
// sanitized listing label. Disk failures are logged only; extraction
// proceeds from the in-memory bytes regardless.
func (c *Controller) savePDF(label string, data []byte) {
	if c.opts.DownloadDir == "" {
		return
	}
	if err := os.MkdirAll(c.opts.DownloadDir, 0o755); err != nil {
		log.Printf("[WARN] cannot create download dir %s: %v", c.opts.DownloadDir, err)
		return
	}
	path := filepath.Join(c.opts.DownloadDir, sanitizeLabel(label))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("[WARN] failed to save PDF %s: %v", path, err)
	}
}

// sanitizeLabel turns a listing label into a safe filename: path-unsafe
// characters are replaced and a .pdf suffix is guaranteed. Labels that
// sanitize to nothing get a generated name so editions never clobber each
// other under an empty key.
func sanitizeLabel(label string) string {
	name := strings.TrimSpace(label)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.Trim(name, "._-")
	if name == "" || strings.EqualFold(name, "pdf") {
		name = "edicao_" + uuid.NewString()[:8] + ".pdf"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
