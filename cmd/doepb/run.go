package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/mateus/doepb-harvester/internal/browser"
	"github.com/mateus/doepb-harvester/internal/config"
	"github.com/mateus/doepb-harvester/internal/crawl"
	"github.com/mateus/doepb-harvester/internal/records"
	"github.com/mateus/doepb-harvester/internal/resolver"
)

// crawlMode selects between the full back-catalog crawl and the bounded
// scan of the most recent editions.
type crawlMode int

const (
	modeHistorical crawlMode = iota
	modeDaily
)

// loadConfig merges the optional config file over defaults, then applies
// flag overrides supplied by the calling command.
func loadConfig(configPath string, override func(*config.Config)) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		fileCfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		mergeConfig(cfg, fileCfg)
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeConfig(dst, src *config.Config) {
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.OutputCSV != "" {
		dst.OutputCSV = src.OutputCSV
	}
	if src.DownloadDir != "" {
		dst.DownloadDir = src.DownloadDir
	}
	if src.CutoffYear != 0 {
		dst.CutoffYear = src.CutoffYear
	}
	if src.NavTimeoutSec != 0 {
		dst.NavTimeoutSec = src.NavTimeoutSec
	}
	if src.FetchTimeoutSec != 0 {
		dst.FetchTimeoutSec = src.FetchTimeoutSec
	}
	if src.DailyLimit != 0 {
		dst.DailyLimit = src.DailyLimit
	}
	if src.Headless != nil {
		dst.Headless = src.Headless
	}
}

// runCrawl wires the pipeline and executes one crawl invocation. The
// browser session is torn down on every exit path; the sink is closed after
// the final row.
func runCrawl(cfg *config.Config, mode crawlMode) error {
	ctx := context.Background()

	sink, err := crawl.NewCSVSink(cfg.OutputCSV)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	sess, err := browser.NewChromeSession(ctx, browser.ChromeOptions{
		Headless:   cfg.HeadlessOn(),
		NavTimeout: cfg.NavTimeout(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	res := resolver.New(sess, &resolver.Options{FetchTimeout: cfg.FetchTimeout()})
	extractor := records.NewExtractor(records.NewPDFDecoder())
	controller := crawl.New(sess, res, extractor, sink, crawl.Options{
		BaseURL:     cfg.BaseURL,
		CutoffYear:  cfg.CutoffYear,
		DownloadDir: cfg.DownloadDir,
		DailyLimit:  cfg.DailyLimit,
	})

	var summary crawl.Summary
	switch mode {
	case modeDaily:
		summary, err = controller.RunDaily(ctx)
	default:
		summary, err = controller.RunHistorical(ctx)
	}
	if err != nil {
		return err
	}

	outPath, absErr := filepath.Abs(cfg.OutputCSV)
	if absErr != nil {
		outPath = cfg.OutputCSV
	}
	log.Printf("[INFO] PDFs saved: %d | records: %d | CSV: %s", summary.SavedPDFs, summary.Records, outPath)
	fmt.Printf("CSV written to %s\n", outPath)
	return nil
}
