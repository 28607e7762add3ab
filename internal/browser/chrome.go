package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultNavTimeout bounds a single page load.
const DefaultNavTimeout = 60 * time.Second

// ChromeSession drives a headless Chrome instance through chromedp. One
// session is acquired at crawl start and reused for every navigation.
type ChromeSession struct {
	ctx         context.Context
	cancelChain []context.CancelFunc
	navTimeout  time.Duration
}

// ChromeOptions configures the browser process.
type ChromeOptions struct {
	Headless   bool
	NavTimeout time.Duration
}

// NewChromeSession starts a headless Chrome and returns a live session.
// Requires Chrome/Chromium on the host. Callers must Close the session on
// every exit path.
func NewChromeSession(ctx context.Context, opts ChromeOptions) (*ChromeSession, error) {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = DefaultNavTimeout
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.WindowSize(1366, 1050),
		)...,
	)

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Start the browser process eagerly so a missing binary fails here
	// instead of on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &ChromeSession{
		ctx:         browserCtx,
		cancelChain: []context.CancelFunc{cancelBrowser, cancelAlloc},
		navTimeout:  opts.NavTimeout,
	}, nil
}

func (s *ChromeSession) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

// Navigate loads the URL, bounded by the session navigation timeout.
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, s.navTimeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// WaitVisible waits for the selector within the given bound.
func (s *ChromeSession) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := s.run(ctx, timeout, chromedp.WaitReady(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("element %q not ready: %w", selector, err)
	}
	return nil
}

// HTML returns the rendered document markup.
func (s *ChromeSession) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, s.navTimeout, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}
	return html, nil
}

// Location returns the current URL.
func (s *ChromeSession) Location(ctx context.Context) (string, error) {
	var loc string
	if err := s.run(ctx, s.navTimeout, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return loc, nil
}

// RemoveElementByID deletes the element with the given id if present.
func (s *ChromeSession) RemoveElementByID(ctx context.Context, id string) error {
	script := fmt.Sprintf(`(() => { const el = document.getElementById(%q); if (el) el.remove(); })()`, id)
	if err := s.run(ctx, s.navTimeout, chromedp.Evaluate(script, nil)); err != nil {
		return fmt.Errorf("failed to remove element %q: %w", id, err)
	}
	return nil
}

// Close shuts the browser down. Idempotent.
func (s *ChromeSession) Close() error {
	for _, cancel := range s.cancelChain {
		cancel()
	}
	return nil
}
