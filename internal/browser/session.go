// Package browser abstracts the rendering engine behind a narrow
// navigation-capability interface so the resolver and crawl controller can
// be tested with fakes.
package browser

import (
	"context"
	"time"
)

// Session is the capability set the pipeline needs from a rendering engine:
// load a URL, wait for an element within a bound, read the rendered markup
// and current location, remove a known overlay, and tear down.
type Session interface {
	// Navigate loads the URL and blocks until the page settles or the
	// session's navigation timeout elapses.
	Navigate(ctx context.Context, url string) error

	// WaitVisible blocks until an element matching the selector is present,
	// bounded by timeout. A timeout is returned as an error; callers decide
	// whether it is fatal.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// HTML returns the rendered document markup.
	HTML(ctx context.Context) (string, error)

	// Location returns the document's current URL, which may differ from
	// the navigated URL after redirects.
	Location(ctx context.Context) (string, error)

	// RemoveElementByID deletes a known overlay element if present. A
	// missing element is not an error.
	RemoveElementByID(ctx context.Context, id string) error

	// Close tears the session down. Safe to call on every exit path.
	Close() error
}
