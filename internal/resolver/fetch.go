package resolver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultFetchTimeout bounds one candidate download.
	DefaultFetchTimeout = 60 * time.Second

	// DefaultUserAgent identifies the harvester on candidate fetches.
	DefaultUserAgent = "Mozilla/5.0 (compatible; doepb-harvester/1.0)"
)

// pdfMagic is the canonical PDF file signature.
var pdfMagic = []byte("%PDF")

// FetchError describes a failed candidate download. Candidate failures are
// never fatal to a resolution; they advance the cascade.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// fetchPDF downloads a candidate URL and returns its body only when the
// response is verifiably a PDF: the body starts with the %PDF magic bytes or
// the response declares a PDF content type. Anything else is an error.
func (r *Resolver) fetchPDF(ctx context.Context, url, referer string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/pdf,*/*;q=0.8")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Message: "failed to read response body", Cause: err}
	}

	contentType := resp.Header.Get("Content-Type")
	if !bytes.HasPrefix(data, pdfMagic) && !strings.Contains(contentType, "application/pdf") {
		return nil, &FetchError{URL: url, Message: fmt.Sprintf("not a PDF (content type %q)", contentType)}
	}
	return data, nil
}
