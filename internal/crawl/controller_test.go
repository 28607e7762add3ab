package crawl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateus/doepb-harvester/internal/records"
	"github.com/mateus/doepb-harvester/internal/resolver"
)

const testBase = "https://portal.example/doe/edicoes-recentes"

// fakeListingSession serves canned listing markup per URL and records which
// pages were navigated.
type fakeListingSession struct {
	pages      map[string]string
	navigated  []string
	currentURL string
}

func (s *fakeListingSession) Navigate(_ context.Context, url string) error {
	s.navigated = append(s.navigated, url)
	s.currentURL = url
	if _, ok := s.pages[url]; !ok {
		return fmt.Errorf("no such page: %s", url)
	}
	return nil
}

func (s *fakeListingSession) WaitVisible(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

func (s *fakeListingSession) HTML(_ context.Context) (string, error) {
	return s.pages[s.currentURL], nil
}

func (s *fakeListingSession) Location(_ context.Context) (string, error) {
	return s.currentURL, nil
}

func (s *fakeListingSession) RemoveElementByID(_ context.Context, _ string) error { return nil }

func (s *fakeListingSession) Close() error { return nil }

// fakeResolver resolves every reference to the same PDF bytes and records
// the order of resolution calls.
type fakeResolver struct {
	resolved []string
	fail     map[string]bool
}

func (r *fakeResolver) Resolve(_ context.Context, detailURL string) *resolver.ResolvedDocument {
	r.resolved = append(r.resolved, detailURL)
	doc := &resolver.ResolvedDocument{SourceRef: detailURL, PDFURL: detailURL + "/@@download/file"}
	if !r.fail[detailURL] {
		doc.Bytes = []byte("%PDF-1.4 stub")
	}
	return doc
}

// fakeExtractor returns a fixed record per document.
type fakeExtractor struct {
	recs []records.Record
	err  error
}

func (e *fakeExtractor) Extract(_ []byte) ([]records.Record, error) { return e.recs, e.err }

// memorySink accumulates rows in memory.
type memorySink struct {
	rows []Row
	err  error
}

func (s *memorySink) Write(row Row) error {
	if s.err != nil {
		return s.err
	}
	s.rows = append(s.rows, row)
	return nil
}

func anchor(ref, label string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, ref, label)
}

func newController(sess *fakeListingSession, res *fakeResolver, ex *fakeExtractor, sink Sink) *Controller {
	return New(sess, res, ex, sink, Options{BaseURL: testBase, DownloadDir: ""})
}

func TestRunHistorical_CutoffLatchStopsPagination(t *testing.T) {
	sess := &fakeListingSession{pages: map[string]string{
		testBase: anchor("https://portal.example/doe/a", "Diário Oficial 05-03-2021.pdf"),
		testBase + "?b_start:int=12": anchor("https://portal.example/doe/b", "Diário Oficial 04-03-2020.pdf") +
			anchor("https://portal.example/doe/c", "Diário Oficial 05-03-2018.pdf"),
		testBase + "?b_start:int=24": anchor("https://portal.example/doe/d", "Diário Oficial 01-01-2017.pdf"),
	}}
	res := &fakeResolver{}
	sink := &memorySink{}
	c := newController(sess, res, &fakeExtractor{}, sink)

	_, err := c.RunHistorical(context.Background())
	require.NoError(t, err)

	// The 2018 item latches the stop flag: the page it appeared on still
	// completes, but no later listing page is fetched.
	assert.Equal(t, []string{testBase, testBase + "?b_start:int=12"}, sess.navigated)
	// The latching item itself is excluded from extraction.
	assert.Equal(t, []string{"https://portal.example/doe/a", "https://portal.example/doe/b"}, res.resolved)
}

func TestRunHistorical_DeduplicatesAcrossPages(t *testing.T) {
	dup := anchor("https://portal.example/doe/a", "Diário Oficial 05-03-2021.pdf")
	sess := &fakeListingSession{pages: map[string]string{
		testBase:                    dup,
		testBase + "?b_start:int=12": dup + anchor("https://portal.example/doe/old", "Diário Oficial 01-01-2019.pdf"),
	}}
	res := &fakeResolver{}
	c := newController(sess, res, &fakeExtractor{}, &memorySink{})

	_, err := c.RunHistorical(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://portal.example/doe/a"}, res.resolved,
		"a reference reappearing on a later page is never resolved twice")
}

func TestRunHistorical_StreamsRecordsWithListingContext(t *testing.T) {
	sess := &fakeListingSession{pages: map[string]string{
		testBase: anchor("https://portal.example/doe/a", "Diário Oficial 05-03-2021.pdf") +
			anchor("https://portal.example/doe/stop", "Diário Oficial 01-01-2019.pdf"),
	}}
	rec := records.Record{ActType: records.ActRetirement, Name: "JOSE DA SILVA", Page: 1}
	sink := &memorySink{}
	c := newController(sess, &fakeResolver{}, &fakeExtractor{recs: []records.Record{rec}}, sink)

	summary, err := c.RunHistorical(context.Background())
	require.NoError(t, err)

	require.Len(t, sink.rows, 1)
	assert.Equal(t, "Diário Oficial 05-03-2021.pdf", sink.rows[0].DataLink)
	assert.Equal(t, "https://portal.example/doe/a", sink.rows[0].DetailURL)
	assert.Equal(t, "https://portal.example/doe/a/@@download/file", sink.rows[0].PDFURL)
	assert.Equal(t, rec, sink.rows[0].Record)
	assert.Equal(t, Summary{SavedPDFs: 1, Records: 1}, summary)
}

func TestRunHistorical_ResolutionFailureSkipsItem(t *testing.T) {
	sess := &fakeListingSession{pages: map[string]string{
		testBase: anchor("https://portal.example/doe/bad", "Diário Oficial 05-03-2021.pdf") +
			anchor("https://portal.example/doe/good", "Diário Oficial 04-03-2021.pdf") +
			anchor("https://portal.example/doe/stop", "Diário Oficial 01-01-2019.pdf"),
	}}
	res := &fakeResolver{fail: map[string]bool{"https://portal.example/doe/bad": true}}
	rec := records.Record{ActType: records.ActPension, Page: 2}
	sink := &memorySink{}
	c := newController(sess, res, &fakeExtractor{recs: []records.Record{rec}}, sink)

	summary, err := c.RunHistorical(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{SavedPDFs: 1, Records: 1}, summary)
	require.Len(t, sink.rows, 1)
	assert.Equal(t, "https://portal.example/doe/good", sink.rows[0].DetailURL)
}

func TestRunDaily_BoundedScanNoPaginationNoCutoff(t *testing.T) {
	var links string
	for i := 0; i < 8; i++ {
		links += anchor(fmt.Sprintf("https://portal.example/doe/%d", i),
			fmt.Sprintf("Diário Oficial 0%d-01-2018.pdf", i+1))
	}
	sess := &fakeListingSession{pages: map[string]string{testBase: links}}
	res := &fakeResolver{}
	c := newController(sess, res, &fakeExtractor{}, &memorySink{})

	_, err := c.RunDaily(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{testBase}, sess.navigated, "daily mode never paginates")
	assert.Len(t, res.resolved, DefaultDailyLimit)
}

func TestRunHistorical_SinkErrorAborts(t *testing.T) {
	sess := &fakeListingSession{pages: map[string]string{
		testBase: anchor("https://portal.example/doe/a", "Diário Oficial 05-03-2021.pdf") +
			anchor("https://portal.example/doe/stop", "Diário Oficial 01-01-2019.pdf"),
	}}
	rec := records.Record{ActType: records.ActRetirement, Page: 1}
	sink := &memorySink{err: fmt.Errorf("disk full")}
	c := newController(sess, &fakeResolver{}, &fakeExtractor{recs: []records.Record{rec}}, sink)

	_, err := c.RunHistorical(context.Background())
	assert.Error(t, err)
}

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "Diário_Oficial_05-03-2021.pdf", sanitizeLabel("Diário Oficial 05-03-2021.pdf"))
	assert.Equal(t, "a-b.pdf", sanitizeLabel("a/b"))
	name := sanitizeLabel("   ")
	assert.True(t, len(name) > len(".pdf"), "degenerate labels get a generated name")
	assert.Contains(t, name, ".pdf")
}
