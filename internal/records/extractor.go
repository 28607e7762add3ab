package records

import (
	"strings"

	"github.com/mateus/doepb-harvester/internal/textutil"
)

const (
	// excerptLimit bounds the audit snippet carried by each record.
	excerptLimit = 260

	// minBlankLineBlocks is the segmentation threshold: fewer blocks than
	// this after a blank-line split means the page uses single-newline
	// paragraphing and gets re-segmented.
	minBlankLineBlocks = 3
)

// Extractor mines decoded PDF text for administrative-act records. Pattern
// constants and the stoplist are immutable once constructed, so independent
// instances (e.g. tests with custom stoplists) can coexist.
type Extractor struct {
	decoder    PageDecoder
	stopTokens map[string]struct{}
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithStopTokens replaces the default boilerplate stoplist used by the
// windowed name heuristic.
func WithStopTokens(tokens []string) Option {
	return func(e *Extractor) {
		e.stopTokens = make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			e.stopTokens[strings.ToUpper(t)] = struct{}{}
		}
	}
}

// NewExtractor builds an Extractor around the given page decoder.
func NewExtractor(decoder PageDecoder, opts ...Option) *Extractor {
	e := &Extractor{decoder: decoder}
	WithStopTokens(defaultStopTokens)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns every classified act found in the PDF, a pure function of
// the input bytes. Pages that decode to empty text are skipped; blocks that
// match no act type contribute nothing.
func (e *Extractor) Extract(pdfBytes []byte) ([]Record, error) {
	pages, err := e.decoder.Pages(pdfBytes)
	if err != nil {
		return nil, err
	}

	var recs []Record
	for i, text := range pages {
		if strings.TrimSpace(text) == "" {
			continue
		}
		for _, block := range segmentBlocks(text) {
			flat := reCollapseSpace.ReplaceAllString(block, " ")
			flat = strings.TrimSpace(flat)
			actType, ok := classify(flat)
			if !ok {
				continue
			}

			rec := Record{
				ActType: actType,
				Name:    e.extractName(flat),
				Page:    i + 1,
				Excerpt: truncate(flat, excerptLimit),
			}
			if m := reRegistrationID.FindStringSubmatch(flat); m != nil {
				rec.RegistrationID = strings.Trim(m[1], ".,; ")
			}
			if m := reCaseNumber.FindStringSubmatch(flat); m != nil {
				rec.CaseNumber = strings.Trim(m[1], ".,; ")
			}
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

// classify maps a whitespace-collapsed block to an act type. The anchors are
// matched on normalized text, making the filter precision-first: blocks
// phrased differently are dropped, never guessed.
func classify(flat string) (ActType, bool) {
	nb := textutil.Normalize(flat)
	switch {
	case strings.Contains(nb, "conceder aposentadoria"):
		return ActRetirement, true
	case strings.Contains(nb, "conceder pensao"):
		return ActPension, true
	case strings.Contains(nb, "isencao de imposto de renda") && strings.Contains(nb, "indeferi"):
		return ActTaxExemptionDenied, true
	default:
		return "", false
	}
}

// segmentBlocks splits page text on blank-line boundaries; when that yields
// fewer than three blocks the page uses single-newline paragraphing and is
// re-segmented line by line.
func segmentBlocks(text string) []string {
	blocks := nonEmpty(strings.Split(text, "\n\n"))
	if len(blocks) < minBlankLineBlocks {
		blocks = nonEmpty(strings.Split(text, "\n"))
	}
	return blocks
}

func nonEmpty(parts []string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	// Cut on a rune boundary so the snippet stays valid UTF-8.
	cut := limit
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
