package records

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageDecoder turns PDF bytes into per-page text. A page that cannot be
// decoded (scanned image, damaged stream) yields an empty string for its
// slot rather than an error, so extraction can skip it and keep going.
type PageDecoder interface {
	Pages(data []byte) ([]string, error)
}

// PDFDecoder decodes page text with ledongthuc/pdf.
type PDFDecoder struct{}

// NewPDFDecoder returns the default PDF page-text decoder.
func NewPDFDecoder() *PDFDecoder {
	return &PDFDecoder{}
}

// Pages returns the plain text of every page in the document, in order.
// Per-page decode failures produce empty entries; only a document that
// cannot be opened at all is an error.
func (d *PDFDecoder) Pages(data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	texts := make([]string, 0, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, text)
	}
	return texts, nil
}
