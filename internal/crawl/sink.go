package crawl

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/mateus/doepb-harvester/internal/records"
)

// Row is one output line: the listing context plus one extracted record.
type Row struct {
	DataLink  string
	DetailURL string
	PDFURL    string
	Record    records.Record
}

// Sink receives rows as they are extracted. Implementations must tolerate
// being written to incrementally for the whole crawl.
type Sink interface {
	Write(row Row) error
}

var csvHeader = []string{
	"data_link", "detail_url", "pdf_url",
	"tipo_ato", "nome", "matricula", "processo", "pagina", "trecho",
}

// CSVSink streams rows to a CSV file, one flushed row per record, so a
// mid-crawl crash leaves a valid prefix of already-written rows.
type CSVSink struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVSink opens (truncating) the output file and writes the header row.
func NewCSVSink(path string) (*CSVSink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open output CSV %s: %w", path, err)
	}
	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to flush CSV header: %w", err)
	}
	return &CSVSink{file: file, writer: writer}, nil
}

// Write appends and flushes one row.
func (s *CSVSink) Write(row Row) error {
	rec := row.Record
	err := s.writer.Write([]string{
		row.DataLink,
		row.DetailURL,
		row.PDFURL,
		string(rec.ActType),
		rec.Name,
		rec.RegistrationID,
		rec.CaseNumber,
		strconv.Itoa(rec.Page),
		rec.Excerpt,
	})
	if err != nil {
		return fmt.Errorf("failed to write CSV row: %w", err)
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV row: %w", err)
	}
	return nil
}

// Close flushes pending rows and closes the file.
func (s *CSVSink) Close() error {
	s.writer.Flush()
	flushErr := s.writer.Error()
	closeErr := s.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
