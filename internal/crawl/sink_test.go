package crawl

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateus/doepb-harvester/internal/records"
)

func TestCSVSink_WritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	sink, err := NewCSVSink(path)
	require.NoError(t, err)

	row := Row{
		DataLink:  "Diário Oficial 05-03-2021.pdf",
		DetailURL: "https://portal.example/doe/d",
		PDFURL:    "https://portal.example/doe/d.pdf",
		Record: records.Record{
			ActType:        records.ActRetirement,
			Name:           "JOSE DA SILVA",
			RegistrationID: "12345",
			CaseNumber:     "2023.001.9",
			Page:           3,
			Excerpt:        "RESOLVE CONCEDER APOSENTADORIA, com \"aspas\"",
		},
	}
	require.NoError(t, sink.Write(row))
	require.NoError(t, sink.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"Diário Oficial 05-03-2021.pdf",
		"https://portal.example/doe/d",
		"https://portal.example/doe/d.pdf",
		"APOSENTADORIA",
		"JOSE DA SILVA",
		"12345",
		"2023.001.9",
		"3",
		"RESOLVE CONCEDER APOSENTADORIA, com \"aspas\"",
	}, rows[1])
}

func TestCSVSink_FlushesPerRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	sink, err := NewCSVSink(path)
	require.NoError(t, err)
	defer func() { _ = sink.Close() }()

	require.NoError(t, sink.Write(Row{DataLink: "edição", Record: records.Record{ActType: records.ActPension, Page: 1}}))

	// Durability contract: the row is on disk before Close, so a crash
	// leaves a valid CSV prefix.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "PENSAO")
}

func TestNewCSVSink_UnwritablePathFails(t *testing.T) {
	_, err := NewCSVSink(filepath.Join(t.TempDir(), "missing", "out.csv"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to open output CSV"))
}
