package csvread

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/pgload/internal/files/filesystem"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// Parser reads delimited files into datasets. It implements pgload.Parser.
type Parser struct {
	fsProvider filesystem.FileSystemProvider
	delimiter  rune
}

// NewParser creates a parser over the OS filesystem.
// A zero delimiter means pgload.DefaultDelimiter.
func NewParser(delimiter rune) *Parser {
	return NewParserWithFS(filesystem.NewOSFileSystem(), delimiter)
}

// NewParserWithFS creates a parser with a custom filesystem provider.
// Panics if fsProvider is nil.
func NewParserWithFS(fsProvider filesystem.FileSystemProvider, delimiter rune) *Parser {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if delimiter == 0 {
		delimiter = pgload.DefaultDelimiter
	}
	return &Parser{
		fsProvider: fsProvider,
		delimiter:  delimiter,
	}
}

// Parse reads the file at path. All failures wrap pgload.ErrParse.
func (p *Parser) Parse(path string) (pgload.Dataset, error) {
	raw, err := p.fsProvider.ReadFile(path)
	if err != nil {
		return pgload.Dataset{}, fmt.Errorf("%w: failed to read %s: %w", pgload.ErrParse, path, err)
	}

	header, records, err := p.readRecords(raw)
	if err != nil {
		return pgload.Dataset{}, fmt.Errorf("%w: %s: %w", pgload.ErrParse, path, err)
	}

	ds, err := buildDataset(header, records)
	if err != nil {
		return pgload.Dataset{}, fmt.Errorf("%w: %s: %w", pgload.ErrParse, path, err)
	}

	return ds, nil
}

func (p *Parser) readRecords(raw []byte) ([]string, [][]string, error) {
	r := csv.NewReader(newTextReader(raw))
	r.Comma = p.delimiter

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("no header row")
	}
	if err != nil {
		return nil, nil, err
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		records = append(records, rec)
	}

	return header, records, nil
}

// headerLabels names blank labels "Unnamed: <index>" and suffixes repeated
// labels with ".1", ".2", ... so every label is distinct.
func headerLabels(header []string) []string {
	labels := make([]string, len(header))
	counts := make(map[string]int, len(header))

	for i, label := range header {
		if strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("Unnamed: %d", i)
		}
		n := counts[label]
		for n > 0 {
			counts[label] = n + 1
			label = fmt.Sprintf("%s.%d", label, n)
			n = counts[label]
		}
		labels[i] = label
		counts[label] = n + 1
	}

	return labels
}

func buildDataset(header []string, records [][]string) (pgload.Dataset, error) {
	header = headerLabels(header)
	ds := pgload.Dataset{
		Columns: make([]pgload.Column, len(header)),
		Rows:    make([][]any, len(records)),
	}

	column := make([]string, len(records))
	classes := make([]string, len(header))
	for c, label := range header {
		for r, rec := range records {
			column[r] = rec[c]
		}
		classes[c] = detectClass(column)
		ds.Columns[c] = pgload.Column{Label: label, StorageClass: classes[c]}
	}

	for r, rec := range records {
		row := make([]any, len(header))
		for c, cell := range rec {
			v, err := convert(classes[c], cell)
			if err != nil {
				return pgload.Dataset{}, fmt.Errorf("row %d, column %q: %w", r+2, header[c], err)
			}
			row[c] = v
		}
		ds.Rows[r] = row
	}

	return ds, nil
}
