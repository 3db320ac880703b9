package ui

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgload/pkg/pgload"
)

func sampleSummary() pgload.RunSummary {
	return pgload.RunSummary{
		RunID:    uuid.MustParse("6f1c2b9e-3d4a-4f5b-8c7d-1e2f3a4b5c6d"),
		Database: "warehouse",
		Results: []pgload.LoadResult{
			{FileName: "a.csv", TableName: "a", Status: pgload.StatusSuccess, Rows: 1234567, Columns: 4, Duration: time.Second},
			{FileName: "b.csv", TableName: "b", Status: pgload.StatusFailed,
				Err: fmt.Errorf("%w: row 3 has 2 fields, want 3", pgload.ErrParse)},
		},
	}
}

func TestNewSummaryRenderer_NilWriter(t *testing.T) {
	assert.Panics(t, func() { NewSummaryRenderer(nil, false) })
}

func TestRender_Plain(t *testing.T) {
	var out bytes.Buffer
	NewSummaryRenderer(&out, false).Render(sampleSummary())

	got := out.String()
	assert.Contains(t, got, "Load summary for warehouse")
	assert.Contains(t, got, "Run 6f1c2b9e-3d4a-4f5b-8c7d-1e2f3a4b5c6d")
	assert.Contains(t, got, "1,234,567")
	assert.Contains(t, got, "Files: 1 loaded, 1 failed")
	assert.Contains(t, got, "Total rows: 1,234,567")
	assert.Contains(t, got, "✗ b.csv: parse error: row 3 has 2 fields, want 3")
	assert.NotContains(t, got, "Interrupted")
	assert.NotContains(t, got, "\x1b[", "plain output must not contain escape sequences")
}

func TestRender_TableListsEveryFile(t *testing.T) {
	var out bytes.Buffer
	NewSummaryRenderer(&out, false).Render(sampleSummary())

	got := out.String()
	for _, want := range []string{"File", "Table", "Rows", "Columns", "Status", "a.csv", "b.csv", "loaded", "failed"} {
		assert.Contains(t, got, want)
	}
}

func TestRender_Interrupted(t *testing.T) {
	summary := sampleSummary()
	summary.Interrupted = true

	var out bytes.Buffer
	NewSummaryRenderer(&out, false).Render(summary)

	assert.Contains(t, out.String(), "Interrupted: remaining files were not loaded")
}

func TestRender_EmptyRun(t *testing.T) {
	var out bytes.Buffer
	NewSummaryRenderer(&out, false).Render(pgload.RunSummary{Interrupted: true})

	got := out.String()
	assert.Contains(t, got, "Files: 0 loaded, 0 failed")
	assert.Contains(t, got, "Total rows: 0")
	assert.NotContains(t, got, "Errors:")
	assert.NotContains(t, got, "File ")
}

func TestRender_ColorKeepsContent(t *testing.T) {
	var out bytes.Buffer
	NewSummaryRenderer(&out, true).Render(sampleSummary())

	got := out.String()
	require.NotEmpty(t, got)
	assert.Contains(t, got, "warehouse")
	assert.Contains(t, got, "1,234,567")
	assert.Contains(t, got, "b.csv")
}

func TestFormatCount(t *testing.T) {
	r := NewSummaryRenderer(&bytes.Buffer{}, false)

	tests := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		2500:    "2,500",
		1234567: "1,234,567",
	}
	for n, want := range tests {
		assert.Equal(t, want, r.formatCount(n))
	}
}
