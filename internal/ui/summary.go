package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vvka-141/pgload/internal/tui"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// SummaryRenderer prints the end-of-run report.
// With color disabled the output is plain ASCII with no escape sequences.
type SummaryRenderer struct {
	out     io.Writer
	color   bool
	numbers *message.Printer
}

// NewSummaryRenderer creates a SummaryRenderer writing to out.
// Panics if out is nil.
func NewSummaryRenderer(out io.Writer, color bool) *SummaryRenderer {
	if out == nil {
		panic("out cannot be nil")
	}
	return &SummaryRenderer{
		out:     out,
		color:   color,
		numbers: message.NewPrinter(language.English),
	}
}

// Render writes the summary of one run.
func (r *SummaryRenderer) Render(summary pgload.RunSummary) {
	title := "Load summary"
	if summary.Database != "" {
		title += " for " + summary.Database
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.paint(tui.TitleStyle, title))
	fmt.Fprintln(r.out, r.paint(tui.MutedStyle, "Run "+summary.RunID.String()))

	if len(summary.Results) > 0 {
		fmt.Fprintln(r.out, r.resultsTable(summary.Results))
	}

	counts := fmt.Sprintf("Files: %s loaded, %s failed",
		r.formatCount(summary.Succeeded()), r.formatCount(summary.Failed()))
	if summary.Failed() > 0 {
		fmt.Fprintln(r.out, r.paint(tui.WarningStyle, counts))
	} else {
		fmt.Fprintln(r.out, r.paint(tui.SuccessStyle, counts))
	}
	fmt.Fprintf(r.out, "Total rows: %s\n", r.formatCount(summary.TotalRows()))

	var failed []pgload.LoadResult
	for _, res := range summary.Results {
		if !res.Succeeded() {
			failed = append(failed, res)
		}
	}
	if len(failed) > 0 {
		fmt.Fprintln(r.out, "Errors:")
		for _, res := range failed {
			line := fmt.Sprintf("  %s %s: %v", tui.SymbolCross, res.FileName, res.Err)
			fmt.Fprintln(r.out, r.paint(tui.ErrorStyle, line))
		}
	}

	if summary.Interrupted {
		fmt.Fprintln(r.out, r.paint(tui.WarningStyle,
			"Interrupted: remaining files were not loaded. Committed tables are kept."))
	}
}

func (r *SummaryRenderer) resultsTable(results []pgload.LoadResult) string {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		status := tui.SymbolCheck + " loaded"
		rowCount, colCount := r.formatCount(res.Rows), strconv.Itoa(res.Columns)
		if !res.Succeeded() {
			status = tui.SymbolCross + " failed"
			rowCount, colCount = "-", "-"
		}
		rows = append(rows, []string{res.FileName, res.TableName, rowCount, colCount, status})
	}

	t := table.New().
		Headers("File", "Table", "Rows", "Columns", "Status").
		Rows(rows...)

	if !r.color {
		return t.Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				return alignColumn(lipgloss.NewStyle().Padding(0, 1), col)
			}).
			String()
	}

	return t.Border(lipgloss.RoundedBorder()).
		BorderStyle(tui.BorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tui.HeaderStyle
			}
			style := alignColumn(tui.CellStyle, col)
			if col == 4 {
				if strings.HasPrefix(rows[row][col], tui.SymbolCross) {
					return style.Foreground(tui.ColorError)
				}
				return style.Foreground(tui.ColorSuccess)
			}
			return style
		}).
		String()
}

// alignColumn right-aligns the numeric columns.
func alignColumn(style lipgloss.Style, col int) lipgloss.Style {
	if col == 2 || col == 3 {
		return style.Align(lipgloss.Right)
	}
	return style
}

func (r *SummaryRenderer) paint(style lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return style.Render(text)
}

// formatCount prints n with thousands separators.
func (r *SummaryRenderer) formatCount(n int) string {
	return r.numbers.Sprintf("%d", n)
}
