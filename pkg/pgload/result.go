package pgload

import (
	"time"

	"github.com/google/uuid"
)

// LoadStatus is the terminal outcome of loading one file.
type LoadStatus string

const (
	StatusSuccess LoadStatus = "SUCCESS"
	StatusFailed  LoadStatus = "FAILED"
)

// LoadResult records the outcome of loading one file.
type LoadResult struct {
	FileName  string
	TableName string
	Status    LoadStatus

	// Rows and Columns are set on success; both are zero on failure.
	Rows    int
	Columns int

	// Err is set on failure and wraps one of ErrParse, ErrSchema or ErrDatabase.
	Err error

	Duration time.Duration
}

// Succeeded reports whether the file was committed.
func (r LoadResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

// RunSummary aggregates the results of one run, in input order.
type RunSummary struct {
	RunID       uuid.UUID
	Database    string
	Results     []LoadResult
	Interrupted bool
}

// Succeeded returns the number of committed files.
func (s RunSummary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Succeeded() {
			n++
		}
	}
	return n
}

// Failed returns the number of rolled back files.
func (s RunSummary) Failed() int {
	return len(s.Results) - s.Succeeded()
}

// TotalRows returns the number of rows committed across all files.
func (s RunSummary) TotalRows() int {
	total := 0
	for _, r := range s.Results {
		if r.Succeeded() {
			total += r.Rows
		}
	}
	return total
}
