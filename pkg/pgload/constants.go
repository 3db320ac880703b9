package pgload

import "time"

// Exit codes.
//   - 0: the run completed (individual files may still have failed)
//   - 1: the run could not complete (no input, connection failure, interrupt, crash)
//   - 2: CLI usage error (misuse of command line)
const (
	ExitSuccess      = 0 // Run completed; per-file failures are reported in the summary
	ExitGeneralError = 1 // Missing input, connection failure, interrupt or unexpected error
	ExitUsageError   = 2 // CLI usage error (missing args, invalid flags)
)

const (
	// DefaultBatchSize is the number of rows submitted per grouped insert.
	DefaultBatchSize = 1000

	// DefaultFilePattern selects the source files inside the input directory.
	DefaultFilePattern = "*.csv"

	// DefaultDelimiter is the field separator of the source files.
	DefaultDelimiter = ','

	// DefaultFileTimeout bounds the work done for a single file.
	DefaultFileTimeout = 30 * time.Minute

	// SurrogateKeyColumn is the auto-incrementing primary key added to every table.
	SurrogateKeyColumn = "id"

	// RenamedKeyColumn replaces a source column that would collide with SurrogateKeyColumn.
	RenamedKeyColumn = "original_id"

	// UnnamedColumn is substituted for labels that sanitize to nothing.
	UnnamedColumn = "unnamed_column"

	// DefaultRetryInitialDelay is the default initial delay before the first connect retry.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between connect retries.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of connect retries.
	DefaultRetryMaxAttempts = 3

	// DefaultAppName is reported to the server as application_name.
	DefaultAppName = "pgload"
)
