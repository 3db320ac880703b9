package pgload

import (
	"errors"
	"strings"
)

// Sentinel errors for the failure classes of a load run.
// Callers distinguish them with errors.Is().
//
// Run-fatal: ErrInvalidConfig, ErrSourceNotFound, ErrNoInputFiles,
// ErrConnectionFailed, ErrInterrupted.
// File-fatal (recorded in the file's LoadResult, the run continues):
// ErrParse, ErrSchema, ErrDatabase.
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSourceNotFound indicates the input directory does not exist.
	ErrSourceNotFound = errors.New("source directory not found")

	// ErrNoInputFiles indicates the input directory has no matching files.
	ErrNoInputFiles = errors.New("no input files found")

	// ErrConnectionFailed indicates the database connection could not be established.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrInterrupted indicates the run was cancelled between files.
	ErrInterrupted = errors.New("interrupted")

	// ErrParse indicates a source file could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrSchema indicates no valid table definition could be derived from a file.
	ErrSchema = errors.New("schema error")

	// ErrDatabase indicates the database rejected a statement.
	ErrDatabase = errors.New("database error")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// ExitCodeForError returns the process exit code for an error returned by the CLI.
// Returns ExitSuccess (0) for nil, ExitUsageError (2) for argument and flag
// errors, and ExitGeneralError (1) for everything else.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if isUsageError(err) {
		return ExitUsageError
	}

	return ExitGeneralError
}

// isUsageError recognizes the messages cobra produces for bad arguments and flags.
func isUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"required flag",
		"invalid argument",
		"flag needs an argument",
		"missing required argument",
	} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
