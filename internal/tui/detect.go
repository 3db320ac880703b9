package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for pgload.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode determines whether pgload may prompt the user.
//
// Returns ModeNonInteractive if:
//   - PGLOAD_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - stdin is not a terminal (piped input, CI/CD)
//
// Returns ModeInteractive otherwise.
func DetectMode() Mode {
	if os.Getenv("PGLOAD_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

// ColorEnabled reports whether output written to f may carry ANSI colors.
// Colors are off when disabled is set (--no-color), when NO_COLOR is set,
// or when f is not a terminal.
func ColorEnabled(f *os.File, disabled bool) bool {
	if disabled || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}
