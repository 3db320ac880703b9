// Package tui holds the terminal helpers of pgload: interaction mode
// detection, color decisions, prompts and the shared lipgloss styles.
package tui
