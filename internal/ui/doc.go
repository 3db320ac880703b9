// Package ui renders user-facing reports of a load run.
package ui
