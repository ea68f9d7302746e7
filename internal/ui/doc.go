// Package ui renders command lifecycle events as console log lines when the
// human-readable log format is selected.
package ui
