// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Store operations
	OpStoreOpen   Op = "open database"
	OpStoreReset  Op = "reset database"
	OpTrackAdd    Op = "add track"
	OpTrackDelete Op = "delete track"
	OpTrackList   Op = "list tracks"
	OpRatingAdd   Op = "rate track"
	OpRatingClear Op = "clear ratings"
	OpRatingFetch Op = "read rating"

	// Probe operations
	OpProbePlay Op = "start playback"

	// File operations
	OpFileTags Op = "read file tags"

	// Initialization
	OpConfigLoad Op = "load configuration"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
