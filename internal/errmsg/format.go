// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Listen store operations
	OpListensLoad  Op = "load listening history"
	OpListensClear Op = "clear listening data"

	// Playback control operations
	OpPlaybackPause  Op = "pause playback"
	OpPlaybackResume Op = "resume playback"
	OpPlaybackSkip   Op = "skip track"

	// Map operations
	OpMapBuild Op = "build map"
	OpGeocode  Op = "geocode location"

	// Source and location
	OpSourceConnect   Op = "connect to player"
	OpLocationResolve Op = "resolve current location"

	// HTTP API
	OpHTTPServe Op = "serve http api"

	// Initialization
	OpInitialize Op = "initialize application"
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
