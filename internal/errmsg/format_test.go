//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpListensClear,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpListensClear,
			err:      errors.New("database is locked"),
			expected: "Failed to clear listening data: database is locked",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackPause,
			err:      errors.New("playback control not supported by source"),
			expected: "Failed to pause playback: playback control not supported by source",
		},
		{
			name:     "map operation",
			op:       OpMapBuild,
			err:      errors.New("network error"),
			expected: "Failed to build map: network error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpGeocode,
			context:  "Tempe",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpGeocode,
			context:  "Tempe",
			err:      errors.New("location not found"),
			expected: "Failed to geocode location 'Tempe': location not found",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpGeocode,
			context:  "",
			err:      errors.New("location not found"),
			expected: "Failed to geocode location: location not found",
		},
		{
			name:     "source connect with address context",
			op:       OpSourceConnect,
			context:  "localhost:6600",
			err:      errors.New("connection refused"),
			expected: "Failed to connect to player 'localhost:6600': connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	// Verify that Op constants are non-empty and produce valid messages
	ops := []Op{
		OpListensLoad, OpListensClear,
		OpPlaybackPause, OpPlaybackResume, OpPlaybackSkip,
		OpMapBuild, OpGeocode,
		OpSourceConnect, OpLocationResolve,
		OpHTTPServe,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
