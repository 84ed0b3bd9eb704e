// Package logging configures the process-wide structured loggers.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	golog "github.com/ipfs/go-log/v2"
)

// Options selects log level and destination.
type Options struct {
	Level  string // debug, info, warn, error
	File   string // log file; empty disables file output
	Stderr bool
	JSON   bool
}

// Setup applies opts to every named logger.
func Setup(opts Options) error {
	level, err := golog.LevelFromString(opts.Level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", opts.Level, err)
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}

	format := golog.ColorizedOutput
	if opts.JSON {
		format = golog.JSONOutput
	} else if opts.File != "" && !opts.Stderr {
		format = golog.PlaintextOutput
	}

	golog.SetupLogging(golog.Config{
		Format: format,
		Level:  level,
		Stderr: opts.Stderr,
		File:   opts.File,
	})
	return nil
}

// DefaultFile returns the log file under the XDG state directory.
func DefaultFile() (string, error) {
	return xdg.StateFile("musicmap/musicmap.log")
}

// Logger returns the named subsystem logger.
func Logger(name string) *golog.ZapEventLogger {
	return golog.Logger(name)
}
