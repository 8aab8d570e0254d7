package sim

import (
	"log/slog"

	"github.com/gogpu/sim/internal/logging"
)

// SetLogger configures the logger for sim and all its sub-packages.
// By default, sim produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by sim:
//   - [slog.LevelDebug]: per-frame diagnostics (stack depth, scripted input, resizes)
//   - [slog.LevelInfo]: lifecycle events (platform selected, simulation started)
//   - [slog.LevelWarn]: non-fatal issues (factory failures, release errors)
//
// Example:
//
//	sim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by sim.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
