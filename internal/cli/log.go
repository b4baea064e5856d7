// Package cli implements the riskflow command-line interface.
//
// The commands turn a conservation-risk dataset into a layered flow
// diagram and let a user inspect it:
//   - render: load, lay out and write SVG, PNG, PDF, JSON or DOT in one step
//   - layout: compute the scene document only
//   - visualize: render a previously computed scene document
//   - explore: browse the diagram in the terminal with hover and selection
//   - serve: expose the diagram and interactive sessions over HTTP
//   - cache, config: manage the local cache and configuration file
//
// Settings come from the configuration file (see internal/config) and are
// overridden by any flag given explicitly on the command line.
//
// # Logging
//
// Diagnostics go through a charmbracelet/log logger on stderr. --verbose
// lowers the level to debug; user-facing results are printed with the
// helpers in ui.go.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level, with timestamps as
// "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of one operation.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the time since newProgress, rounded to the
// millisecond, plus any structured keyvals.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
