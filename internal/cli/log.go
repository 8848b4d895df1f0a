// Package cli implements the mvnresolve command-line interface.
//
// The CLI resolves artifact versions against a Maven repository and
// downloads artifact files. It is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - release, latest, snapshot: Resolve a single version
//   - versions: List every published version in ascending order
//   - download: Fetch an artifact file, resolving the latest version if none is given
//   - url, compare: Offline helpers for artifact URLs and version ordering
//   - config: Show the config file location and effective settings
//
// # Configuration
//
// Settings come from flags, then MVNRESOLVE_USERNAME and MVNRESOLVE_TOKEN,
// then the TOML config file, then defaults.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes every HTTP request with credentials redacted. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Downloaded test-0.4.5.jar (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports resolution and download events to a logger. The CLI
// registers them in verbose mode.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnResolveStart(_ context.Context, op, coordinate string) {
	h.logger.Debug("resolving", "op", op, "artifact", coordinate)
}

func (h logHooks) OnResolveComplete(_ context.Context, op, coordinate, version string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolve failed", "op", op, "artifact", coordinate, "duration", d.Round(time.Millisecond))
		return
	}
	h.logger.Debug("resolve done", "op", op, "artifact", coordinate, "version", version, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnDownloadComplete(_ context.Context, url, path string, size int64, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("download failed", "url", url, "duration", d.Round(time.Millisecond))
		return
	}
	h.logger.Debug("download done", "url", url, "path", path, "bytes", size, "duration", d.Round(time.Millisecond))
}
