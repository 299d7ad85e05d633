// Package cli implements the gradletree command-line interface.
//
// The commands parse a saved `gradle dependencies` report or run Gradle
// directly, and encode the resulting tree in any pipeline format. All of
// them share one [pipeline.Runner] and therefore one cache.
//
// # Commands
//
// The main commands are:
//   - parse: Parse a saved report (a file or stdin)
//   - run: Run `gradle -q dependencies` in a project and parse its output
//   - render: Draw the tree or its library graph as SVG, PNG or DOT
//   - browse: Pick a configuration interactively and print its tree
//   - serve: Expose the parser over HTTP
//   - cache, config: Inspect and clear the cache, show the configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs parse and cache events. Loggers are passed through context.Context.
//
// [pipeline.Runner]: github.com/matzehuels/gradletree/pkg/pipeline.Runner
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps that writes to w
// at level and above.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of one operation when it completes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to milliseconds, e.g.
// "Parsed 4 configurations (12ms)". keyvals are appended as fields.
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(fmt.Sprintf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond)), keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a copy of ctx carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks logs pipeline and server events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnParseStart(_ context.Context, source string) {
	h.logger.Debug("parse started", "source", source)
}

func (h *logHooks) OnParseComplete(_ context.Context, source string, configurations, nodes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("parse finished", "source", source, "configurations", configurations, "nodes", nodes, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("encode started", "format", format)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("encode failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("encode finished", "format", format, "size", humanize.Bytes(uint64(size)), "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "size", humanize.Bytes(uint64(size)))
}

func (h *logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request started", "method", method, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("request finished", "method", method, "path", path, "status", status, "duration", d)
}
