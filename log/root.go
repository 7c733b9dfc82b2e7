// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"sync/atomic"
)

var root atomic.Value

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	root.Store(l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger
func Root() Logger {
	return root.Load().(Logger)
}

// WithContext returns a logger carrying ctx that always writes through the
// current root logger. Package level loggers are declared before main gets a
// chance to call SetDefault, so the root is resolved on every call.
func WithContext(ctx ...any) Logger {
	return &contextLogger{ctx: ctx}
}

type contextLogger struct {
	ctx []any
}

func (c *contextLogger) current() Logger {
	return Root().With(c.ctx...)
}

func (c *contextLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(c.ctx)+len(ctx))
	merged = append(merged, c.ctx...)
	merged = append(merged, ctx...)
	return &contextLogger{ctx: merged}
}

func (c *contextLogger) Log(level slog.Level, msg string, ctx ...any) {
	c.current().Log(level, msg, ctx...)
}

func (c *contextLogger) Trace(msg string, ctx ...any) { c.current().Trace(msg, ctx...) }
func (c *contextLogger) Debug(msg string, ctx ...any) { c.current().Debug(msg, ctx...) }
func (c *contextLogger) Info(msg string, ctx ...any)  { c.current().Info(msg, ctx...) }
func (c *contextLogger) Warn(msg string, ctx ...any)  { c.current().Warn(msg, ctx...) }
func (c *contextLogger) Error(msg string, ctx ...any) { c.current().Error(msg, ctx...) }
func (c *contextLogger) Crit(msg string, ctx ...any)  { c.current().Crit(msg, ctx...) }

func (c *contextLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return Root().Enabled(ctx, level)
}

func (c *contextLogger) Handler() slog.Handler {
	return Root().Handler()
}

// The following functions bypass the exported logger methods (logger.Debug,
// etc.) to keep the call depth the same for all paths to logger.Write so
// runtime.Caller(2) always refers to the call site in client code.

// Trace is a convenient alias for Root().Trace
func Trace(msg string, ctx ...any) {
	Root().Log(LevelTrace, msg, ctx...)
}

// Debug is a convenient alias for Root().Debug
func Debug(msg string, ctx ...any) {
	Root().Log(slog.LevelDebug, msg, ctx...)
}

// Info is a convenient alias for Root().Info
func Info(msg string, ctx ...any) {
	Root().Log(slog.LevelInfo, msg, ctx...)
}

// Warn is a convenient alias for Root().Warn
func Warn(msg string, ctx ...any) {
	Root().Log(slog.LevelWarn, msg, ctx...)
}

// Error is a convenient alias for Root().Error
func Error(msg string, ctx ...any) {
	Root().Log(slog.LevelError, msg, ctx...)
}

// New returns a new logger with the given context.
// New is a convenient alias for Root().With
func New(ctx ...any) Logger {
	return Root().With(ctx...)
}
