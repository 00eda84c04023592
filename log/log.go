// Package log provides structured logging for the Lighter signer. It wraps
// log/slog with per-module child loggers so the API client and test
// harnesses share one configuration.
//
// Every handler installed through this package sits behind a redacting
// layer: attributes under well-known secret keys (private keys, nonces,
// seeds) are masked before they reach the handler, so key material cannot
// leak into a log sink through a careless call site. The cryptographic
// core itself never logs.
package log

import (
	"context"
	"log/slog"
	"os"
)

// redactedValue replaces the value of any secret attribute.
const redactedValue = "[redacted]"

// secretKeys are attribute keys whose values must never reach a handler.
// Signing nonces are included: an exposed nonce forfeits the key.
var secretKeys = map[string]bool{
	"private_key": true,
	"priv":        true,
	"secret":      true,
	"seed":        true,
	"nonce_bytes": true,
	"nonce":       true,
}

// redactAttr masks the value of a secret attribute, leaving the key
// visible so the call site stays debuggable. Group attributes are searched
// recursively.
func redactAttr(a slog.Attr) slog.Attr {
	if secretKeys[a.Key] {
		return slog.String(a.Key, redactedValue)
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		clean := make([]slog.Attr, len(group))
		for i, g := range group {
			clean[i] = redactAttr(g)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clean...)}
	}
	return a
}

// redactingHandler wraps a slog.Handler and masks secret attributes on
// every record and on handler-level context added via WithAttrs.
type redactingHandler struct {
	inner slog.Handler
}

func (h redactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h redactingHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(redactAttr(a))
		return true
	})
	return h.inner.Handle(ctx, clean)
}

func (h redactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = redactAttr(a)
	}
	return redactingHandler{inner: h.inner.WithAttrs(out)}
}

func (h redactingHandler) WithGroup(name string) slog.Handler {
	return redactingHandler{inner: h.inner.WithGroup(name)}
}

// Logger wraps slog.Logger with signer-specific context.
type Logger struct {
	inner *slog.Logger
}

// defaultLogger is the process-wide logger used by the package-level
// convenience functions.
var defaultLogger *Logger

func init() {
	defaultLogger = New(slog.LevelInfo)
}

// New creates a Logger that writes JSON to stderr at the given level,
// behind the redacting layer.
func New(level slog.Level) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return NewWithHandler(h)
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler,
// for tests or custom destinations. The handler is wrapped in the
// redacting layer; there is no way to obtain an unredacted logger from
// this package.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(redactingHandler{inner: h})}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger with an additional "module" attribute.
// Subsystems (client, ...) obtain their contextual logger here.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// With returns a child logger with additional key-value context. Secret
// keys are masked by the handler layer like any other attribute.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// Debug logs at LevelDebug using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at LevelInfo using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at LevelWarn using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at LevelError using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
