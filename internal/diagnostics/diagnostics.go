// Package diagnostics provides structured, stderr-only logging for
// tree-sitter-grep runs.
//
// # Fluent API
//
// Use the fluent builder to describe an operation and log its outcome:
//
//	diagnostics.Event("walker:file", "skip").
//		Path(p).
//		Detail("candidates", len(langs)).
//		Log(err)
//
// The source parameter follows the format "{component}:{thing}", e.g.
// "walker:file", "query:compile", "filterplugin:load". Nothing here is
// persisted: entries go to stderr as structured fields. Non-fatal errors
// that the dispatcher reports once the run ends are recorded separately,
// through an [Accumulator].
package diagnostics

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.Logger
	mu     sync.Mutex
)

// Init installs the global logger. Safe to call multiple times; the first
// call wins. verbose enables debug-level output.
func Init(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		return
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = ""
	encoder := zapcore.NewConsoleEncoder(cfg)
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)
	global = zap.New(core)
}

func logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		global = zap.NewNop()
	}
	return global
}

// Sync flushes any buffered log entries. Call before process exit.
func Sync() {
	_ = logger().Sync()
}

// Builder constructs a diagnostic entry using a fluent API. Create with
// [Event], chain setters, then call [Builder.Log] to emit it.
type Builder struct {
	source string
	action string
	path   string
	fields []zap.Field
}

// Event starts a new diagnostic entry for an operation.
func Event(source, action string) *Builder {
	return &Builder{source: source, action: action}
}

// Path attaches the file or query path this entry concerns.
func (b *Builder) Path(p string) *Builder {
	b.path = p
	return b
}

// Detail adds an arbitrary key-value field to the entry.
func (b *Builder) Detail(key string, value any) *Builder {
	b.fields = append(b.fields, zap.Any(key, value))
	return b
}

// Log emits the entry. A nil err logs at debug level; a non-nil err logs at
// warn level. Log records err nowhere else; callers that track non-fatal
// errors add them to an [Accumulator] themselves.
func (b *Builder) Log(err error) {
	fields := append([]zap.Field{
		zap.String("source", b.source),
		zap.String("action", b.action),
	}, b.fields...)
	if b.path != "" {
		fields = append(fields, zap.String("path", b.path))
	}

	l := logger()
	if err == nil {
		l.Debug("ok", fields...)
		return
	}
	fields = append(fields, zap.Error(err))
	l.Warn("non-fatal", fields...)
}
