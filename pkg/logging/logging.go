package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo // Default to INFO for unknown
	}
}

// ParseLevel converts a level name such as "debug" or "WARN" into a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Options configures a Logger.
type Options struct {
	// Level is the minimum level written to Output.
	Level LogLevel
	// Output receives filtered records. Nil discards them.
	Output io.Writer
	// FilePath, when set, receives every record at debug level and above in
	// append mode.
	FilePath string
}

// Logger is a subsystem-aware logger scoped to a single command invocation.
// It is passed explicitly to the components that need it.
type Logger struct {
	slog    *slog.Logger
	closers []io.Closer
}

// New creates a Logger from the given options. The returned logger must be
// closed to release the log file, if one was opened.
func New(opts Options) (*Logger, error) {
	output := opts.Output
	if output == nil {
		output = io.Discard
	}

	l := &Logger{}
	handlers := []slog.Handler{
		slog.NewTextHandler(output, &slog.HandlerOptions{Level: opts.Level.SlogLevel()}),
	}

	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", opts.FilePath, err)
		}
		l.closers = append(l.closers, f)
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	l.slog = slog.New(fanout(handlers))
	return l, nil
}

// Discard returns a Logger that drops every record.
func Discard() *Logger {
	return &Logger{slog: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Close releases any log file held by the logger.
func (l *Logger) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.closers = nil
	return first
}

func (l *Logger) log(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	if l == nil || l.slog == nil {
		return
	}
	if !l.slog.Enabled(context.Background(), level.SlogLevel()) {
		return
	}

	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.slog.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
}

// Debug logs a debug message.
func (l *Logger) Debug(subsystem string, messageFmt string, args ...interface{}) {
	l.log(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func (l *Logger) Info(subsystem string, messageFmt string, args ...interface{}) {
	l.log(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(subsystem string, messageFmt string, args ...interface{}) {
	l.log(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func (l *Logger) Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	l.log(LevelError, subsystem, err, messageFmt, args...)
}

// fanoutHandler forwards each record to every handler that accepts its level.
type fanoutHandler []slog.Handler

func fanout(handlers []slog.Handler) slog.Handler {
	if len(handlers) == 1 {
		return handlers[0]
	}
	return fanoutHandler(handlers)
}

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, handler := range h {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, handler := range h {
		out[i] = handler.WithAttrs(attrs)
	}
	return out
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, handler := range h {
		out[i] = handler.WithGroup(name)
	}
	return out
}
