package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Logger is the sink injected into the sync engine and accumulator. Every
// entry carries a category (a short subsystem tag like "OBSIDIAN" or "HOOK"),
// a message, and optional structured data; Error additionally records the
// underlying cause.
type Logger interface {
	Debug(category, msg string, data map[string]any)
	Info(category, msg string, data map[string]any)
	Warn(category, msg string, data map[string]any)
	Error(category, msg string, data map[string]any, err error)
}

// DefaultLogDir is the scratch directory holding the hook log and session
// state. The hook process must never write to stdout, so all diagnostics go
// here.
func DefaultLogDir() string {
	return filepath.Join(os.TempDir(), "claude-obsidian-sync")
}

type fileLogger struct {
	sl *slog.Logger
}

// NewFileLogger opens an append-only log file under DefaultLogDir and returns
// a Logger filtering at the given level ("debug", "info", "warn", "error";
// unrecognized values mean info).
func NewFileLogger(level string) (Logger, error) {
	dir := DefaultLogDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "hook.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: ParseLevel(level)})
	return &fileLogger{sl: slog.New(handler)}, nil
}

// ParseLevel maps a config log level string to a slog level.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func attrs(category string, data map[string]any, err error) []any {
	args := []any{slog.String("category", category)}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, slog.Any(k, data[k]))
	}
	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}
	return args
}

func (l *fileLogger) Debug(category, msg string, data map[string]any) {
	l.sl.Debug(msg, attrs(category, data, nil)...)
}

func (l *fileLogger) Info(category, msg string, data map[string]any) {
	l.sl.Info(msg, attrs(category, data, nil)...)
}

func (l *fileLogger) Warn(category, msg string, data map[string]any) {
	l.sl.Warn(msg, attrs(category, data, nil)...)
}

func (l *fileLogger) Error(category, msg string, data map[string]any, err error) {
	l.sl.Error(msg, attrs(category, data, err)...)
}

// NopLogger discards everything. Used in tests and as a fallback when the
// log file cannot be opened.
type NopLogger struct{}

func (NopLogger) Debug(string, string, map[string]any)        {}
func (NopLogger) Info(string, string, map[string]any)         {}
func (NopLogger) Warn(string, string, map[string]any)         {}
func (NopLogger) Error(string, string, map[string]any, error) {}
