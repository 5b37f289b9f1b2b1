// Package coelog is coelacanth's logging facade. It replaces
// original_source/include/coelacanth/dbgstream.h's mutex-guarded
// std::cout wrapper with the pack's own idiom for serialized concurrent
// output: a single package-level *slog.Logger (slog.Logger is safe for
// concurrent use without an external mutex), grounded on the structured
// logging style seen throughout jinterlante1206-AleutianLocal's services
// (services/trace/dag/executor.go).
package coelog

import (
	"io"
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Configure rebuilds the package logger with the given verbosity and
// sink. quiet mirrors the original's --quiet: it suppresses informational
// banner/progress lines but never the Warn-level watchdog messages
// (SPEC_FULL.md 7: "Watchdog warnings are recoverable and never fatal").
// COELACANTH_LOG_LEVEL, if set to a valid slog level name, overrides the
// quiet-derived level for local debugging (SPEC_FULL.md 6) — it never
// affects generation output, only what gets logged.
func Configure(w io.Writer, quiet bool) {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelWarn
	}
	if envLevel, ok := levelFromEnv(); ok {
		level = envLevel
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func levelFromEnv() (slog.Level, bool) {
	var l slog.Level
	raw := os.Getenv("COELACANTH_LOG_LEVEL")
	if raw == "" {
		return l, false
	}
	if err := l.UnmarshalText([]byte(raw)); err != nil {
		return l, false
	}
	return l, true
}

func Info(msg string, args ...any)  { logger.Info(msg, args...) }
func Warn(msg string, args ...any)  { logger.Warn(msg, args...) }
func Error(msg string, args ...any) { logger.Error(msg, args...) }
func Debug(msg string, args ...any) { logger.Debug(msg, args...) }

// Watchdog logs a recoverable watchdog condition at Warn level — the Go
// analogue of dbgs() << "warning: ..." on the original's debug stream.
func Watchdog(msg string, args ...any) {
	logger.Warn(msg, args...)
}
