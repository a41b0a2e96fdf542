// Package logger configures the process-wide structured logger.
package logger

import (
	"context"
	"log/slog"
	"os"
	"runtime"

	"github.com/lmittmann/tint"
)

// Config controls how the global logger is constructed.
type Config struct {
	Level  string // debug|info|warn|error
	Format string // console|json
}

var base *slog.Logger

// Init builds the global slog logger: tint for human-readable console
// output in development, plain JSON in production. Source location is
// only attached for warn/error, matching the teacher's conditional-source
// handler so routine info logs stay terse.
func Init(cfg Config) {
	level := parseLevel(cfg.Level)

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: level, TimeFormat: "15:04:05"})
	}

	base = slog.New(newConditionalSourceHandler(handler, slog.LevelWarn, slog.LevelError))
	slog.SetDefault(base)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Get returns the global logger, falling back to a development default
// if Init was never called (e.g. in unit tests).
func Get() *slog.Logger {
	if base == nil {
		base = slog.New(tint.NewHandler(os.Stdout, nil))
	}
	return base
}

// With returns a logger scoped to a component, e.g. logger.With("component", "aggregator").
func With(args ...any) *slog.Logger {
	return Get().With(args...)
}

// conditionalSourceHandler attaches slog.Source only for the configured levels,
// keeping info-level logs compact while still giving warn/error a file:line.
type conditionalSourceHandler struct {
	handler slog.Handler
	levels  map[slog.Level]bool
}

func newConditionalSourceHandler(h slog.Handler, showFor ...slog.Level) slog.Handler {
	m := make(map[slog.Level]bool, len(showFor))
	for _, l := range showFor {
		m[l] = true
	}
	return &conditionalSourceHandler{handler: h, levels: m}
}

func (h *conditionalSourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *conditionalSourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.levels[r.Level] {
		var pcs [1]uintptr
		runtime.Callers(4, pcs[:])
		fs := runtime.CallersFrames(pcs[:])
		f, _ := fs.Next()
		r.AddAttrs(slog.Attr{Key: slog.SourceKey, Value: slog.AnyValue(&slog.Source{
			Function: f.Function, File: f.File, Line: f.Line,
		})})
	}
	return h.handler.Handle(ctx, r)
}

func (h *conditionalSourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &conditionalSourceHandler{handler: h.handler.WithAttrs(attrs), levels: h.levels}
}

func (h *conditionalSourceHandler) WithGroup(name string) slog.Handler {
	return &conditionalSourceHandler{handler: h.handler.WithGroup(name), levels: h.levels}
}
