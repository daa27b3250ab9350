// Package logger owns the process-wide slog logger and the request-scoped
// loggers carried on context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oggyb/mentormatch/internal/config"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// textTimeLayout is used for the time attribute of text records.
const textTimeLayout = "2006-01-02 15:04:05"

type Config struct {
	Level      string
	Format     Format
	Component  string
	WithSource bool
}

type ctxKey struct{}

var (
	// mu guards cfg and out; the built logger itself is read lock-free.
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	cfg              = Config{Level: "info", Format: FormatText}
	level            = new(slog.LevelVar)
	global atomic.Pointer[slog.Logger]
)

// InitFromConfig initializes the global logger from the LOG_* settings.
func InitFromConfig(c *config.Config) {
	if c == nil {
		Init(nil)
		return
	}
	Init(&Config{
		Level:      c.Log.Level,
		Format:     Format(strings.ToLower(c.Log.Format)),
		Component:  c.Log.Component,
		WithSource: c.Log.Source,
	})
}

// Init rebuilds the global logger. A nil c keeps the previous settings.
func Init(c *Config) {
	mu.Lock()
	defer mu.Unlock()

	if c != nil {
		cfg = *c
	}
	level.Set(parseLevel(cfg.Level))

	l := slog.New(newHandler(out, cfg))
	if cfg.Component != "" {
		l = l.With("component", cfg.Component)
	}
	global.Store(l)
}

func newHandler(w io.Writer, c Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: level, AddSource: c.WithSource}
	if c.Format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}

	opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey && len(groups) == 0 {
			return slog.String(slog.TimeKey, a.Value.Time().Format(textTimeLayout))
		}
		return a
	}
	return slog.NewTextHandler(w, opts)
}

// SetOutput redirects the global logger, keeping the current settings.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
	Init(nil)
}

// L returns the global logger, building a default one on first use.
func L() *slog.Logger {
	if l := global.Load(); l != nil {
		return l
	}
	Init(nil)
	return global.Load()
}

// IsDebug reports whether debug records are currently emitted.
func IsDebug() bool {
	return level.Level() <= slog.LevelDebug
}

func With(args ...any) *slog.Logger { return L().With(args...) }

// WithContext stores a request-scoped logger on ctx.
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithAttrs returns a ctx whose logger carries args on top of the current one.
//
// Example:
//
//	ctx = logger.WithAttrs(ctx, "user_id", 42)
func WithAttrs(ctx context.Context, args ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(args...))
}

// FromContext returns the request-scoped logger, or the global one.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return L()
}

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }

// Since is a convenience attribute for request durations.
func Since(start time.Time) slog.Attr {
	return slog.Int64("duration_ms", time.Since(start).Milliseconds())
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
