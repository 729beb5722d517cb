// Package logger provides structured logging with context support.
package logger

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appctx "backoffice/internal/core/context"
)

// Logger wraps zap.SugaredLogger with context-aware logging.
type Logger struct {
	*zap.SugaredLogger
}

type loggerKey struct{}

// Config holds logger configuration.
type Config struct {
	Level       string // debug, info, warn, error; anything else means info
	Development bool   // console encoder with colored levels
	Service     string // added to every entry as "service" when set
	OutputPaths []string
}

// New creates a new Logger from configuration.
func New(cfg Config) (*Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	if len(cfg.OutputPaths) > 0 {
		zcfg.OutputPaths = cfg.OutputPaths
	}

	opts := []zap.Option{zap.AddCallerSkip(1)}
	if cfg.Service != "" {
		opts = append(opts, zap.Fields(zap.String("service", cfg.Service)))
	}

	z, err := zcfg.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return wrap(z), nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return wrap(zap.NewNop())
}

var defaultLogger = sync.OnceValue(func() *Logger {
	l, err := New(Config{Level: "info", OutputPaths: []string{"stdout"}})
	if err != nil {
		return NewNop()
	}
	return l
})

// Default returns the process-wide fallback logger writing JSON to stdout.
func Default() *Logger {
	return defaultLogger()
}

func wrap(z *zap.Logger) *Logger {
	return &Logger{z.Sugar()}
}

func parseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// WithContext attaches the trace and request ids carried by ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	trace := appctx.GetTrace(ctx)
	if trace == nil {
		return l
	}
	return l.With("trace_id", trace.TraceID, "request_id", trace.RequestID)
}

// With adds key-value pairs to logger.
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{l.SugaredLogger.With(keysAndValues...)}
}

// WithComponent tags entries with the emitting component.
func (l *Logger) WithComponent(name string) *Logger {
	return l.With("component", name)
}

// WithLogger adds Logger to context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the request logger stored in ctx, or Default, with
// trace fields attached.
func FromContext(ctx context.Context) *Logger {
	l, ok := ctx.Value(loggerKey{}).(*Logger)
	if !ok {
		l = Default()
	}
	return l.WithContext(ctx)
}

func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	logAt(ctx, zapcore.DebugLevel, msg, keysAndValues)
}

func Info(ctx context.Context, msg string, keysAndValues ...any) {
	logAt(ctx, zapcore.InfoLevel, msg, keysAndValues)
}

func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	logAt(ctx, zapcore.WarnLevel, msg, keysAndValues)
}

func Error(ctx context.Context, msg string, keysAndValues ...any) {
	logAt(ctx, zapcore.ErrorLevel, msg, keysAndValues)
}

// Fatal logs and terminates the process through zap's fatal hook.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	logAt(ctx, zapcore.FatalLevel, msg, keysAndValues)
}

func logAt(ctx context.Context, lvl zapcore.Level, msg string, keysAndValues []any) {
	FromContext(ctx).WithOptions(zap.AddCallerSkip(1)).Logw(lvl, msg, keysAndValues...)
}
