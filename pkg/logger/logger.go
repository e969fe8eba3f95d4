// Package logger wraps zap with the key/value API the quote service logs
// through. Entries go to stdout as JSON (or console text in development) and
// pick up the request and form session IDs carried by a context.
package logger

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// contextKey is a custom type for context keys.
type contextKey string

const (
	// RequestIDKey is the context key for the request ID.
	RequestIDKey contextKey = "request_id"

	// SessionIDKey is the context key for the form session ID.
	SessionIDKey contextKey = "session_id"
)

// contextFields lists the context keys copied onto every entry, in order.
var contextFields = []contextKey{RequestIDKey, SessionIDKey}

// WithRequestID returns a copy of ctx carrying the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithSessionID returns a copy of ctx carrying the form session ID.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Logger is a sugared zap logger with a fixed set of leading fields.
type Logger struct {
	zap    *zap.Logger
	sugar  *zap.SugaredLogger
	fields []any
}

// Config contains logger configuration.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string

	// Format is json or console.
	Format string

	// Development turns on zap's development mode (DPanic panics).
	Development bool

	// Output receives the entries. Defaults to stdout.
	Output io.Writer
}

// New builds a Logger from cfg.
//
// Parameters:
//   - cfg: Logger configuration
//
// Returns:
//   - *Logger: configured logger instance
//   - error: an unknown level
func New(cfg Config) (*Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	var out io.Writer = os.Stdout
	if cfg.Output != nil {
		out = cfg.Output
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}

	return wrap(zap.New(zapcore.NewCore(encoder, zapcore.AddSync(out), level), opts...), nil), nil
}

// MustNew is New that panics on a bad configuration.
func MustNew(cfg Config) *Logger {
	l, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return l
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return wrap(zap.NewNop(), nil)
}

func wrap(z *zap.Logger, fields []any) *Logger {
	return &Logger{zap: z, sugar: z.Sugar(), fields: fields}
}

// Debug logs at debug level with key/value pairs.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, l.with(keysAndValues)...)
}

// Info logs at info level with key/value pairs.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, l.with(keysAndValues)...)
}

// Warn logs at warn level with key/value pairs.
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, l.with(keysAndValues)...)
}

// Error logs at error level with key/value pairs.
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, l.with(keysAndValues)...)
}

// Fatal logs at fatal level and exits the process.
func (l *Logger) Fatal(msg string, keysAndValues ...interface{}) {
	l.sugar.Fatalw(msg, l.with(keysAndValues)...)
}

func (l *Logger) with(keysAndValues []any) []any {
	if len(l.fields) == 0 {
		return keysAndValues
	}
	all := make([]any, 0, len(l.fields)+len(keysAndValues))
	all = append(all, l.fields...)
	return append(all, keysAndValues...)
}

// WithContext returns a logger that prefixes every entry with the request
// and session IDs found in ctx. Keys absent from ctx are skipped.
//
// Parameters:
//   - ctx: the context to read IDs from
//
// Returns:
//   - *Logger: the scoped logger, sharing the same core
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := append([]any(nil), l.fields...)
	for _, key := range contextFields {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			fields = append(fields, string(key), v)
		}
	}
	return wrap(l.zap, fields)
}

// Named returns a child logger whose entries carry name.
func (l *Logger) Named(name string) *Logger {
	return wrap(l.zap.Named(name), l.fields)
}

// Sync flushes buffered entries. Call it before exit.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}
