package logging

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel maps a configuration string to a LogLevel, defaulting to info.
func ParseLevel(s string) LogLevel {
	switch s {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Fields represents structured log fields
type Fields map[string]interface{}

// StructuredLogger provides structured JSON logging with context.
// Encoding and level handling are delegated to zap; the API keeps
// context-first signatures so request metadata travels with each call.
type StructuredLogger struct {
	zl    *zap.Logger
	level zap.AtomicLevel
}

// NewStructuredLogger creates a new structured logger writing JSON to stdout.
func NewStructuredLogger(service, version string, level LogLevel) *StructuredLogger {
	return newLogger(service, version, level, os.Stdout)
}

func newLogger(service, version string, level LogLevel, w io.Writer) *StructuredLogger {
	hostname, _ := os.Hostname()

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.MessageKey = "message"
	encCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	atom := zap.NewAtomicLevelAt(level.zapLevel())

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(w),
		atom,
	)

	zl := zap.New(core, zap.AddStacktrace(zapcore.FatalLevel)).With(
		zap.String("service", service),
		zap.String("version", version),
		zap.String("hostname", hostname),
	)

	return &StructuredLogger{zl: zl, level: atom}
}

// NewTestLogger returns a debug-level logger writing to w, for tests.
func NewTestLogger(w io.Writer) *StructuredLogger {
	return newLogger("test", "0.0.0", DebugLevel, w)
}

// SetLevel sets the minimum log level
func (l *StructuredLogger) SetLevel(level LogLevel) {
	l.level.SetLevel(level.zapLevel())
}

// Debug logs a debug message with structured fields
func (l *StructuredLogger) Debug(ctx context.Context, message string, fields Fields) {
	l.zl.Debug(message, l.zapFields(ctx, fields, nil)...)
}

// Info logs an info message with structured fields
func (l *StructuredLogger) Info(ctx context.Context, message string, fields Fields) {
	l.zl.Info(message, l.zapFields(ctx, fields, nil)...)
}

// Warn logs a warning message with structured fields
func (l *StructuredLogger) Warn(ctx context.Context, message string, fields Fields) {
	l.zl.Warn(message, l.zapFields(ctx, fields, nil)...)
}

// Error logs an error message with structured fields and error details
func (l *StructuredLogger) Error(ctx context.Context, message string, fields Fields, err error) {
	l.zl.Error(message, l.zapFields(ctx, fields, err)...)
}

// Fatal logs a fatal message and exits the program
func (l *StructuredLogger) Fatal(ctx context.Context, message string, fields Fields, err error) {
	l.zl.Fatal(message, l.zapFields(ctx, fields, err)...)
}

type contextKey string

// RequestIDKey carries the per-request identifier through contexts.
const RequestIDKey contextKey = "request_id"

func (l *StructuredLogger) zapFields(ctx context.Context, fields Fields, err error) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+2)

	if ctx != nil {
		if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
			out = append(out, zap.String("request_id", requestID))
		}
	}

	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}

	if err != nil {
		out = append(out, zap.Error(err))
	}

	return out
}

// WithFields creates a new logger with additional fields
func (l *StructuredLogger) WithFields(fields Fields) *ContextLogger {
	return &ContextLogger{
		logger: l,
		fields: fields,
	}
}

// ContextLogger wraps StructuredLogger with additional context fields
type ContextLogger struct {
	logger *StructuredLogger
	fields Fields
}

// Debug logs a debug message with context fields
func (c *ContextLogger) Debug(ctx context.Context, message string, fields Fields) {
	c.logger.Debug(ctx, message, c.mergeFields(fields))
}

// Info logs an info message with context fields
func (c *ContextLogger) Info(ctx context.Context, message string, fields Fields) {
	c.logger.Info(ctx, message, c.mergeFields(fields))
}

// Warn logs a warning message with context fields
func (c *ContextLogger) Warn(ctx context.Context, message string, fields Fields) {
	c.logger.Warn(ctx, message, c.mergeFields(fields))
}

// Error logs an error message with context fields
func (c *ContextLogger) Error(ctx context.Context, message string, fields Fields, err error) {
	c.logger.Error(ctx, message, c.mergeFields(fields), err)
}

func (c *ContextLogger) mergeFields(fields Fields) Fields {
	merged := make(Fields, len(c.fields)+len(fields))

	for k, v := range c.fields {
		merged[k] = v
	}

	for k, v := range fields {
		merged[k] = v
	}

	return merged
}
