// Package logger provides named, coloured component loggers backed by zap.
package logger

import (
	"errors"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const colorReset = "\033[0m"

var ErrNilWriter = errors.New("logger writer is nil")

// Logger writes human readable lines prefixed with a coloured component name.
type Logger struct {
	z *zap.Logger
}

// New creates a Logger for the component prefix that writes to w.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encCfg.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(color + "[" + name + "]" + colorReset)
	}
	encCfg.CallerKey = zapcore.OmitKey

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)
	return &Logger{z: zap.New(core).Named(prefix)}, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// With returns a child logger that adds fields to every line.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{z: l.z.With(fields...)}
}

func (l *Logger) Debug(msg string) {
	l.z.Debug(msg)
}

func (l *Logger) Info(msg string) {
	l.z.Info(msg)
}

func (l *Logger) Warning(msg string) {
	l.z.Warn(msg)
}

func (l *Logger) Error(msg string) {
	l.z.Error(msg)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}
