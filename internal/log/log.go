package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	l *zap.SugaredLogger
}

func newLogger(out io.Writer, level zapcore.Level, opts ...zap.Option) *Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(out), level)
	return &Logger{
		l: zap.New(core, append(opts, zap.AddCallerSkip(1))...).Sugar(),
	}
}

func New(out io.Writer) *Logger {
	return newLogger(out, zapcore.InfoLevel)
}

func NewDebugLogger(out io.Writer) *Logger {
	return newLogger(out, zapcore.DebugLevel, zap.AddCaller())
}

// Printf logs a message at info level.
// Arguments are handled in the manner of fmt.Printf.
func (l *Logger) Printf(format string, v ...interface{}) {
	l.l.Infof(format, v...)
}

// Debugf logs a message at debug level.
// Arguments are handled in the manner of fmt.Printf.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.l.Debugf(format, v...)
}

// Errorf logs a message at error level.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.l.Errorf(format, v...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.l.Sync()
}
