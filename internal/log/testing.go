package log

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// NewTestLogger returns a debug Logger which writes to tb.Log.
func NewTestLogger(tb testing.TB) *Logger {
	return &Logger{
		l: zaptest.NewLogger(tb, zaptest.Level(zap.DebugLevel), zaptest.WrapOptions(zap.AddCallerSkip(1))).Sugar(),
	}
}
