package utils

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelError LogLevel = "error"
)

type Logger struct {
	level LogLevel
	sugar *zap.SugaredLogger
}

// NewLogger writes to stderr so stdout stays reserved for summaries.
func NewLogger(level string) *Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

func NewLoggerWithWriter(level string, w io.Writer) *Logger {
	logLevel := parseLogLevel(level)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zapLevel(logLevel),
	)

	return &Logger{
		level: logLevel,
		sugar: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar(),
	}
}

func NewDiscardLogger() *Logger {
	return &Logger{
		level: LevelInfo,
		sugar: zap.NewNop().Sugar(),
	}
}

func parseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) Info(reqID *string, format string, v ...any) {
	l.sugar.Infof(withReqID(reqID, format), v...)
}

func (l *Logger) Error(reqID *string, format string, v ...any) {
	l.sugar.Errorf(withReqID(reqID, format), v...)
}

func (l *Logger) Debug(reqID *string, format string, v ...any) {
	l.sugar.Debugf(withReqID(reqID, format), v...)
}

func (l *Logger) Fatal(v ...any) {
	l.sugar.Fatal(v...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

func withReqID(reqID *string, format string) string {
	if reqID == nil || *reqID == "" {
		return format
	}
	return "[" + *reqID + "] " + format
}
