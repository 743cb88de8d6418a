// Package logging provides the process-wide structured logger.
package logging

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a log severity.
type Level = zapcore.Level

// Log levels.
const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	FatalLevel = zapcore.FatalLevel
)

type logFormatFunc func(format string, args ...interface{})

var (
	// Debugf logs a formatted debug message.
	Debugf logFormatFunc
	// Infof logs a formatted info message.
	Infof logFormatFunc
	// Warnf logs a formatted warning.
	Warnf logFormatFunc
	// Errorf logs a formatted error.
	Errorf logFormatFunc
	// Fatalf logs a formatted message and exits the process.
	Fatalf logFormatFunc
)

var (
	cfg    zap.Config
	logger *zap.Logger
	source string
)

func init() {
	cfgJSON := []byte(`{
		"level": "info",
		"outputPaths": ["stderr"],
		"errorOutputPaths": ["stderr"],
		"encoding": "console",
		"encoderConfig": {
			"timeKey": "time",
			"timeEncoder": "iso8601",
			"messageKey": "message",
			"levelKey": "level",
			"levelEncoder": "lowercase"
		}
	}`)

	if err := json.Unmarshal(cfgJSON, &cfg); err != nil {
		panic(err)
	}
	if err := rebuild(); err != nil {
		panic(err)
	}
}

func rebuild() error {
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	if source != "" {
		l = l.With(zap.String("source", source))
	}
	logger = l
	setSugar(logger.Sugar())
	return nil
}

func setSugar(sugar *zap.SugaredLogger) {
	Debugf = sugar.Debugf
	Infof = sugar.Infof
	Warnf = sugar.Warnf
	Errorf = sugar.Errorf
	Fatalf = sugar.Fatalf
}

// SetSource tags every following message with the emitting binary or session.
func SetSource(name string) {
	source = name
	if err := rebuild(); err != nil {
		Errorf("set log source %q: %v", name, err)
	}
}

// SetLevel changes the minimum level that is written.
func SetLevel(lv Level) {
	cfg.Level.SetLevel(lv)
}

// SetOutput redirects log output to the given zap sinks (paths, "stderr", "stdout").
func SetOutput(paths []string) error {
	cfg.OutputPaths = paths
	return rebuild()
}

// Logger returns the underlying zap logger.
func Logger() *zap.Logger {
	return logger
}

// Sync flushes buffered log entries.
func Sync() {
	_ = logger.Sync()
}

// ParseLevel converts a level name to a Level. Unknown names map to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	}
	Warnf("ParseLevel: unknown level %q, using info", s)
	return InfoLevel
}
