// Package logger provides the global logger for idlrs.
//
// All log output goes to stderr: stdout is reserved for generated binding
// code and must stay byte-clean.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance
var Logger *zap.SugaredLogger

func init() {
	// Safe no-op logger at package load time so library use before
	// Initialize() cannot panic
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger for the given CLI verbosity
// (count of -v flags)
func Initialize(verbosity int) error {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = "" // one-shot tool, timestamps are noise

	zapLogger := zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			VerbosityToLevel(verbosity),
		),
	)

	Logger = zapLogger.Sugar()
	return nil
}
