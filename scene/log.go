package scene

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFileLogger returns a logger appending to path for persistence
// diagnostics. It never fails: when path is empty or cannot be opened the
// returned logger discards everything.
func NewFileLogger(path string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncoderConfig.ConsoleSeparator = "  "
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = nil

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log.Named("persist")
}
