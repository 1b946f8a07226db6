package cli

import (
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger writing to stderr.
func NewLogger(level, format string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}

	var encoder zapcore.Encoder

	switch format {
	case "console":
		config := zap.NewDevelopmentEncoderConfig()
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(config)

	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	default:
		return nil, errors.Newf("unknown log format %q", format)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zapLevel)
	return zap.New(core), nil
}

// InstallLogger makes the logger the backend of the default slog logger.
// Returns a function restoring the previous default.
func InstallLogger(logger *zap.Logger) (restore func()) {
	previous := slog.Default()

	slog.SetDefault(slog.New(zapslog.NewHandler(logger.Core())))

	return func() {
		slog.SetDefault(previous)
	}
}
