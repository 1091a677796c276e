// Package logging builds the zap loggers used by rpncalc.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerOption func(*zap.Config)

func WithLevel(level zap.AtomicLevel) LoggerOption {
	return func(cfg *zap.Config) {
		cfg.Level = level
	}
}

// WithVerbose sets the level to debug if verbose is set and leaves it alone
// otherwise.
func WithVerbose(verbose bool) LoggerOption {
	return func(cfg *zap.Config) {
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
	}
}

func WithEncoding(encoding string) LoggerOption {
	return func(cfg *zap.Config) {
		cfg.Encoding = encoding
	}
}

func WithPaths(paths ...string) LoggerOption {
	return func(cfg *zap.Config) {
		cfg.OutputPaths = paths
		cfg.ErrorOutputPaths = paths
	}
}

// NewLogger builds a console logger writing to stderr at info level, so that
// results written to stdout are not interleaved with logs.
func NewLogger(opts ...LoggerOption) (*zap.SugaredLogger, error) {
	loggerCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:       false,
		DisableCaller:     true,
		DisableStacktrace: true,
		Sampling:          nil,
		Encoding:          "console",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:       "msg",
			LevelKey:         "level",
			TimeKey:          "time",
			NameKey:          "logger",
			CallerKey:        "caller",
			FunctionKey:      zapcore.OmitKey,
			StacktraceKey:    "stacktrace",
			LineEnding:       zapcore.DefaultLineEnding,
			EncodeLevel:      zapcore.LowercaseLevelEncoder,
			EncodeTime:       zapcore.RFC3339TimeEncoder,
			EncodeDuration:   zapcore.SecondsDurationEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			EncodeName:       zapcore.FullNameEncoder,
			ConsoleSeparator: " ",
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	for _, opt := range opts {
		opt(&loggerCfg)
	}

	logger, err := loggerCfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar().Named("rpncalc"), nil
}
